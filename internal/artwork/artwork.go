// Package artwork provides helpers for embedded picture payloads.
package artwork

import (
	"strings"

	"github.com/h2non/filetype"

	"github.com/simonhull/mediameta/internal/types"
)

// NewImage builds an Image payload, sniffing the MIME type from the first
// bytes when the container carried none (MP4 covr) or an unusable one.
//
// The data slice is copied: image payloads outlive the decode call and must
// not alias the caller's buffer.
func NewImage(data []byte, mimeType string) *types.Image {
	if len(data) == 0 {
		return nil
	}

	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" || !strings.Contains(mimeType, "/") {
		mimeType = SniffMIME(data)
	}

	copied := make([]byte, len(data))
	copy(copied, data)

	return &types.Image{Data: copied, MIMEType: mimeType}
}

// SniffMIME detects the MIME type of an image payload from magic bytes.
// Returns "application/octet-stream" when the payload is unrecognizable.
func SniffMIME(data []byte) string {
	kind, err := filetype.Match(data)
	if err == nil && kind.MIME.Value != "" {
		return kind.MIME.Value
	}
	return "application/octet-stream"
}
