// Package asf decodes the GUID-keyed object stream of ASF (WMA) buffers.
package asf

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// guid is a 16-byte ASF object identifier in wire order: the first three
// groups of the canonical rendering are stored little-endian.
type guid [16]byte

// String renders the canonical hyphenated uppercase form, e.g.
// "75B22630-668E-11CF-A6D9-00AA0062CE6C".
func (g guid) String() string {
	return strings.ToUpper(fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		g[3], g[2], g[1], g[0],
		g[5], g[4],
		g[7], g[6],
		g[8], g[9],
		g[10], g[11], g[12], g[13], g[14], g[15]))
}

// mustGUID parses a canonical hyphenated GUID string into wire order.
// Panics on malformed input; only used for package-level constants.
func mustGUID(s string) guid {
	raw, err := hex.DecodeString(strings.ReplaceAll(s, "-", ""))
	if err != nil || len(raw) != 16 {
		panic(fmt.Sprintf("asf: bad GUID literal %q", s))
	}

	var g guid
	g[0], g[1], g[2], g[3] = raw[3], raw[2], raw[1], raw[0]
	g[4], g[5] = raw[5], raw[4]
	g[6], g[7] = raw[7], raw[6]
	copy(g[8:], raw[8:])
	return g
}

// Object GUIDs this decoder cares about.
var (
	headerObjectGUID       = mustGUID("75B22630-668E-11CF-A6D9-00AA0062CE6C")
	contentDescriptionGUID = mustGUID("75B22633-668E-11CF-A6D9-00AA0062CE6C")
	extendedContentGUID    = mustGUID("D2D0A440-E307-11D2-97F0-00A0C95EA850")
)
