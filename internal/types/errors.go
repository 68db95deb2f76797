package types

import "fmt"

// MalformedHeaderError is returned when a buffer does not start with the
// magic bytes or GUID the format requires.
//
// The dispatcher recovers from it by substituting default metadata.
type MalformedHeaderError struct {
	Format string
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s: malformed header: %s", e.Format, e.Reason)
}

// UnsupportedFormatError is returned when no decoder exists for a file.
type UnsupportedFormatError struct {
	Name   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Name, e.Reason)
}
