// Package base64 inspects data URIs such as "data:image/png;base64,....".
package base64

import "strings"

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

// GetContentType returns the media type of a base64 data URI, or "" when the
// value is not one.
func GetContentType(file string) string {
	rest, ok := strings.CutPrefix(file, dataPrefix)
	if !ok {
		return ""
	}

	mediaType, _, ok := strings.Cut(rest, base64Marker)
	if !ok {
		return ""
	}

	return mediaType
}
