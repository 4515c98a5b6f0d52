package handlers

import "strings"

// NoneMatch reports whether an If-None-Match header value matches etag.
// It handles "*", comma-separated lists and weak W/ tags using weak comparison.
func NoneMatch(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")

	for header = strings.TrimSpace(header); header != ""; {
		header = strings.TrimLeft(header, " \t,")
		if header == "" {
			break
		}
		if header[0] == '*' {
			return true
		}

		header = strings.TrimPrefix(header, "W/")
		if header == "" || header[0] != '"' {
			// malformed, nothing after this can be trusted
			return false
		}
		end := strings.IndexByte(header[1:], '"')
		if end < 0 {
			return false
		}
		if header[:end+2] == want {
			return true
		}
		header = header[end+2:]
	}
	return false
}
