package sysuuid

import (
	"bytes"
	"strings"
)

// cString copies s into a NUL-terminated byte slice for the facility.
// It reports false when s holds a NUL byte: the facility would see only
// the prefix before it, so such input can never round-trip.
func cString(s string) ([]byte, bool) {
	if len(s) == 0 {
		return []byte{0}, true
	}
	if strings.IndexByte(s, 0) >= 0 {
		return nil, false
	}
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf, true
}

// goString converts a facility text buffer into a string, stopping at the
// first NUL. A buffer with no terminator yields at most TextSize bytes.
func goString(buf *[TextBufferSize]byte) string {
	n := bytes.IndexByte(buf[:], 0)
	if n < 0 {
		n = TextSize
	}
	return string(buf[:n])
}
