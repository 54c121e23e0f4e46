package sysuuid

import (
	"encoding/hex"
	"fmt"
)

const (
	// Size is the length of a UUID in bytes.
	Size = 16

	// TextSize is the length of the canonical textual form.
	TextSize = 36

	// TextBufferSize is the length of a facility text buffer: the
	// canonical form followed by a NUL terminator.
	TextBufferSize = TextSize + 1
)

// UUID represents a Universally Unique Identifier as defined by RFC 4122.
// The UUID is an opaque 128-bit (16 byte) value. Being an array, a UUID is
// copied on assignment and compared byte-for-byte with ==.
type UUID [Size]byte

// Version represents the UUID version
type Version byte

const (
	_ Version = iota
	VersionTimeBased
	VersionDCESecurity
	VersionNameBasedMD5
	VersionRandom
	VersionNameBasedSHA1
)

// Variant represents the UUID variant
type Variant byte

const (
	VariantNCS Variant = iota
	VariantRFC4122
	VariantMicrosoft
	VariantFuture
)

// Nil is the nil UUID (all zeros). It is the zero value of UUID and serves
// as the uninitialized sentinel.
var Nil UUID

// Version returns the version bits of the UUID
func (u UUID) Version() Version {
	return Version(u[6] >> 4)
}

// Variant returns the variant of the UUID
func (u UUID) Variant() Variant {
	switch {
	case (u[8] & 0x80) == 0x00:
		return VariantNCS
	case (u[8] & 0xc0) == 0x80:
		return VariantRFC4122
	case (u[8] & 0xe0) == 0xc0:
		return VariantMicrosoft
	default:
		return VariantFuture
	}
}

// String returns the canonical lowercase representation of the UUID
// in the format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//
// String does not consult any facility; use Unparse for the facility's
// own rendering.
func (u UUID) String() string {
	var buf [TextSize]byte
	encodeHex(buf[:], u)
	return string(buf[:])
}

// GoString renders the UUID for diagnostics as UUID(<32 hex digits>).
// It backs the %#v verb.
func (u UUID) GoString() string {
	return "UUID(" + u.EncodeToHex() + ")"
}

// encodeHex encodes UUID to its canonical hex representation
func encodeHex(dst []byte, u UUID) {
	hex.Encode(dst[0:8], u[0:4])
	dst[8] = '-'
	hex.Encode(dst[9:13], u[4:6])
	dst[13] = '-'
	hex.Encode(dst[14:18], u[6:8])
	dst[18] = '-'
	hex.Encode(dst[19:23], u[8:10])
	dst[23] = '-'
	hex.Encode(dst[24:36], u[10:16])
}

// MustParse is like Parse but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables.
func MustParse(s string) UUID {
	uuid, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("sysuuid: Parse(%q): %v", s, err))
	}
	return uuid
}

// Bytes returns a copy of the UUID as a byte slice. The copy relies on the
// value receiver; a pointer receiver would alias the caller's array.
func (u UUID) Bytes() []byte {
	return u[:]
}

// Clone returns an independent copy of u.
func (u UUID) Clone() UUID {
	var c UUID
	copy(c[:], u[:])
	return c
}

// IsNil returns true if the UUID is the nil UUID (all zeros)
func (u UUID) IsNil() bool {
	return u == Nil
}

// MarshalText implements the encoding.TextMarshaler interface
func (u UUID) MarshalText() ([]byte, error) {
	var buf [TextSize]byte
	encodeHex(buf[:], u)
	return buf[:], nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface
func (u *UUID) UnmarshalText(data []byte) error {
	id, err := Parse(string(data))
	if err != nil {
		return err
	}
	*u = id
	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface
func (u UUID) MarshalBinary() ([]byte, error) {
	return u[:], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface
func (u *UUID) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return ErrInvalidLength
	}
	copy(u[:], data)
	return nil
}

// Compare returns an integer comparing two UUIDs lexicographically.
// The result will be 0 if u==other, -1 if u < other, and +1 if u > other.
func (u UUID) Compare(other UUID) int {
	for i := 0; i < Size; i++ {
		if u[i] < other[i] {
			return -1
		}
		if u[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Equal returns true if u and other hold the same 16 bytes
func (u UUID) Equal(other UUID) bool {
	return u == other
}
