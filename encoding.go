package sysuuid

import (
	"encoding/hex"
)

// EncodeToHex encodes the UUID as 32 lowercase hex digits without hyphens
func (u UUID) EncodeToHex() string {
	return hex.EncodeToString(u[:])
}

// DecodeFromHex decodes 32 hex digits into a UUID
func DecodeFromHex(s string) (UUID, error) {
	var uuid UUID
	if len(s) != 2*Size {
		return uuid, ErrInvalidFormat
	}
	if _, err := hex.Decode(uuid[:], []byte(s)); err != nil {
		return uuid, ErrInvalidFormat
	}
	return uuid, nil
}

// FromBytes creates a UUID from a byte slice
func FromBytes(b []byte) (UUID, error) {
	var uuid UUID
	if len(b) != Size {
		return uuid, ErrInvalidLength
	}
	copy(uuid[:], b)
	return uuid, nil
}

// MustFromBytes is like FromBytes but panics on error
func MustFromBytes(b []byte) UUID {
	uuid, err := FromBytes(b)
	if err != nil {
		panic(err)
	}
	return uuid
}
