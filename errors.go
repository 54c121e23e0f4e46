package sysuuid

import "errors"

var (
	// ErrInvalidFormat indicates that the text could not be decoded into a UUID
	ErrInvalidFormat = errors.New("sysuuid: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("sysuuid: invalid UUID length (expected 16 bytes)")

	// ErrFacilityUnavailable is wrapped into the panic raised when the
	// underlying UUID facility cannot produce a value at all.
	ErrFacilityUnavailable = errors.New("sysuuid: UUID facility unavailable")
)
