package sysuuid

// Case selects the letter case of hex digits produced by Facility.Unparse.
type Case int

const (
	// CaseDefault leaves the choice to the facility.
	CaseDefault Case = iota
	CaseLower
	CaseUpper
)

// Facility is the boundary to the routines that actually generate, parse and
// format UUIDs. Buffers are fixed size; text crossing the boundary is
// NUL-terminated.
//
// Implementations must be safe for concurrent use.
type Facility interface {
	// Generate fills out with a UUID using the facility's default algorithm.
	Generate(out *[Size]byte)
	// GenerateRandom fills out with a random (version 4) UUID.
	GenerateRandom(out *[Size]byte)
	// GenerateTime fills out with a time-based (version 1) UUID.
	GenerateTime(out *[Size]byte)
	// GenerateTimeSafe fills out with a time-based UUID and returns 0 when
	// uniqueness is guaranteed, non-zero otherwise.
	GenerateTimeSafe(out *[Size]byte) int
	// Parse decodes the NUL-terminated text in into out. It returns 0 on
	// success and non-zero on malformed input.
	Parse(in []byte, out *[Size]byte) int
	// Unparse writes the NUL-terminated canonical form of in to out.
	Unparse(in *[Size]byte, out *[TextBufferSize]byte, c Case)
}
