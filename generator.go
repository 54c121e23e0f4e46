package sysuuid

// Generator performs UUID operations through a Facility. The zero value is
// not usable; create one with NewGenerator.
type Generator struct {
	facility Facility
}

// Option configures a Generator
type Option func(g *Generator)

// WithFacility binds the generator to f instead of the system facility.
// This is primarily useful for testing with deterministic facilities.
func WithFacility(f Facility) Option {
	return func(g *Generator) {
		g.facility = f
	}
}

// NewGenerator creates a generator bound to the system facility unless an
// option says otherwise.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.facility == nil {
		g.facility = NewSystemFacility()
	}
	return g
}

// Generate returns a UUID produced by the facility's default algorithm.
func (g *Generator) Generate() UUID {
	var out [Size]byte
	g.facility.Generate(&out)
	return UUID(out)
}

// GenerateRandom returns a random (version 4) UUID.
func (g *Generator) GenerateRandom() UUID {
	var out [Size]byte
	g.facility.GenerateRandom(&out)
	return UUID(out)
}

// GenerateTime returns a time-based (version 1) UUID.
func (g *Generator) GenerateTime() UUID {
	var out [Size]byte
	g.facility.GenerateTime(&out)
	return UUID(out)
}

// GenerateTimeSafe returns a time-based UUID and whether the facility could
// guarantee its uniqueness. A false result is not an error: the UUID is
// valid, but callers wanting strong guarantees may fall back to
// GenerateRandom.
func (g *Generator) GenerateTimeSafe() (UUID, bool) {
	var out [Size]byte
	res := g.facility.GenerateTimeSafe(&out)
	return UUID(out), res == 0
}

// Parse decodes s into a UUID. Any input the facility rejects, and any
// input holding a NUL byte, yields ErrInvalidFormat.
func (g *Generator) Parse(s string) (UUID, error) {
	var out [Size]byte
	in, ok := cString(s)
	if !ok {
		return Nil, ErrInvalidFormat
	}
	if g.facility.Parse(in, &out) != 0 {
		return Nil, ErrInvalidFormat
	}
	return UUID(out), nil
}

// Unparse renders u in canonical form using the facility's default case.
func (g *Generator) Unparse(u UUID) string {
	return g.unparse(u, CaseDefault)
}

// UnparseLower renders u in canonical form with lowercase hex digits.
func (g *Generator) UnparseLower(u UUID) string {
	return g.unparse(u, CaseLower)
}

// UnparseUpper renders u in canonical form with uppercase hex digits.
func (g *Generator) UnparseUpper(u UUID) string {
	return g.unparse(u, CaseUpper)
}

func (g *Generator) unparse(u UUID, c Case) string {
	var out [TextBufferSize]byte
	in := [Size]byte(u)
	g.facility.Unparse(&in, &out, c)
	return goString(&out)
}

// defaultGenerator is the package-level generator used by the top-level
// functions
var defaultGenerator = NewGenerator()

// Generate returns a UUID from the system facility's default algorithm.
func Generate() UUID {
	return defaultGenerator.Generate()
}

// GenerateRandom returns a random (version 4) UUID.
func GenerateRandom() UUID {
	return defaultGenerator.GenerateRandom()
}

// GenerateTime returns a time-based (version 1) UUID.
func GenerateTime() UUID {
	return defaultGenerator.GenerateTime()
}

// GenerateTimeSafe returns a time-based UUID and whether its uniqueness is
// guaranteed.
func GenerateTimeSafe() (UUID, bool) {
	return defaultGenerator.GenerateTimeSafe()
}

// Parse parses a UUID from its string representation.
// It accepts the following formats:
//   - xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (canonical)
//   - urn:uuid:xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
//   - {xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx}
//   - xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx (without hyphens)
func Parse(s string) (UUID, error) {
	return defaultGenerator.Parse(s)
}

// Unparse renders u in canonical form (lowercase).
func Unparse(u UUID) string {
	return defaultGenerator.Unparse(u)
}

// UnparseLower renders u in canonical form with lowercase hex digits.
func UnparseLower(u UUID) string {
	return defaultGenerator.UnparseLower(u)
}

// UnparseUpper renders u in canonical form with uppercase hex digits.
func UnparseUpper(u UUID) string {
	return defaultGenerator.UnparseUpper(u)
}
