package sysuuid

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// systemFacility binds the Facility boundary to github.com/google/uuid.
type systemFacility struct {
	mu       sync.Mutex
	lastTime uuid.Time // highest version 1 timestamp handed out
}

// primeOnce seeds the clock sequence and node identifier of google/uuid.
// Both are drawn from the random source on first use, so seeding them up
// front keeps time-based generation working if entropy fails later.
var primeOnce sync.Once

// NewSystemFacility returns the production Facility. Version 1 values use
// the host's hardware address as node identifier when one exists, or the
// identifier installed with SetNodeID.
func NewSystemFacility() Facility {
	primeOnce.Do(prime)
	return &systemFacility{}
}

func prime() {
	// a failure here resurfaces through guard on the first time-based call
	defer func() { _ = recover() }()
	uuid.ClockSequence()
	uuid.NodeID()
}

// Generate prefers random generation and falls back to the time-based
// algorithm when the entropy source fails.
func (f *systemFacility) Generate(out *[Size]byte) {
	if id, err := uuid.NewRandom(); err == nil {
		*out = [Size]byte(id)
		return
	}
	f.generateTime(out)
}

func (f *systemFacility) GenerateRandom(out *[Size]byte) {
	id, err := uuid.NewRandom()
	if err != nil {
		unavailable(err)
	}
	*out = [Size]byte(id)
}

func (f *systemFacility) GenerateTime(out *[Size]byte) {
	f.generateTime(out)
}

// GenerateTimeSafe reports reduced confidence when the node identifier is
// random or the clock went backwards since the previous time-based value.
func (f *systemFacility) GenerateTimeSafe(out *[Size]byte) int {
	regressed := f.generateTime(out)
	if regressed || !stableNode() {
		return -1
	}
	return 0
}

// generateTime holds mu across generation so timestamps are observed in the
// order they were issued.
func (f *systemFacility) generateTime(out *[Size]byte) (regressed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer guard()

	id, err := uuid.NewUUID()
	if err != nil {
		unavailable(err)
	}
	t := id.Time()
	if t < f.lastTime {
		regressed = true
	} else {
		f.lastTime = t
	}
	*out = [Size]byte(id)
	return regressed
}

func (f *systemFacility) Parse(in []byte, out *[Size]byte) int {
	if n := bytes.IndexByte(in, 0); n >= 0 {
		in = in[:n]
	}
	id, err := uuid.ParseBytes(in)
	if err != nil {
		return -1
	}
	*out = [Size]byte(id)
	return 0
}

func (f *systemFacility) Unparse(in *[Size]byte, out *[TextBufferSize]byte, c Case) {
	text := uuid.UUID(*in).String()
	n := copy(out[:], text)
	if c == CaseUpper {
		for i := 0; i < n; i++ {
			if b := out[i]; b >= 'a' && b <= 'f' {
				out[i] = b - ('a' - 'A')
			}
		}
	}
	out[n] = 0
}

// stableNode reports whether version 1 values carry a node identifier that
// was not made up at random.
func stableNode() bool {
	switch uuid.NodeInterface() {
	case "", "random":
		return false
	}
	return true
}

func unavailable(err error) {
	panic(fmt.Errorf("%w: %v", ErrFacilityUnavailable, err))
}

// guard converts a panic raised inside google/uuid, which panics with a
// plain string when its random source fails, into one wrapping
// ErrFacilityUnavailable. It must be deferred directly.
func guard() {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(error); ok && errors.Is(err, ErrFacilityUnavailable) {
		panic(err)
	}
	unavailable(fmt.Errorf("%v", r))
}

// SetNodeID installs the 6-byte node identifier used by time-based
// generation of the system facility. It returns false if id is shorter
// than 6 bytes.
func SetNodeID(id []byte) bool {
	return uuid.SetNodeID(id)
}

// NodeID returns the node identifier used by time-based generation of the
// system facility.
func NodeID() []byte {
	return uuid.NodeID()
}
