// Package uuidtest provides a deterministic sysuuid.Facility for tests.
package uuidtest

import (
	"bytes"
	"encoding/binary"
	"strings"
	"sync"

	"github.com/Lzww0608/sysuuid"
)

var _ sysuuid.Facility = (*Facility)(nil)

// Facility produces predictable UUIDs from a counter. Bytes 0-7 hold the
// seed and bytes 8-15 the counter, with version and variant bits applied
// on top, so consecutive values differ and sort in issue order.
//
// Parse accepts the canonical 36 character form only.
type Facility struct {
	// SafeResult is returned by GenerateTimeSafe.
	SafeResult int

	mu      sync.Mutex
	seed    uint64
	counter uint64
	calls   map[string]int
}

// NewFacility returns a Facility whose values are derived from seed.
func NewFacility(seed uint64) *Facility {
	return &Facility{seed: seed, calls: make(map[string]int)}
}

// Calls returns how many times the named method was invoked.
func (f *Facility) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *Facility) next(method string, version byte, out *[sysuuid.Size]byte) {
	f.mu.Lock()
	f.counter++
	f.calls[method]++
	counter := f.counter
	f.mu.Unlock()

	binary.BigEndian.PutUint64(out[0:8], f.seed)
	binary.BigEndian.PutUint64(out[8:16], counter)
	out[6] = (out[6] & 0x0f) | version<<4
	out[8] = (out[8] & 0x3f) | 0x80
}

func (f *Facility) Generate(out *[sysuuid.Size]byte) {
	f.next("Generate", 4, out)
}

func (f *Facility) GenerateRandom(out *[sysuuid.Size]byte) {
	f.next("GenerateRandom", 4, out)
}

func (f *Facility) GenerateTime(out *[sysuuid.Size]byte) {
	f.next("GenerateTime", 1, out)
}

func (f *Facility) GenerateTimeSafe(out *[sysuuid.Size]byte) int {
	f.next("GenerateTimeSafe", 1, out)
	return f.SafeResult
}

func (f *Facility) Parse(in []byte, out *[sysuuid.Size]byte) int {
	f.mu.Lock()
	f.calls["Parse"]++
	f.mu.Unlock()

	if n := bytes.IndexByte(in, 0); n >= 0 {
		in = in[:n]
	}
	if len(in) != sysuuid.TextSize {
		return -1
	}
	for _, i := range []int{8, 13, 18, 23} {
		if in[i] != '-' {
			return -1
		}
	}
	id, err := sysuuid.DecodeFromHex(strings.ReplaceAll(string(in), "-", ""))
	if err != nil {
		return -1
	}
	*out = [sysuuid.Size]byte(id)
	return 0
}

// Unparse renders uppercase for CaseUpper and lowercase otherwise.
func (f *Facility) Unparse(in *[sysuuid.Size]byte, out *[sysuuid.TextBufferSize]byte, c sysuuid.Case) {
	f.mu.Lock()
	f.calls["Unparse"]++
	f.mu.Unlock()

	text := sysuuid.UUID(*in).String()
	if c == sysuuid.CaseUpper {
		text = strings.ToUpper(text)
	}
	n := copy(out[:], text)
	out[n] = 0
}
