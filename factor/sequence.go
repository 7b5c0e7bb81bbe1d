package factor

import (
	"go.uber.org/zap"

	"github.com/wippyai/discipline/resource"
)

// DefaultGrowthStep is the fixed capacity increment for a Sequence.
const DefaultGrowthStep = 10

// Record is one entry of a factorization: a prime factor and how many
// times it divides the input. Immutable once appended.
type Record struct {
	Factor       uint64
	Multiplicity uint64
}

// Sequence is a growable composite owning record handles. Backing storage
// starts at the growth step and grows by the same fixed increment when
// full, not by doubling; slots beyond the used length are never exposed.
type Sequence struct {
	table   *resource.Table
	handles []resource.Handle
	step    int
	grows   int
}

// NewSequence creates an empty sequence with one step of capacity.
func NewSequence(tbl *resource.Table, step int) *Sequence {
	if step <= 0 {
		step = DefaultGrowthStep
	}
	return &Sequence{
		table:   tbl,
		handles: make([]resource.Handle, 0, step),
		step:    step,
	}
}

// Members implements resource.Aggregate.
func (s *Sequence) Members() []resource.Handle { return s.handles }

// Append takes ownership of a record handle, growing the backing storage
// by one step if it is full.
func (s *Sequence) Append(rec resource.Owned) {
	if len(s.handles) == cap(s.handles) {
		grown := make([]resource.Handle, len(s.handles), cap(s.handles)+s.step)
		copy(grown, s.handles)
		s.handles = grown
		s.grows++
		Logger().Debug("sequence grown",
			zap.Int("len", len(s.handles)),
			zap.Int("cap", cap(s.handles)))
	}
	s.handles = append(s.handles, rec.Handle())
}

// Trim shrinks the backing storage to the exact used length.
func (s *Sequence) Trim() {
	if cap(s.handles) == len(s.handles) {
		return
	}
	exact := make([]resource.Handle, len(s.handles))
	copy(exact, s.handles)
	s.handles = exact
}

// Len returns the number of records.
func (s *Sequence) Len() int { return len(s.handles) }

// Cap returns the current backing capacity.
func (s *Sequence) Cap() int { return cap(s.handles) }

// Grows returns how many capacity-growth events have happened.
func (s *Sequence) Grows() int { return s.grows }

// At returns a borrowed reference to record i.
func (s *Sequence) At(i int) resource.Ref {
	return s.table.Borrow(s.handles[i])
}

// Records copies out the record values in order.
func (s *Sequence) Records() []Record {
	out := make([]Record, 0, len(s.handles))
	for _, h := range s.handles {
		if v, ok := s.table.Borrow(h).Value(); ok {
			out = append(out, v.(Record))
		}
	}
	return out
}
