package scoped

import (
	"go.uber.org/zap"

	"github.com/wippyai/discipline/resource"
)

// Builder tracks the cleanups owed by a multi-step construction. Cleanups
// run in reverse registration order on unwind, or not at all once the
// construction commits.
//
// A Builder is inert after Commit or Unwind: further cleanups are neither
// registered nor run, so a release can never happen twice through it.
type Builder struct {
	cleanups []func()
	done     bool
}

// New creates an empty construction scope with nothing to release.
func New() *Builder {
	return &Builder{}
}

// Defer registers a cleanup to run if the construction fails.
func (b *Builder) Defer(fn func()) {
	if b.done {
		return
	}
	b.cleanups = append(b.cleanups, fn)
}

// Track registers an owned handle for release on unwind. Ownership moves
// to the builder until Commit hands it back.
func (b *Builder) Track(o resource.Owned) {
	b.Defer(func() {
		if err := o.Release(); err != nil {
			Logger().Warn("unwind release failed",
				zap.Uint32("handle", uint32(o.Handle())),
				zap.Error(err))
		}
	})
}

// Commit clears the bookkeeping without releasing anything. Ownership of
// everything tracked has transferred to the caller's result; it has moved,
// not vanished.
func (b *Builder) Commit() {
	b.cleanups = nil
	b.done = true
}

// Unwind runs every registered cleanup in reverse order, exactly once.
// After Commit it is a no-op.
func (b *Builder) Unwind() {
	if b.done {
		return
	}
	b.done = true

	if n := len(b.cleanups); n > 0 {
		Logger().Debug("unwinding construction", zap.Int("cleanups", n))
	}
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		b.cleanups[i]()
	}
	b.cleanups = nil
}

// Run executes fn inside a construction scope. If fn returns an error or
// panics, everything registered on the builder is released before the
// failure propagates, and no partial result is observable. If fn returns
// nil the scope commits: ownership of the built result stays with whatever
// fn assigned it to, and nothing is released.
func Run(fn func(b *Builder) error) error {
	b := New()
	defer b.Unwind()

	if err := fn(b); err != nil {
		return err
	}
	b.Commit()
	return nil
}
