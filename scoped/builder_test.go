package scoped

import (
	"errors"
	"testing"

	"github.com/wippyai/discipline/resource"
)

func TestRun_CommitReleasesNothing(t *testing.T) {
	table := resource.NewTable()

	var result resource.Owned
	err := Run(func(b *Builder) error {
		o := table.Acquire("kept")
		b.Track(o)
		result = o
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if !result.Valid() {
		t.Fatal("committed result must stay live")
	}
	if table.Live() != 1 {
		t.Fatalf("Live() = %d, want 1", table.Live())
	}
	result.Release()
}

func TestRun_FailureUnwindsEverything(t *testing.T) {
	table := resource.NewTable()
	boom := errors.New("step 3 failed")

	err := Run(func(b *Builder) error {
		b.Track(table.Acquire("one"))
		b.Track(table.Acquire("two"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() = %v, want %v", err, boom)
	}

	if table.Live() != 0 {
		t.Fatalf("Live() = %d after unwind, want 0", table.Live())
	}
}

func TestRun_PanicUnwindsEverything(t *testing.T) {
	table := resource.NewTable()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = Run(func(b *Builder) error {
			b.Track(table.Acquire("doomed"))
			panic("mid-construction")
		})
	}()

	if table.Live() != 0 {
		t.Fatalf("Live() = %d after panic, want 0", table.Live())
	}
}

func TestBuilder_UnwindReverseOrder(t *testing.T) {
	var order []int
	b := New()
	for i := 1; i <= 3; i++ {
		b.Defer(func() { order = append(order, i) })
	}
	b.Unwind()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Fatalf("unwind order = %v, want [3 2 1]", order)
	}
}

func TestBuilder_UnwindRunsOnce(t *testing.T) {
	runs := 0
	b := New()
	b.Defer(func() { runs++ })

	b.Unwind()
	b.Unwind()
	if runs != 1 {
		t.Fatalf("cleanup ran %d times, want 1", runs)
	}
}

func TestBuilder_CommitDisarmsUnwind(t *testing.T) {
	runs := 0
	b := New()
	b.Defer(func() { runs++ })

	b.Commit()
	b.Unwind()
	if runs != 0 {
		t.Fatalf("cleanup ran %d times after commit, want 0", runs)
	}
}

func TestBuilder_InertAfterDone(t *testing.T) {
	runs := 0
	b := New()
	b.Unwind()
	b.Defer(func() { runs++ })
	b.Unwind()
	if runs != 0 {
		t.Fatal("cleanup registered after unwind must not run")
	}
}

func TestBuilder_TrackToleratesTransferredOwnership(t *testing.T) {
	table := resource.NewTable()

	// A step releases its handle itself before failing; the builder's
	// unwind must not turn that into a double release.
	err := Run(func(b *Builder) error {
		o := table.Acquire("moved")
		b.Track(o)
		o.Release()
		return errors.New("late failure")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if table.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", table.Live())
	}
}
