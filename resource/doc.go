// Package resource provides a reference-counted handle table and the
// owned/borrowed reference types built on it.
//
// Resources are opaque handles to host-side values whose lifetime must be
// managed explicitly. Every acquired entry carries a reference count; the
// entry is destroyed when the count reaches zero.
//
// # Ownership
//
// The two reference types make ownership visible to the compiler:
//
//	Owned - the holder must release it exactly once
//	Ref   - a borrowed view with no release operation
//
// Acquiring, retaining, borrowing:
//
//	table := resource.NewTable()
//
//	// Store a value, get an owned handle (count = 1)
//	owned := table.Acquire("hello")
//
//	// Lend it out without giving up ownership
//	ref := owned.Borrow()
//
//	// A borrower that wants to keep the value mints its own reference
//	kept, ok := ref.Retain()
//
//	// Each owner releases exactly once
//	owned.Release()
//	kept.Release()
//
// Releasing an Owned twice returns ErrReleased rather than corrupting the
// count. A Ref cannot be released at all; that mistake does not compile.
//
// # Aggregates
//
// Values that implement Aggregate own references to other handles. When an
// aggregate entry is destroyed, one reference to every member is released,
// so a composite and its contents go away as a unit. Tuple is the built-in
// aggregate; the mapping and factor packages add their own.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(counter)
//
// Observers see EventAcquired, EventRetained, EventReleased and
// EventDestroyed. Counting acquisitions against destructions is how the
// tests verify that every failure path releases exactly once.
//
// # Memory management
//
// Entries are not garbage collected. Callers release what they acquire, or
// hand the obligation to a scoped.Builder. For pooled use, Close destroys
// all remaining entries.
package resource
