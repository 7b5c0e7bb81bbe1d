// Package discipline demonstrates a protocol for building composite
// results out of multiple fallible acquisition steps without leaking or
// double-releasing a single resource.
//
// Every handle acquired during a construction ends up in exactly one of
// two places: owned by the returned result, or released on the unwind
// path. Never both, never neither. The two operations here, a mapping
// builder and an integer factorizer, are deliberately simple carriers for
// that protocol.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	discipline/          Root package re-exporting the two operations
//	├── resource/        Reference-counted handle table, Owned/Ref types
//	├── scoped/          Release-on-every-exit-path construction scopes
//	├── mapping/         Dict built from tuples of (key, value) pairs
//	├── factor/          Trial-division factorization with growable output
//	└── errors/          Structured error types with an Op/Kind taxonomy
//
// # Quick Start
//
// Factorize a number and read the records:
//
//	table := resource.NewTable()
//	defer table.Close()
//
//	owned, err := discipline.Factorize(table, 12)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer owned.Release()
//
//	val, _ := owned.Value()
//	for _, r := range val.(*factor.Sequence).Records() {
//	    fmt.Printf("%d^%d\n", r.Factor, r.Multiplicity)
//	}
//
// Build a dict from pairs:
//
//	one := table.Acquire("one")
//	v1 := table.Acquire(1)
//	pair := resource.NewTuple(table, one.Borrow(), v1.Borrow())
//	one.Release()
//	v1.Release()
//
//	items := resource.NewTuple(table, pair.Borrow())
//	pair.Release()
//
//	dict, err := discipline.MakeDict(table, items.Borrow(), "hello")
//
// # Failure Discipline
//
// Operations fail fast with a typed *errors.Error and release everything
// acquired up to that point, in reverse order, exactly once. The table's
// live-entry count after a failed call equals the count before it; the
// resource package's observer events make that checkable. Factorize ships
// with an injected "unlucky 5" failure hook precisely so the unwind path
// stays exercised.
package discipline
