// Package mapping builds key/value dicts from tuples of pairs, with the
// scoped release discipline on every failure path.
//
// FromPairs is the public operation:
//
//	items := ... // tuple of (key, value) 2-tuples in the table
//	dict, err := mapping.FromPairs(table, items.Borrow(), "hello")
//
// The input is validated lazily in order: items must be a tuple, each
// element must be a 2-tuple, and neither member may be the Forbidden
// sentinel. The first violation aborts with a typed error and releases
// the dict under construction together with everything already inserted,
// so a failed call leaves the table population exactly where it started.
package mapping
