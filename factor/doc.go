// Package factor computes prime factorizations by trial division, with
// the scoped release discipline on every failure path.
//
//	owned, err := factor.Factorize(table, 12)
//	// → Records [(2,2), (3,1)]
//
// The output sequence is a composite resource: each (factor, multiplicity)
// record is itself a table entry owned by the sequence, and the backing
// storage grows by a fixed increment rather than doubling. Any failure,
// including one in the middle of a growth event, releases the sequence and
// every record stored so far as a unit.
//
// The "unlucky 5" hook injects failures when a discovered factor or
// multiplicity equals five. It exists so the unwind path stays exercised;
// disable or retarget it with WithUnluckyValue.
package factor
