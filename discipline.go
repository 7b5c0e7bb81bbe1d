package discipline

import (
	"github.com/wippyai/discipline/factor"
	"github.com/wippyai/discipline/mapping"
	"github.com/wippyai/discipline/resource"
)

// String constants exported alongside the operations.
const (
	ONE = "one"
	TWO = "two"
)

// Forbidden is the sentinel MakeDict refuses to store.
var Forbidden = resource.Forbidden

// MakeDict builds a dictionary from a tuple of (key, value) pairs.
// Fails with a typed error if any key or value is Forbidden.
func MakeDict(tbl *resource.Table, items resource.Ref, msg string) (resource.Owned, error) {
	return mapping.FromPairs(tbl, items, msg)
}

// Factorize computes the prime factorization of n by trial division.
func Factorize(tbl *resource.Table, n uint64, opts ...factor.Option) (resource.Owned, error) {
	return factor.Factorize(tbl, n, opts...)
}
