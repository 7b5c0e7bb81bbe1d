package mapping

import (
	"go.uber.org/zap"

	"github.com/wippyai/discipline/errors"
	"github.com/wippyai/discipline/resource"
	"github.com/wippyai/discipline/scoped"
)

// FromPairs builds a dict from an ordered tuple of 2-tuples.
//
// items must hold a resource.Tuple whose every element is itself a
// 2-element tuple; neither member of a pair may be the Forbidden sentinel.
// Validation is lazy, one element at a time in sequence order, and the
// first violation aborts. Duplicate keys overwrite (last-write-wins).
//
// On success the returned handle owns the dict and, transitively, every
// key and value stored in it. On failure no mapping is returned and
// everything inserted so far, including the dict shell, has been released.
func FromPairs(tbl *resource.Table, items resource.Ref, msg string) (resource.Owned, error) {
	// The diagnostic line precedes validation and is never rolled back.
	Logger().Info("makedict says", zap.String("msg", msg))

	var result resource.Owned
	err := scoped.Run(func(b *scoped.Builder) error {
		itemsVal, ok := items.Value()
		if !ok {
			return errors.Shape(errors.OpMakeDict, "expecting a tuple")
		}
		seq, ok := itemsVal.(resource.Tuple)
		if !ok {
			return errors.Shape(errors.OpMakeDict, "expecting a tuple")
		}

		dict := NewDict(tbl)
		shell := tbl.Acquire(dict)
		b.Track(shell)

		for i := range seq {
			elemVal, ok := seq.Elem(tbl, i).Value()
			if !ok {
				return errors.Shape(errors.OpMakeDict, "expecting a 2-tuple")
			}
			pair, ok := elemVal.(resource.Tuple)
			if !ok || len(pair) != 2 {
				return errors.Shape(errors.OpMakeDict, "expecting a 2-tuple")
			}

			first := pair.Elem(tbl, 0)
			second := pair.Elem(tbl, 1)
			fv, _ := first.Value()
			sv, _ := second.Value()
			if fv == resource.Forbidden || sv == resource.Forbidden {
				return errors.ForbiddenValue(errors.OpMakeDict)
			}

			if err := dict.Set(first, second); err != nil {
				return err
			}
		}

		result = shell
		return nil
	})
	if err != nil {
		return resource.Owned{}, err
	}
	return result, nil
}
