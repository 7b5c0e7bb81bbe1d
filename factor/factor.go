package factor

import (
	"strconv"

	"github.com/wippyai/discipline/errors"
	"github.com/wippyai/discipline/resource"
	"github.com/wippyai/discipline/scoped"
)

// DefaultUnluckyValue is what the injected-failure hook trips on unless
// reconfigured. A discovered factor or multiplicity equal to it aborts the
// build; the hook exists to exercise the unwind path, not as domain logic.
const DefaultUnluckyValue = 5

type config struct {
	unlucky uint64
	step    int
}

// Option adjusts factorization behavior.
type Option func(*config)

// WithUnluckyValue retargets the injected-failure hook. Zero disables it.
func WithUnluckyValue(v uint64) Option {
	return func(c *config) { c.unlucky = v }
}

// WithGrowthStep overrides the sequence's fixed capacity increment.
func WithGrowthStep(n int) Option {
	return func(c *config) { c.step = n }
}

// Factorize computes the prime factorization of n by trial division and
// returns a handle owning a *Sequence of Record values in ascending factor
// order. n must be at least 2.
//
// Candidates are 2 and then the odd numbers. Once candidate² exceeds the
// undivided remainder, a remainder above 1 is itself prime and is recorded
// with multiplicity 1. No overflow checking is performed on candidate².
//
// On any failure the sequence and every record already stored are released
// as a unit and no result is observable.
func Factorize(tbl *resource.Table, n uint64, opts ...Option) (resource.Owned, error) {
	cfg := config{unlucky: DefaultUnluckyValue, step: DefaultGrowthStep}
	for _, opt := range opts {
		opt(&cfg)
	}

	if n < 2 {
		return resource.Owned{}, errors.OutOfRange(errors.OpFactorize, "cannot factorize one or zero", n)
	}

	var result resource.Owned
	err := scoped.Run(func(b *scoped.Builder) error {
		seq := NewSequence(tbl, cfg.step)
		shell := tbl.Acquire(seq)
		b.Track(shell)

		record := func(factor, multiplicity uint64) error {
			if cfg.unlucky != 0 && factor == cfg.unlucky {
				return errors.Injected(errors.OpFactorize, "factor", factor)
			}
			if cfg.unlucky != 0 && multiplicity == cfg.unlucky {
				return errors.Injected(errors.OpFactorize, "power", multiplicity)
			}
			seq.Append(tbl.Acquire(Record{Factor: factor, Multiplicity: multiplicity}))
			return nil
		}

		rem := n
		for factor := uint64(2); factor*factor <= rem; {
			if rem%factor == 0 {
				multiplicity := uint64(0)
				for rem%factor == 0 {
					rem /= factor
					multiplicity++
				}
				if err := record(factor, multiplicity); err != nil {
					return err
				}
			}
			if factor == 2 {
				factor++
			} else {
				factor += 2
			}
		}
		if rem > 1 {
			// The remainder is a prime larger than every tested candidate.
			if err := record(rem, 1); err != nil {
				return err
			}
		}

		seq.Trim()
		result = shell
		return nil
	})
	if err != nil {
		return resource.Owned{}, err
	}
	return result, nil
}

// ParseInput converts a decimal string to the integer Factorize expects.
// Values outside uint64 surface as a conversion error.
func ParseInput(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Conversion(errors.OpParse, s, err)
	}
	return v, nil
}
