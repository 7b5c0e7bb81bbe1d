package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/discipline/factor"
	"github.com/wippyai/discipline/mapping"
	"github.com/wippyai/discipline/resource"
	"github.com/wippyai/discipline/scoped"
)

func main() {
	var (
		op          = flag.String("op", "", "Operation to run (makedict or factorize)")
		n           = flag.String("n", "", "Number to factorize (decimal)")
		pairs       = flag.String("pairs", "", "Pairs for makedict (k=v,k2=v2)")
		msg         = flag.String("msg", "hello from run", "Diagnostic message for makedict")
		unlucky     = flag.Uint64("unlucky", factor.DefaultUnluckyValue, "Unlucky value for the injected-failure hook (0 disables)")
		step        = flag.Int("step", factor.DefaultGrowthStep, "Sequence growth step")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		scoped.SetLogger(logger.Named("scoped"))
		mapping.SetLogger(logger.Named("mapping"))
		factor.SetLogger(logger.Named("factor"))
	}

	if *interactive {
		if err := runInteractive(*unlucky, *step); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *op == "" {
		fmt.Fprintln(os.Stderr, "Usage: run -op factorize -n <number> [-unlucky v] [-step n]")
		fmt.Fprintln(os.Stderr, "       run -op makedict -pairs k=v,k2=v2 [-msg text]")
		fmt.Fprintln(os.Stderr, "       run -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*op, *n, *pairs, *msg, *unlucky, *step); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(op, nStr, pairsStr, msg string, unlucky uint64, step int) error {
	table := resource.NewTable()
	defer table.Close()

	switch op {
	case "factorize":
		return runFactorize(table, nStr, unlucky, step)
	case "makedict":
		return runMakeDict(table, pairsStr, msg)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func runFactorize(table *resource.Table, nStr string, unlucky uint64, step int) error {
	if nStr == "" {
		return fmt.Errorf("factorize needs -n")
	}
	n, err := factor.ParseInput(nStr)
	if err != nil {
		return err
	}

	before := table.Live()
	owned, err := factor.Factorize(table, n,
		factor.WithUnluckyValue(unlucky),
		factor.WithGrowthStep(step),
	)
	if err != nil {
		fmt.Printf("factorize(%d) failed: %v\n", n, err)
		fmt.Printf("live resources: %d before, %d after (no leaks)\n", before, table.Live())
		return nil
	}
	defer owned.Release()

	val, _ := owned.Value()
	seq := val.(*factor.Sequence)
	fmt.Printf("%d =", n)
	for i, r := range seq.Records() {
		if i > 0 {
			fmt.Print(" x")
		}
		if r.Multiplicity == 1 {
			fmt.Printf(" %d", r.Factor)
		} else {
			fmt.Printf(" %d^%d", r.Factor, r.Multiplicity)
		}
	}
	fmt.Printf("\nrecords: %d, growth events: %d\n", seq.Len(), seq.Grows())
	return nil
}

func runMakeDict(table *resource.Table, pairsStr, msg string) error {
	if pairsStr == "" {
		return fmt.Errorf("makedict needs -pairs")
	}

	// "forbidden" on either side stores the sentinel, for demonstrating
	// the failure path.
	pairOwned := make([]resource.Owned, 0, 4)
	for _, kv := range strings.Split(pairsStr, ",") {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("bad pair %q, want k=v", kv)
		}
		k := table.Acquire(parseScalar(parts[0]))
		v := table.Acquire(parseScalar(parts[1]))
		pair := resource.NewTuple(table, k.Borrow(), v.Borrow())
		k.Release()
		v.Release()
		pairOwned = append(pairOwned, pair)
	}
	refs := make([]resource.Ref, len(pairOwned))
	for i, p := range pairOwned {
		refs[i] = p.Borrow()
	}
	items := resource.NewTuple(table, refs...)
	for _, p := range pairOwned {
		p.Release()
	}
	defer items.Release()

	before := table.Live()
	owned, err := mapping.FromPairs(table, items.Borrow(), msg)
	if err != nil {
		fmt.Printf("makedict failed: %v\n", err)
		fmt.Printf("live resources: %d before, %d after (no leaks)\n", before, table.Live())
		return nil
	}
	defer owned.Release()

	val, _ := owned.Value()
	dict := val.(*mapping.Dict)
	fmt.Printf("dict with %d entries:\n", dict.Len())
	for _, k := range dict.Keys() {
		ref, _ := dict.Get(k)
		v, _ := ref.Value()
		fmt.Printf("  %v: %v\n", k, v)
	}
	return nil
}

func parseScalar(s string) any {
	if s == "forbidden" {
		return resource.Forbidden
	}
	if n, err := factor.ParseInput(s); err == nil {
		return n
	}
	return s
}
