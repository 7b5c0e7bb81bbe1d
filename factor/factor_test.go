package factor

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/discipline/errors"
	"github.com/wippyai/discipline/resource"
)

func mustFactorize(t *testing.T, tbl *resource.Table, n uint64, opts ...Option) (*Sequence, resource.Owned) {
	t.Helper()
	owned, err := Factorize(tbl, n, opts...)
	if err != nil {
		t.Fatalf("Factorize(%d) = %v", n, err)
	}
	val, ok := owned.Value()
	if !ok {
		t.Fatalf("Factorize(%d) returned a dead handle", n)
	}
	return val.(*Sequence), owned
}

func assertRecords(t *testing.T, seq *Sequence, want []Record) {
	t.Helper()
	got := seq.Records()
	if len(got) != len(want) {
		t.Fatalf("records = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFactorize_Simple(t *testing.T) {
	tbl := resource.NewTable()

	seq, owned := mustFactorize(t, tbl, 12)
	assertRecords(t, seq, []Record{{2, 2}, {3, 1}})
	owned.Release()

	seq, owned = mustFactorize(t, tbl, 2)
	assertRecords(t, seq, []Record{{2, 1}})
	owned.Release()

	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", tbl.Live())
	}
}

func TestFactorize_LargePrimeRemainder(t *testing.T) {
	tbl := resource.NewTable()

	// 97 is never reached as a candidate; it survives as the remainder and
	// is recorded with multiplicity 1.
	seq, owned := mustFactorize(t, tbl, 97)
	assertRecords(t, seq, []Record{{97, 1}})
	owned.Release()

	seq, owned = mustFactorize(t, tbl, 2*2*97)
	assertRecords(t, seq, []Record{{2, 2}, {97, 1}})
	owned.Release()
}

func TestFactorize_RangeCheck(t *testing.T) {
	tbl := resource.NewTable()

	for _, n := range []uint64{0, 1} {
		_, err := Factorize(tbl, n)
		if !stderrors.Is(err, &errors.Error{Op: errors.OpFactorize, Kind: errors.KindRange}) {
			t.Fatalf("Factorize(%d) = %v, want range error", n, err)
		}
	}
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", tbl.Live())
	}
}

func TestFactorize_UnluckyFactor(t *testing.T) {
	tbl := resource.NewTable()

	// 10 = 2 x 5; the 5 arrives as the prime remainder and trips the hook.
	_, err := Factorize(tbl, 10)
	var de *errors.Error
	if !stderrors.As(err, &de) || de.Kind != errors.KindInjected {
		t.Fatalf("Factorize(10) = %v, want injected error", err)
	}
	if de.Detail != "unlucky factor 5" {
		t.Fatalf("Detail = %q", de.Detail)
	}
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d after unwind, want 0", tbl.Live())
	}
}

func TestFactorize_UnluckyPower(t *testing.T) {
	tbl := resource.NewTable()

	// 32 = 2^5.
	_, err := Factorize(tbl, 32)
	var de *errors.Error
	if !stderrors.As(err, &de) || de.Kind != errors.KindInjected {
		t.Fatalf("Factorize(32) = %v, want injected error", err)
	}
	if de.Detail != "unlucky power 5" {
		t.Fatalf("Detail = %q", de.Detail)
	}
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d after unwind, want 0", tbl.Live())
	}
}

func TestFactorize_HookDisabled(t *testing.T) {
	tbl := resource.NewTable()

	seq, owned := mustFactorize(t, tbl, 10, WithUnluckyValue(0))
	assertRecords(t, seq, []Record{{2, 1}, {5, 1}})
	owned.Release()

	seq, owned = mustFactorize(t, tbl, 32, WithUnluckyValue(0))
	assertRecords(t, seq, []Record{{2, 5}})
	owned.Release()
}

func TestFactorize_HookRetargeted(t *testing.T) {
	tbl := resource.NewTable()

	_, err := Factorize(tbl, 21, WithUnluckyValue(7))
	var de *errors.Error
	if !stderrors.As(err, &de) || de.Detail != "unlucky factor 7" {
		t.Fatalf("Factorize(21, unlucky=7) = %v", err)
	}
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", tbl.Live())
	}
}

func TestFactorize_GrowthBoundary(t *testing.T) {
	tbl := resource.NewTable()

	// Product of twelve distinct primes, none equal to 5, so twelve
	// records cross the ten-slot starting capacity exactly once.
	const n = uint64(2) * 3 * 7 * 11 * 13 * 17 * 19 * 23 * 29 * 31 * 37 * 41

	seq, owned := mustFactorize(t, tbl, n)
	if seq.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", seq.Len())
	}
	if seq.Grows() != 1 {
		t.Fatalf("Grows() = %d, want 1", seq.Grows())
	}
	if seq.Cap() != seq.Len() {
		t.Fatalf("Cap() = %d after trim, want %d", seq.Cap(), seq.Len())
	}

	want := []Record{
		{2, 1}, {3, 1}, {7, 1}, {11, 1}, {13, 1}, {17, 1},
		{19, 1}, {23, 1}, {29, 1}, {31, 1}, {37, 1}, {41, 1},
	}
	assertRecords(t, seq, want)

	owned.Release()
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d, want 0", tbl.Live())
	}
}

func TestFactorize_CustomGrowthStep(t *testing.T) {
	tbl := resource.NewTable()

	// 2*3*7 = 42 has three factors; with a step of 2 the third append grows.
	seq, owned := mustFactorize(t, tbl, 42, WithGrowthStep(2))
	if seq.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", seq.Len())
	}
	if seq.Grows() != 1 {
		t.Fatalf("Grows() = %d, want 1", seq.Grows())
	}
	owned.Release()
}

type destroyAudit struct {
	destroyed map[resource.Handle]int
}

func (a *destroyAudit) OnResourceEvent(e resource.Event) {
	if e.Type == resource.EventDestroyed {
		a.destroyed[e.Handle]++
	}
}

func TestFactorize_UnwindReleasesRecordsExactlyOnce(t *testing.T) {
	tbl := resource.NewTable()
	audit := &destroyAudit{destroyed: make(map[resource.Handle]int)}
	tbl.Subscribe(audit)

	// 2 * 3 * 5 * 7: two records stored before the candidate 5 aborts.
	_, err := Factorize(tbl, 2*3*5*7)
	if err == nil {
		t.Fatal("expected injected failure")
	}
	if tbl.Live() != 0 {
		t.Fatalf("Live() = %d after unwind, want 0", tbl.Live())
	}
	// Sequence shell plus two records.
	if len(audit.destroyed) != 3 {
		t.Fatalf("destroyed %d entries, want 3", len(audit.destroyed))
	}
	for h, n := range audit.destroyed {
		if n != 1 {
			t.Errorf("handle %d destroyed %d times", h, n)
		}
	}
}

func TestFactorize_SequenceAccessors(t *testing.T) {
	tbl := resource.NewTable()

	seq, owned := mustFactorize(t, tbl, 12)
	if v, ok := seq.At(1).Value(); !ok || v.(Record) != (Record{3, 1}) {
		t.Fatalf("At(1) = %v, %v", v, ok)
	}
	owned.Release()
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"12", 12, false},
		{"18446744073709551615", 1<<64 - 1, false},
		{"18446744073709551616", 0, true}, // one past uint64
		{"-3", 0, true},
		{"twelve", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseInput(tt.in)
		if tt.wantErr {
			if !stderrors.Is(err, &errors.Error{Op: errors.OpParse, Kind: errors.KindConversion}) {
				t.Errorf("ParseInput(%q) = %v, want conversion error", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseInput(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}
