package stats

import (
	"math/rand"
	"testing"
	"time"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Defined {
		t.Error("empty input produced a Defined summary")
	}
	if s.Neval != 0 {
		t.Errorf("Neval = %d, want 0", s.Neval)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]time.Duration{3 * time.Millisecond})
	if !s.Defined {
		t.Fatal("summary not Defined")
	}
	for _, d := range []time.Duration{s.Min, s.LQ, s.Mean, s.Median, s.UQ, s.Max} {
		if d != 3*time.Millisecond {
			t.Errorf("statistic = %v, want 3ms", d)
		}
	}
	if s.Neval != 1 {
		t.Errorf("Neval = %d, want 1", s.Neval)
	}
}

func TestSummarizeKnownValues(t *testing.T) {
	s := Summarize([]time.Duration{
		2 * time.Millisecond,
		1 * time.Millisecond,
		3 * time.Millisecond,
	})
	if s.Min != 1*time.Millisecond {
		t.Errorf("Min = %v, want 1ms", s.Min)
	}
	if s.Median != 2*time.Millisecond {
		t.Errorf("Median = %v, want 2ms", s.Median)
	}
	if s.Max != 3*time.Millisecond {
		t.Errorf("Max = %v, want 3ms", s.Max)
	}
	if s.Mean != 2*time.Millisecond {
		t.Errorf("Mean = %v, want 2ms", s.Mean)
	}
}

func TestOrderingInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rnd.Intn(200)
		durs := make([]time.Duration, n)
		for i := range durs {
			durs[i] = time.Duration(rnd.Int63n(int64(time.Second)))
		}
		s := Summarize(durs)
		if !(s.Min <= s.LQ && s.LQ <= s.Median && s.Median <= s.UQ && s.UQ <= s.Max) {
			t.Fatalf("ordering violated for n=%d: %+v", n, s)
		}
	}
}

func TestSummarizeIsPure(t *testing.T) {
	durs := []time.Duration{5, 1, 4, 2, 3}
	orig := make([]time.Duration, len(durs))
	copy(orig, durs)

	s1 := Summarize(durs)
	s2 := Summarize(durs)
	if s1 != s2 {
		t.Errorf("two calls disagree: %+v vs %+v", s1, s2)
	}
	for i := range durs {
		if durs[i] != orig[i] {
			t.Fatal("Summarize mutated its input")
		}
	}
}
