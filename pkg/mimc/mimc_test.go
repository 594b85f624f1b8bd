package mimc

import (
	"testing"

	"github.com/zkmimc/proofengine/pkg/field"
)

func TestBuildTraceZeroZero(t *testing.T) {
	trace := BuildTrace(field.Zero, field.Zero)
	if len(trace) != Rounds+1 {
		t.Fatalf("trace length = %d, want %d", len(trace), Rounds+1)
	}
	// t_0 = 0, t_1 = (0+0+c_0)^3 = 0^3 = 0 since c_0 = 0.
	if !trace[0].IsZero() || !trace[1].IsZero() {
		t.Fatalf("t_0,t_1 = %s,%s, want 0,0", trace[0], trace[1])
	}
	// t_2 uses c_1 = 123456789 != 0, so t_2 must be nonzero.
	if trace[2].IsZero() {
		t.Fatalf("t_2 should be nonzero (c_1 != 0)")
	}
	want := field.FromInt64(123456789).Cube()
	if !trace[2].Equal(want) {
		t.Fatalf("t_2 = %s, want %s", trace[2], want)
	}
}

func TestTraceDeterministic(t *testing.T) {
	x := field.FromUint64(42)
	key := field.FromUint64(7)
	a := BuildTrace(x, key)
	b := BuildTrace(x, key)
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("trace not deterministic at index %d", i)
		}
	}
}

func TestHashAppliesClosingKeyAdd(t *testing.T) {
	x := field.FromUint64(11)
	key := field.FromUint64(5)
	trace := BuildTrace(x, key)
	h := Hash(x, key)
	want := trace[Rounds].Add(key)
	if !h.Equal(want) {
		t.Fatalf("Hash = %s, want trace[R]+key = %s", h, want)
	}
	if h.Equal(trace[Rounds]) && !key.IsZero() {
		t.Fatalf("Hash should differ from the trace's final state when key != 0")
	}
}

func TestTransitionMatchesBuildTrace(t *testing.T) {
	x := field.FromUint64(100)
	key := field.FromUint64(9)
	trace := BuildTrace(x, key)
	for i := 0; i < Rounds; i++ {
		got := Transition(trace[i], key, i)
		if !got.Equal(trace[i+1]) {
			t.Fatalf("Transition mismatch at round %d", i)
		}
	}
}
