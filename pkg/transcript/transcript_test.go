package transcript

import (
	"testing"

	"github.com/zkmimc/proofengine/pkg/field"
)

func TestSampleIndicesDeterministic(t *testing.T) {
	root := field.FromUint64(123456).String()
	a, err := SampleIndices(root, 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	b, err := SampleIndices(root, 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	if len(a) != 5 {
		t.Fatalf("got %d indices, want 5", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sampler not deterministic: %v != %v", a, b)
		}
	}
}

func TestSampleIndicesDistinctAndInRange(t *testing.T) {
	root := field.FromUint64(987654321).String()
	indices, err := SampleIndices(root, 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	seen := make(map[int]bool)
	for _, idx := range indices {
		if idx < 0 || idx >= 64 {
			t.Fatalf("index %d out of domain [0,64)", idx)
		}
		if seen[idx] {
			t.Fatalf("duplicate index %d", idx)
		}
		seen[idx] = true
	}
}

func TestSampleIndicesSorted(t *testing.T) {
	root := field.FromUint64(42).String()
	indices, err := SampleIndices(root, 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("indices not strictly ascending: %v", indices)
		}
	}
}

func TestSampleIndicesVariesWithRoot(t *testing.T) {
	a, err := SampleIndices(field.FromUint64(1).String(), 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	b, err := SampleIndices(field.FromUint64(2).String(), 5, 64)
	if err != nil {
		t.Fatalf("SampleIndices failed: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Fatalf("different roots sampled identical index sets (suspicious)")
	}
}

func TestSampleNonZeroIndicesExcludesZero(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		root := field.FromUint64(seed).String()
		indices, err := SampleNonZeroIndices(root, 5, 64)
		if err != nil {
			t.Fatalf("SampleNonZeroIndices failed: %v", err)
		}
		for _, idx := range indices {
			if idx == 0 {
				t.Fatalf("SampleNonZeroIndices returned index 0 for seed %d", seed)
			}
		}
	}
}

func TestSampleIndicesBadRootFails(t *testing.T) {
	if _, err := SampleIndices("0xnot-decimal", 5, 64); err == nil {
		t.Fatalf("expected error for non-canonical root")
	}
}
