package field

import "testing"

func TestReduceNegative(t *testing.T) {
	got := FromInt64(-1)
	want := Value(Modulus - 1)
	if got != want {
		t.Fatalf("reduce(-1) = %d, want %d", got, want)
	}
	if got.Uint64() != 3221225472 {
		t.Fatalf("reduce(-1) = %d, want 3221225472", got.Uint64())
	}
}

func TestInvIsMultiplicativeInverse(t *testing.T) {
	two := FromUint64(2)
	inv, err := two.Inv()
	if err != nil {
		t.Fatalf("Inv(2) failed: %v", err)
	}
	if !two.Mul(inv).Equal(One) {
		t.Fatalf("inv(2)*2 = %s, want 1", two.Mul(inv).String())
	}
}

func TestInvZeroFails(t *testing.T) {
	if _, err := Zero.Inv(); err != ErrInvalidField {
		t.Fatalf("Inv(0) = %v, want ErrInvalidField", err)
	}
}

func TestFermatLittleTheorem(t *testing.T) {
	five := FromUint64(5)
	if got := five.Pow(Modulus - 1); !got.Equal(One) {
		t.Fatalf("pow(5, p-1) = %s, want 1", got.String())
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, Modulus - 1, 123456789} {
		v := FromUint64(n)
		parsed, err := Parse(v.String())
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", v.String(), err)
		}
		if !parsed.Equal(v) {
			t.Fatalf("round trip mismatch: %s != %s", parsed, v)
		}
	}
}

func TestParseRejectsNonDecimal(t *testing.T) {
	for _, s := range []string{"0x1", "-1", "1.5", "abc", ""} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should have failed", s)
		}
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	a := FromUint64(Modulus - 1)
	b := FromUint64(2)
	sum := a.Add(b)
	if !sum.Equal(FromUint64(1)) {
		t.Fatalf("(p-1)+2 = %s, want 1", sum.String())
	}
	if !sum.Sub(b).Equal(a) {
		t.Fatalf("sub did not invert add")
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := One.Div(Zero); err != ErrInvalidField {
		t.Fatalf("Div by zero = %v, want ErrInvalidField", err)
	}
}
