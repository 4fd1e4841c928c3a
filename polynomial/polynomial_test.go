package polynomial

import "testing"

func TestMult(t *testing.T) {
	cases := []struct {
		name     string
		p1, p2   NonNegativePolynomial
		wantTop  bool
		wantVal  uint64
	}{
		{"identity", One(), OfUint64(42), false, 42},
		{"product", OfUint64(6), OfUint64(7), false, 42},
		{"top absorbs", Top(), OfUint64(7), true, 0},
		{"overflow saturates", OfUint64(1 << 40), OfUint64(1 << 40), true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Mult(c.p1, c.p2)
			if got.IsTop() != c.wantTop {
				t.Fatalf("IsTop() = %v, want %v", got.IsTop(), c.wantTop)
			}
			if !c.wantTop && got.value != c.wantVal {
				t.Fatalf("value = %d, want %d", got.value, c.wantVal)
			}
		})
	}
}

func TestMultOverflowBoundary(t *testing.T) {
	max := OfUint64(^uint64(0))
	if !Mult(max, OfUint64(2)).IsTop() {
		t.Fatal("expected overflow to saturate to Top")
	}
	if Mult(max, OfUint64(1)).IsTop() {
		t.Fatal("multiplying by 1 must not overflow")
	}
}
