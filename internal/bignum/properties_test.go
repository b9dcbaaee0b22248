package bignum

import (
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"
)

// sampleInts returns a deterministic mix of small, limb-boundary and long values.
func sampleInts(n int) []string {
	r := rand.New(rand.NewPCG(7, 11))
	out := []string{"0", "1", "-1", "9999999", "10000000", "-10000000", "99999999999999"}
	for len(out) < n {
		var sb strings.Builder
		if r.IntN(2) == 0 {
			sb.WriteByte('-')
		}
		sb.WriteByte(byte('1' + r.IntN(9)))
		for range r.IntN(45) {
			sb.WriteByte(byte('0' + r.IntN(10)))
		}
		out = append(out, sb.String())
	}
	return out
}

func oracle(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("oracle cannot parse %q", s)
	}
	return v
}

func TestArithmeticMatchesOracle(t *testing.T) {
	samples := sampleInts(40)
	for _, as := range samples {
		for _, bs := range samples {
			a, b := MustParseInt(as, 10), MustParseInt(bs, 10)
			ba, bb := oracle(t, as), oracle(t, bs)

			sum, err := IntAdd(a, b)
			if err != nil {
				t.Fatalf("IntAdd(%s, %s): %v", a, b, err)
			}
			if want := new(big.Int).Add(ba, bb).String(); sum.String() != want {
				t.Fatalf("%s + %s = %s, want %s", as, bs, sum, want)
			}
			diff, err := IntSub(a, b)
			if err != nil {
				t.Fatalf("IntSub(%s, %s): %v", a, b, err)
			}
			if want := new(big.Int).Sub(ba, bb).String(); diff.String() != want {
				t.Fatalf("%s - %s = %s, want %s", as, bs, diff, want)
			}
			prod, err := IntMul(a, b)
			if err != nil {
				t.Fatalf("IntMul(%s, %s): %v", a, b, err)
			}
			if want := new(big.Int).Mul(ba, bb).String(); prod.String() != want {
				t.Fatalf("%s * %s = %s, want %s", as, bs, prod, want)
			}
			if b.IsZero() {
				continue
			}
			q, r, err := IntDivMod(a, b)
			if err != nil {
				t.Fatalf("IntDivMod(%s, %s): %v", as, bs, err)
			}
			wq, wr := new(big.Int).QuoRem(ba, bb, new(big.Int))
			if q.String() != wq.String() || r.String() != wr.String() {
				t.Fatalf("%s divmod %s = (%s, %s), want (%s, %s)", as, bs, q, r, wq, wr)
			}
			if sign := r.Sign(); sign != 0 && sign != a.Sign() {
				t.Fatalf("%s mod %s = %s: sign does not follow dividend", as, bs, r)
			}
		}
	}
}

func TestTextMatchesOracle(t *testing.T) {
	for _, s := range sampleInts(30) {
		n := MustParseInt(s, 10)
		ref := oracle(t, s)
		for radix := MinRadix; radix <= MaxRadix; radix++ {
			got, err := n.Text(radix)
			if err != nil {
				t.Fatal(err)
			}
			if want := strings.ToUpper(ref.Text(radix)); got != want {
				t.Fatalf("Text(%s, %d) = %s, want %s", s, radix, got, want)
			}
		}
	}
}

func TestAlgebraicLaws(t *testing.T) {
	samples := sampleInts(15)
	for _, as := range samples {
		a := MustParseInt(as, 10)
		for _, bs := range samples {
			b := MustParseInt(bs, 10)

			// (a + b) - b == a
			s, err := IntAdd(a, b)
			if err != nil {
				t.Fatalf("IntAdd(%s, %s): %v", a, b, err)
			}
			back, err := IntSub(s, b)
			if err != nil {
				t.Fatalf("IntSub(%s, %s): %v", s, b, err)
			}
			if !back.Equal(a) {
				t.Fatalf("(%s + %s) - %s = %s", as, bs, bs, back)
			}

			// a == (a / b) * b + a mod b
			if !b.IsZero() {
				q, err := IntDiv(a, b)
				if err != nil {
					t.Fatalf("IntDiv(%s, %s): %v", a, b, err)
				}
				r, err := IntMod(a, b)
				if err != nil {
					t.Fatalf("IntMod(%s, %s): %v", a, b, err)
				}
				qb, err := IntMul(q, b)
				if err != nil {
					t.Fatalf("IntMul(%s, %s): %v", q, b, err)
				}
				re, err := IntAdd(qb, r)
				if err != nil {
					t.Fatalf("IntAdd(%s, %s): %v", qb, r, err)
				}
				if !re.Equal(a) {
					t.Fatalf("division identity fails for %s, %s: %s", as, bs, re)
				}
			}

			for _, cs := range samples[:5] {
				c := MustParseInt(cs, 10)
				bc, err := IntAdd(b, c)
				if err != nil {
					t.Fatalf("IntAdd(%s, %s): %v", b, c, err)
				}
				left, err := IntMul(a, bc)
				if err != nil {
					t.Fatalf("IntMul(%s, %s): %v", a, bc, err)
				}
				ab, err := IntMul(a, b)
				if err != nil {
					t.Fatalf("IntMul(%s, %s): %v", a, b, err)
				}
				ac, err := IntMul(a, c)
				if err != nil {
					t.Fatalf("IntMul(%s, %s): %v", a, c, err)
				}
				right, err := IntAdd(ab, ac)
				if err != nil {
					t.Fatalf("IntAdd(%s, %s): %v", ab, ac, err)
				}
				if !left.Equal(right) {
					t.Fatalf("distributivity fails for %s, %s, %s", as, bs, cs)
				}
			}
		}
	}
}

func TestExponentLaws(t *testing.T) {
	bases := []int64{0, 1, -1, 2, -3, 7, 10_000_000, -123456789}
	for _, bv := range bases {
		a := IntFromInt64(bv)
		for m := int64(0); m < 6; m++ {
			for n := int64(0); n < 6; n++ {
				am, err := IntPow(a, IntFromInt64(m))
				if err != nil {
					t.Fatalf("IntPow(%s, %s): %v", a, IntFromInt64(m), err)
				}
				an, err := IntPow(a, IntFromInt64(n))
				if err != nil {
					t.Fatalf("IntPow(%s, %s): %v", a, IntFromInt64(n), err)
				}
				amn, err := IntPow(a, IntFromInt64(m+n))
				if err != nil {
					t.Fatalf("IntPow(%s, %s): %v", a, IntFromInt64(m+n), err)
				}
				prod, err := IntMul(am, an)
				if err != nil {
					t.Fatalf("IntMul(%s, %s): %v", am, an, err)
				}
				if !prod.Equal(amn) {
					t.Fatalf("%d^%d * %d^%d = %s, want %s", bv, m, bv, n, prod, amn)
				}
			}
		}
	}
}

func TestPowModConsistency(t *testing.T) {
	bases := []int64{2, -2, 3, 17, -123456, 98765432109}
	mods := []int64{3, 7, 1000, 1_000_000_007, -13}
	for _, bv := range bases {
		for e := int64(1); e <= 20; e++ {
			for _, mv := range mods {
				a, exp, m := IntFromInt64(bv), IntFromInt64(e), IntFromInt64(mv)
				got, err := IntPowMod(a, exp, m)
				if err != nil {
					t.Fatal(err)
				}
				full, err := IntPow(a, exp)
				if err != nil {
					t.Fatalf("IntPow(%s, %s): %v", a, exp, err)
				}
				want, err := IntMod(full, m)
				if err != nil {
					t.Fatalf("IntMod(%s, %s): %v", full, m, err)
				}
				if !got.Equal(want) {
					t.Fatalf("powmod(%d, %d, %d) = %s, want %s", bv, e, mv, got, want)
				}
			}
		}
	}
}

func TestFractionMatchesOracle(t *testing.T) {
	samples := sampleInts(12)
	var fracs []string
	for i := 0; i+1 < len(samples); i += 2 {
		den := strings.TrimPrefix(samples[i+1], "-")
		if den == "0" {
			den = "3"
		}
		fracs = append(fracs, samples[i]+"/"+den)
	}
	for _, xs := range fracs {
		for _, ys := range fracs {
			x, err := ParseFraction(xs, 10)
			if err != nil {
				t.Fatal(err)
			}
			y, err := ParseFraction(ys, 10)
			if err != nil {
				t.Fatal(err)
			}
			bx, _ := new(big.Rat).SetString(xs)
			by, _ := new(big.Rat).SetString(ys)

			sum, err := FracAdd(x, y)
			if err != nil {
				t.Fatalf("FracAdd(%s, %s): %v", x, y, err)
			}
			if want := new(big.Rat).Add(bx, by).String(); sum.String() != want {
				t.Fatalf("%s + %s = %s, want %s", xs, ys, sum, want)
			}
			diff, err := FracSub(x, y)
			if err != nil {
				t.Fatalf("FracSub(%s, %s): %v", x, y, err)
			}
			if want := new(big.Rat).Sub(bx, by).String(); diff.String() != want {
				t.Fatalf("%s - %s = %s, want %s", xs, ys, diff, want)
			}
			prod, err := FracMul(x, y)
			if err != nil {
				t.Fatalf("FracMul(%s, %s): %v", x, y, err)
			}
			if want := new(big.Rat).Mul(bx, by).String(); prod.String() != want {
				t.Fatalf("%s * %s = %s, want %s", xs, ys, prod, want)
			}
			if !y.IsZero() {
				quo, err := FracDiv(x, y)
				if err != nil {
					t.Fatalf("FracDiv(%s, %s): %v", x, y, err)
				}
				if want := new(big.Rat).Quo(bx, by).String(); quo.String() != want {
					t.Fatalf("%s / %s = %s, want %s", xs, ys, quo, want)
				}
			}
			if got, want := x.Cmp(y), bx.Cmp(by); got != want {
				t.Fatalf("Cmp(%s, %s) = %d, want %d", xs, ys, got, want)
			}
		}
	}
}
