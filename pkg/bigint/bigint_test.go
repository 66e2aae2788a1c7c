package bigint

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"cryptocore/pkg/cryptoerr"
)

func TestHexRoundTrip(t *testing.T) {
	x, err := FromHexString("deadbeef")
	if err != nil {
		t.Fatalf("FromHexString failed: %v", err)
	}
	if x.ToHexString() != "deadbeef" {
		t.Fatalf("round trip mismatch: got %s", x.ToHexString())
	}
}

func TestFromHexStringRejectsMalformed(t *testing.T) {
	if _, err := FromHexString("zz"); !errors.Is(err, cryptoerr.ErrMalformedKey) {
		t.Fatalf("expected MalformedKey, got %v", err)
	}
	if _, err := FromHexString(""); !errors.Is(err, cryptoerr.ErrMalformedKey) {
		t.Fatalf("expected MalformedKey for empty field, got %v", err)
	}
}

func TestExpMatchesRepeatedMultiplication(t *testing.T) {
	base := NewInt(7)
	mod := NewInt(1000000007)
	got := base.Exp(NewInt(10), mod)

	want := NewInt(1)
	for i := 0; i < 10; i++ {
		want = want.Mul(base).Mod(mod)
	}
	if got.Cmp(want) != 0 {
		t.Fatalf("Exp mismatch: got %s want %s", got.ToHexString(), want.ToHexString())
	}
}

func TestModInverseRoundTrip(t *testing.T) {
	a := NewInt(17)
	m := NewInt(3120)
	inv, err := a.ModInverse(m)
	if err != nil {
		t.Fatalf("ModInverse failed: %v", err)
	}
	product := a.Mul(inv).Mod(m)
	if product.Cmp(NewInt(1)) != 0 {
		t.Fatalf("a * a^-1 mod m != 1, got %s", product.ToHexString())
	}
}

func TestModInverseNoInverseIsInternalInvariant(t *testing.T) {
	_, err := NewInt(4).ModInverse(NewInt(8))
	if !errors.Is(err, cryptoerr.ErrInternalInvariantViolated) {
		t.Fatalf("expected InternalInvariantViolated, got %v", err)
	}
}

func TestGCD(t *testing.T) {
	if got := NewInt(54).GCD(NewInt(24)); got.Cmp(NewInt(6)) != 0 {
		t.Fatalf("GCD(54,24) = %s, want 6", got.ToHexString())
	}
}

func TestDivModFloorsTowardNegativeInfinity(t *testing.T) {
	q, r := NewInt(-7).DivMod(NewInt(3))
	if q.Cmp(NewInt(-3)) != 0 || r.Cmp(NewInt(2)) != 0 {
		t.Fatalf("DivMod(-7,3) = (%s,%s), want (-3,2)", q.ToHexString(), r.ToHexString())
	}
}

func TestNextPrimeSkipsComposites(t *testing.T) {
	p := NewInt(8).NextPrime()
	if p.Cmp(NewInt(11)) != 0 {
		t.Fatalf("NextPrime(8) = %s, want 11", p.ToHexString())
	}
	// Already-prime input returns itself.
	if q := NewInt(13).NextPrime(); q.Cmp(NewInt(13)) != 0 {
		t.Fatalf("NextPrime(13) = %s, want 13", q.ToHexString())
	}
}

func TestRandomBitsExactLength(t *testing.T) {
	x, err := RandomBits(rand.Reader, 256)
	if err != nil {
		t.Fatalf("RandomBits failed: %v", err)
	}
	x.SetBit(255)
	x.SetBit(0)
	if x.BitLen() != 256 {
		t.Fatalf("BitLen = %d, want 256", x.BitLen())
	}
	if x.v.Bit(0) != 1 {
		t.Fatalf("low bit not set")
	}
}

func TestFillBytesZeroPads(t *testing.T) {
	x := NewInt(1)
	got := x.FillBytes(4)
	want := []byte{0, 0, 0, 1}
	if !bytes.Equal(got, want) {
		t.Fatalf("FillBytes = %x, want %x", got, want)
	}
}

func TestBytesFromBytesRoundTrip(t *testing.T) {
	orig := NewInt(123456789)
	rt := FromBytes(orig.Bytes())
	if rt.Cmp(orig) != 0 {
		t.Fatalf("round trip through Bytes/FromBytes mismatch")
	}
}
