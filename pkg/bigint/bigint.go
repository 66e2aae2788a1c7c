// Package bigint is the thin arbitrary-precision integer façade that
// pkg/mprsa is written against. It exists because math/big.Int does not by
// itself expose two operations the Multi-Power RSA core needs: drawing
// random bits of an exact length with explicit bit-setting, and advancing to
// the next probable prime. Everything else here is a direct pass-through to
// math/big, named to match the operations enumerated in the specification's
// external-interfaces section (construction, powm, modular inverse, gcd,
// integer power, the arithmetic operators, comparison, byte export, bit
// length).
package bigint

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"cryptocore/pkg/cryptoerr"
)

// Int wraps a *big.Int. The zero value is not usable; construct with one of
// the New*/From* functions.
type Int struct {
	v *big.Int
}

func wrap(v *big.Int) *Int { return &Int{v: v} }

// NewInt constructs an Int from a native int64.
func NewInt(x int64) *Int { return wrap(big.NewInt(x)) }

// FromDecimalString parses a base-10 string.
func FromDecimalString(s string) (*Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "bigint.FromDecimalString", fmt.Sprintf("invalid decimal integer %q", s))
	}
	return wrap(v), nil
}

// FromHexString parses a lowercase, unprefixed, unpadded hex string, the
// wire format used throughout pkg/mprsa's key serialization.
func FromHexString(s string) (*Int, error) {
	if s == "" {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "bigint.FromHexString", "empty hex field")
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, "bigint.FromHexString", fmt.Sprintf("invalid hex integer %q", s))
	}
	return wrap(v), nil
}

// FromBytes interprets buf as a big-endian unsigned integer.
func FromBytes(buf []byte) *Int { return wrap(new(big.Int).SetBytes(buf)) }

// ToHexString renders the value as lowercase hex, no "0x" prefix and no
// padding to even length, matching mpz_get_str(NULL, 16, ...).
func (x *Int) ToHexString() string { return x.v.Text(16) }

// Bytes returns the big-endian unsigned encoding of x, with no leading
// zero byte and no padding (mpz_export-equivalent, unpadded).
func (x *Int) Bytes() []byte { return x.v.Bytes() }

// FillBytes writes the big-endian unsigned encoding of x into a buffer of
// exactly n bytes, zero-padded on the left, for fixed-width wire formats.
func (x *Int) FillBytes(n int) []byte { return x.v.FillBytes(make([]byte, n)) }

// BitLen returns the number of bits needed to represent x, 0 for x == 0.
func (x *Int) BitLen() int { return x.v.BitLen() }

// Cmp returns -1, 0 or +1 as x is less than, equal to, or greater than y.
func (x *Int) Cmp(y *Int) int { return x.v.Cmp(y.v) }

// Sign returns -1, 0, or +1 for negative, zero, or positive x.
func (x *Int) Sign() int { return x.v.Sign() }

// Add returns x + y as a new Int.
func (x *Int) Add(y *Int) *Int { return wrap(new(big.Int).Add(x.v, y.v)) }

// Sub returns x - y as a new Int.
func (x *Int) Sub(y *Int) *Int { return wrap(new(big.Int).Sub(x.v, y.v)) }

// Mul returns x * y as a new Int.
func (x *Int) Mul(y *Int) *Int { return wrap(new(big.Int).Mul(x.v, y.v)) }

// DivMod returns the Euclidean quotient and modulus of x / y: the modulus is
// always in [0, |y|), matching mpz_fdiv_q / mpz_mod for positive y (the only
// case this module ever uses).
func (x *Int) DivMod(y *Int) (q, r *Int) {
	qq, rr := new(big.Int), new(big.Int)
	qq.QuoRem(x.v, y.v, rr)
	if rr.Sign() < 0 {
		rr.Add(rr, new(big.Int).Abs(y.v))
		if y.v.Sign() > 0 {
			qq.Sub(qq, big.NewInt(1))
		} else {
			qq.Add(qq, big.NewInt(1))
		}
	}
	return wrap(qq), wrap(rr)
}

// Mod returns x mod y in [0, |y|).
func (x *Int) Mod(y *Int) *Int {
	_, r := x.DivMod(y)
	return r
}

// Pow returns x^k (plain integer power, not modular).
func (x *Int) Pow(k uint64) *Int {
	return wrap(new(big.Int).Exp(x.v, new(big.Int).SetUint64(k), nil))
}

// Exp returns x^e mod m (modular exponentiation, "powm").
func (x *Int) Exp(e, m *Int) *Int {
	return wrap(new(big.Int).Exp(x.v, e.v, m.v))
}

// GCD returns the greatest common divisor of x and y.
func (x *Int) GCD(y *Int) *Int {
	return wrap(new(big.Int).GCD(nil, nil, new(big.Int).Abs(x.v), new(big.Int).Abs(y.v)))
}

// ModInverse returns x^-1 mod m. It reports InternalInvariantViolated if no
// inverse exists (mpz_invert returning 0), which for this module only ever
// happens on corrupt key material since callers first establish coprimality.
func (x *Int) ModInverse(m *Int) (*Int, error) {
	inv := new(big.Int).ModInverse(x.v, m.v)
	if inv == nil {
		return nil, cryptoerr.New(cryptoerr.InternalInvariantViolated, "bigint.ModInverse",
			fmt.Sprintf("no inverse of %s mod %s", x.v.Text(16), m.v.Text(16)))
	}
	return wrap(inv), nil
}

// RandomBits draws a uniform random value in [0, 2^bits) from r.
func RandomBits(r io.Reader, bits int) (*Int, error) {
	if bits <= 0 {
		return nil, cryptoerr.New(cryptoerr.AllocationFailure, "bigint.RandomBits", "bits must be positive")
	}
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, "bigint.RandomBits", "short read from randomness source", err)
	}
	v := new(big.Int).SetBytes(buf)
	// Mask down to exactly `bits` bits; the top bit is then set explicitly
	// by the caller via SetBit, mirroring mpz_urandomb + mpz_setbit.
	mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	mask.Sub(mask, big.NewInt(1))
	v.And(v, mask)
	return wrap(v), nil
}

// SetBit sets bit i (0 = least significant) of x in place and returns x,
// matching mpz_setbit's explicit bit-setting semantics.
func (x *Int) SetBit(i int) *Int {
	x.v.SetBit(x.v, i, 1)
	return x
}

// NextPrime returns the smallest odd probable prime greater than or equal
// to x, scanning odd candidates (so 2 is never returned), the Go analogue of
// mpz_nextprime.
// This module makes no primality-proof claim (spec Non-goals): probable
// primes from math/big's Baillie-PSW plus Miller-Rabin rounds suffice.
func (x *Int) NextPrime() *Int {
	cand := new(big.Int).Set(x.v)
	if cand.Bit(0) == 0 {
		cand.Add(cand, big.NewInt(1))
	}
	for !cand.ProbablyPrime(20) {
		cand.Add(cand, big.NewInt(2))
	}
	return wrap(cand)
}

// Release zeroes the backing words and drops the internal reference. Go's
// garbage collector reclaims memory regardless; this exists so contexts that
// follow the façade's scoped acquisition/release discipline (pkg/mprsa's
// Context.Release) have something concrete to call, narrowing the window a
// secret value sits in memory before collection.
func (x *Int) Release() {
	if x == nil || x.v == nil {
		return
	}
	x.v.SetInt64(0)
	x.v = nil
}

// Must panics if err is non-nil, otherwise returns x. Used at call sites
// that have already validated their input and cannot fail in practice
// (e.g. parsing a hex literal baked into a test).
func Must(x *Int, err error) *Int {
	if err != nil {
		panic(err)
	}
	return x
}

// CryptoRandReader is the default randomness source for key generation,
// exported so callers can see what GenerateKeys uses without reaching into
// crypto/rand themselves.
var CryptoRandReader = rand.Reader
