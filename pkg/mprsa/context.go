// Package mprsa implements Multi-Power RSA: an RSA variant whose modulus
// has the form n = p^(b-1)*q, decrypted via the Chinese Remainder Theorem
// plus Hensel lifting modulo p^(b-1). It is not a production cryptographic
// library: no padding scheme, no cipher mode, no CSPRNG, no primality
// proofs. See package-level docs in each file for the exact operations this
// mirrors from the reference C implementation (multipowerrsa.c).
package mprsa

import (
	"crypto/rand"
	"io"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
)

// Context holds one Multi-Power RSA key, public or private. A zero-value
// Context is not usable; construct with New. After GenerateKeys, ImportPrivate,
// or ImportPublic populate it, a Context used only for reads (Encrypt with
// public fields, Decrypt with all fields) is safe to share across
// goroutines; mutating calls are not safe for concurrent use.
type Context struct {
	KeySize int // bits: as requested at construction, or n's bit length after an import
	B       int // power parameter, b >= 2; zero on a Context from ImportPublic

	P, Q   *bigint.Int // primes, set by GenerateKeys or ImportPrivate
	PPower *bigint.Int // p^(b-1)
	N      *bigint.Int // p^(b-1) * q
	E      *bigint.Int // public exponent, always 65537
	D      *bigint.Int // private exponent
	R1     *bigint.Int // d mod (p-1)
	R2     *bigint.Int // d mod (q-1)

	rand io.Reader // randomness source for GenerateKeys; crypto/rand.Reader by default
}

// New constructs a Context for the given key_size (bits) and power
// parameter b. It must be keyed afterward by GenerateKeys or one of the
// Import functions before Encrypt/Decrypt can be used.
func New(keySize, b int) (*Context, error) {
	if b < 2 {
		return nil, cryptoerr.New(cryptoerr.BadKeySize, "mprsa.New", "b must be >= 2")
	}
	if keySize <= 0 {
		return nil, cryptoerr.New(cryptoerr.BadKeySize, "mprsa.New", "key_size must be positive")
	}
	return &Context{
		KeySize: keySize,
		B:       b,
		E:       bigint.NewInt(65537),
		rand:    rand.Reader,
	}, nil
}

// NewDeterministic is like New but lets the caller inject the randomness
// source GenerateKeys draws from, so tests can reproduce a fixed key. The
// specification documents the historical reference implementation seeding
// from wall-clock time and calls that insecure; this module never defaults
// to that, it only exposes the seam tests need.
func NewDeterministic(keySize, b int, seed io.Reader) (*Context, error) {
	ctx, err := New(keySize, b)
	if err != nil {
		return nil, err
	}
	ctx.rand = seed
	return ctx, nil
}

// Release zeroes every big-integer field so no key material lingers in the
// Context beyond this call. Safe to call multiple times.
func (c *Context) Release() {
	for _, f := range []**bigint.Int{&c.P, &c.Q, &c.PPower, &c.N, &c.E, &c.D, &c.R1, &c.R2} {
		if *f != nil {
			(*f).Release()
			*f = nil
		}
	}
}
