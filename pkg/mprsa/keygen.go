package mprsa

import (
	"io"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
)

// bitSizes implements the specification's bit-length policy exactly as
// written: bits(p) = floor((key_size*2/3)/b), bits(q) = floor(key_size/3).
// These do not always sum to key_size (see design notes); the formula is
// preserved unchanged for interoperability rather than "fixed".
func bitSizes(keySize, b int) (bitsP, bitsQ int) {
	bitsP = (keySize * 2 / 3) / b
	bitsQ = keySize / 3
	return
}

// randomPrime draws a random integer of exactly `bits` bits with bit 0 and
// the top bit both set, then advances to the next probable prime, mirroring
// the reference implementation's generate_prime helper.
func randomPrime(r io.Reader, bits int) (*bigint.Int, error) {
	x, err := bigint.RandomBits(r, bits)
	if err != nil {
		return nil, err
	}
	x.SetBit(0)
	x.SetBit(bits - 1)
	return x.NextPrime(), nil
}

// GenerateKeys populates the Context with a fresh Multi-Power RSA keypair,
// retrying internally (never externally visible) until e is coprime to
// phi(n). Randomness comes from c.rand (crypto/rand.Reader unless
// NewDeterministic supplied a different source).
func (c *Context) GenerateKeys() error {
	bitsP, bitsQ := bitSizes(c.KeySize, c.B)
	if bitsP < 2 || bitsQ < 2 {
		return cryptoerr.New(cryptoerr.BadKeySize, "mprsa.GenerateKeys", "key_size too small for the requested b")
	}

	one := bigint.NewInt(1)
	e := bigint.NewInt(65537)
	var p, q, pPower, n, phi *bigint.Int

	for {
		var err error
		p, err = randomPrime(c.rand, bitsP)
		if err != nil {
			return cryptoerr.Wrap(cryptoerr.AllocationFailure, "mprsa.GenerateKeys", "drawing p", err)
		}
		q, err = randomPrime(c.rand, bitsQ)
		if err != nil {
			return cryptoerr.Wrap(cryptoerr.AllocationFailure, "mprsa.GenerateKeys", "drawing q", err)
		}

		pPower = p.Pow(uint64(c.B - 1))
		n = pPower.Mul(q)

		pMinus1 := p.Sub(one)
		qMinus1 := q.Sub(one)

		if c.B > 2 {
			phi = pMinus1.Mul(p.Pow(uint64(c.B - 2))).Mul(qMinus1)
		} else {
			phi = pMinus1.Mul(qMinus1)
		}

		if e.GCD(phi).Cmp(one) == 0 {
			break
		}
	}

	pMinus1 := p.Sub(one)
	qMinus1 := q.Sub(one)

	d, err := e.ModInverse(phi)
	if err != nil {
		// e and phi(n) were just shown coprime; an inverse must exist.
		return cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, "mprsa.GenerateKeys", "e has no inverse mod phi(n) despite coprimality check", err)
	}

	c.P, c.Q, c.PPower, c.N = p, q, pPower, n
	c.E = e
	c.D = d
	c.R1 = d.Mod(pMinus1)
	c.R2 = d.Mod(qMinus1)
	return nil
}
