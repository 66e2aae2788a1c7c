package mprsa

import (
	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
)

// Encrypt computes c = m^e mod n. It rejects m >= n.
func (c *Context) Encrypt(m *bigint.Int) (*bigint.Int, error) {
	if m.Cmp(c.N) >= 0 {
		return nil, cryptoerr.New(cryptoerr.MessageTooLarge, "mprsa.Encrypt", "m >= n")
	}
	return m.Exp(c.E, c.N), nil
}

// Decrypt recovers m from a ciphertext c using CRT residues mod p and mod q,
// Hensel-lifting the mod-p residue up to mod p^(b-1) before recombining.
func (c *Context) Decrypt(cipher *bigint.Int) (*bigint.Int, error) {
	if cipher.Cmp(c.N) >= 0 {
		return nil, cryptoerr.New(cryptoerr.CiphertextTooLarge, "mprsa.Decrypt", "c >= n")
	}

	m1 := cipher.Exp(c.R1, c.P)
	m2 := cipher.Exp(c.R2, c.Q)

	mPrime1, err := c.henselLift(m1, cipher)
	if err != nil {
		return nil, err
	}

	// Garner-style CRT recombination modulo n = p_power * q.
	qInv, err := c.Q.ModInverse(c.PPower)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, "mprsa.Decrypt", "q has no inverse mod p_power", err)
	}
	ppInv, err := c.PPower.ModInverse(c.Q)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, "mprsa.Decrypt", "p_power has no inverse mod q", err)
	}

	term1 := mPrime1.Mul(c.Q).Mul(qInv).Mod(c.N)
	term2 := m2.Mul(c.PPower).Mul(ppInv).Mod(c.N)
	return term1.Add(term2).Mod(c.N), nil
}

// henselLift refines m1 (a root of x^e = cipher mod p) up to a root modulo
// p^(b-1). For b == 2 the loop never runs and m1 is returned unchanged.
func (c *Context) henselLift(m1, cipher *bigint.Int) (*bigint.Int, error) {
	mPrime1 := m1
	if c.B <= 2 {
		return mPrime1, nil
	}

	one := bigint.NewInt(1)
	eMinus1 := c.E.Sub(one)

	for i := 1; i <= c.B-2; i++ {
		pI1 := c.P.Pow(uint64(i + 1))
		pI := c.P.Pow(uint64(i))

		// E = (M'1)^e - c (mod P_{i+1})
		errVal := mPrime1.Exp(c.E, pI1).Sub(cipher).Mod(pI1)

		// Scaled error: deltaE = E / P_i, required to be exact.
		deltaE, remainder := errVal.DivMod(pI)
		if remainder.Sign() != 0 {
			return nil, cryptoerr.New(cryptoerr.InternalInvariantViolated, "mprsa.henselLift", "lift error not divisible by p^i")
		}

		// inv = (e * (M'1)^(e-1))^-1 mod p
		lin := c.E.Mul(mPrime1.Exp(eMinus1, c.P)).Mod(c.P)
		inv, err := lin.ModInverse(c.P)
		if err != nil {
			return nil, cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, "mprsa.henselLift", "linearization factor has no inverse mod p", err)
		}

		correction := deltaE.Mul(inv).Mod(c.P)
		mPrime1 = mPrime1.Sub(correction.Mul(pI)).Mod(pI1)
	}

	return mPrime1, nil
}
