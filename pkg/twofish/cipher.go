package twofish

import "cryptocore/pkg/cryptoerr"

// BlockSize is the Twofish block size in bytes.
const BlockSize = 16

// Cipher holds a fully-keyed Twofish context: the 40 round/whitening keys
// and the four keyed QF lookup tables. Once NewCipher returns, a Cipher is
// immutable and safe to share across goroutines for concurrent
// EncryptBlock/DecryptBlock calls.
type Cipher struct {
	K  [40]uint32
	QF [4][256]uint32
}

// NewCipher keys a new Twofish context. key must be 16, 24, or 32 bytes.
func NewCipher(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, cryptoerr.New(cryptoerr.BadKeySize, "twofish.NewCipher", "key must be 16, 24 or 32 bytes")
	}
	K, QF := setKey(key)
	return &Cipher{K: K, QF: QF}, nil
}

// g is the fully-keyed h function (called g once keyed): four table
// lookups XORed together.
func (c *Cipher) g(X uint32) uint32 {
	return c.QF[0][b0(X)] ^ c.QF[1][b1(X)] ^ c.QF[2][b2(X)] ^ c.QF[3][b3(X)]
}

// EncryptBlock encrypts exactly one 16-byte block.
func (c *Cipher) EncryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, "twofish.EncryptBlock", "block must be 16 bytes")
	}

	R0 := c.K[0] ^ leWord(block[0:4])
	R1 := c.K[1] ^ leWord(block[4:8])
	R2 := c.K[2] ^ leWord(block[8:12])
	R3 := c.K[3] ^ leWord(block[12:16])

	for r := 0; r < 16; r++ {
		T0 := c.g(R0)
		T1 := c.g(rotl32(R1, 8))
		newR2 := rotr32(R2^(T0+T1+c.K[2*r+8]), 1)
		newR3 := rotl32(R3, 1) ^ (T0 + 2*T1 + c.K[2*r+9])
		// The pair just updated becomes next round's g-input; the pair
		// that served as this round's g-input is untouched and becomes
		// next round's update target.
		R0, R1, R2, R3 = newR2, newR3, R0, R1
	}

	// Output taps R2,R3,R0,R1 in that order (the final round leaves the
	// last-updated pair in R0,R1, so the pre-final-round pair — R2,R3 —
	// is written first).
	out := make([]byte, BlockSize)
	putLeWord(out[0:4], R2^c.K[4])
	putLeWord(out[4:8], R3^c.K[5])
	putLeWord(out[8:12], R0^c.K[6])
	putLeWord(out[12:16], R1^c.K[7])
	return out, nil
}

// DecryptBlock decrypts exactly one 16-byte block.
func (c *Cipher) DecryptBlock(block []byte) ([]byte, error) {
	if len(block) != BlockSize {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, "twofish.DecryptBlock", "block must be 16 bytes")
	}

	R0 := c.K[4] ^ leWord(block[0:4])
	R1 := c.K[5] ^ leWord(block[4:8])
	R2 := c.K[6] ^ leWord(block[8:12])
	R3 := c.K[7] ^ leWord(block[12:16])

	for r := 15; r >= 0; r-- {
		T0 := c.g(R0)
		T1 := c.g(rotl32(R1, 8))
		newR2 := rotl32(R2, 1) ^ (T0 + T1 + c.K[2*r+8])
		newR3 := rotr32(R3^(T0+2*T1+c.K[2*r+9]), 1)
		R0, R1, R2, R3 = newR2, newR3, R0, R1
	}

	out := make([]byte, BlockSize)
	putLeWord(out[0:4], R2^c.K[0])
	putLeWord(out[4:8], R3^c.K[1])
	putLeWord(out[8:12], R0^c.K[2])
	putLeWord(out[12:16], R1^c.K[3])
	return out, nil
}

// EncryptBlocks encrypts buf, whose length must be a multiple of 16, one
// block at a time with no chaining. This mirrors the original C project's
// twofish_wrap.c loop: it is the raw block primitive applied repeatedly,
// not a mode of operation, and carries no authentication — callers needing
// either must layer it on top (spec Non-goals).
func (c *Cipher) EncryptBlocks(buf []byte) ([]byte, error) {
	if len(buf)%BlockSize != 0 {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, "twofish.EncryptBlocks", "length must be a multiple of 16")
	}
	out := make([]byte, 0, len(buf))
	for off := 0; off < len(buf); off += BlockSize {
		enc, err := c.EncryptBlock(buf[off : off+BlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// DecryptBlocks reverses EncryptBlocks.
func (c *Cipher) DecryptBlocks(buf []byte) ([]byte, error) {
	if len(buf)%BlockSize != 0 {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, "twofish.DecryptBlocks", "length must be a multiple of 16")
	}
	out := make([]byte, 0, len(buf))
	for off := 0; off < len(buf); off += BlockSize {
		dec, err := c.DecryptBlock(buf[off : off+BlockSize])
		if err != nil {
			return nil, err
		}
		out = append(out, dec...)
	}
	return out, nil
}
