package mprsa

import (
	"encoding/binary"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
)

// chunkSize returns the number of plaintext bytes per block: one byte of
// headroom below n so every chunk, interpreted as a big-endian integer, is
// guaranteed to be < n.
func (c *Context) chunkSize() int {
	return c.N.BitLen()/8 - 1
}

// EncryptBytes splits buf into fixed-size chunks that each fit under n and
// MPRSA-encrypts each one, returning one record per chunk: a 4-byte
// big-endian chunk length followed by the ciphertext integer's fixed-width
// byte encoding. The original C wrapper only handles a buffer
// already known to be shorter than n (rsa_wrapper.c, mpz_import); this is
// the chunking convenience layered on top for arbitrary-length payloads.
func (c *Context) EncryptBytes(buf []byte) ([]byte, error) {
	size := c.chunkSize()
	if size <= 0 {
		return nil, cryptoerr.New(cryptoerr.BadKeySize, "mprsa.EncryptBytes", "modulus too small to hold any chunk")
	}
	nBytes := (c.N.BitLen() + 7) / 8

	chunks := [][]byte{buf}
	if len(buf) > size {
		chunks = chunks[:0]
		for off := 0; off < len(buf); off += size {
			end := off + size
			if end > len(buf) {
				end = len(buf)
			}
			chunks = append(chunks, buf[off:end])
		}
	}

	var out []byte
	for _, chunk := range chunks {
		m := bigint.FromBytes(chunk)
		ciph, err := c.Encrypt(m)
		if err != nil {
			return nil, err
		}

		var lenPrefix [4]byte
		binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(chunk)))
		out = append(out, lenPrefix[:]...)
		out = append(out, ciph.FillBytes(nBytes)...)
	}
	return out, nil
}

// DecryptBytes reverses EncryptBytes.
func (c *Context) DecryptBytes(buf []byte) ([]byte, error) {
	nBytes := (c.N.BitLen() + 7) / 8
	recordSize := 4 + nBytes

	var out []byte
	for off := 0; off < len(buf); off += recordSize {
		if off+recordSize > len(buf) {
			return nil, cryptoerr.New(cryptoerr.MalformedKey, "mprsa.DecryptBytes", "truncated record")
		}
		chunkLen := binary.BigEndian.Uint32(buf[off : off+4])
		cipherBytes := buf[off+4 : off+recordSize]

		ciph := bigint.FromBytes(cipherBytes)
		m, err := c.Decrypt(ciph)
		if err != nil {
			return nil, err
		}

		plain := m.FillBytes(nBytes)
		if int(chunkLen) > len(plain) {
			return nil, cryptoerr.New(cryptoerr.MalformedKey, "mprsa.DecryptBytes", "chunk length exceeds modulus width")
		}
		out = append(out, plain[len(plain)-int(chunkLen):]...)
	}
	return out, nil
}
