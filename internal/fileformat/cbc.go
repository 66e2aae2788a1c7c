package fileformat

import (
	"cryptocore/pkg/cryptoerr"
	"cryptocore/pkg/twofish"
)

// cbcEncrypt XORs each plaintext block with the previous ciphertext block
// (the first with iv) before encrypting it, a hand-rolled CBC chaining on
// top of the raw Twofish block primitive. This is explicitly not a vetted
// mode implementation — there is no authentication, and a bit-flip in one
// ciphertext block silently corrupts the next block's plaintext rather than
// being detected. plain must already be padded to a block-size multiple.
func cbcEncrypt(c *twofish.Cipher, iv [16]byte, plain []byte) ([]byte, error) {
	const op = "fileformat.cbcEncrypt"
	if len(plain)%twofish.BlockSize != 0 {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, op, "plaintext length is not a multiple of the block size")
	}

	out := make([]byte, len(plain))
	prev := iv
	for off := 0; off < len(plain); off += twofish.BlockSize {
		block := make([]byte, twofish.BlockSize)
		for i := 0; i < twofish.BlockSize; i++ {
			block[i] = plain[off+i] ^ prev[i]
		}
		enc, err := c.EncryptBlock(block)
		if err != nil {
			return nil, err
		}
		copy(out[off:off+twofish.BlockSize], enc)
		copy(prev[:], enc)
	}
	return out, nil
}

// cbcDecrypt reverses cbcEncrypt.
func cbcDecrypt(c *twofish.Cipher, iv [16]byte, cipherBuf []byte) ([]byte, error) {
	const op = "fileformat.cbcDecrypt"
	if len(cipherBuf)%twofish.BlockSize != 0 {
		return nil, cryptoerr.New(cryptoerr.BadBlockSize, op, "ciphertext length is not a multiple of the block size")
	}

	out := make([]byte, len(cipherBuf))
	prev := iv
	for off := 0; off < len(cipherBuf); off += twofish.BlockSize {
		block := cipherBuf[off : off+twofish.BlockSize]
		dec, err := c.DecryptBlock(block)
		if err != nil {
			return nil, err
		}
		for i := 0; i < twofish.BlockSize; i++ {
			out[off+i] = dec[i] ^ prev[i]
		}
		copy(prev[:], block)
	}
	return out, nil
}
