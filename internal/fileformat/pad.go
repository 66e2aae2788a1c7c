package fileformat

import "cryptocore/pkg/cryptoerr"

// pkcs7Pad pads buf to a multiple of blockSize using PKCS#7. blockSize must
// be in [1,255]. Twofish's block size (16) is always used by this package.
func pkcs7Pad(buf []byte, blockSize int) []byte {
	padLen := blockSize - len(buf)%blockSize
	padded := make([]byte, len(buf)+padLen)
	copy(padded, buf)
	for i := len(buf); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

// pkcs7Unpad reverses pkcs7Pad, validating the padding bytes so a corrupted
// or tampered ciphertext does not silently truncate to garbage.
func pkcs7Unpad(buf []byte, blockSize int) ([]byte, error) {
	const op = "fileformat.pkcs7Unpad"
	if len(buf) == 0 || len(buf)%blockSize != 0 {
		return nil, cryptoerr.New(cryptoerr.CorruptEnvelope, op, "padded length is not a multiple of the block size")
	}
	padLen := int(buf[len(buf)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(buf) {
		return nil, cryptoerr.New(cryptoerr.CorruptEnvelope, op, "invalid PKCS#7 padding length")
	}
	for _, b := range buf[len(buf)-padLen:] {
		if int(b) != padLen {
			return nil, cryptoerr.New(cryptoerr.CorruptEnvelope, op, "invalid PKCS#7 padding bytes")
		}
	}
	return buf[:len(buf)-padLen], nil
}
