package twofish

// rotl32/rotr32 are the 32-bit rotations used throughout the round
// function and key schedule, matching ROL/ROR in twofish.c.
func rotl32(x uint32, n uint) uint32 { return (x << (n & 31)) | (x >> (32 - n&31)) }
func rotr32(x uint32, n uint) uint32 { return (x >> (n & 31)) | (x << (32 - n&31)) }

func leWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLeWord(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// fullKey precomputes the four keyed QF tables from the S-box key words S
// (k of them) so that the fully-keyed g(X) is a plain XOR of four table
// lookups at block-cipher time. Matches twofish.c's fullKey.
func fullKey(S [4]uint32, k int) (QF [4][256]uint32) {
	for i := 0; i < 256; i++ {
		y0, y1, y2, y3 := qPermute(byte(i), byte(i), byte(i), byte(i), S, k)

		QF[0][i] = uint32(multEF[y0])<<24 | uint32(multEF[y0])<<16 | uint32(mult5B[y0])<<8 | uint32(y0)
		QF[1][i] = uint32(y1)<<24 | uint32(mult5B[y1])<<16 | uint32(multEF[y1])<<8 | uint32(multEF[y1])
		QF[2][i] = uint32(multEF[y2])<<24 | uint32(y2)<<16 | uint32(multEF[y2])<<8 | uint32(mult5B[y2])
		QF[3][i] = uint32(mult5B[y3])<<24 | uint32(multEF[y3])<<16 | uint32(y3)<<8 | uint32(mult5B[y3])
	}
	return
}

// setKey runs the full key schedule: S-box key derivation via the RS
// matrix, 40 whitening/round keys, and the four keyed QF tables. keyBytes
// must already be validated to be 16, 24 or 32 bytes long.
func setKey(keyBytes []byte) (K [40]uint32, QF [4][256]uint32) {
	k := len(keyBytes) / 8

	var Me, Mo [4]uint32
	var S [4]uint32

	for i := 0; i < k; i++ {
		Me[i] = leWord(keyBytes[8*i : 8*i+4])
		Mo[i] = leWord(keyBytes[8*i+4 : 8*i+8])

		var vector [8]byte
		vector[0], vector[1], vector[2], vector[3] = b0(Me[i]), b1(Me[i]), b2(Me[i]), b3(Me[i])
		vector[4], vector[5], vector[6], vector[7] = b0(Mo[i]), b1(Mo[i]), b2(Mo[i]), b3(Mo[i])
		S[k-i-1] = rsMatrixMultiply(vector)
	}

	for i := 0; i < 20; i++ {
		A := h(uint32(2*i)*mdsRho, Me, k)
		B := rotl32(h(uint32(2*i+1)*mdsRho, Mo, k), 8)
		K[2*i] = A + B
		K[2*i+1] = rotl32(A+2*B, 9)
	}

	QF = fullKey(S, k)
	return
}
