package twofish

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"cryptocore/pkg/cryptoerr"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

// TestKAT128AllZero checks the published all-zero-key, all-zero-plaintext
// Twofish-128 known-answer vector.
func TestKAT128AllZero(t *testing.T) {
	key := make([]byte, 16)
	plain := make([]byte, 16)
	want := mustHex(t, "9F589F5CF6122C32B6BFEC2F2AE8C35A")

	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	got, err := c.EncryptBlock(plain)
	if err != nil {
		t.Fatalf("EncryptBlock failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Twofish-128 KAT mismatch: got %X want %X", got, want)
	}

	back, err := c.DecryptBlock(got)
	if err != nil {
		t.Fatalf("DecryptBlock failed: %v", err)
	}
	if !bytes.Equal(back, plain) {
		t.Fatalf("Twofish-128 KAT decrypt mismatch: got %X want %X", back, plain)
	}
}

// TestKAT256AllZero checks the published all-zero-key, all-zero-plaintext
// Twofish-256 known-answer vector.
func TestKAT256AllZero(t *testing.T) {
	key := make([]byte, 32)
	plain := make([]byte, 16)
	want := mustHex(t, "37527BE0052334B89F0CFCCAE87CFA20")

	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	got, err := c.EncryptBlock(plain)
	if err != nil {
		t.Fatalf("EncryptBlock failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Twofish-256 KAT mismatch: got %X want %X", got, want)
	}

	back, err := c.DecryptBlock(got)
	if err != nil {
		t.Fatalf("DecryptBlock failed: %v", err)
	}
	if !bytes.Equal(back, plain) {
		t.Fatalf("Twofish-256 KAT decrypt mismatch: got %X want %X", back, plain)
	}
}

func TestRoundTripAllKeySizes(t *testing.T) {
	plain := []byte("0123456789ABCDEF")
	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i * 7)
		}
		c, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher(%d) failed: %v", keyLen, err)
		}
		enc, err := c.EncryptBlock(plain)
		if err != nil {
			t.Fatalf("EncryptBlock failed: %v", err)
		}
		if bytes.Equal(enc, plain) {
			t.Fatalf("ciphertext equals plaintext for key len %d", keyLen)
		}
		dec, err := c.DecryptBlock(enc)
		if err != nil {
			t.Fatalf("DecryptBlock failed: %v", err)
		}
		if !bytes.Equal(dec, plain) {
			t.Fatalf("round trip mismatch for key len %d: got %X want %X", keyLen, dec, plain)
		}
	}
}

func TestEncryptBlocksDecryptBlocksRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0xAB}, 16)
	c, err := NewCipher(key)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	plain := bytes.Repeat([]byte("sixteen byte blk"), 5)
	enc, err := c.EncryptBlocks(plain)
	if err != nil {
		t.Fatalf("EncryptBlocks failed: %v", err)
	}
	dec, err := c.DecryptBlocks(enc)
	if err != nil {
		t.Fatalf("DecryptBlocks failed: %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Fatalf("multi-block round trip mismatch")
	}
}

func TestNewCipherRejectsBadKeySize(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 31, 33, 64} {
		if _, err := NewCipher(make([]byte, n)); !errors.Is(err, cryptoerr.ErrBadKeySize) {
			t.Fatalf("key length %d: expected BadKeySize, got %v", n, err)
		}
	}
}

func TestBlockOpsRejectBadBlockSize(t *testing.T) {
	c, err := NewCipher(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	if _, err := c.EncryptBlock(make([]byte, 15)); !errors.Is(err, cryptoerr.ErrBadBlockSize) {
		t.Fatalf("expected BadBlockSize for short block, got %v", err)
	}
	if _, err := c.DecryptBlock(make([]byte, 17)); !errors.Is(err, cryptoerr.ErrBadBlockSize) {
		t.Fatalf("expected BadBlockSize for long block, got %v", err)
	}
	if _, err := c.EncryptBlocks(make([]byte, 17)); !errors.Is(err, cryptoerr.ErrBadBlockSize) {
		t.Fatalf("expected BadBlockSize for non-multiple-of-16 buffer, got %v", err)
	}
}

func TestDifferentKeysProduceDifferentCiphertext(t *testing.T) {
	plain := make([]byte, 16)
	c1, _ := NewCipher(make([]byte, 16))
	key2 := make([]byte, 16)
	key2[0] = 1
	c2, _ := NewCipher(key2)

	e1, _ := c1.EncryptBlock(plain)
	e2, _ := c2.EncryptBlock(plain)
	if bytes.Equal(e1, e2) {
		t.Fatalf("distinct keys produced identical ciphertext")
	}
}
