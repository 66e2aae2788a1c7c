package fileformat

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"cryptocore/pkg/cryptoerr"
)

// wrappedKeyPrefix marks a private-key file as passphrase-wrapped. Files
// without this prefix are stored as plain mprsa.ExportPrivate() text.
const wrappedKeyPrefix = "cryptocore-sealed-v1:"

// Argon2Params mirrors the teacher's Argon2idParams shape (memory/time/
// parallelism/output length) for deriving a passphrase-stretched wrapping
// key, grounded on src/crypto/tlp.go's deriveBaseFromPassword.
type Argon2Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	KeyLen      uint32
}

// DefaultArgon2Params are conservative interactive-use parameters, the same
// values the teacher ships as DefaultArgon2idParams.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Time:        3,
	Parallelism: 1,
	KeyLen:      32,
}

func derivePassphraseKey(passphrase string, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey([]byte(passphrase), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
}

// sealPrivateKey encrypts plaintext private-key material under a
// passphrase-derived key, returning the wire text stored in the ".priv"
// file: the prefix, then salt, nonce and ciphertext, each hex-encoded and
// separated by colons.
func sealPrivateKey(plaintext []byte, passphrase string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", cryptoerr.Wrap(cryptoerr.AllocationFailure, "fileformat.sealPrivateKey", "reading salt", err)
	}
	key := derivePassphraseKey(passphrase, salt, DefaultArgon2Params)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, "fileformat.sealPrivateKey", "constructing AEAD", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", cryptoerr.Wrap(cryptoerr.AllocationFailure, "fileformat.sealPrivateKey", "reading nonce", err)
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)

	return wrappedKeyPrefix +
		hex.EncodeToString(salt) + ":" +
		hex.EncodeToString(nonce) + ":" +
		hex.EncodeToString(sealed), nil
}

// unsealPrivateKey reverses sealPrivateKey.
func unsealPrivateKey(wireText string, passphrase string) ([]byte, error) {
	const op = "fileformat.unsealPrivateKey"
	rest := strings.TrimPrefix(wireText, wrappedKeyPrefix)
	parts := strings.Split(rest, ":")
	if len(parts) != 3 {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, op, "expected salt:nonce:ciphertext")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, op, "decoding salt", err)
	}
	nonce, err := hex.DecodeString(parts[1])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, op, "decoding nonce", err)
	}
	sealed, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, op, "decoding ciphertext", err)
	}

	key := derivePassphraseKey(passphrase, salt, DefaultArgon2Params)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.InternalInvariantViolated, op, "constructing AEAD", err)
	}
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, op, "wrong passphrase or corrupt key file", err)
	}
	return plaintext, nil
}

func isSealed(wireText string) bool {
	return strings.HasPrefix(wireText, wrappedKeyPrefix)
}
