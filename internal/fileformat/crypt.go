package fileformat

import (
	"crypto/rand"
	"os"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/cryptoerr"
	"cryptocore/pkg/twofish"
)

// fileKeyLen is the size of the random per-file Twofish key, chosen to key
// Twofish-256.
const fileKeyLen = 32

// EncryptOptions configures a single file encryption, grounded on the
// teacher's EncryptOptions flat-struct CLI parameter shape.
type EncryptOptions struct {
	PublicKeyPath string
	InputPath     string
	OutputPath    string
}

// EncryptResult reports sizes the way the teacher's EncryptResult does.
type EncryptResult struct {
	InputPath      string
	OutputPath     string
	PlaintextSize  int
	CiphertextSize int
}

// Encrypt reads opts.InputPath, encrypts it under a fresh random Twofish
// key, wraps that key as a single MPRSA integer under the recipient's public
// key, and writes the hybrid envelope to opts.OutputPath.
func Encrypt(opts EncryptOptions) (*EncryptResult, error) {
	const op = "fileformat.Encrypt"

	pub, err := LoadPublicKey(opts.PublicKeyPath)
	if err != nil {
		return nil, err
	}

	plaintext, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "reading input file", err)
	}

	fileKey := make([]byte, fileKeyLen)
	if _, err := rand.Read(fileKey); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "generating file key", err)
	}

	keySizeBytes := (pub.KeySize + 7) / 8
	if keySizeBytes <= fileKeyLen {
		return nil, cryptoerr.New(cryptoerr.BadKeySize, op, "public key too small to wrap a 32-byte file key")
	}

	cipher, err := twofish.NewCipher(fileKey)
	if err != nil {
		return nil, err
	}

	var iv [16]byte
	if _, err := rand.Read(iv[:]); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "generating iv", err)
	}

	padded := pkcs7Pad(plaintext, twofish.BlockSize)
	body, err := cbcEncrypt(cipher, iv, padded)
	if err != nil {
		return nil, err
	}

	m := bigint.FromBytes(fileKey)
	c, err := pub.Encrypt(m)
	if err != nil {
		return nil, err
	}

	env := &Envelope{
		Version:    CurrentVersion,
		KeySize:    uint32(pub.KeySize),
		WrappedKey: c.FillBytes(keySizeBytes),
		IV:         iv,
		Body:       body,
	}

	out, err := os.Create(opts.OutputPath)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "creating output file", err)
	}
	defer out.Close()
	if err := WriteEnvelope(out, env); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "writing envelope", err)
	}

	return &EncryptResult{
		InputPath:      opts.InputPath,
		OutputPath:     opts.OutputPath,
		PlaintextSize:  len(plaintext),
		CiphertextSize: len(env.WrappedKey) + len(env.Body),
	}, nil
}

// DecryptOptions configures a single file decryption.
type DecryptOptions struct {
	PrivateKeyPath string
	Passphrase     string
	InputPath      string
	OutputPath     string
}

// DecryptResult reports the recovered plaintext size.
type DecryptResult struct {
	InputPath     string
	OutputPath    string
	PlaintextSize int
}

// Decrypt reverses Encrypt.
func Decrypt(opts DecryptOptions) (*DecryptResult, error) {
	const op = "fileformat.Decrypt"

	priv, err := LoadPrivateKey(opts.PrivateKeyPath, opts.Passphrase)
	if err != nil {
		return nil, err
	}

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "opening input file", err)
	}
	defer in.Close()

	env, err := ReadEnvelope(in)
	if err != nil {
		return nil, err
	}
	if uint32(priv.KeySize) != env.KeySize {
		return nil, cryptoerr.New(cryptoerr.MalformedKey, op, "private key does not match envelope parameters")
	}

	c := bigint.FromBytes(env.WrappedKey)
	m, err := priv.Decrypt(c)
	if err != nil {
		return nil, err
	}
	fileKey := m.FillBytes(fileKeyLen)

	cipher, err := twofish.NewCipher(fileKey)
	if err != nil {
		return nil, err
	}

	padded, err := cbcDecrypt(cipher, env.IV, env.Body)
	if err != nil {
		return nil, err
	}
	plaintext, err := pkcs7Unpad(padded, twofish.BlockSize)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(opts.OutputPath, plaintext, 0o644); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "writing output file", err)
	}

	return &DecryptResult{
		InputPath:     opts.InputPath,
		OutputPath:    opts.OutputPath,
		PlaintextSize: len(plaintext),
	}, nil
}

