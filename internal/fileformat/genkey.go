package fileformat

import (
	"os"

	"cryptocore/pkg/cryptoerr"
	"cryptocore/pkg/mprsa"
)

// GenKeyOptions configures key generation, mirroring the teacher's
// EncryptOptions-style flat options struct.
type GenKeyOptions struct {
	KeySize    int // MPRSA modulus size in bits
	B          int // multi-power exponent
	OutputStem string
	Passphrase string // if non-empty, the private key file is sealed
}

// GenKeyResult reports what was written, in the teacher's xxxResult idiom.
type GenKeyResult struct {
	PublicKeyPath  string
	PrivateKeyPath string
	KeySize        int
	B              int
	Sealed         bool
}

// GenKey generates a fresh MPRSA keypair and writes "<stem>.pub" and
// "<stem>.priv". When opts.Passphrase is non-empty the private key file is
// sealed with an Argon2id-derived ChaCha20-Poly1305 key, grounded on the
// teacher's password-integration path in src/crypto/tlp.go.
func GenKey(opts GenKeyOptions) (*GenKeyResult, error) {
	const op = "fileformat.GenKey"

	ctx, err := mprsa.New(opts.KeySize, opts.B)
	if err != nil {
		return nil, err
	}
	if err := ctx.GenerateKeys(); err != nil {
		return nil, err
	}
	defer ctx.Release()

	pubPath := opts.OutputStem + ".pub"
	privPath := opts.OutputStem + ".priv"

	if err := os.WriteFile(pubPath, ctx.ExportPublic(), 0o644); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "writing public key", err)
	}

	privText := string(ctx.ExportPrivate())
	sealed := opts.Passphrase != ""
	if sealed {
		wire, err := sealPrivateKey([]byte(privText), opts.Passphrase)
		if err != nil {
			return nil, err
		}
		privText = wire
	}
	if err := os.WriteFile(privPath, []byte(privText), 0o600); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "writing private key", err)
	}

	return &GenKeyResult{
		PublicKeyPath:  pubPath,
		PrivateKeyPath: privPath,
		KeySize:        opts.KeySize,
		B:              opts.B,
		Sealed:         sealed,
	}, nil
}

// LoadPublicKey reads and parses a ".pub" file.
func LoadPublicKey(path string) (*mprsa.Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, "fileformat.LoadPublicKey", "reading file", err)
	}
	return mprsa.ImportPublic(data)
}

// LoadPrivateKey reads and parses a ".priv" file, transparently unsealing it
// if it was written with a passphrase.
func LoadPrivateKey(path, passphrase string) (*mprsa.Context, error) {
	const op = "fileformat.LoadPrivateKey"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.MalformedKey, op, "reading file", err)
	}
	text := string(data)
	if isSealed(text) {
		plain, err := unsealPrivateKey(text, passphrase)
		if err != nil {
			return nil, err
		}
		text = string(plain)
	}
	return mprsa.ImportPrivate([]byte(text))
}
