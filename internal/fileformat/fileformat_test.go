package fileformat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"cryptocore/pkg/cryptoerr"
)

func genkeyForTest(t *testing.T, dir, stem, passphrase string) *GenKeyResult {
	t.Helper()
	res, err := GenKey(GenKeyOptions{
		KeySize:    1024,
		B:          2,
		OutputStem: filepath.Join(dir, stem),
		Passphrase: passphrase,
	})
	require.NoError(t, err)
	return res
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	genkeyForTest(t, dir, "alice", "")

	plain := []byte("the quick brown fox jumps over the lazy dog, repeated a few times to span multiple blocks")
	inputPath := filepath.Join(dir, "message.txt")
	require.NoError(t, os.WriteFile(inputPath, plain, 0o644))

	lockedPath := filepath.Join(dir, "message.txt.locked")
	encRes, err := Encrypt(EncryptOptions{
		PublicKeyPath: filepath.Join(dir, "alice.pub"),
		InputPath:     inputPath,
		OutputPath:    lockedPath,
	})
	require.NoError(t, err)
	require.Equal(t, len(plain), encRes.PlaintextSize)

	outPath := filepath.Join(dir, "message.txt.out")
	decRes, err := Decrypt(DecryptOptions{
		PrivateKeyPath: filepath.Join(dir, "alice.priv"),
		InputPath:      lockedPath,
		OutputPath:     outPath,
	})
	require.NoError(t, err)
	require.Equal(t, len(plain), decRes.PlaintextSize)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestEncryptDecryptEmptyFile(t *testing.T) {
	dir := t.TempDir()
	genkeyForTest(t, dir, "bob", "")

	inputPath := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(inputPath, nil, 0o644))

	lockedPath := filepath.Join(dir, "empty.txt.locked")
	_, err := Encrypt(EncryptOptions{
		PublicKeyPath: filepath.Join(dir, "bob.pub"),
		InputPath:     inputPath,
		OutputPath:    lockedPath,
	})
	require.NoError(t, err)

	outPath := filepath.Join(dir, "empty.txt.out")
	_, err = Decrypt(DecryptOptions{
		PrivateKeyPath: filepath.Join(dir, "bob.priv"),
		InputPath:      lockedPath,
		OutputPath:     outPath,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPassphraseSealedPrivateKey(t *testing.T) {
	dir := t.TempDir()
	res := genkeyForTest(t, dir, "carol", "correct horse battery staple")
	require.True(t, res.Sealed)

	inputPath := filepath.Join(dir, "secret.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("shh"), 0o644))
	lockedPath := filepath.Join(dir, "secret.txt.locked")
	_, err := Encrypt(EncryptOptions{
		PublicKeyPath: filepath.Join(dir, "carol.pub"),
		InputPath:     inputPath,
		OutputPath:    lockedPath,
	})
	require.NoError(t, err)

	outPath := filepath.Join(dir, "secret.txt.out")
	_, err = Decrypt(DecryptOptions{
		PrivateKeyPath: filepath.Join(dir, "carol.priv"),
		Passphrase:     "correct horse battery staple",
		InputPath:      lockedPath,
		OutputPath:     outPath,
	})
	require.NoError(t, err)

	_, err = Decrypt(DecryptOptions{
		PrivateKeyPath: filepath.Join(dir, "carol.priv"),
		Passphrase:     "wrong passphrase",
		InputPath:      lockedPath,
		OutputPath:     outPath,
	})
	require.Error(t, err)
}

func TestCheckReportsEnvelopeMetadata(t *testing.T) {
	dir := t.TempDir()
	genkeyForTest(t, dir, "dave", "")

	inputPath := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("metadata only, please"), 0o644))
	lockedPath := filepath.Join(dir, "report.txt.locked")
	_, err := Encrypt(EncryptOptions{
		PublicKeyPath: filepath.Join(dir, "dave.pub"),
		InputPath:     inputPath,
		OutputPath:    lockedPath,
	})
	require.NoError(t, err)

	res, err := Check(CheckOptions{InputPath: lockedPath})
	require.NoError(t, err)
	// key_size in the envelope is the modulus's actual bit length (N.BitLen()),
	// not the nominal key_size genkey was asked for: the bit-size split
	// bits(p)+bits(q) does not sum back to key_size for every b (see DESIGN.md).
	require.Greater(t, res.KeySize, uint32(0))
	require.Less(t, res.KeySize, uint32(1024))
	require.Greater(t, res.BodyBytes, 0)
	require.Greater(t, res.TotalFileBytes, int64(0))

	priv, err := LoadPrivateKey(filepath.Join(dir, "dave.priv"), "")
	require.NoError(t, err)
	require.EqualValues(t, priv.KeySize, res.KeySize)
}

func TestReadEnvelopeRejectsTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.locked")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = ReadEnvelope(f)
	require.True(t, errors.Is(err, cryptoerr.ErrCorruptEnvelope))
}

func TestPKCS7PadUnpadRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 17, 31, 32} {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i)
		}
		padded := pkcs7Pad(buf, 16)
		require.Equal(t, 0, len(padded)%16)
		unpadded, err := pkcs7Unpad(padded, 16)
		require.NoError(t, err)
		require.Equal(t, buf, unpadded)
	}
}

func TestPKCS7UnpadRejectsCorruptPadding(t *testing.T) {
	buf := make([]byte, 16)
	buf[15] = 0
	_, err := pkcs7Unpad(buf, 16)
	require.Error(t, err)

	buf2 := make([]byte, 16)
	for i := range buf2 {
		buf2[i] = 5
	}
	buf2[10] = 9
	_, err = pkcs7Unpad(buf2, 16)
	require.Error(t, err)
}
