// Package fileformat implements a small hybrid-encryption container binding
// Multi-Power RSA and Twofish together: the body is Twofish-CBC encrypted
// under a random per-file key, and that key is sealed as a single MPRSA
// integer. It is a demo envelope, not a vetted format — there is no AEAD
// over the file body and the chaining mode is hand-rolled, mirroring the
// separation the teacher keeps between its core primitives and its own
// on-disk EncryptedFile layout.
package fileformat

import (
	"bytes"
	"encoding/binary"
	"io"

	"cryptocore/pkg/cryptoerr"
)

// CurrentVersion is the only envelope version this package writes or reads.
const CurrentVersion = 1

// Envelope is the binary container written to a "*.locked" file.
//
// There is no "b" field: b is a property of how the modulus n factors
// (n = p^(b-1)*q) and is not recoverable from the public key (n, e) alone,
// so the encrypting side has no value to record here. Only the recipient's
// private key carries b.
type Envelope struct {
	Version    uint32
	KeySize    uint32 // MPRSA key_size, in bits
	WrappedKey []byte // MPRSA ciphertext integer, big-endian, fixed (KeySize+7)/8 bytes
	IV         [16]byte
	Body       []byte // Twofish-CBC ciphertext, PKCS#7 padded to a 16-byte boundary
}

// WriteEnvelope serializes e in the field order: version, key_size,
// wrapped-key length + bytes, IV, body length + bytes. Matches the teacher's
// WriteEncryptedFile shape of a fixed header followed by a length-prefixed
// variable-size payload.
func WriteEnvelope(w io.Writer, e *Envelope) error {
	var buf bytes.Buffer

	for _, v := range []any{e.Version, e.KeySize, uint32(len(e.WrappedKey))} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if _, err := buf.Write(e.WrappedKey); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, e.IV); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, uint64(len(e.Body))); err != nil {
		return err
	}
	if _, err := buf.Write(e.Body); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadEnvelope parses an Envelope previously written by WriteEnvelope.
func ReadEnvelope(r io.Reader) (*Envelope, error) {
	const op = "fileformat.ReadEnvelope"
	e := &Envelope{}

	if err := binary.Read(r, binary.LittleEndian, &e.Version); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading version", err)
	}
	if e.Version != CurrentVersion {
		return nil, cryptoerr.New(cryptoerr.CorruptEnvelope, op, "unsupported envelope version")
	}
	if err := binary.Read(r, binary.LittleEndian, &e.KeySize); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading key_size", err)
	}

	var wrappedLen uint32
	if err := binary.Read(r, binary.LittleEndian, &wrappedLen); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading wrapped-key length", err)
	}
	e.WrappedKey = make([]byte, wrappedLen)
	if _, err := io.ReadFull(r, e.WrappedKey); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading wrapped key", err)
	}

	if err := binary.Read(r, binary.LittleEndian, &e.IV); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading iv", err)
	}

	var bodyLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bodyLen); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading body length", err)
	}
	e.Body = make([]byte, bodyLen)
	if _, err := io.ReadFull(r, e.Body); err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.CorruptEnvelope, op, "reading body", err)
	}

	return e, nil
}
