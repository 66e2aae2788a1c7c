// Package cryptoerr defines the shared vocabulary of error kinds raised by
// pkg/bigint, pkg/mprsa, pkg/twofish and internal/fileformat. Errors are
// values: nothing in this module logs, and nothing retries except the
// internal coprimality loop in mprsa.GenerateKeys, which never surfaces an
// error of its own.
package cryptoerr

import "fmt"

// Kind identifies the class of failure so callers can branch on it with
// errors.Is without parsing message text.
type Kind int

const (
	// MessageTooLarge is returned when an MPRSA plaintext integer is >= n.
	MessageTooLarge Kind = iota + 1
	// CiphertextTooLarge is returned when an MPRSA ciphertext integer is >= n.
	CiphertextTooLarge
	// MalformedKey is returned by key import when the wire format is invalid.
	MalformedKey
	// BadBlockSize is returned when a Twofish block is not exactly 16 bytes.
	BadBlockSize
	// BadKeySize is returned when a Twofish key is not 16/24/32 bytes, or an
	// MPRSA context is constructed with invalid key_size/b parameters.
	BadKeySize
	// AllocationFailure is returned when a resource an operation needs cannot
	// be obtained: a short read from a randomness source, a non-positive bit
	// count for random generation, or a file that cannot be opened, read or
	// written. The name is kept from the façade's GMP-backed origin.
	AllocationFailure
	// InternalInvariantViolated marks a condition that correct key material
	// can never produce (e.g. a modular inverse that does not exist). It
	// indicates corrupt keys or a bug, not caller misuse.
	InternalInvariantViolated
	// CorruptEnvelope is returned when an on-disk fileformat container is
	// truncated, has an unsupported version, or otherwise fails structural
	// validation before any cryptographic operation is attempted on it.
	CorruptEnvelope
)

func (k Kind) String() string {
	switch k {
	case MessageTooLarge:
		return "message too large"
	case CiphertextTooLarge:
		return "ciphertext too large"
	case MalformedKey:
		return "malformed key"
	case BadBlockSize:
		return "bad block size"
	case BadKeySize:
		return "bad key size"
	case AllocationFailure:
		return "allocation failure"
	case InternalInvariantViolated:
		return "internal invariant violated"
	case CorruptEnvelope:
		return "corrupt envelope"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type returned across this module. It carries a
// Kind for errors.Is matching and an optional wrapped cause for errors.As /
// errors.Unwrap chains.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "mprsa.Decrypt"
	Message string // human-readable detail
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Cause)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, SomeKind) work by comparing against a bare Kind
// sentinel such as the package-level Err* values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an *Error for the given kind, operation, and detail.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Wrap constructs an *Error that also carries an underlying cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// sentinel returns a bare *Error carrying only a Kind, suitable for use as
// the target of errors.Is.
func sentinel(k Kind) *Error { return &Error{Kind: k} }

// Sentinels for errors.Is(err, cryptoerr.ErrMessageTooLarge) style checks.
var (
	ErrMessageTooLarge           = sentinel(MessageTooLarge)
	ErrCiphertextTooLarge        = sentinel(CiphertextTooLarge)
	ErrMalformedKey              = sentinel(MalformedKey)
	ErrBadBlockSize              = sentinel(BadBlockSize)
	ErrBadKeySize                = sentinel(BadKeySize)
	ErrAllocationFailure         = sentinel(AllocationFailure)
	ErrInternalInvariantViolated = sentinel(InternalInvariantViolated)
	ErrCorruptEnvelope           = sentinel(CorruptEnvelope)
)
