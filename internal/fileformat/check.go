package fileformat

import (
	"os"

	"cryptocore/pkg/cryptoerr"
)

// CheckOptions configures an envelope inspection.
type CheckOptions struct {
	InputPath string
}

// CheckResult reports an envelope's metadata without decrypting it,
// grounded on the teacher's CheckResult / operations.CheckFile.
type CheckResult struct {
	InputPath       string
	Version         uint32
	KeySize         uint32
	WrappedKeyBytes int
	BodyBytes       int
	TotalFileBytes  int64
}

// Check inspects an envelope's header and reports its shape.
func Check(opts CheckOptions) (*CheckResult, error) {
	const op = "fileformat.Check"

	in, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "opening input file", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return nil, cryptoerr.Wrap(cryptoerr.AllocationFailure, op, "stat-ing input file", err)
	}

	env, err := ReadEnvelope(in)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		InputPath:       opts.InputPath,
		Version:         env.Version,
		KeySize:         env.KeySize,
		WrappedKeyBytes: len(env.WrappedKey),
		BodyBytes:       len(env.Body),
		TotalFileBytes:  info.Size(),
	}, nil
}
