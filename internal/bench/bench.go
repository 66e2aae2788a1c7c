package bench

import (
	"time"

	"cryptocore/pkg/bigint"
	"cryptocore/pkg/mprsa"
	"cryptocore/pkg/twofish"
)

// MPRSAOptions configures a keygen/encrypt/decrypt throughput run.
type MPRSAOptions struct {
	KeySize  int
	B        int
	Duration time.Duration

	// Progress, if set, is called after each operation across all three
	// phases with cumulative elapsed time and the run's total estimated
	// duration, mirroring the teacher's SolvePuzzle(puzzle, func(done
	// uint64) { progressBar.Update(done) }) callback.
	Progress func(elapsed, total time.Duration)
}

// MPRSAResult reports operation counts and rates, in the teacher's
// BenchmarkResult idiom.
type MPRSAResult struct {
	KeyGenOps      uint64
	KeyGenElapsed  time.Duration
	KeyGenOpsPerS  float64
	EncryptOps     uint64
	EncryptElapsed time.Duration
	EncryptOpsPerS float64
	DecryptOps     uint64
	DecryptElapsed time.Duration
	DecryptOpsPerS float64
}

// RunMPRSA runs three phases of half of opts.Duration each: key generation,
// then Encrypt calls, then Decrypt calls against the last generated key
// (about 1.5x opts.Duration in total), mirroring the teacher's
// RunBenchmark's split between puzzle setup and the timed squaring loop.
func RunMPRSA(opts MPRSAOptions) (*MPRSAResult, error) {
	half := opts.Duration / 2
	res := &MPRSAResult{}

	runStart := time.Now()
	runTotal := 3 * half
	tick := func() {}
	if opts.Progress != nil {
		tick = func() {
			opts.Progress(time.Since(runStart), runTotal)
		}
	}

	keygenStart := time.Now()
	keygenEnd := keygenStart.Add(half)
	var ctx *mprsa.Context
	for {
		c, err := mprsa.New(opts.KeySize, opts.B)
		if err != nil {
			return nil, err
		}
		if err := c.GenerateKeys(); err != nil {
			return nil, err
		}
		ctx = c
		res.KeyGenOps++
		tick()
		if time.Now().After(keygenEnd) {
			break
		}
	}
	res.KeyGenElapsed = time.Since(keygenStart)
	res.KeyGenOpsPerS = float64(res.KeyGenOps) / res.KeyGenElapsed.Seconds()

	m := bigint.NewInt(12345)
	encStart := time.Now()
	encEnd := encStart.Add(half)
	var c *bigint.Int
	for time.Now().Before(encEnd) {
		var err error
		c, err = ctx.Encrypt(m)
		if err != nil {
			return nil, err
		}
		res.EncryptOps++
		tick()
	}
	res.EncryptElapsed = time.Since(encStart)
	res.EncryptOpsPerS = float64(res.EncryptOps) / res.EncryptElapsed.Seconds()

	decStart := time.Now()
	decEnd := decStart.Add(half)
	for time.Now().Before(decEnd) {
		if _, err := ctx.Decrypt(c); err != nil {
			return nil, err
		}
		res.DecryptOps++
		tick()
	}
	res.DecryptElapsed = time.Since(decStart)
	res.DecryptOpsPerS = float64(res.DecryptOps) / res.DecryptElapsed.Seconds()

	return res, nil
}

// TwofishOptions configures a raw block-throughput run.
type TwofishOptions struct {
	KeyLen   int // 16, 24 or 32
	Duration time.Duration

	// Progress, if set, is called after each batch of 1000 blocks with
	// elapsed time and opts.Duration.
	Progress func(elapsed, total time.Duration)
}

// TwofishResult reports block throughput.
type TwofishResult struct {
	Blocks        uint64
	Elapsed       time.Duration
	BlocksPerSec  float64
	BytesPerSecMB float64
}

// RunTwofish encrypts a single block repeatedly for opts.Duration and
// reports block throughput, mirroring the teacher's benchmarkSquaring
// batching pattern (amortizing time.Now() overhead over a batch of
// operations rather than checking the clock every iteration).
func RunTwofish(opts TwofishOptions) (*TwofishResult, error) {
	key := make([]byte, opts.KeyLen)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := twofish.NewCipher(key)
	if err != nil {
		return nil, err
	}

	block := make([]byte, twofish.BlockSize)
	var blocks uint64
	start := time.Now()
	end := start.Add(opts.Duration)
	for time.Now().Before(end) {
		for i := 0; i < 1000; i++ {
			block, err = c.EncryptBlock(block)
			if err != nil {
				return nil, err
			}
			blocks++
		}
		if opts.Progress != nil {
			opts.Progress(time.Since(start), opts.Duration)
		}
	}
	elapsed := time.Since(start)

	return &TwofishResult{
		Blocks:        blocks,
		Elapsed:       elapsed,
		BlocksPerSec:  float64(blocks) / elapsed.Seconds(),
		BytesPerSecMB: float64(blocks*twofish.BlockSize) / elapsed.Seconds() / (1024 * 1024),
	}, nil
}
