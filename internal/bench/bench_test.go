package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunMPRSASmallDuration(t *testing.T) {
	res, err := RunMPRSA(MPRSAOptions{KeySize: 512, B: 2, Duration: 40 * time.Millisecond})
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.KeyGenOps, uint64(1))
	require.Greater(t, res.EncryptOps, uint64(0))
	require.Greater(t, res.DecryptOps, uint64(0))
	require.Greater(t, res.EncryptOpsPerS, 0.0)
	require.Greater(t, res.DecryptOpsPerS, 0.0)
}

func TestRunTwofishSmallDuration(t *testing.T) {
	res, err := RunTwofish(TwofishOptions{KeyLen: 16, Duration: 20 * time.Millisecond})
	require.NoError(t, err)
	require.Greater(t, res.Blocks, uint64(0))
	require.Greater(t, res.BlocksPerSec, 0.0)
}

func TestRunMPRSAReportsProgress(t *testing.T) {
	var calls int
	var lastElapsed, lastTotal time.Duration
	_, err := RunMPRSA(MPRSAOptions{
		KeySize:  512,
		B:        2,
		Duration: 40 * time.Millisecond,
		Progress: func(elapsed, total time.Duration) {
			calls++
			lastElapsed, lastTotal = elapsed, total
		},
	})
	require.NoError(t, err)
	require.Greater(t, calls, 0)
	require.Greater(t, lastTotal, time.Duration(0))
	require.GreaterOrEqual(t, lastElapsed, time.Duration(0))
}

func TestRunTwofishReportsProgress(t *testing.T) {
	var calls int
	_, err := RunTwofish(TwofishOptions{
		KeyLen:   16,
		Duration: 20 * time.Millisecond,
		Progress: func(elapsed, total time.Duration) {
			calls++
			require.Equal(t, 20*time.Millisecond, total)
		},
	})
	require.NoError(t, err)
	require.Greater(t, calls, 0)
}

func TestEstimateTime(t *testing.T) {
	require.Equal(t, 10*time.Second, EstimateTime(1000, 100.0))
	require.Equal(t, time.Duration(0), EstimateTime(1000, 0))
	require.Equal(t, time.Duration(0), EstimateTime(1000, -10))
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30.0s"},
		{90 * time.Second, "1.5m"},
		{2 * time.Hour, "2.0h"},
		{25 * time.Hour, "1.0d"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, FormatDuration(c.d))
	}
}

func TestProgressBar(t *testing.T) {
	pb := NewProgressBar(100)
	require.EqualValues(t, 100, pb.total)
	require.EqualValues(t, 0, pb.current)

	pb.Update(50)
	require.EqualValues(t, 50, pb.current)

	pb.Finish()
	require.Equal(t, pb.total, pb.current)
}
