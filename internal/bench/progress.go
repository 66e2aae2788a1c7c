// Package bench provides benchmarking helpers for the two cores: timed
// throughput sampling and a terminal progress bar, grounded on the
// teacher's utils.ProgressBar and operations.RunBenchmark.
package bench

import (
	"fmt"
	"time"
)

// ProgressBar renders a single-line, redrawn progress indicator for a
// long-running operation with a known total. runBench drives one bar per
// benchmark (MPRSA keygen+encrypt+decrypt, Twofish block throughput),
// fed by the Progress callback on MPRSAOptions/TwofishOptions, counting
// milliseconds elapsed against the phase's planned duration.
type ProgressBar struct {
	total     uint64
	current   uint64
	startTime time.Time
	lastPrint time.Time
	width     int
}

// NewProgressBar creates a progress bar for total units of work.
func NewProgressBar(total uint64) *ProgressBar {
	return &ProgressBar{
		total:     total,
		startTime: time.Now(),
		lastPrint: time.Now(),
		width:     50,
	}
}

// Update advances the bar to current, redrawing at most every 100ms so a
// tight loop does not flood the terminal.
func (pb *ProgressBar) Update(current uint64) {
	pb.current = current

	now := time.Now()
	if now.Sub(pb.lastPrint) < 100*time.Millisecond && current < pb.total {
		return
	}
	pb.lastPrint = now
	pb.print()
}

// Finish draws the bar at 100% and emits a trailing newline.
func (pb *ProgressBar) Finish() {
	pb.current = pb.total
	pb.print()
	fmt.Println()
}

func (pb *ProgressBar) print() {
	percentage := float64(pb.current) / float64(pb.total) * 100
	filled := int(float64(pb.width) * float64(pb.current) / float64(pb.total))

	elapsed := time.Since(pb.startTime)
	var eta time.Duration
	if pb.current > 0 {
		eta = time.Duration(float64(elapsed)*(float64(pb.total)/float64(pb.current)) - float64(elapsed))
	}

	bar := "["
	for i := 0; i < pb.width; i++ {
		switch {
		case i < filled:
			bar += "="
		case i == filled:
			bar += ">"
		default:
			bar += " "
		}
	}
	bar += "]"

	fmt.Printf("\r%s %.1f%% (%d/%d) elapsed: %v eta: %v",
		bar, percentage, pb.current, pb.total,
		elapsed.Round(time.Second), eta.Round(time.Second))
}

// EstimateTime projects how long `operations` units take at opsPerSecond.
func EstimateTime(operations uint64, opsPerSecond float64) time.Duration {
	if opsPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(operations) / opsPerSecond * float64(time.Second))
}

// FormatDuration renders d in the coarsest human-friendly unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
