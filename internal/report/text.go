package report

import (
	"context"
	"fmt"
	"io"
)

// Text prints the classic benchmark summary block.
type Text struct {
	W io.Writer
}

func (r Text) ReportTiming(_ context.Context, t Timing) error {
	secs := t.Seconds()
	rate := func(n int64) float64 {
		if secs <= 0 {
			return 0
		}
		return float64(n) / secs
	}

	lines := []string{
		fmt.Sprintf("Total Tasks %d", t.Tasks),
		fmt.Sprintf("Total Dependencies %d", t.Dependencies),
		fmt.Sprintf("Total FLOPs %d", t.Flops),
		fmt.Sprintf("Total Bytes %d", t.Bytes),
		fmt.Sprintf("Elapsed Time %e seconds", secs),
		fmt.Sprintf("FLOP/s %e", rate(t.Flops)),
		fmt.Sprintf("B/s %e", rate(t.Bytes)),
	}
	if t.SkippedPoints > 0 || t.SkippedEdges > 0 {
		lines = append(lines, fmt.Sprintf("Skipped Points %d", t.SkippedPoints), fmt.Sprintf("Skipped Edges %d", t.SkippedEdges))
	}
	if t.Mismatches > 0 {
		lines = append(lines, fmt.Sprintf("Verification Mismatches %d", t.Mismatches))
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(r.W, l); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
