package report

import (
	"fmt"
	"io"
)

// GraphInfo is the configuration of one graph as shown before a run.
type GraphInfo struct {
	Name         string
	Type         string
	Timesteps    int
	MaxWidth     int
	NbFields     int
	Radix        int
	Period       int
	Kernel       string
	FlopsPerTask int64
	BytesPerTask int64
	OutputBytes  int
	ScratchBytes int
}

// Display writes the run configuration block. It is printed before the timer
// starts.
func Display(w io.Writer, graphs []GraphInfo) error {
	lines := []string{
		"Running Task Benchmark",
		"  Configuration:",
	}
	for i, g := range graphs {
		header := fmt.Sprintf("    Task Graph %d:", i+1)
		if g.Name != "" {
			header = fmt.Sprintf("    Task Graph %d (%s):", i+1, g.Name)
		}
		lines = append(lines,
			header,
			fmt.Sprintf("      Time Steps: %d", g.Timesteps),
			fmt.Sprintf("      Max Width: %d", g.MaxWidth),
			fmt.Sprintf("      Dependence Type: %s", g.Type),
			fmt.Sprintf("      Radix: %d", g.Radix),
			fmt.Sprintf("      Period: %d", g.Period),
			fmt.Sprintf("      Fields: %d", g.NbFields),
			"      Kernel:",
			fmt.Sprintf("        Type: %s", g.Kernel),
			fmt.Sprintf("        FLOPs Per Task: %d", g.FlopsPerTask),
			fmt.Sprintf("        Bytes Per Task: %d", g.BytesPerTask),
			fmt.Sprintf("      Output Bytes: %d", g.OutputBytes),
			fmt.Sprintf("      Scratch Bytes: %d", g.ScratchBytes),
		)
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
	}
	return nil
}
