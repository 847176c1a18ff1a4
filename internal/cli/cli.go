package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/serialbench/internal/app"
)

// graphSeparator splits the argument list into one segment per graph.
const graphSeparator = "-and"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// varFlags collects repeated -var name=value flags.
type varFlags map[string]string

func (v varFlags) String() string {
	parts := make([]string, 0, len(v))
	for k, val := range v {
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v varFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	v[name] = value
	return nil
}

// bindGraphFlags registers the per-graph flags on fs and returns the struct
// they populate.
func bindGraphFlags(fs *flag.FlagSet) *app.GraphFlags {
	g := &app.GraphFlags{}
	fs.IntVar(&g.Steps, "steps", 4, "Number of timesteps.")
	fs.IntVar(&g.Width, "width", 4, "Maximum number of points per timestep.")
	fs.IntVar(&g.NbFields, "field", 5, "Number of rows kept per graph.")
	fs.StringVar(&g.Type, "type", "trivial", "Dependence pattern.")
	fs.IntVar(&g.Radix, "radix", 3, "Fan-in for the nearest and spread patterns.")
	fs.IntVar(&g.Period, "period", 0, "Number of dependence sets for the spread pattern.")
	fs.StringVar(&g.Kernel, "kernel", "empty", "Kernel type run at every point.")
	fs.IntVar(&g.Iterations, "iter", 0, "Iterations for compute_bound and memory_bound kernels.")
	fs.StringVar(&g.Duration, "duration", "0s", "Spin duration for the busy_wait kernel.")
	fs.IntVar(&g.OutputBytes, "output", 16, "Output bytes per task.")
	fs.IntVar(&g.ScratchBytes, "scratch", 0, "Scratch bytes per task.")
	return g
}

// splitGraphs splits args on the graph separator.
func splitGraphs(args []string) [][]string {
	segments := [][]string{{}}
	for _, a := range args {
		if a == graphSeparator || a == "-"+graphSeparator {
			segments = append(segments, []string{})
			continue
		}
		segments[len(segments)-1] = append(segments[len(segments)-1], a)
	}
	return segments
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	segments := splitGraphs(args)

	flagSet := flag.NewFlagSet("serialbench", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
SerialBench - A serial executor for synthetic task-graph benchmarks.

Usage:
  serialbench [options] [CONFIG_PATH]
  serialbench [options] [graph options] [-and graph options ...]

Arguments:
  CONFIG_PATH
    Path to a single .hcl file or a directory containing .hcl files.
    Without it, graphs are described by the graph options; use -and to
    separate several graphs.

Options:
`)
		flagSet.PrintDefaults()
	}

	vars := varFlags{}
	configFlag := flagSet.String("config", "", "Path to the config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the config file or directory (shorthand).")
	flagSet.Var(vars, "var", "Override a config variable, as name=value. Repeatable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	traceFlag := flagSet.Bool("trace", false, "Log every dispatched point at debug level.")
	verifyFlag := flagSet.Bool("verify", false, "Check that every input tile carries the expected predecessor stamp.")
	socketFlag := flagSet.String("report-socketio", "", "Also emit the timing report to this socket.io server URL.")
	eventFlag := flagSet.String("report-event", "timing", "Event name used with -report-socketio.")
	maxTileFlag := flagSet.Int64("max-tile-bytes", 0, "Refuse to allocate more tile memory than this. 0 is unlimited.")
	first := bindGraphFlags(flagSet)

	if err := flagSet.Parse(segments[0]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	graphFlagsSet := false
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "steps", "width", "field", "type", "radix", "period", "kernel", "iter", "duration", "output", "scratch":
			graphFlagsSet = true
		}
	})

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if flagSet.NArg() > 1 || (flagSet.NArg() == 1 && path != flagSet.Arg(0)) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args())}
	}
	slog.Debug("Config path determined.", "path", path)

	var graphs []app.GraphFlags
	if path != "" {
		if graphFlagsSet || len(segments) > 1 {
			return nil, false, &ExitError{Code: 2, Message: "graph options cannot be combined with a config path"}
		}
	} else {
		if !graphFlagsSet && len(segments) == 1 {
			slog.Debug("No config path or graph options provided, printing usage and exiting.")
			flagSet.Usage()
			return nil, true, nil
		}
		graphs = append(graphs, *first)
		for i, seg := range segments[1:] {
			fs := flag.NewFlagSet(fmt.Sprintf("graph %d", i+1), flag.ContinueOnError)
			fs.SetOutput(output)
			g := bindGraphFlags(fs)
			if err := fs.Parse(seg); err != nil {
				if err == flag.ErrHelp {
					return nil, true, nil
				}
				return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("graph %d: %v", i+1, err)}
			}
			if fs.NArg() > 0 {
				return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("graph %d: unexpected arguments: %v", i+1, fs.Args())}
			}
			graphs = append(graphs, *g)
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	event := *eventFlag
	if *socketFlag == "" {
		event = ""
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath:    path,
		Vars:          vars,
		Graphs:        graphs,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		Trace:         *traceFlag,
		Verify:        *verifyFlag,
		SocketIOURL:   *socketFlag,
		SocketIOEvent: event,
		MaxTileBytes:  *maxTileFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
