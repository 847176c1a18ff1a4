package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/serialbench/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"positional", []string{"bench.hcl"}},
		{"long flag", []string{"-config", "bench.hcl"}},
		{"short flag", []string{"-c", "bench.hcl"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.NoError(t, err)
			assert.False(t, exit)
			assert.Equal(t, "bench.hcl", cfg.ConfigPath)
			assert.Empty(t, cfg.Graphs)
			assert.Equal(t, "text", cfg.LogFormat)
			assert.Equal(t, "warn", cfg.LogLevel)
		})
	}
}

func TestParse_GlobalOptions(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-var", "steps=10",
		"-var", "label=a=b",
		"-log-format", "JSON",
		"-log-level", "debug",
		"-trace",
		"-verify",
		"-report-socketio", "http://localhost:3000",
		"-report-event", "bench",
		"-max-tile-bytes", "1024",
		"dir",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"steps": "10", "label": "a=b"}, cfg.Vars)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Trace)
	assert.True(t, cfg.Verify)
	assert.Equal(t, "http://localhost:3000", cfg.SocketIOURL)
	assert.Equal(t, "bench", cfg.SocketIOEvent)
	assert.Equal(t, int64(1024), cfg.MaxTileBytes)
}

func TestParse_GraphFlags(t *testing.T) {
	cfg, exit, err := Parse([]string{
		"-steps", "10", "-width", "8", "-type", "stencil_1d", "-kernel", "compute_bound", "-iter", "32",
		"-and",
		"-type", "fft", "-output", "64", "-scratch", "128",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)
	require.Empty(t, cfg.ConfigPath)

	want := []app.GraphFlags{
		{Steps: 10, Width: 8, NbFields: 5, Type: "stencil_1d", Radix: 3, Kernel: "compute_bound", Iterations: 32, Duration: "0s", OutputBytes: 16},
		{Steps: 4, Width: 4, NbFields: 5, Type: "fft", Radix: 3, Kernel: "empty", Duration: "0s", OutputBytes: 64, ScratchBytes: 128},
	}
	if diff := cmp.Diff(want, cfg.Graphs); diff != "" {
		t.Errorf("graphs mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExitsWithUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-nope"}, "flag provided but not defined: -nope"},
		{"bad log format", []string{"-log-format", "xml", "a.hcl"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "trace", "a.hcl"}, "invalid log-level"},
		{"bad var", []string{"-var", "novalue", "a.hcl"}, "expected name=value"},
		{"graph flags with path", []string{"-steps", "3", "a.hcl"}, "cannot be combined"},
		{"extra positional", []string{"a.hcl", "b.hcl"}, "unexpected arguments"},
		{"bad later graph", []string{"-steps", "3", "-and", "-width", "x"}, "graph 1:"},
		{"var without path", []string{"-var", "a=1", "-steps", "3"}, "-var requires a config path"},
		{"zero width", []string{"-width", "0"}, "width must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}

func TestSplitGraphs(t *testing.T) {
	got := splitGraphs([]string{"-steps", "1", "-and", "--and", "-width", "2"})
	want := [][]string{{"-steps", "1"}, {}, {"-width", "2"}}
	assert.Equal(t, want, got)
}
