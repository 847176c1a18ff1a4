package busywait

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	k, err := build(context.Background(), &Input{Duration: "2ms"}, graph.Params{})
	require.NoError(t, err)
	assert.Equal(t, Kernel{D: 2 * time.Millisecond}, k)

	start := time.Now()
	k.Execute(0, 0, nil, nil, nil)
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)
}

func TestBuild_Errors(t *testing.T) {
	_, err := build(context.Background(), &Input{Duration: "soon"}, graph.Params{})
	assert.ErrorContains(t, err, "failed to parse duration")

	_, err = build(context.Background(), &Input{Duration: "-1s"}, graph.Params{})
	assert.ErrorContains(t, err, "must not be negative")
}
