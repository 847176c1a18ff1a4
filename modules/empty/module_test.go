package empty

import (
	"context"
	"testing"

	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/hcl"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/specialistvlad/serialbench/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	k, err := r.Build(context.Background(), &config.KernelDefinition{Type: "empty"}, hcl.NewConverter(nil), graph.Params{})
	require.NoError(t, err)

	out := []byte{1, 2, 3}
	k.Execute(0, 0, out, [][]byte{out}, nil)
	assert.Equal(t, []byte{1, 2, 3}, out)

	c, ok := k.(kernel.Coster)
	require.True(t, ok)
	assert.Zero(t, c.FlopsPerTask())
}
