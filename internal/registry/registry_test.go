package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type spinConfig struct {
	Iterations int `bench:"iterations"`
	Label      string
	hidden     int
}

type stubConverter struct {
	err     error
	targets []any
}

func (c *stubConverter) DecodeBody(_ context.Context, target any, _ map[string]hcl.Expression) error {
	c.targets = append(c.targets, target)
	if c.err != nil {
		return c.err
	}
	target.(*spinConfig).Iterations = 7
	return nil
}

func (c *stubConverter) ToCtyValue(any) (cty.Value, error) { return cty.NilVal, nil }

type spinModule struct{ built []int }

func (m *spinModule) Register(r *Registry) {
	r.RegisterKernel("spin", &RegisteredKernel{
		NewConfig: func() any { return new(spinConfig) },
		Build: func(_ context.Context, cfg any, p graph.Params) (kernel.Kernel, error) {
			c := cfg.(*spinConfig)
			if c.Iterations < 0 {
				return nil, errors.New("negative")
			}
			m.built = append(m.built, c.Iterations, p.MaxWidth)
			return kernel.Func(func(int, int, []byte, [][]byte, []byte) {}), nil
		},
	})
	r.RegisterKernel("none", &RegisteredKernel{
		Build: func(context.Context, any, graph.Params) (kernel.Kernel, error) {
			return kernel.Func(func(int, int, []byte, [][]byte, []byte) {}), nil
		},
	})
}

func newRegistry(m Module) *Registry {
	r := New()
	m.Register(r)
	return r
}

func TestRegisterKernel_Duplicate(t *testing.T) {
	r := newRegistry(&spinModule{})
	assert.Equal(t, []string{"none", "spin"}, r.Types())
	assert.Panics(t, func() { (&spinModule{}).Register(r) })
	assert.Panics(t, func() { r.RegisterKernel("broken", &RegisteredKernel{}) })
}

func TestBuild(t *testing.T) {
	mod := &spinModule{}
	r := newRegistry(mod)
	conv := &stubConverter{}

	k, err := r.Build(context.Background(), &config.KernelDefinition{Type: "spin"}, conv, graph.Params{MaxWidth: 3})
	require.NoError(t, err)
	assert.NotNil(t, k)
	assert.Equal(t, []int{7, 3}, mod.built)
	require.Len(t, conv.targets, 1)

	_, err = r.Build(context.Background(), &config.KernelDefinition{Type: "none"}, conv, graph.Params{})
	require.NoError(t, err)
	assert.Len(t, conv.targets, 1, "kernels without config are not decoded")
}

func TestBuild_Errors(t *testing.T) {
	r := newRegistry(&spinModule{})

	_, err := r.Build(context.Background(), &config.KernelDefinition{Type: "nope"}, &stubConverter{}, graph.Params{})
	assert.ErrorContains(t, err, `unknown kernel type "nope"`)

	boom := errors.New("boom")
	_, err = r.Build(context.Background(), &config.KernelDefinition{Type: "spin"}, &stubConverter{err: boom}, graph.Params{})
	assert.ErrorIs(t, err, boom)

	args := map[string]hcl.Expression{"x": hcl.StaticExpr(cty.NumberIntVal(1), hcl.Range{})}
	_, err = r.Build(context.Background(), &config.KernelDefinition{Type: "none", Arguments: args}, &stubConverter{}, graph.Params{})
	assert.ErrorContains(t, err, "takes no arguments")
}

func TestValidate(t *testing.T) {
	r := newRegistry(&spinModule{})
	static := hcl.StaticExpr(cty.NumberIntVal(1), hcl.Range{})

	ok := &config.Model{Graphs: []*config.GraphDefinition{
		{Name: "a", Kernel: &config.KernelDefinition{Type: "spin", Arguments: map[string]hcl.Expression{"iterations": static}}},
		{Name: "b", Kernel: &config.KernelDefinition{Type: "none"}},
	}}
	assert.NoError(t, r.Validate(context.Background(), ok))

	bad := &config.Model{Graphs: []*config.GraphDefinition{
		{Name: "a", Kernel: &config.KernelDefinition{Type: "spin", Arguments: map[string]hcl.Expression{"Label": static}}},
		{Name: "b", Kernel: &config.KernelDefinition{Type: "fast"}},
	}}
	err := r.Validate(context.Background(), bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed:\n- ")
	assert.Contains(t, err.Error(), "graph 'a': kernel 'spin' has no argument 'Label'")
	assert.Contains(t, err.Error(), "graph 'b': unknown kernel type 'fast' (registered: none, spin)")
}
