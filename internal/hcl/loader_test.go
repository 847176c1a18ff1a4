package hcl

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const benchHCL = `
variable "steps" {
  default = 50
}

variable "label" {
  default = "fast"
}

graph "stencil" {
  pattern   = "stencil_1d"
  timesteps = var.steps
  max_width = max(4, 8)
  nb_fields = 3

  kernel "compute_bound" {
    iterations = var.steps * 2
    label      = var.label
  }
}
`

const secondHCL = `
graph "tree" {
  pattern       = "tree"
  timesteps     = 4
  max_width     = pow(2, 3)
  output_bytes  = 32
  scratch_bytes = 64
  radix         = 2
  period        = 1

  kernel "empty" {}
}
`

func TestLoad(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{
		"a_main.hcl":   benchHCL,
		"nested/b.hcl": secondHCL,
		"ignored.txt":  "not hcl",
	})

	model, conv, err := NewLoader(nil).Load(ctx, dir)
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.Len(t, model.Graphs, 2)

	g := model.Graphs[0]
	assert.Equal(t, "stencil", g.Name)
	assert.Equal(t, "stencil_1d", g.Pattern)
	assert.Equal(t, 50, g.Timesteps)
	assert.Equal(t, 8, g.MaxWidth)
	assert.Equal(t, 3, g.NbFields)
	assert.Equal(t, defaultOutputBytes, g.OutputBytes)
	assert.Equal(t, filepath.Join(dir, "a_main.hcl"), g.SourceFile)
	require.NotNil(t, g.Kernel)
	assert.Equal(t, "compute_bound", g.Kernel.Type)
	assert.Len(t, g.Kernel.Arguments, 2)

	var args struct {
		Iterations int    `bench:"iterations"`
		Label      string `bench:"label"`
	}
	require.NoError(t, conv.DecodeBody(ctx, &args, g.Kernel.Arguments))
	assert.Equal(t, 100, args.Iterations)
	assert.Equal(t, "fast", args.Label)

	tree := model.Graphs[1]
	assert.Equal(t, 8, tree.MaxWidth)
	assert.Equal(t, defaultNbFields, tree.NbFields)
	assert.Equal(t, 32, tree.OutputBytes)
	assert.Equal(t, 64, tree.ScratchBytes)
	assert.Equal(t, 2, tree.Radix)
	assert.Equal(t, "empty", tree.Kernel.Type)
	assert.Empty(t, tree.Kernel.Arguments)

	assert.NoError(t, config.Validate(model))
}

func TestLoad_VariableOverrides(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	dir := testutil.WriteFiles(t, map[string]string{"main.hcl": benchHCL})

	model, _, err := NewLoader(map[string]string{"steps": "7", "label": "slow"}).Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 7, model.Graphs[0].Timesteps)

	_, _, err = NewLoader(map[string]string{"nope": "1"}).Load(ctx, dir)
	assert.ErrorContains(t, err, `variable "nope" is set but not declared`)

	_, _, err = NewLoader(map[string]string{"steps": "many"}).Load(ctx, dir)
	assert.ErrorContains(t, err, `variable "steps": cannot use "many" as number`)
}

func TestLoad_Errors(t *testing.T) {
	ctx, _ := testutil.NewContext(t)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", `graph "x" {`, "failed to parse HCL file"},
		{"unknown block", `resource "x" {}`, "failed to decode HCL file"},
		{"missing attribute", `graph "x" { pattern = "dom" }`, "failed to decode HCL file"},
		{"undefined variable", `graph "x" {
  pattern   = "dom"
  timesteps = var.missing
  max_width = 2
}`, "failed to decode HCL file"},
		{"variable without value", `variable "v" {}`, `variable "v" has no default and was not set`},
		{"duplicate variable", `variable "v" { default = 1 }
variable "v" { default = 2 }`, `variable "v" is declared more than once`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := testutil.WriteFiles(t, map[string]string{"main.hcl": tc.content})
			_, _, err := NewLoader(nil).Load(ctx, dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	_, _, err := NewLoader(nil).Load(ctx, t.TempDir())
	assert.ErrorContains(t, err, "no .hcl files found")
}
