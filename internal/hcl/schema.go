package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

const (
	defaultNbFields    = 2
	defaultOutputBytes = 16
)

// variablesRoot is decoded first, without an evaluation context.
type variablesRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type variableBlock struct {
	Name        string     `hcl:"name,label"`
	Description string     `hcl:"description,optional"`
	Default     *cty.Value `hcl:"default,optional"`
}

// graphsRoot is decoded from what remains once variables are known. Any
// other top-level block is an error.
type graphsRoot struct {
	Graphs []*graphBlock `hcl:"graph,block"`
}

type graphBlock struct {
	Name         string       `hcl:"name,label"`
	Pattern      string       `hcl:"pattern"`
	Timesteps    int          `hcl:"timesteps"`
	MaxWidth     int          `hcl:"max_width"`
	NbFields     *int         `hcl:"nb_fields,optional"`
	OutputBytes  *int         `hcl:"output_bytes,optional"`
	ScratchBytes int          `hcl:"scratch_bytes,optional"`
	Radix        int          `hcl:"radix,optional"`
	Period       int          `hcl:"period,optional"`
	Kernel       *kernelBlock `hcl:"kernel,block"`
}

type kernelBlock struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}
