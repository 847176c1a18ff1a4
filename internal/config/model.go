package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of a benchmark run.
type Model struct {
	Graphs []*GraphDefinition `bench:"graphs" validate:"required,min=1,dive,required"`
}

// GraphDefinition is one task graph to execute.
type GraphDefinition struct {
	Name         string            `bench:"name" validate:"required"`
	Pattern      string            `bench:"pattern" validate:"required,pattern"`
	Timesteps    int               `bench:"timesteps" validate:"gte=0"`
	MaxWidth     int               `bench:"max_width" validate:"gte=1"`
	NbFields     int               `bench:"nb_fields" validate:"gte=1"`
	OutputBytes  int               `bench:"output_bytes" validate:"gte=0"`
	ScratchBytes int               `bench:"scratch_bytes" validate:"gte=0"`
	Radix        int               `bench:"radix" validate:"gte=0"`
	Period       int               `bench:"period" validate:"gte=0"`
	Kernel       *KernelDefinition `bench:"kernel" validate:"required"`

	// SourceFile is where the definition was read from, if anywhere.
	SourceFile string `bench:"-"`
}

// KernelDefinition selects a registered kernel and carries its raw
// arguments.
type KernelDefinition struct {
	Type      string                    `bench:"type" validate:"required"`
	Arguments map[string]hcl.Expression `bench:"-"`
}
