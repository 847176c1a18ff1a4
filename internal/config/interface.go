package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths, translates it into the
	// format-agnostic model, and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds raw configuration values to the Go types used by kernels.
type Converter interface {
	// DecodeBody evaluates args and decodes them into the fields of target,
	// a pointer to a struct whose fields carry `bench:"name"` tags. A tag
	// option of "optional" makes the argument optional.
	DecodeBody(ctx context.Context, target any, args map[string]hcl.Expression) error

	// ToCtyValue converts a native Go value into its cty.Value.
	ToCtyValue(v any) (cty.Value, error)
}
