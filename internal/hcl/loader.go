package hcl

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// vars overrides variable defaults, as given by -var name=value.
	vars map[string]string
}

// NewLoader creates a new HCL configuration loader. vars overrides the
// defaults of declared variables.
func NewLoader(vars map[string]string) *Loader {
	return &Loader{vars: vars}
}

var (
	_ config.Loader    = (*Loader)(nil)
	_ config.Converter = (*Converter)(nil)
)

type parsedFile struct {
	path string
	body hcl.Body
}

// Load parses every .hcl file found under paths. Variables from all files
// are resolved first, then graph blocks are decoded with `var.*` and a small
// set of math functions in scope.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var parsed []parsedFile
	var variables []*variableBlock
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root variablesRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode variables in %s: %w", file, diags)
		}
		variables = append(variables, root.Variables...)
		parsed = append(parsed, parsedFile{path: file, body: root.Remain})
	}

	values, err := l.resolveVariables(variables)
	if err != nil {
		return nil, nil, err
	}
	evalCtx := newEvalContext(values)

	model := &config.Model{}
	for _, f := range parsed {
		var root graphsRoot
		if diags := gohcl.DecodeBody(f.body, evalCtx, &root); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode HCL file %s: %w", f.path, diags)
		}
		for _, g := range root.Graphs {
			def, err := translateGraph(g, f.path)
			if err != nil {
				return nil, nil, err
			}
			model.Graphs = append(model.Graphs, def)
		}
	}

	logger.Debug("HCL loading complete.", "graphs", len(model.Graphs), "variables", len(values))
	return model, NewConverter(evalCtx), nil
}

// resolveVariables applies -var overrides to declared defaults. Overrides are
// converted to the type of the default when there is one.
func (l *Loader) resolveVariables(blocks []*variableBlock) (map[string]cty.Value, error) {
	values := make(map[string]cty.Value, len(blocks))
	for _, v := range blocks {
		if _, dup := values[v.Name]; dup {
			return nil, fmt.Errorf("variable %q is declared more than once", v.Name)
		}
		val := cty.NullVal(cty.DynamicPseudoType)
		if v.Default != nil {
			val = *v.Default
		}
		values[v.Name] = val
	}

	names := make([]string, 0, len(l.vars))
	for name := range l.vars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		def, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("variable %q is set but not declared", name)
		}
		raw := cty.StringVal(l.vars[name])
		if def.IsNull() || def.Type() == cty.String {
			values[name] = raw
			continue
		}
		converted, err := convert.Convert(raw, def.Type())
		if err != nil {
			return nil, fmt.Errorf("variable %q: cannot use %q as %s: %w", name, l.vars[name], def.Type().FriendlyName(), err)
		}
		values[name] = converted
	}

	for name, val := range values {
		if val.IsNull() {
			return nil, fmt.Errorf("variable %q has no default and was not set", name)
		}
	}
	return values, nil
}

func newEvalContext(vars map[string]cty.Value) *hcl.EvalContext {
	varObj := cty.EmptyObjectVal
	if len(vars) > 0 {
		varObj = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": varObj},
		Functions: map[string]function.Function{
			"max":   stdlib.MaxFunc,
			"min":   stdlib.MinFunc,
			"ceil":  stdlib.CeilFunc,
			"floor": stdlib.FloorFunc,
			"pow":   stdlib.PowFunc,
		},
	}
}

func translateGraph(g *graphBlock, path string) (*config.GraphDefinition, error) {
	def := &config.GraphDefinition{
		Name:         g.Name,
		Pattern:      g.Pattern,
		Timesteps:    g.Timesteps,
		MaxWidth:     g.MaxWidth,
		NbFields:     defaultNbFields,
		OutputBytes:  defaultOutputBytes,
		ScratchBytes: g.ScratchBytes,
		Radix:        g.Radix,
		Period:       g.Period,
		SourceFile:   path,
	}
	if g.NbFields != nil {
		def.NbFields = *g.NbFields
	}
	if g.OutputBytes != nil {
		def.OutputBytes = *g.OutputBytes
	}
	if g.Kernel != nil {
		attrs, diags := g.Kernel.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("graph %q in %s: invalid kernel block: %w", g.Name, path, diags)
		}
		args := make(map[string]hcl.Expression, len(attrs))
		for name, attr := range attrs {
			args[name] = attr.Expr
		}
		def.Kernel = &config.KernelDefinition{Type: g.Kernel.Type, Arguments: args}
	}
	return def, nil
}
