package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/ctxlog"
)

// Validate checks that every kernel referenced by the model is registered
// and that every argument it is given is known to that kernel.
func (r *Registry) Validate(ctx context.Context, m *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, g := range m.Graphs {
		if g == nil || g.Kernel == nil {
			continue
		}
		rk, ok := r.kernels[g.Kernel.Type]
		if !ok {
			errs = append(errs, fmt.Sprintf("graph '%s': unknown kernel type '%s' (registered: %s)", g.Name, g.Kernel.Type, strings.Join(r.Types(), ", ")))
			continue
		}

		known := map[string]struct{}{}
		if rk.NewConfig != nil {
			known = argumentNames(rk.NewConfig())
		}
		for name := range g.Kernel.Arguments {
			if _, ok := known[name]; !ok {
				errs = append(errs, fmt.Sprintf("graph '%s': kernel '%s' has no argument '%s'", g.Name, g.Kernel.Type, name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "graphs", len(m.Graphs))
	return nil
}

// argumentNames returns the `bench` tag names of the struct cfg points to.
func argumentNames(cfg any) map[string]struct{} {
	names := make(map[string]struct{})
	t := reflect.TypeOf(cfg)
	if t == nil {
		return names
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.Split(field.Tag.Get("bench"), ",")[0]
		if name != "" && name != "-" {
			names[name] = struct{}{}
		}
	}
	return names
}

// Arguments returns the argument names accepted by kernel type name. Unknown
// types and kernels without arguments yield an empty set.
func (r *Registry) Arguments(name string) map[string]struct{} {
	rk, ok := r.kernels[name]
	if !ok || rk.NewConfig == nil {
		return map[string]struct{}{}
	}
	return argumentNames(rk.NewConfig())
}
