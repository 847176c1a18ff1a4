package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/specialistvlad/serialbench/internal/graph"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pattern", func(fl validator.FieldLevel) bool {
		_, err := graph.ParseDependenceType(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("bench"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError is a single invalid field.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a model.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("config validation failed:\n- %s", strings.Join(msgs, "\n- "))
}

// Validate checks field constraints and that graph names are unique.
func Validate(m *Model) error {
	if m == nil {
		return ValidationErrors{{Field: "graphs", Message: "field is required"}}
	}

	var errs ValidationErrors
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, ValidationError{
				Field:   strings.TrimPrefix(fe.Namespace(), "Model."),
				Value:   fe.Value(),
				Message: message(fe),
			})
		}
	}

	seen := make(map[string]bool, len(m.Graphs))
	for i, g := range m.Graphs {
		if g == nil || g.Name == "" {
			continue
		}
		if seen[g.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("graphs[%d].name", i),
				Value:   g.Name,
				Message: fmt.Sprintf("duplicate graph name %q", g.Name),
			})
		}
		seen[g.Name] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "pattern":
		names := make([]string, len(graph.DependenceTypes))
		for i, d := range graph.DependenceTypes {
			names[i] = string(d)
		}
		return fmt.Sprintf("unknown pattern %q, expected one of %s", fe.Value(), strings.Join(names, ", "))
	default:
		return fmt.Sprintf("validation failed: %s", fe.Tag())
	}
}
