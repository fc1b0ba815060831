package form

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/mbolis/quick-form/model"
)

// FieldInput is a field definition as sent by the builder, before acceptance.
type FieldInput struct {
	ID        string         `json:"id"`
	FieldName string         `json:"fieldName"`
	FieldType string         `json:"fieldType"`
	Required  bool           `json:"required"`
	Options   []string       `json:"options"`
	Values    []string       `json:"values"`
	Styles    map[string]any `json:"styles"`
}

// AcceptFields turns builder input into field definitions. Every problem is
// reported, not just the first; on error the returned fields are nil.
func AcceptFields(in []FieldInput) ([]model.Field, error) {
	var result *multierror.Error
	fields := make([]model.Field, 0, len(in))
	seen := map[string]bool{}

	for i, raw := range in {
		pos := i + 1
		f := model.Field{
			ID:       SanitizeText(raw.ID),
			Name:     SanitizeText(raw.FieldName),
			Required: raw.Required,
			Options:  cleanOptions(raw.Options),
			Styles:   model.DefaultBreakpoints(),
		}
		if len(f.Options) == 0 {
			f.Options = cleanOptions(raw.Values)
		}

		if f.ID == "" {
			result = multierror.Append(result, fmt.Errorf("field %d: missing id", pos))
		} else if seen[f.ID] {
			result = multierror.Append(result, fmt.Errorf("field %d: duplicate id %q", pos, f.ID))
		}
		seen[f.ID] = true

		if f.Name == "" {
			result = multierror.Append(result, fmt.Errorf("field %d: missing fieldName", pos))
		}

		typeName := raw.FieldType
		if typeName == "" {
			typeName = model.FieldText.String()
		}
		t, err := model.ParseFieldType(typeName)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("field %d: %w", pos, err))
		}
		f.Type = t

		if t.HasOptions() && len(f.Options) == 0 {
			result = multierror.Append(result, fmt.Errorf("field %d: %s needs at least one option", pos, t))
		}
		if t == model.FieldSubheading {
			f.Required = false
		}

		for name, props := range sanitizeBreakpoints(raw.Styles) {
			f.Styles[name] = props
		}

		fields = append(fields, f)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fields, nil
}

// Problems flattens an AcceptFields error into messages.
func Problems(err error) []string {
	if err == nil {
		return nil
	}
	if merr, ok := err.(*multierror.Error); ok {
		out := make([]string, len(merr.Errors))
		for i, e := range merr.Errors {
			out[i] = e.Error()
		}
		return out
	}
	return []string{err.Error()}
}

func cleanOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if s := SanitizeText(o); s != "" {
			out = append(out, s)
		}
	}
	return out
}
