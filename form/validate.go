package form

import (
	"fmt"
	"strings"

	"github.com/mbolis/quick-form/model"
)

// FieldError reports the first problem found with one submitted field.
type FieldError struct {
	FieldID string
	Label   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldError(f model.Field, format string) *FieldError {
	label := Label(f)
	return &FieldError{
		FieldID: f.ID,
		Label:   label,
		Message: fmt.Sprintf(format, label),
	}
}

// Label is the name a field is reported and stored under.
func Label(f model.Field) string {
	if f.Name != "" {
		return f.Name
	}
	if f.ID != "" {
		return f.ID
	}
	return "Field"
}

func RequiredError(f model.Field) *FieldError {
	return fieldError(f, `"%s" is required.`)
}

// Validate checks a sanitized value against its field. The required check
// runs first; type checks only run on non-empty values.
func Validate(f model.Field, v model.Value) error {
	if f.Type == model.FieldSubheading {
		return nil
	}

	if f.Required && v.IsEmpty() {
		return RequiredError(f)
	}
	if v.IsEmpty() {
		return nil
	}

	//exhaustive:enforce
	switch f.Type {
	case model.FieldEmail:
		if !IsEmail(v.Text()) {
			return fieldError(f, `"%s" must be a valid email address.`)
		}
	case model.FieldNumber:
		if !IsNumeric(v.Text()) {
			return fieldError(f, `"%s" must be a number.`)
		}
	case model.FieldTel:
		if !IsTel(v.Text()) {
			return fieldError(f, `"%s" is not a valid phone number.`)
		}
	case model.FieldSelect, model.FieldRadio:
		if !contains(f.Options, v.Text()) {
			return fieldError(f, `"%s" has an invalid choice.`)
		}
	case model.FieldCheckbox:
		for _, item := range v.List() {
			if item != "" && !contains(f.Options, item) {
				return fieldError(f, `"%s" has an invalid choice.`)
			}
		}
	case model.FieldText, model.FieldTextarea, model.FieldSubheading:
	}
	return nil
}

// Process sanitizes then validates one field's raw values. An email that was
// typed but could not be normalized is reported as invalid rather than
// silently dropped.
func Process(f model.Field, raw []string) (model.Value, error) {
	v := Sanitize(f.Type, raw)
	if f.Type == model.FieldEmail && v.IsEmpty() && len(raw) > 0 && strings.TrimSpace(raw[0]) != "" {
		return v, fieldError(f, `"%s" must be a valid email address.`)
	}
	if err := Validate(f, v); err != nil {
		return v, err
	}
	return v, nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
