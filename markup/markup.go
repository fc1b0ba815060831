// Package markup renders forms to HTML. Live pages and admin previews share
// the same field dispatch; preview only disables submission.
package markup

import (
	"embed"
	"html/template"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mbolis/quick-form/model"
)

const DefaultSubmitLabel = "Submit"

//go:embed templates
var templateFS embed.FS

var (
	templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
	formJS    = template.JS(mustRead("templates/form.js"))

	reCSSValue = regexp.MustCompile(`^[#%.,\w\s-]+$`)
	reCSSIdent = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

func mustRead(name string) string {
	b, err := templateFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

type Options struct {
	Preview bool
	// Token is the submission token embedded in live forms.
	Token string
	// Action is the URL live forms post to.
	Action    string
	Turnstile Turnstile
}

type Turnstile struct {
	Enabled bool
	SiteKey string
	Mode    string
}

type shape string

const (
	shapeInput      shape = "input"
	shapeTel        shape = "tel"
	shapeTextarea   shape = "textarea"
	shapeSelect     shape = "select"
	shapeCheckbox   shape = "checkbox"
	shapeRadio      shape = "radio"
	shapeSubheading shape = "subheading"
)

type formView struct {
	ID          int
	Name        string
	Preview     bool
	Token       string
	Action      string
	Style       template.CSS
	ButtonStyle template.CSS
	SubmitLabel string
	Fields      []fieldView
	Turnstile   Turnstile
	Script      template.JS
}

type fieldView struct {
	ID       string
	InputID  string
	Name     string
	Label    string
	Type     string
	Shape    shape
	Required bool
	Options  []string
	Style    template.CSS
}

// Form writes the <form> element for f.
func Form(w io.Writer, f model.Form, opts Options) error {
	return templates.ExecuteTemplate(w, "form", newFormView(f, opts))
}

// Page writes a standalone HTML document around the form.
func Page(w io.Writer, f model.Form, opts Options) error {
	return templates.ExecuteTemplate(w, "page", newFormView(f, opts))
}

func NotFound(w io.Writer) error {
	return templates.ExecuteTemplate(w, "not_found", nil)
}

func newFormView(f model.Form, opts Options) formView {
	styles := f.Settings.Styles

	v := formView{
		ID:          f.ID,
		Name:        f.Name,
		Preview:     opts.Preview,
		Action:      opts.Action,
		Style:       CSSVars("form", styles.Form),
		ButtonStyle: CSSVars("button", styles.Button),
		SubmitLabel: f.Settings.SubmitLabel,
		Fields:      make([]fieldView, 0, len(f.Fields)),
		Script:      formJS,
	}
	if v.SubmitLabel == "" {
		v.SubmitLabel = DefaultSubmitLabel
	}
	if !opts.Preview {
		v.Token = opts.Token
		v.Turnstile = opts.Turnstile
	}

	defaults := CSSVars("field", styles.Fields[model.DefaultFieldStyles])
	for _, field := range f.Fields {
		fv := newFieldView(field)
		fv.Style = defaults +
			CSSVars("field", field.Styles) +
			CSSVars("field", styles.Fields[field.ID])
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func newFieldView(f model.Field) fieldView {
	return fieldView{
		ID:       f.ID,
		InputID:  "df_" + f.ID,
		Name:     f.Key(),
		Label:    f.Name,
		Type:     f.Type.String(),
		Shape:    shapeOf(f.Type),
		Required: f.Required && f.Type != model.FieldSubheading,
		Options:  f.Options,
	}
}

func shapeOf(t model.FieldType) shape {
	//exhaustive:enforce
	switch t {
	case model.FieldText, model.FieldEmail, model.FieldNumber:
		return shapeInput
	case model.FieldTel:
		return shapeTel
	case model.FieldTextarea:
		return shapeTextarea
	case model.FieldSelect:
		return shapeSelect
	case model.FieldCheckbox:
		return shapeCheckbox
	case model.FieldRadio:
		return shapeRadio
	case model.FieldSubheading:
		return shapeSubheading
	}
	return shapeInput
}

// CSSVars projects style overrides to custom properties: --df-{section}-{key}
// for the base breakpoint and --df-{section}-{key}--{breakpoint} for others.
// Values that are empty or not plain CSS tokens are skipped.
func CSSVars(section string, bp model.Breakpoints) template.CSS {
	var sb strings.Builder
	for _, name := range bp.Names() {
		if !reCSSIdent.MatchString(name) {
			continue
		}
		props := bp[name]
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value, ok := cssValue(props[key])
			if !ok || !reCSSIdent.MatchString(key) {
				continue
			}
			sb.WriteString("--df-" + section + "-" + strings.ReplaceAll(key, "_", "-"))
			if name != model.BreakpointBase {
				sb.WriteString("--" + name)
			}
			sb.WriteString(":" + value + ";")
		}
	}
	return template.CSS(sb.String())
}

func cssValue(v any) (string, bool) {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64) + "px", true
	case string:
		v = strings.TrimSpace(v)
		if v == "" || !reCSSValue.MatchString(v) {
			return "", false
		}
		return v, true
	}
	return "", false
}
