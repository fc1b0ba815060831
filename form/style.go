package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mbolis/quick-form/model"
)

var (
	reHexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}){1,2}$`)
	reStyleKey = regexp.MustCompile(`[^a-z0-9_\-]`)
)

var (
	colorKeys   = map[string]bool{"bg": true, "color": true, "border_color": true}
	numericKeys = map[string]bool{
		"width": true, "height": true, "font_size": true,
		"padding": true, "margin": true, "field_gap": true,
	}
	alignValues = map[string]bool{"left": true, "center": true, "right": true}
)

// MergeStyles sanitizes a submitted style document and lays it over the
// stored tree. Each section the submission carries as a mapping replaces the
// stored section whole; other sections are kept as stored.
func MergeStyles(submitted map[string]any, existing model.StyleTree) model.StyleTree {
	clean := SanitizeStyles(submitted)

	if clean.Form == nil {
		clean.Form = existing.Form
	}
	if clean.Fields == nil {
		clean.Fields = existing.Fields
	}
	if clean.Button == nil {
		clean.Button = existing.Button
	}
	return clean
}

// SanitizeStyles walks section → breakpoint → key → value. Non-mapping values
// at the section, field or breakpoint level are dropped; unknown sections too.
func SanitizeStyles(raw map[string]any) model.StyleTree {
	var tree model.StyleTree

	tree.Form = sanitizeBreakpoints(raw[model.SectionForm])
	tree.Button = sanitizeBreakpoints(raw[model.SectionButton])

	if byField, ok := raw[model.SectionFields].(map[string]any); ok {
		tree.Fields = map[string]model.Breakpoints{}
		for id, fieldRaw := range byField {
			id = SanitizeText(id)
			if id == "" {
				continue
			}
			if bp := sanitizeBreakpoints(fieldRaw); bp != nil {
				tree.Fields[id] = bp
			}
		}
	}
	return tree
}

func sanitizeBreakpoints(raw any) model.Breakpoints {
	byBreakpoint, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	out := model.Breakpoints{}
	for name, propsRaw := range byBreakpoint {
		name = styleKey(name)
		props, ok := propsRaw.(map[string]any)
		if name == "" || !ok {
			continue
		}

		clean := model.StyleProps{}
		for key, value := range props {
			key = styleKey(key)
			if key == "" {
				continue
			}
			clean[key] = SanitizeStyleValue(key, value)
		}
		out[name] = clean
	}
	return out
}

// SanitizeStyleValue applies the per-key rule: hex colours or nil, non-negative
// numbers or nil, an alignment enum defaulting to "left", text otherwise.
func SanitizeStyleValue(key string, value any) any {
	switch {
	case colorKeys[key]:
		s, ok := value.(string)
		if !ok {
			return nil
		}
		s = strings.TrimSpace(s)
		if !reHexColor.MatchString(s) {
			return nil
		}
		return s
	case numericKeys[key]:
		n, ok := toNumber(value)
		if !ok {
			return nil
		}
		return math.Abs(n)
	case key == "align":
		if s, ok := value.(string); ok && alignValues[s] {
			return s
		}
		return "left"
	default:
		return SanitizeText(scalarText(value))
	}
}

func styleKey(k string) string {
	return reStyleKey.ReplaceAllString(strings.ToLower(strings.TrimSpace(k)), "")
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if !IsNumeric(s) {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		return n, err == nil && !math.IsInf(n, 0)
	}
	return 0, false
}

func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return ""
	}
	return ""
}
