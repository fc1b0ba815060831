package form

import (
	"encoding/json"
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStyleValue(t *testing.T) {
	tests := []struct {
		key   string
		value any
		want  any
	}{
		{"bg", "#fff", "#fff"},
		{"bg", "#A0B1C2", "#A0B1C2"},
		{"bg", "not-a-color", nil},
		{"color", "#12345", nil},
		{"border_color", 12.0, nil},
		{"padding", 12.0, 12.0},
		{"margin", -8.0, 8.0},
		{"width", "40", 40.0},
		{"height", "tall", nil},
		{"font_size", true, nil},
		{"align", "center", "center"},
		{"align", "justify", "left"},
		{"border_radius", "<b>4px</b>", "4px"},
		{"border_radius", 6.0, "6"},
		{"shadow", map[string]any{"x": 1.0}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeStyleValue(tt.key, tt.value), "%s=%v", tt.key, tt.value)
	}
}

func TestSanitizeStylesRejectsInvalidColor(t *testing.T) {
	tree := SanitizeStyles(decodeJSON(t, `{"form":{"base":{"bg":"not-a-color"}}}`))

	props := tree.Form[model.BreakpointBase]
	require.Contains(t, props, "bg")
	assert.Nil(t, props["bg"])
}

func TestSanitizeStylesDropsMalformedLevels(t *testing.T) {
	tree := SanitizeStyles(decodeJSON(t, `{
		"form": "red",
		"button": {"base": "big", "tablet": {"padding": 4}},
		"fields": {"f1": {"base": {"color": "#000"}}, "f2": [1,2], "__default": {"mobile": {"margin": 2}}},
		"unknown": {"base": {"bg": "#fff"}}
	}`))

	assert.Nil(t, tree.Form)
	assert.Equal(t, model.Breakpoints{"tablet": {"padding": 4.0}}, tree.Button)
	assert.Equal(t, map[string]model.Breakpoints{
		"f1":                     {"base": {"color": "#000"}},
		model.DefaultFieldStyles: {"mobile": {"margin": 2.0}},
	}, tree.Fields)
}

func TestMergeStylesIdempotent(t *testing.T) {
	inputs := []string{
		`{"form":{"base":{"bg":"#fff","padding":"12","align":"middle"},"mobile":{"padding":-4}}}`,
		`{"button":{"base":{"bg":"blue","label_weight":"<b>bold</b>","x":true}}}`,
		`{"fields":{"__default":{"base":{"font_size":14}},"f1":{"tablet":{"border_color":"#abc","note":"a &amp;lt;b&amp;gt; c"}}}}`,
		`{"form":{"base":{"Font-Size":"3"}},"fields":"oops"}`,
		`{"button":{"base":{"label":"&amp;amp;amp;amp;amp;amp;lt;b&amp;amp;amp;amp;amp;amp;gt;x"}}}`,
	}

	for _, in := range inputs {
		once := MergeStyles(decodeJSON(t, in), model.StyleTree{})
		twice := MergeStyles(decodeJSON(t, encodeJSON(t, once)), model.StyleTree{})
		assert.JSONEq(t, encodeJSON(t, once), encodeJSON(t, twice), in)
	}
}

func TestMergeStylesReplacesSubmittedSectionsOnly(t *testing.T) {
	existing := model.StyleTree{
		Form:   model.Breakpoints{"base": {"bg": "#000", "padding": 10.0}},
		Button: model.Breakpoints{"base": {"bg": "#111"}},
	}

	merged := MergeStyles(decodeJSON(t, `{"form":{"base":{"color":"#fff"}},"button":7}`), existing)

	assert.Equal(t, model.Breakpoints{"base": {"color": "#fff"}}, merged.Form)
	assert.Equal(t, existing.Button, merged.Button)
	assert.Nil(t, merged.Fields)
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func encodeJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
