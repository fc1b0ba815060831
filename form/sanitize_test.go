package form

import (
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		typ  model.FieldType
		raw  []string
		want model.Value
	}{
		{"text strips tags", model.FieldText, []string{"  <b>Hello</b>   world "}, model.Text("Hello world")},
		{"text drops scripts", model.FieldText, []string{"hi<script>alert(1)</script>"}, model.Text("hi")},
		{"text keeps ampersand", model.FieldText, []string{"Tom & Jerry"}, model.Text("Tom & Jerry")},
		{"text strips encoded tags", model.FieldText, []string{"&lt;i&gt;x&lt;/i&gt;"}, model.Text("x")},
		{"text uses first value", model.FieldText, []string{"a", "b"}, model.Text("a")},
		{"missing value", model.FieldText, nil, model.Text("")},
		{"email lowercased", model.FieldEmail, []string{" Ada@Example.COM "}, model.Text("ada@example.com")},
		{"email invalid", model.FieldEmail, []string{"not-an-email"}, model.Text("")},
		{"email with display name", model.FieldEmail, []string{"Ada <ada@example.com>"}, model.Text("")},
		{"textarea keeps newlines", model.FieldTextarea, []string{"line one\r\n<i>line</i> two\n"}, model.Text("line one\nline two")},
		{"checkbox keeps duplicates", model.FieldCheckbox, []string{"red", "<b>red</b>", " ", "blue"}, model.List([]string{"red", "red", "", "blue"})},
		{"checkbox empty", model.FieldCheckbox, nil, model.List(nil)},
		{"number valid", model.FieldNumber, []string{" 42.5 "}, model.Text("42.5")},
		{"number exponent", model.FieldNumber, []string{"-1e3"}, model.Text("-1e3")},
		{"number invalid", model.FieldNumber, []string{"12abc"}, model.Text("")},
		{"number rejects NaN", model.FieldNumber, []string{"NaN"}, model.Text("")},
		{"tel strips letters", model.FieldTel, []string{"+1 (555) 123-4567 ext"}, model.Text("+1 555 123-4567")},
		{"select as text", model.FieldSelect, []string{"Option <b>A</b>"}, model.Text("Option A")},
		{"subheading carries nothing", model.FieldSubheading, []string{"x"}, model.Text("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.typ, tt.raw))
		})
	}
}

func TestSanitizeTextIdempotent(t *testing.T) {
	for _, in := range []string{
		"&amp;lt;b&amp;gt;x", "a < b", "<p>para</p>\t tab", "plain", "&lt;script&gt;",
		"&amp;amp;amp;amp;amp;amp;lt;b&amp;amp;amp;amp;amp;amp;gt;x",
	} {
		once := SanitizeText(in)
		assert.Equal(t, once, SanitizeText(once), in)
	}
}

func TestSanitizeTextUnwrapsDeepEncoding(t *testing.T) {
	assert.Equal(t, "x", SanitizeText("&amp;amp;amp;amp;amp;amp;lt;b&amp;amp;amp;amp;amp;amp;gt;x"))
}

func TestIsEmail(t *testing.T) {
	for addr, want := range map[string]bool{
		"a@b.com":         true,
		"first.last@x.io": true,
		"a@b":             false,
		"@b.com":          false,
		"a@.com":          false,
		"a@b..com":        false,
		"a b@c.com":       false,
		"":                false,
	} {
		assert.Equal(t, want, IsEmail(addr), addr)
	}
}

func TestChoiceValuesSurviveSanitization(t *testing.T) {
	options := cleanOptions([]string{"Small & Cheap", "Large <i>(XL)</i>", "  Medium  "})
	for _, typ := range []model.FieldType{model.FieldSelect, model.FieldRadio} {
		for _, opt := range options {
			f := model.Field{ID: "c", Name: "Choice", Type: typ, Options: options}
			v := Sanitize(typ, []string{opt})
			assert.Equal(t, opt, v.Text())
			assert.NoError(t, Validate(f, v))
		}
	}

	f := model.Field{ID: "c", Name: "Choice", Type: model.FieldCheckbox, Options: options}
	v := Sanitize(model.FieldCheckbox, options)
	assert.Equal(t, options, v.List())
	assert.NoError(t, Validate(f, v))
}
