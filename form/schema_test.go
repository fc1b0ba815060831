package form

import (
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptFields(t *testing.T) {
	fields, err := AcceptFields([]FieldInput{
		{ID: "f1", FieldName: "Email", FieldType: "email", Required: true},
		{ID: "f2", FieldName: "Size", FieldType: "select", Options: []string{" S ", "<b>M</b>", ""}},
		{ID: "f3", FieldName: "Phone", FieldType: "phone"},
		{ID: "f4", FieldName: "Colors", FieldType: "checkbox", Values: []string{"red", "blue"}},
		{ID: "h1", FieldName: "More", FieldType: "subheading", Required: true},
		{ID: "f5", FieldName: "Notes", Styles: map[string]any{"base": map[string]any{"bg": "#eee"}, "tablet": "x"}},
	})
	require.NoError(t, err)
	require.Len(t, fields, 6)

	assert.Equal(t, model.FieldEmail, fields[0].Type)
	assert.Equal(t, []string{"S", "M"}, fields[1].Options)
	assert.Equal(t, model.FieldTel, fields[2].Type)
	assert.Equal(t, []string{"red", "blue"}, fields[3].Options)
	assert.False(t, fields[4].Required)

	assert.Equal(t, model.FieldText, fields[5].Type)
	assert.Equal(t, "#eee", fields[5].Styles[model.BreakpointBase]["bg"])
	assert.Equal(t, model.StyleProps{}, fields[5].Styles[model.BreakpointTablet])
}

func TestAcceptFieldsReportsEveryProblem(t *testing.T) {
	fields, err := AcceptFields([]FieldInput{
		{ID: "", FieldName: "Name"},
		{ID: "a", FieldName: ""},
		{ID: "a", FieldName: "Dup"},
		{ID: "b", FieldName: "When", FieldType: "date"},
		{ID: "c", FieldName: "Pick", FieldType: "radio"},
	})
	require.Error(t, err)
	assert.Nil(t, fields)

	problems := Problems(err)
	assert.Len(t, problems, 5)
	assert.Contains(t, problems[0], "missing id")
	assert.Contains(t, problems[1], "missing fieldName")
	assert.Contains(t, problems[2], "duplicate id")
	assert.Contains(t, problems[3], "unknown field type")
	assert.Contains(t, problems[4], "option")
}

func TestAcceptFieldsEmpty(t *testing.T) {
	fields, err := AcceptFields(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}
