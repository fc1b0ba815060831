package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryDataKeepsOrder(t *testing.T) {
	data := EntryData{
		{Label: "Name", Value: Text("Ada")},
		{Label: "Colors", Value: List([]string{"red", "red", "blue"})},
		{Label: "Age", Value: Text("36")},
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Equal(t, `{"Name":"Ada","Colors":["red","red","blue"],"Age":"36"}`, string(raw))

	var back EntryData
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, data, back)
}

func TestEntryDataLegacyScalars(t *testing.T) {
	var data EntryData
	require.NoError(t, json.Unmarshal([]byte(`{"n":42,"x":null}`), &data))

	v, ok := data.Get("n")
	require.True(t, ok)
	assert.Equal(t, "42", v.Text())

	v, ok = data.Get("x")
	require.True(t, ok)
	assert.True(t, v.IsEmpty())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "a, b", List([]string{"a", "b"}).String())
	assert.Equal(t, "x", Text("x").String())
	assert.True(t, List(nil).IsEmpty())
	assert.True(t, List([]string{"", ""}).IsEmpty())
	assert.False(t, List([]string{"", "a"}).IsEmpty())
	assert.Equal(t, "[]", mustJSON(t, List(nil)))
}

func TestParseFieldType(t *testing.T) {
	for name, want := range map[string]FieldType{
		"text": FieldText, "Email": FieldEmail, "phone": FieldTel, "tel": FieldTel,
		"checkbox": FieldCheckbox, "subheading": FieldSubheading,
	} {
		got, err := ParseFieldType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFieldType("file")
	assert.Error(t, err)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
