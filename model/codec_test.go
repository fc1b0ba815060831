package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFieldsEmpty(t *testing.T) {
	for _, in := range []string{"", "null", "[]", "{}", `{"version":2,"fields":[]}`} {
		fields, err := DecodeFields([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, fields, in)
		assert.NotNil(t, fields, in)
	}
}

func TestFieldsRoundTripKeepsDefaults(t *testing.T) {
	data, err := EncodeFields([]Field{{ID: "f1", Name: "Email", Type: FieldEmail, Required: true}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":2`)
	assert.Contains(t, string(data), `"fieldType":"email"`)

	fields, err := DecodeFields(data)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, FieldEmail, fields[0].Type)
	assert.Equal(t, []string{}, fields[0].Options)
	assert.Equal(t, []string{BreakpointBase, BreakpointTablet, BreakpointMobile}, fields[0].Styles.Names())
}

func TestDecodeFieldsRejectsUnknownTypeInCurrentVersion(t *testing.T) {
	_, err := DecodeFields([]byte(`{"version":2,"fields":[{"id":"a","fieldName":"A","fieldType":"date"}]}`))
	assert.Error(t, err)
}

func TestDecodeFieldsRejectsFutureVersion(t *testing.T) {
	_, err := DecodeFields([]byte(`{"version":9,"fields":[]}`))
	assert.Error(t, err)
}

func TestDecodeLegacyFields(t *testing.T) {
	legacy := `[
		{"id":"f1","fieldName":"Phone","fieldType":"phone","required":"1"},
		{"id":7,"fieldName":"Color","fieldType":"select","values":["Red","Blue"]},
		{"id":"f3","fieldName":"Date","fieldType":"date","required":false,"styles":[]}
	]`

	fields, err := DecodeFields([]byte(legacy))
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, FieldTel, fields[0].Type)
	assert.True(t, fields[0].Required)

	assert.Equal(t, "7", fields[1].ID)
	assert.Equal(t, []string{"Red", "Blue"}, fields[1].Options)

	assert.Equal(t, FieldText, fields[2].Type)
	assert.False(t, fields[2].Required)
	assert.Len(t, fields[2].Styles, 3)
}

func TestDecodeLegacySettings(t *testing.T) {
	s, err := DecodeSettings([]byte(`{"to_email":"a@b.com","store_entries":"1","styles":{"button_color":"#ff0000","border_radius":"6"}}`))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", s.ToEmail)
	assert.True(t, s.StoreEntries)
	assert.Equal(t, "#ff0000", s.Styles.Button[BreakpointBase]["bg"])
	assert.Equal(t, 6.0, s.Styles.Button[BreakpointBase]["border_radius"])
}

func TestDecodeLegacySettingsStyleTree(t *testing.T) {
	s, err := DecodeSettings([]byte(`{"store_entries":0,"styles":{"form":{"base":{"bg":"#fff"}},"fields":{"__default":{"base":{"padding":4}}}}}`))
	require.NoError(t, err)
	assert.False(t, s.StoreEntries)
	assert.Equal(t, "#fff", s.Styles.Form[BreakpointBase]["bg"])
	assert.Equal(t, 4.0, s.Styles.Fields[DefaultFieldStyles][BreakpointBase]["padding"])
}

func TestSettingsRoundTrip(t *testing.T) {
	in := Settings{
		ToEmail:      "ops@example.com",
		Subject:      "Hello",
		StoreEntries: true,
		Styles: StyleTree{
			Form: Breakpoints{BreakpointBase: StyleProps{"bg": "#ffffff", "padding": 12.0}},
		},
	}
	data, err := EncodeSettings(in)
	require.NoError(t, err)

	out, err := DecodeSettings(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeSettingsEmptyPHPArray(t *testing.T) {
	s, err := DecodeSettings([]byte("[]"))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}
