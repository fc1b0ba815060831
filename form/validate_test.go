package form

import (
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   model.Field
		value   model.Value
		wantErr string
	}{
		{
			name:    "required text missing",
			field:   model.Field{ID: "n", Name: "Name", Type: model.FieldText, Required: true},
			value:   model.Text(""),
			wantErr: `"Name" is required.`,
		},
		{
			name:  "optional text empty",
			field: model.Field{ID: "n", Name: "Name", Type: model.FieldText},
			value: model.Text(""),
		},
		{
			name:    "required checkbox with empty collection",
			field:   model.Field{ID: "c", Name: "Topics", Type: model.FieldCheckbox, Required: true, Options: []string{"a"}},
			value:   model.List(nil),
			wantErr: `"Topics" is required.`,
		},
		{
			name:    "required checkbox with only blank items",
			field:   model.Field{ID: "c", Name: "Topics", Type: model.FieldCheckbox, Required: true, Options: []string{"a"}},
			value:   model.List([]string{"", ""}),
			wantErr: `"Topics" is required.`,
		},
		{
			name:  "checkbox blank items kept alongside a choice",
			field: model.Field{ID: "c", Name: "Topics", Type: model.FieldCheckbox, Required: true, Options: []string{"a"}},
			value: model.List([]string{"a", "", "a"}),
		},
		{
			name:    "email malformed",
			field:   model.Field{ID: "e", Name: "Email", Type: model.FieldEmail},
			value:   model.Text("nope@"),
			wantErr: `"Email" must be a valid email address.`,
		},
		{
			name:    "number malformed",
			field:   model.Field{ID: "q", Name: "Qty", Type: model.FieldNumber},
			value:   model.Text("ten"),
			wantErr: `"Qty" must be a number.`,
		},
		{
			name:    "tel malformed",
			field:   model.Field{ID: "p", Name: "Phone", Type: model.FieldTel},
			value:   model.Text("555-CALL"),
			wantErr: `"Phone" is not a valid phone number.`,
		},
		{
			name:    "select outside options",
			field:   model.Field{ID: "s", Name: "Size", Type: model.FieldSelect, Options: []string{"S", "M"}},
			value:   model.Text("XL"),
			wantErr: `"Size" has an invalid choice.`,
		},
		{
			name:    "required wins over type check",
			field:   model.Field{ID: "e", Name: "Email", Type: model.FieldEmail, Required: true},
			value:   model.Text(""),
			wantErr: `"Email" is required.`,
		},
		{
			name:  "subheading never validated",
			field: model.Field{ID: "h", Name: "About you", Type: model.FieldSubheading, Required: true},
			value: model.Text(""),
		},
		{
			name:    "label falls back to id",
			field:   model.Field{ID: "f9", Type: model.FieldText, Required: true},
			value:   model.Text(""),
			wantErr: `"f9" is required.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.field, tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field.ID, fe.FieldID)
		})
	}
}

func TestProcessReportsUnparseableEmail(t *testing.T) {
	f := model.Field{ID: "f1", Name: "Email", Type: model.FieldEmail, Required: true}

	_, err := Process(f, []string{"not-an-email"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email")

	v, err := Process(f, []string{"A@B.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", v.Text())

	optional := model.Field{ID: "f2", Name: "Backup", Type: model.FieldEmail}
	_, err = Process(optional, []string{"garbage"})
	assert.Error(t, err)

	v, err = Process(optional, []string{"  "})
	assert.NoError(t, err)
	assert.True(t, v.IsEmpty())
}
