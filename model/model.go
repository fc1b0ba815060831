package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

type FieldType int

const (
	FieldText FieldType = iota + 1
	FieldEmail
	FieldTel
	FieldNumber
	FieldTextarea
	FieldSelect
	FieldCheckbox
	FieldRadio
	FieldSubheading
)

var fieldTypeNames = map[FieldType]string{
	FieldText:       "text",
	FieldEmail:      "email",
	FieldTel:        "tel",
	FieldNumber:     "number",
	FieldTextarea:   "textarea",
	FieldSelect:     "select",
	FieldCheckbox:   "checkbox",
	FieldRadio:      "radio",
	FieldSubheading: "subheading",
}

// ParseFieldType maps a wire name to its kind. "phone" is an alias of "tel".
func ParseFieldType(s string) (FieldType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "phone" {
		return FieldTel, nil
	}
	for t, n := range fieldTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown field type %q", s)
}

func (t FieldType) String() string {
	if n, ok := fieldTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

func (t FieldType) Valid() bool {
	_, ok := fieldTypeNames[t]
	return ok
}

// HasOptions reports whether the kind draws its values from Field.Options.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldCheckbox || t == FieldRadio
}

func (t FieldType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid field type %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *FieldType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFieldType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Field struct {
	ID       string      `json:"id"`
	Name     string      `json:"fieldName"`
	Type     FieldType   `json:"fieldType"`
	Required bool        `json:"required"`
	Options  []string    `json:"options"`
	Styles   Breakpoints `json:"styles"`
}

// Key is the name of the request parameter carrying this field's value.
func (f Field) Key() string {
	return "df_field_" + f.ID
}

type Settings struct {
	ToEmail        string    `json:"to_email"`
	FromEmail      string    `json:"from_email"`
	Subject        string    `json:"subject"`
	SuccessMessage string    `json:"success_message"`
	SubmitLabel    string    `json:"submit_label"`
	StoreEntries   bool      `json:"store_entries"`
	Styles         StyleTree `json:"styles"`
}

type Form struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Fields    []Field   `json:"fields"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"created_at"`
}

type FormSummary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Entry struct {
	ID        int       `json:"id"`
	FormID    int       `json:"form_id"`
	Data      EntryData `json:"data"`
	IP        string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
