package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is one sanitized submission value: either a single string or, for
// multi-value fields, an ordered list of strings.
type Value struct {
	text  string
	list  []string
	multi bool
}

func Text(s string) Value {
	return Value{text: s}
}

func List(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{list: items, multi: true}
}

func (v Value) IsList() bool { return v.multi }

func (v Value) Text() string { return v.text }

func (v Value) List() []string { return v.list }

// IsEmpty reports a blank text, or a list without any non-blank element.
func (v Value) IsEmpty() bool {
	if v.multi {
		for _, item := range v.list {
			if item != "" {
				return false
			}
		}
		return true
	}
	return v.text == ""
}

// String renders lists comma-joined, the form used in emails and CSV exports.
func (v Value) String() string {
	if v.multi {
		return strings.Join(v.list, ", ")
	}
	return v.text
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.List())
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = Text("")
	case data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = List(items)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
	default:
		// numbers and booleans written by older versions
		*v = Text(string(data))
	}
	return nil
}

type Pair struct {
	Label string
	Value Value
}

// EntryData keeps submitted values in form order; it encodes as a JSON object.
type EntryData []Pair

func (d EntryData) Get(label string) (Value, bool) {
	for _, p := range d {
		if p.Label == label {
			return p.Value, true
		}
	}
	return Value{}, false
}

func (d EntryData) Has(label string) bool {
	_, ok := d.Get(label)
	return ok
}

func (d EntryData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *EntryData) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entry data: expected object, got %v", tok)
	}

	out := EntryData{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("entry data: expected key, got %v", tok)
		}
		var v Value
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, Pair{Label: label, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}
