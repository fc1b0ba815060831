package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SchemaVersion is the version written by EncodeFields and EncodeSettings.
// Version 1 is the unversioned layout: a bare field array with "values" for
// options, and a flat settings object.
const SchemaVersion = 2

type fieldsDoc struct {
	Version int     `json:"version"`
	Fields  []Field `json:"fields"`
}

type settingsDoc struct {
	Version int `json:"version"`
	Settings
}

func EncodeFields(fields []Field) ([]byte, error) {
	out := make([]Field, len(fields))
	for i, f := range fields {
		if f.Options == nil {
			f.Options = []string{}
		}
		if f.Styles == nil {
			f.Styles = DefaultBreakpoints()
		}
		out[i] = f
	}
	return json.Marshal(fieldsDoc{Version: SchemaVersion, Fields: out})
}

func DecodeFields(data []byte) ([]Field, error) {
	data = bytes.TrimSpace(data)
	if isEmptyDoc(data) {
		return []Field{}, nil
	}
	if data[0] == '[' {
		return decodeLegacyFields(data)
	}

	var probe struct {
		Version int             `json:"version"`
		Fields  json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}

	switch {
	case probe.Version == SchemaVersion:
		var doc fieldsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode fields v%d: %w", SchemaVersion, err)
		}
		if doc.Fields == nil {
			doc.Fields = []Field{}
		}
		for i := range doc.Fields {
			if doc.Fields[i].Options == nil {
				doc.Fields[i].Options = []string{}
			}
			if doc.Fields[i].Styles == nil {
				doc.Fields[i].Styles = DefaultBreakpoints()
			}
		}
		return doc.Fields, nil
	case probe.Version < SchemaVersion:
		if isEmptyDoc(probe.Fields) {
			return []Field{}, nil
		}
		return decodeLegacyFields(probe.Fields)
	default:
		return nil, fmt.Errorf("decode fields: unsupported schema version %d", probe.Version)
	}
}

type legacyField struct {
	ID        json.RawMessage `json:"id"`
	FieldName json.RawMessage `json:"fieldName"`
	FieldType json.RawMessage `json:"fieldType"`
	Required  json.RawMessage `json:"required"`
	Options   json.RawMessage `json:"options"`
	Values    json.RawMessage `json:"values"`
	Styles    json.RawMessage `json:"styles"`
}

func decodeLegacyFields(data []byte) ([]Field, error) {
	var raw []legacyField
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode legacy fields: %w", err)
	}

	fields := make([]Field, 0, len(raw))
	for _, lf := range raw {
		t, err := ParseFieldType(legacyString(lf.FieldType))
		if err != nil {
			t = FieldText
		}

		options := legacyStrings(lf.Options)
		if len(options) == 0 {
			options = legacyStrings(lf.Values)
		}

		styles := DefaultBreakpoints()
		if len(lf.Styles) > 0 && lf.Styles[0] == '{' {
			var bp Breakpoints
			if json.Unmarshal(lf.Styles, &bp) == nil {
				for name, props := range bp {
					if props == nil {
						props = StyleProps{}
					}
					styles[name] = props
				}
			}
		}

		fields = append(fields, Field{
			ID:       legacyString(lf.ID),
			Name:     legacyString(lf.FieldName),
			Type:     t,
			Required: legacyBool(lf.Required),
			Options:  options,
			Styles:   styles,
		})
	}
	return fields, nil
}

func EncodeSettings(s Settings) ([]byte, error) {
	return json.Marshal(settingsDoc{Version: SchemaVersion, Settings: s})
}

func DecodeSettings(data []byte) (Settings, error) {
	data = bytes.TrimSpace(data)
	if isEmptyDoc(data) {
		return Settings{}, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	version := 1
	if raw, ok := probe["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return Settings{}, fmt.Errorf("decode settings version: %w", err)
		}
	}

	switch {
	case version == SchemaVersion:
		var doc settingsDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return Settings{}, fmt.Errorf("decode settings v%d: %w", SchemaVersion, err)
		}
		return doc.Settings, nil
	case version < SchemaVersion:
		return decodeLegacySettings(probe), nil
	default:
		return Settings{}, fmt.Errorf("decode settings: unsupported schema version %d", version)
	}
}

func decodeLegacySettings(raw map[string]json.RawMessage) Settings {
	s := Settings{
		ToEmail:        legacyString(raw["to_email"]),
		FromEmail:      legacyString(raw["from_email"]),
		Subject:        legacyString(raw["subject"]),
		SuccessMessage: legacyString(raw["success_message"]),
		SubmitLabel:    legacyString(raw["submit_label"]),
		StoreEntries:   legacyBool(raw["store_entries"]),
	}

	if styles, ok := raw["styles"]; ok && len(styles) > 0 && styles[0] == '{' {
		var flat map[string]json.RawMessage
		if json.Unmarshal(styles, &flat) == nil {
			if _, old := flat["button_color"]; old {
				s.Styles = legacyFlatStyles(flat)
			} else {
				s.Styles = legacyStyleTree(flat)
			}
		}
	}
	return s
}

// legacyFlatStyles migrates the first style format, which only carried a
// button colour and a border radius.
func legacyFlatStyles(flat map[string]json.RawMessage) StyleTree {
	props := StyleProps{}
	if c := legacyString(flat["button_color"]); c != "" {
		props["bg"] = c
	}
	if r := legacyString(flat["border_radius"]); r != "" {
		if n, err := strconv.ParseFloat(r, 64); err == nil {
			props["border_radius"] = n
		}
	}
	return StyleTree{Button: Breakpoints{BreakpointBase: props}}
}

func legacyStyleTree(sections map[string]json.RawMessage) StyleTree {
	var tree StyleTree
	decode := func(raw json.RawMessage) Breakpoints {
		if len(raw) == 0 || raw[0] != '{' {
			return nil
		}
		var bp Breakpoints
		if json.Unmarshal(raw, &bp) != nil {
			return nil
		}
		return bp
	}

	tree.Form = decode(sections[SectionForm])
	tree.Button = decode(sections[SectionButton])
	if raw := sections[SectionFields]; len(raw) > 0 && raw[0] == '{' {
		var byField map[string]json.RawMessage
		if json.Unmarshal(raw, &byField) == nil {
			for id, fieldRaw := range byField {
				if bp := decode(fieldRaw); bp != nil {
					if tree.Fields == nil {
						tree.Fields = map[string]Breakpoints{}
					}
					tree.Fields[id] = bp
				}
			}
		}
	}
	return tree
}

func isEmptyDoc(data []byte) bool {
	switch string(bytes.TrimSpace(data)) {
	case "", "null", "[]", "{}":
		return true
	}
	return false
}

func legacyString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	// numeric ids and similar scalars
	if raw[0] != '{' && raw[0] != '[' {
		return string(raw)
	}
	return ""
}

// legacyBool applies the loose truthiness older versions stored flags with.
func legacyBool(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return n != 0
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s != "" && s != "0"
	}
	return false
}

func legacyStrings(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	out := []string{}
	if len(raw) == 0 {
		return out
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return out
		}
		for _, item := range items {
			if s := strings.TrimSpace(legacyString(item)); s != "" {
				out = append(out, s)
			}
		}
	case '"':
		// options typed one per line in the builder
		for _, line := range strings.Split(legacyString(raw), "\n") {
			if s := strings.TrimSpace(line); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
