// Package form holds the pure rules applied to form definitions and submitted
// values: sanitization, validation, schema acceptance and style merging.
package form

import (
	"html"
	"net/mail"
	"regexp"
	"strings"

	"github.com/mbolis/quick-form/model"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()

	reNotTel  = regexp.MustCompile(`[^0-9+\-\s]`)
	reTel     = regexp.MustCompile(`^[0-9+\-\s]+$`)
	reNumeric = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// Sanitize cleans the raw request values of one field. Checkbox fields keep
// every element, blanks and duplicates included; every other kind uses the
// first value.
func Sanitize(t model.FieldType, raw []string) model.Value {
	first := ""
	if len(raw) > 0 {
		first = raw[0]
	}

	//exhaustive:enforce
	switch t {
	case model.FieldText, model.FieldSelect, model.FieldRadio:
		return model.Text(SanitizeText(first))
	case model.FieldEmail:
		return model.Text(SanitizeEmail(first))
	case model.FieldTextarea:
		return model.Text(SanitizeTextarea(first))
	case model.FieldCheckbox:
		items := make([]string, len(raw))
		for i, r := range raw {
			items[i] = SanitizeText(r)
		}
		return model.List(items)
	case model.FieldNumber:
		return model.Text(SanitizeNumber(first))
	case model.FieldTel:
		return model.Text(SanitizeTel(first))
	case model.FieldSubheading:
		return model.Text("")
	}
	// zero FieldType
	return model.Text(SanitizeText(first))
}

// SanitizeText strips markup and collapses all whitespace to single spaces.
func SanitizeText(s string) string {
	return strings.Join(strings.Fields(stripTags(s)), " ")
}

// SanitizeTextarea strips markup but keeps line breaks.
func SanitizeTextarea(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(stripTags(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// SanitizeEmail lower-cases a bare address, or returns "" if it is not one.
func SanitizeEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !IsEmail(s) {
		return ""
	}
	return s
}

// IsEmail accepts bare addresses (no display name) with a dotted domain.
func IsEmail(s string) bool {
	if len(s) < 6 || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	if at < 1 {
		return false
	}
	labels := strings.Split(s[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" || strings.HasPrefix(l, "-") || strings.HasSuffix(l, "-") {
			return false
		}
	}
	return true
}

func SanitizeNumber(s string) string {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return ""
	}
	return s
}

func IsNumeric(s string) bool {
	return reNumeric.MatchString(s)
}

func SanitizeTel(s string) string {
	return strings.TrimSpace(reNotTel.ReplaceAllString(s, ""))
}

func IsTel(s string) bool {
	return reTel.MatchString(s)
}

// stripTags removes markup until the text is stable, so that encoded tags
// cannot reappear on a second pass.
func stripTags(s string) string {
	s = strings.ToValidUTF8(s, "")
	for {
		clean := html.UnescapeString(strictPolicy.Sanitize(s))
		if clean == s {
			return s
		}
		s = clean
	}
}
