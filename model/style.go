package model

import "sort"

const (
	SectionForm   = "form"
	SectionFields = "fields"
	SectionButton = "button"

	// DefaultFieldStyles is the Fields key applied to every field.
	DefaultFieldStyles = "__default"
)

const (
	BreakpointBase   = "base"
	BreakpointTablet = "tablet"
	BreakpointMobile = "mobile"
)

// StyleProps maps a property key to its sanitized value: a string, a float64 or nil.
type StyleProps map[string]any

// Breakpoints holds one StyleProps per breakpoint name.
type Breakpoints map[string]StyleProps

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		BreakpointBase:   StyleProps{},
		BreakpointTablet: StyleProps{},
		BreakpointMobile: StyleProps{},
	}
}

// Names lists the breakpoints in cascade order: base, tablet, mobile, then any
// other breakpoint alphabetically.
func (b Breakpoints) Names() []string {
	names := make([]string, 0, len(b))
	var extra []string
	for _, known := range []string{BreakpointBase, BreakpointTablet, BreakpointMobile} {
		if _, ok := b[known]; ok {
			names = append(names, known)
		}
	}
	for name := range b {
		if name != BreakpointBase && name != BreakpointTablet && name != BreakpointMobile {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// StyleTree is the per-form visual override document stored in Settings.
type StyleTree struct {
	Form   Breakpoints            `json:"form,omitempty"`
	Fields map[string]Breakpoints `json:"fields,omitempty"`
	Button Breakpoints            `json:"button,omitempty"`
}

func (t StyleTree) IsZero() bool {
	return len(t.Form) == 0 && len(t.Fields) == 0 && len(t.Button) == 0
}
