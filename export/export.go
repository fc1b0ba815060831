// Package export writes stored entries as JSON or as spreadsheet-friendly CSV.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/mbolis/quick-form/model"
)

// MaxEntries bounds a single export.
const MaxEntries = 10000

const dateLayout = "2006-01-02 15:04:05"

var bom = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Entry ID", "Form ID", "Field", "Value", "IP Address", "User Agent", "Date"}

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

func (f Format) Filename() string {
	return "df-entries." + string(f)
}

func Write(w io.Writer, f Format, entries []model.Entry) error {
	if f == FormatCSV {
		return WriteCSV(w, entries)
	}
	return WriteJSON(w, entries)
}

// WriteJSON writes an indented JSON array.
func WriteJSON(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(entries)
}

// WriteCSV writes one row per field per entry after a UTF-8 byte-order mark.
// List values are comma-joined.
func WriteCSV(w io.Writer, entries []model.Entry) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		id, formID := strconv.Itoa(e.ID), strconv.Itoa(e.FormID)
		date := e.CreatedAt.Format(dateLayout)
		for _, p := range e.Data {
			err := cw.Write([]string{id, formID, p.Label, p.Value.String(), e.IP, e.UserAgent, date})
			if err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
