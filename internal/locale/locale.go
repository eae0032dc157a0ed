// Package locale holds the export-language strings the parser and renderer
// depend on: the attachment marker appended to media references and the
// weekday names used in day separators.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Table struct {
	Tag              language.Tag
	AttachmentSuffix string    // e.g. "(archivo adjunto)"
	Weekdays         [7]string // indexed by time.Weekday
	DateLayout       string    // day separator date
	MissingMedia     string    // label for unresolved media
}

var tables = map[string]Table{
	"es": {
		Tag:              language.Spanish,
		AttachmentSuffix: "(archivo adjunto)",
		Weekdays:         [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		DateLayout:       "02/01/2006",
		MissingMedia:     "no encontrado",
	},
	"en": {
		Tag:              language.English,
		AttachmentSuffix: "(file attached)",
		Weekdays:         [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
		DateLayout:       "02/01/2006",
		MissingMedia:     "not found",
	},
}

// Default is the locale used when none is configured.
const Default = "es"

// Lookup resolves a BCP 47 tag ("es", "es-AR", "en-GB") to the closest table.
func Lookup(tag string) (*Table, error) {
	if tag == "" {
		tag = Default
	}
	t, err := language.Parse(tag)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", tag, err)
	}
	base, _ := t.Base()
	tbl, ok := tables[base.String()]
	if !ok {
		return nil, fmt.Errorf("unsupported locale %q", tag)
	}
	return &tbl, nil
}

// MustDefault returns the default table; it panics only if the built-in
// table is broken.
func MustDefault() *Table {
	tbl, err := Lookup(Default)
	if err != nil {
		panic(err)
	}
	return tbl
}

func (t *Table) Weekday(ts time.Time) string {
	return t.Weekdays[ts.Weekday()]
}

// DayHeading formats a day separator such as "Lunes, 01/02/2024".
func (t *Table) DayHeading(ts time.Time) string {
	return cases.Title(t.Tag).String(t.Weekday(ts)) + ", " + ts.Format(t.DateLayout)
}
