package parse

import (
	"fmt"
	"time"
)

// DefaultLayouts are the transcript timestamp layouts, four-digit year first.
var DefaultLayouts = []string{
	"2/1/2006, 15:04",
	"2/1/06, 15:04",
}

// DateParser tries a fixed, ordered list of layouts. Parsed times carry no
// zone information: they are stored in time.UTC and never converted.
type DateParser struct {
	Layouts []string
}

func NewDateParser() *DateParser {
	return &DateParser{Layouts: DefaultLayouts}
}

// Parse returns the first layout that matches s in full.
func (p *DateParser) Parse(s string) (time.Time, bool) {
	for _, layout := range p.Layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateRange is an inclusive filter; a zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange floors start to midnight and ceils end to the last
// nanosecond of its day. Nil bounds stay open.
func NewDateRange(start, end *time.Time) DateRange {
	var r DateRange
	if start != nil {
		r.Start = startOfDay(*start)
	}
	if end != nil {
		r.End = startOfDay(*end).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return r
}

// ParseDateRange builds a range from YYYY-MM-DD strings; empty means open.
func ParseDateRange(from, to string) (DateRange, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q: %w", from, err)
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q: %w", to, err)
		}
		end = &t
	}
	r := NewDateRange(start, end)
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", to, from)
	}
	return r, nil
}

func (r DateRange) Bounded() bool {
	return !r.Start.IsZero() || !r.End.IsZero()
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
