package locale

import (
	"testing"
	"time"
)

func TestLookup(t *testing.T) {
	for _, tag := range []string{"", "es", "es-AR", "en", "en-GB"} {
		if _, err := Lookup(tag); err != nil {
			t.Errorf("Lookup(%q): %v", tag, err)
		}
	}
	if _, err := Lookup("fr"); err == nil {
		t.Error("expected error for unsupported locale")
	}
	if _, err := Lookup("not a tag!"); err == nil {
		t.Error("expected error for malformed tag")
	}
}

func TestDayHeading(t *testing.T) {
	es := MustDefault()
	// 2024-02-05 is a Monday
	day := time.Date(2024, time.February, 5, 10, 0, 0, 0, time.UTC)
	if got, want := es.DayHeading(day), "Lunes, 05/02/2024"; got != want {
		t.Errorf("DayHeading = %q, want %q", got, want)
	}
	wed := time.Date(2024, time.February, 7, 10, 0, 0, 0, time.UTC)
	if got, want := es.DayHeading(wed), "Miércoles, 07/02/2024"; got != want {
		t.Errorf("DayHeading = %q, want %q", got, want)
	}

	en, _ := Lookup("en")
	if got, want := en.DayHeading(day), "Monday, 05/02/2024"; got != want {
		t.Errorf("DayHeading = %q, want %q", got, want)
	}
}
