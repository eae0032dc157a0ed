package parse

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestDateParser(t *testing.T) {
	p := NewDateParser()
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"01/02/2024, 09:15", date(2024, time.February, 1, 9, 15), true},
		{"1/2/24, 9:15", date(2024, time.February, 1, 9, 15), true},
		{"31/12/99, 23:59", date(1999, time.December, 31, 23, 59), true},
		{"31/02/2024, 10:00", time.Time{}, false},
		{"01/02/2024 09:15", time.Time{}, false},
		{"01/02/2024, 9:5", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := p.Parse(tt.in)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestClassify(t *testing.T) {
	c := NewClassifier()
	tests := []struct {
		in     string
		kind   LineKind
		sender string
		text   string
	}{
		{"01/02/2024, 09:15 - Alice: Hello", LineHeader, "Alice", "Hello"},
		{"01/02/2024, 09:15 - Alice: time: 10:00", LineHeader, "Alice", "time: 10:00"},
		{"\ufeff01/02/2024, 09:15 - Alice: Hi", LineHeader, "Alice", "Hi"},
		{"01/02/2024, 09:15 - Alice: ", LineHeader, "Alice", ""},
		{"01/02/2024, 09:15 - Alice added Bob", LineSystem, "", "Alice added Bob"},
		{"31/02/2024, 09:15 - Alice: Hello", LineMalformed, "", "31/02/2024, 09:15 - Alice: Hello"},
		{"and a second line", LineText, "", "and a second line"},
		{"", LineText, "", ""},
	}
	for _, tt := range tests {
		got := c.Classify(tt.in)
		if got.Kind != tt.kind || got.Sender != tt.sender || got.Text != tt.text {
			t.Errorf("Classify(%q) = %v %q %q; want %v %q %q",
				tt.in, got.Kind, got.Sender, got.Text, tt.kind, tt.sender, tt.text)
		}
	}
}

const transcript = `01/02/2024, 09:00 - Los mensajes y las llamadas están cifrados de extremo a extremo.
01/02/2024, 09:15 - Alice: Hello
second line
third line
1/2/24, 9:20 - Bob: Hi
31/02/2024, 10:00 - Bob: impossible date
dangling after malformed
02/02/2024, 00:00 - Alice: midnight
03/02/2024, 23:59 - Bob: IMG-001.jpg (archivo adjunto)
04/02/2024, 08:00 - Alice: too late
`

func TestParseAppendsContinuationLines(t *testing.T) {
	msgs, err := Parse(strings.NewReader(transcript), Options{})
	if err != nil {
		t.Fatal(err)
	}

	want := []Message{
		{date(2024, time.February, 1, 9, 15), "Alice", "Hello\nsecond line\nthird line", 2},
		{date(2024, time.February, 1, 9, 20), "Bob", "Hi", 5},
		{date(2024, time.February, 2, 0, 0), "Alice", "midnight", 8},
		{date(2024, time.February, 3, 23, 59), "Bob", "IMG-001.jpg (archivo adjunto)", 9},
		{date(2024, time.February, 4, 8, 0), "Alice", "too late", 10},
	}
	if !reflect.DeepEqual(msgs, want) {
		t.Fatalf("got %+v\nwant %+v", msgs, want)
	}
}

func TestParseLegacyDropsContinuationLines(t *testing.T) {
	msgs, err := Parse(strings.NewReader(transcript), Options{Continuation: ContinuationDrop})
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5", len(msgs))
	}
	if msgs[0].Body != "Hello" {
		t.Errorf("body = %q, want %q", msgs[0].Body, "Hello")
	}
}

func TestParseDateRangeInclusive(t *testing.T) {
	start := date(2024, time.February, 2, 13, 0)
	end := date(2024, time.February, 3, 1, 0)
	opts := Options{Range: NewDateRange(&start, &end)}

	msgs, err := Parse(strings.NewReader(transcript), opts)
	if err != nil {
		t.Fatal(err)
	}
	var bodies []string
	for _, m := range msgs {
		bodies = append(bodies, m.Body)
	}
	want := []string{"midnight", "IMG-001.jpg (archivo adjunto)"}
	if !reflect.DeepEqual(bodies, want) {
		t.Fatalf("bodies = %q, want %q", bodies, want)
	}
}

func TestParseDropsContinuationOfExcludedMessage(t *testing.T) {
	in := "01/01/2024, 10:00 - A: old\nold continuation\n05/01/2024, 10:00 - B: new\n"
	start := date(2024, time.January, 5, 0, 0)
	msgs, err := Parse(strings.NewReader(in), Options{Range: NewDateRange(&start, nil)})
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 || msgs[0].Body != "new" {
		t.Fatalf("got %+v", msgs)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	a, _ := Parse(strings.NewReader(transcript), Options{})
	b, _ := Parse(strings.NewReader(transcript), Options{})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("re-parsing produced a different sequence")
	}
}

func TestParseKeepsOutOfOrderTimestamps(t *testing.T) {
	in := "02/01/2024, 10:00 - A: later\n01/01/2024, 10:00 - B: earlier\n"
	msgs, _ := Parse(strings.NewReader(in), Options{})
	if len(msgs) != 2 || msgs[0].Body != "later" || msgs[1].Body != "earlier" {
		t.Fatalf("source order not preserved: %+v", msgs)
	}
}

func TestDateRangeBounds(t *testing.T) {
	day := date(2024, time.March, 10, 15, 30)
	r := NewDateRange(&day, &day)

	if !r.Contains(date(2024, time.March, 10, 0, 0)) {
		t.Error("start of day should be included")
	}
	last := time.Date(2024, time.March, 10, 23, 59, 59, 999_000_000, time.UTC)
	if !r.Contains(last) {
		t.Error("23:59:59.999 should be included")
	}
	if r.Contains(date(2024, time.March, 11, 0, 0)) {
		t.Error("next day should be excluded")
	}
	if !(DateRange{}).Contains(day) {
		t.Error("open range should contain everything")
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Start.Equal(date(2024, time.January, 1, 0, 0)) || !r.End.IsZero() {
		t.Errorf("unexpected range %+v", r)
	}
	if _, err := ParseDateRange("2024-02-01", "2024-01-01"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := ParseDateRange("01/02/2024", ""); err == nil {
		t.Error("expected error for bad date")
	}
}
