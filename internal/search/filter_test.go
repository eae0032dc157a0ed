package search

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		text, query string
		opts        MatchOptions
		want        bool
	}{
		{"Hello world", "hello", MatchOptions{}, true},
		{"Hello world", "hello", MatchOptions{CaseSensitive: true}, false},
		{"Hello world", "Hello", MatchOptions{CaseSensitive: true}, true},
		{"anything", "", MatchOptions{WholeWord: true}, true},
		{"cat catalog", "cat", MatchOptions{WholeWord: true}, true},
		{"catalog", "cat", MatchOptions{WholeWord: true}, false},
		{"catalog", "cat", MatchOptions{}, true},
		{"the cat sat", "sat cat", MatchOptions{WholeWord: true}, true},
		{"the cat sat", "cat dog", MatchOptions{WholeWord: true}, false},
		{"Ver el CAT, luego", "cat", MatchOptions{WholeWord: true}, true},
		{"Ver el CAT, luego", "cat", MatchOptions{WholeWord: true, CaseSensitive: true}, false},
		{"Mañana llegamos", "mañana", MatchOptions{WholeWord: true}, true},
		{"Mañanas", "mañana", MatchOptions{WholeWord: true}, false},
		{"price is 3.5 (approx)", "(approx)", MatchOptions{}, true},
		{"a+b=c", "a+b", MatchOptions{WholeWord: true}, true},
		{"x.y", ".", MatchOptions{}, true},
		{"xay", ".", MatchOptions{}, false},
	}
	for _, tt := range tests {
		if got := Matches(tt.text, tt.query, tt.opts); got != tt.want {
			t.Errorf("Matches(%q, %q, %+v) = %v, want %v", tt.text, tt.query, tt.opts, got, tt.want)
		}
	}
}

func TestQueryApply(t *testing.T) {
	ts := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)
	msgs := []parse.Message{
		{Timestamp: ts, Sender: "A", Body: "first cat"},
		{Timestamp: ts.Add(time.Minute), Sender: "B", Body: "dog"},
		{Timestamp: ts.Add(2 * time.Minute), Sender: "A", Body: "second cat"},
	}

	got := Query{Text: "cat"}.Apply(msgs)
	if len(got) != 2 || got[0].Body != "first cat" || got[1].Body != "second cat" {
		t.Fatalf("asc: got %+v", got)
	}

	got = Query{Order: OrderDesc}.Apply(msgs)
	if len(got) != 3 || got[0].Body != "second cat" || got[2].Body != "first cat" {
		t.Fatalf("desc: got %+v", got)
	}
	if msgs[0].Body != "first cat" {
		t.Fatal("Apply modified its input")
	}
}

func TestParseOrder(t *testing.T) {
	if ParseOrder("DESC") != OrderDesc || ParseOrder("asc") != OrderAsc || ParseOrder("") != OrderAsc {
		t.Fatal("unexpected order parsing")
	}
}
