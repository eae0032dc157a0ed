package search

import (
	"strings"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MatchOptions struct {
	CaseSensitive bool
	WholeWord     bool
}

// Matches reports whether text satisfies query. In whole-word mode every
// whitespace-separated query word must appear delimited by Unicode word
// boundaries; otherwise the query is a single literal substring.
func Matches(text, query string, opts MatchOptions) bool {
	if query == "" {
		return true
	}
	if !opts.CaseSensitive {
		lower := cases.Lower(language.Und)
		text = lower.String(text)
		query = lower.String(query)
	}
	if !opts.WholeWord {
		return strings.Contains(text, query)
	}

	bounds := wordBoundaries(text)
	for _, w := range strings.Fields(query) {
		if !containsWord(text, w, bounds) {
			return false
		}
	}
	return true
}

// wordBoundaries returns the byte offsets of UAX #29 word boundaries in s,
// including 0 and len(s).
func wordBoundaries(s string) map[int]bool {
	bounds := map[int]bool{0: true}
	pos, state := 0, -1
	rest := s
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		pos += len(word)
		bounds[pos] = true
	}
	return bounds
}

func containsWord(text, word string, bounds map[int]bool) bool {
	for from := 0; from <= len(text)-len(word); {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			return false
		}
		start := from + idx
		if bounds[start] && bounds[start+len(word)] {
			return true
		}
		from = start + 1
	}
	return false
}

type Order int

const (
	OrderAsc  Order = iota // transcript order
	OrderDesc              // most recent first
)

// ParseOrder accepts "asc" or "desc"; anything else is ascending.
func ParseOrder(s string) Order {
	if strings.EqualFold(s, "desc") {
		return OrderDesc
	}
	return OrderAsc
}

func (o Order) String() string {
	if o == OrderDesc {
		return "desc"
	}
	return "asc"
}

// Query is the text filter and ordering applied to a parsed chat.
type Query struct {
	Text string
	MatchOptions
	Order Order
}

// Apply filters msgs on their bodies and orders the survivors. The input
// slice is not modified.
func (q Query) Apply(msgs []parse.Message) []parse.Message {
	out := make([]parse.Message, 0, len(msgs))
	for _, m := range msgs {
		if Matches(m.Body, q.Text, q.MatchOptions) {
			out = append(out, m)
		}
	}
	if q.Order == OrderDesc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
