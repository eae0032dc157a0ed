package parse

import "time"

// Message is one attributed, timestamped entry recovered from a transcript.
type Message struct {
	Timestamp time.Time
	Sender    string
	Body      string // text after the header, continuation lines joined with "\n"
	Line      int    // 1-based line number of the header in the transcript
}

type LineKind int

const (
	LineText      LineKind = iota // no header structure; candidate continuation
	LineHeader                    // "<date>, <time> - <sender>: <text>" with a valid date
	LineSystem                    // "<date>, <time> - <text>" without a sender
	LineMalformed                 // header-shaped but the date does not parse
)

func (k LineKind) String() string {
	switch k {
	case LineHeader:
		return "header"
	case LineSystem:
		return "system"
	case LineMalformed:
		return "malformed"
	default:
		return "text"
	}
}

// Line is the classification of one raw transcript line.
type Line struct {
	Kind      LineKind
	Timestamp time.Time
	Sender    string
	Text      string
}

type ContinuationMode int

const (
	// ContinuationAppend appends non-header lines to the open message body.
	ContinuationAppend ContinuationMode = iota
	// ContinuationDrop discards every line that is not a header.
	ContinuationDrop
)

type Options struct {
	Range        DateRange
	Continuation ContinuationMode
}
