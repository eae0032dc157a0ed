package parse

import (
	"regexp"
	"strings"
)

var (
	// headerRe matches "dd/mm/yy[yy], HH:MM - sender: text". The sender ends at
	// the first ": ".
	headerRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}, \d{1,2}:\d{2}) - (.*?): (.*)$`)

	// systemRe matches header-dated lines without a sender, e.g. group events.
	systemRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}, \d{1,2}:\d{2}) - (.*)$`)
)

const bom = "\ufeff"

// Classifier decides whether a raw line opens a new message.
type Classifier struct {
	Dates *DateParser
}

func NewClassifier() *Classifier {
	return &Classifier{Dates: NewDateParser()}
}

// Classify matches on structure first and only then validates the date, so a
// header-shaped line with an impossible date is LineMalformed, not a header.
func (c *Classifier) Classify(line string) Line {
	line = strings.TrimPrefix(line, bom)

	if m := headerRe.FindStringSubmatch(line); m != nil {
		ts, ok := c.Dates.Parse(m[1])
		if !ok {
			return Line{Kind: LineMalformed, Text: line}
		}
		return Line{Kind: LineHeader, Timestamp: ts, Sender: m[2], Text: m[3]}
	}

	if m := systemRe.FindStringSubmatch(line); m != nil {
		ts, ok := c.Dates.Parse(m[1])
		if !ok {
			return Line{Kind: LineMalformed, Text: line}
		}
		return Line{Kind: LineSystem, Timestamp: ts, Text: m[2]}
	}

	return Line{Kind: LineText, Text: line}
}
