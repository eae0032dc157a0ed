package parse

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

type parserState int

const (
	stateIdle parserState = iota
	stateOpen
	stateSkipping // inside a message excluded by the date range
)

// Parse reads a transcript line by line and returns its messages in source
// order. Lines that are not messages are skipped silently; only read errors
// are returned.
func Parse(r io.Reader, opts Options) ([]Message, error) {
	classifier := NewClassifier()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var messages []Message
	var current Message
	var body strings.Builder
	state := stateIdle
	lineNum := 0

	flush := func() {
		if state == stateOpen {
			current.Body = body.String()
			messages = append(messages, current)
		}
		body.Reset()
		state = stateIdle
	}

	for scanner.Scan() {
		lineNum++
		line := classifier.Classify(scanner.Text())

		switch line.Kind {
		case LineHeader:
			flush()
			if !opts.Range.Contains(line.Timestamp) {
				state = stateSkipping
				continue
			}
			current = Message{
				Timestamp: line.Timestamp,
				Sender:    line.Sender,
				Line:      lineNum,
			}
			body.WriteString(line.Text)
			state = stateOpen

		case LineSystem, LineMalformed:
			flush()

		case LineText:
			if opts.Continuation == ContinuationDrop {
				continue
			}
			if state == stateOpen {
				body.WriteByte('\n')
				body.WriteString(line.Text)
			}
		}
	}
	flush()

	return messages, scanner.Err()
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, opts Options) ([]Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, opts)
}
