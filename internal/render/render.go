package render

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/wa-viewer/internal/locale"
	"github.com/Zuo-Peng/wa-viewer/internal/media"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorSender  = "\033[1;34m" // bold blue
	colorDay     = "\033[1;37m" // bold white
	colorMedia   = "\033[1;32m" // bold green
	colorMissing = "\033[2;33m" // dim yellow
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	ShowSender bool
	ShowDate   bool
	Width      int    // wrap width (0 = no wrap)
	Query      string // search query for keyword highlighting
	HitIndex   int    // index into the rendered messages to mark, -1 for none
	Color      bool
	Locale     *locale.Table
	// MediaDir enables media lines; empty disables resolution.
	MediaDir  string
	Extractor *media.Extractor
}

// DefaultOptions shows sender and date and no hit.
func DefaultOptions() Options {
	return Options{ShowSender: true, ShowDate: true, HitIndex: -1, Color: true}
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	// byte offsets below assume lower-casing keeps lengths
	if query == "" || len(strings.ToLower(text)) != len(text) {
		return text
	}
	for _, term := range strings.Fields(query) {
		lower := strings.ToLower(term)
		if len(lower) != len(term) {
			continue
		}
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// MediaLine describes how one reference is shown.
type MediaLine struct {
	Ref      media.Reference
	Path     string // resolved path, empty when missing
	Kind     media.Kind
	Resolved bool
}

// ResolveMedia extracts and resolves the references in one message body.
func ResolveMedia(body, dir string, ex *media.Extractor) []MediaLine {
	var lines []MediaLine
	for _, ref := range ex.Extract(body) {
		ml := MediaLine{Ref: ref, Kind: media.KindOf(ref.Filename)}
		if p, ok := media.Resolve(dir, ref.Filename); ok {
			ml.Path = p
			ml.Resolved = true
		}
		lines = append(lines, ml)
	}
	return lines
}

func (ml MediaLine) text(loc *locale.Table) string {
	if !ml.Resolved {
		return fmt.Sprintf("[%s] %s (%s)", ml.Kind, ml.Ref.Filename, loc.MissingMedia)
	}
	if ml.Kind.Inline() {
		return fmt.Sprintf("[%s] %s", ml.Kind, ml.Path)
	}
	abs, err := filepath.Abs(ml.Path)
	if err != nil {
		abs = ml.Path
	}
	return fmt.Sprintf("[%s] file://%s", ml.Kind, abs)
}

// RenderMessages renders msgs with day separators and returns the content
// and the 0-based line of the hit message header (-1 if no hit).
func RenderMessages(msgs []parse.Message, opts Options) (string, int) {
	loc := opts.Locale
	if loc == nil {
		loc = locale.MustDefault()
	}
	ex := opts.Extractor
	if ex == nil {
		ex = media.NewExtractor(loc)
	}
	paint := func(color, s string) string {
		if !opts.Color {
			return s
		}
		return color + s + colorReset
	}

	if len(msgs) == 0 {
		return "(no messages)\n", -1
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	var lastDay string
	for i, m := range msgs {
		day := m.Timestamp.Format("2006-01-02")
		if day != lastDay {
			if i > 0 {
				writeLine("")
			}
			writeLine(paint(colorDay, "── "+loc.DayHeading(m.Timestamp)+" ──"))
			lastDay = day
		}

		if i == opts.HitIndex {
			hitLine = lineCount
		}

		var head strings.Builder
		if opts.ShowDate {
			head.WriteString(paint(colorDim, "["+m.Timestamp.Format("02/01/2006 15:04")+"]"))
			head.WriteString(" ")
		}
		if opts.ShowSender {
			head.WriteString(paint(colorSender, m.Sender+":"))
			head.WriteString(" ")
		}

		body := m.Body
		if opts.Color {
			body = highlightKeywords(body, opts.Query)
		}
		lines := strings.Split(body, "\n")
		first := head.String() + lines[0]
		if i == opts.HitIndex && opts.Color {
			first = colorHit + ">>" + colorReset + " " + first
		}
		writeLine(first)
		if len(lines) > 1 {
			for _, l := range strings.Split(indentLines(strings.Join(lines[1:], "\n"), "  "), "\n") {
				writeLine(l)
			}
		}

		if opts.MediaDir != "" {
			for _, ml := range ResolveMedia(m.Body, opts.MediaDir, ex) {
				color := colorMedia
				if !ml.Resolved {
					color = colorMissing
				}
				writeLine("  " + paint(color, ml.text(loc)))
			}
		}
	}

	return b.String(), hitLine
}
