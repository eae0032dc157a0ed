package media

import (
	"regexp"
	"strings"

	"github.com/Zuo-Peng/wa-viewer/internal/locale"
)

// Reference is a filename-like token found in message text.
type Reference struct {
	Raw      string // matched text, including marks and attachment suffix
	Filename string // cleaned name used for resolution
}

// invisible lists the zero-width direction and byte-order marks exports
// place around attachment names.
const invisible = "\u200e\u200f\u202a\u202b\u202c\u202d\u202e\u2066\u2067\u2068\u2069\ufeff"

// Extractor finds media references; it never touches the filesystem.
type Extractor struct {
	suffix string
	re     *regexp.Regexp
}

func NewExtractor(loc *locale.Table) *Extractor {
	suffix := ""
	if loc != nil {
		suffix = loc.AttachmentSuffix
	}

	pattern := `(?i)[` + invisible + `]?([\p{L}\p{N}_\-./]+\.(?:` +
		strings.Join(Extensions(), "|") + `))\b`
	if suffix != "" {
		pattern += `(?: ` + regexp.QuoteMeta(suffix) + `)?`
	}

	return &Extractor{suffix: suffix, re: regexp.MustCompile(pattern)}
}

// Extract returns the unique references in text, in first-seen order.
func (e *Extractor) Extract(text string) []Reference {
	var refs []Reference
	seen := make(map[string]bool)
	for _, m := range e.re.FindAllString(text, -1) {
		name := e.Clean(m)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		refs = append(refs, Reference{Raw: m, Filename: name})
	}
	return refs
}

// Filenames is Extract reduced to the cleaned names.
func (e *Extractor) Filenames(text string) []string {
	refs := e.Extract(text)
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Filename
	}
	return names
}

// Clean strips invisible marks and the localized attachment suffix.
func (e *Extractor) Clean(token string) string {
	token = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invisible, r) {
			return -1
		}
		return r
	}, token)
	if e.suffix != "" {
		token = strings.ReplaceAll(token, " "+e.suffix, "")
	}
	return strings.TrimSpace(token)
}
