package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/wa-viewer/internal/index"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
)

type Result struct {
	ChatName   string
	MsgID      int
	Ts         string
	Sender     string
	Body       string
	LineNumber int
	Snippet    string
}

type Options struct {
	Query  string
	Chat   string // "" = all chats
	Sender string // "" = all senders
	Range  parse.DateRange
	MatchOptions
	Order Order
	Limit int
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if query == "" || idx < 0 || len(lower) != len(text) {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search looks up messages across indexed chats. SQL narrows the candidates
// (FTS5 for whole-word queries, instr/LIKE for substrings) and every
// candidate is then confirmed with Matches, so results agree with the
// in-memory filter.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	var conditions []string
	var args []interface{}
	from := "messages m"

	if cond, arg, useFTS := textCondition(opts); cond != "" {
		if useFTS {
			from = "messages_fts JOIN messages m ON messages_fts.rowid = m.rowid"
		}
		conditions = append(conditions, cond)
		args = append(args, arg)
	}

	// chat filter
	if opts.Chat != "" {
		conditions = append(conditions, "m.chat_name = ?")
		args = append(args, opts.Chat)
	}

	// sender filter
	if opts.Sender != "" {
		conditions = append(conditions, "m.sender = ?")
		args = append(args, opts.Sender)
	}

	// date range filter
	if !opts.Range.Start.IsZero() {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Range.Start.Format(index.TimeLayout))
	}
	if !opts.Range.End.IsZero() {
		conditions = append(conditions, "m.ts <= ?")
		args = append(args, opts.Range.End.Format(index.TimeLayout))
	}

	where := "1 = 1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	dir := "ASC"
	if opts.Order == OrderDesc {
		dir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT m.chat_name, m.msg_id, m.ts, m.sender, m.body, m.line_number
		FROM %s
		WHERE %s
		ORDER BY m.ts %s, m.chat_name, m.msg_id %s
	`, from, where, dir, dir)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	snippetTerm := opts.Query
	if opts.WholeWord {
		if words := strings.Fields(opts.Query); len(words) > 0 {
			snippetTerm = words[0]
		}
	}

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ChatName, &r.MsgID, &r.Ts, &r.Sender, &r.Body, &r.LineNumber); err != nil {
			return nil, err
		}
		if !Matches(r.Body, opts.Query, opts.MatchOptions) {
			continue
		}
		r.Snippet = makeSnippet(r.Body, snippetTerm, 30)
		results = append(results, r)
		if len(results) >= opts.Limit {
			break
		}
	}
	return results, rows.Err()
}

// textCondition returns a SQL predicate that admits at least every message
// Matches would accept, or "" when no safe narrowing exists.
func textCondition(opts Options) (cond string, arg interface{}, useFTS bool) {
	q := opts.Query
	if q == "" {
		return "", nil, false
	}

	if opts.WholeWord {
		words := strings.Fields(q)
		if len(words) == 0 {
			return "", nil, false
		}
		var phrases []string
		for _, w := range words {
			// unicode61 keeps ideograph runs as one token, UAX #29 splits them
			if !hasAlnum(w) || hasIdeograph(w) {
				return "", nil, false
			}
			phrases = append(phrases, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
		}
		return "messages_fts MATCH ?", strings.Join(phrases, " "), true
	}

	if opts.CaseSensitive {
		return "instr(m.body, ?) > 0", q, false
	}
	// LIKE folds ASCII only
	if isASCII(q) {
		escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
		return `m.body LIKE ? ESCAPE '\'`, "%" + escaped + "%", false
	}
	return "", nil, false
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasIdeograph(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Ideographic, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
