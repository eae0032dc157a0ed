package tui

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/search"
	tea "github.com/charmbracelet/bubbletea"
)

func testMessages() []parse.Message {
	at := func(day, hour int) time.Time {
		return time.Date(2024, time.February, day, hour, 0, 0, 0, time.UTC)
	}
	return []parse.Message{
		{Timestamp: at(1, 9), Sender: "Ana", Body: "hola", Line: 1},
		{Timestamp: at(1, 10), Sender: "Bob", Body: "IMG-1.jpg (archivo adjunto)", Line: 2},
		{Timestamp: at(2, 11), Sender: "Ana", Body: "Hola otra vez", Line: 3},
	}
}

// step feeds msg to m and runs the returned command once, feeding its
// result back in.
func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, isBatch := out.(tea.BatchMsg); !isBatch {
			next, _ = m.Update(out)
			m = next.(model)
		}
	}
	return m
}

func TestLoadAppliesQuery(t *testing.T) {
	m := initialModel(Options{Query: search.Query{Text: "hola"}, ShowSender: true, ShowDate: true})
	m = step(t, m, loadedMsg{messages: testMessages()})

	if len(m.messages) != 3 {
		t.Fatalf("messages = %d", len(m.messages))
	}
	if len(m.results) != 2 {
		t.Fatalf("results = %d, want 2", len(m.results))
	}
}

func TestToggles(t *testing.T) {
	m := initialModel(Options{Query: search.Query{Text: "hola"}})
	m = step(t, m, loadedMsg{messages: testMessages()})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c"), Alt: true})
	if !m.query.CaseSensitive || len(m.results) != 1 {
		t.Fatalf("case toggle: sensitive=%v results=%d", m.query.CaseSensitive, len(m.results))
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o"), Alt: true})
	if m.query.Order != search.OrderDesc {
		t.Fatalf("order = %v", m.query.Order)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s"), Alt: true})
	if m.showSender {
		t.Fatal("sender toggle had no effect")
	}
}

func TestStaleFilterResultIgnored(t *testing.T) {
	m := initialModel(Options{})
	m = step(t, m, loadedMsg{messages: testMessages()})

	next, _ := m.Update(filterResultMsg{gen: m.gen - 1, results: nil})
	m = next.(model)
	if len(m.results) != 3 {
		t.Fatalf("stale result replaced current results: %d", len(m.results))
	}
}

func TestEnterSelectsMessage(t *testing.T) {
	m := initialModel(Options{})
	m = step(t, m, loadedMsg{messages: testMessages()})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyDown})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.selected == nil || m.selected.Sender != "Bob" || m.action != exitCopy {
		t.Fatalf("selected = %+v action = %v", m.selected, m.action)
	}
}

func TestFormatMessageLine(t *testing.T) {
	msg := testMessages()[0]
	rows := formatMessageLine(msg, 40, true, false)
	if len(rows) != linesPerItem {
		t.Fatalf("rows = %d", len(rows))
	}
}
