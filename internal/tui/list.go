package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each message occupies.
const linesPerItem = 2

// renderList renders the left panel: filtered messages with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No messages")
		return empty
	}

	var lines []string
	for i, msg := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		hasMedia := len(m.extractor.Extract(msg.Body)) > 0
		rows := formatMessageLine(msg, width, i == m.cursor, hasMedia)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatMessageLine formats a single message as two lines:
//
//	line 1: [>] dd/mm HH:MM  sender  [media]
//	line 2:    first body line (dimmed)
func formatMessageLine(msg parse.Message, width int, selected, hasMedia bool) []string {
	date := msg.Timestamp.Format("02/01/06 15:04")

	// Truncate sender to fit width: leave room for prefix, date and media mark
	sender := msg.Sender
	senderMax := width - 2 - len(date) - 1 - 4
	if senderMax < 0 {
		senderMax = 0
	}
	if runewidth.StringWidth(sender) > senderMax {
		sender = runewidth.Truncate(sender, senderMax, "")
	}

	line1 := fmt.Sprintf("%s %s", date, styleSender.Render(sender))
	if hasMedia {
		line1 += " " + styleMediaMark.Render("[m]")
	}
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: body (dimmed, indented)
	body := strings.ReplaceAll(msg.Body, "\n", " ")
	body = strings.ReplaceAll(body, "\t", " ")
	bodyMax := width - 4 // indent
	if bodyMax < 0 {
		bodyMax = 0
	}
	if runewidth.StringWidth(body) > bodyMax {
		body = runewidth.Truncate(body, bodyMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(body)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
