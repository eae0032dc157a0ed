package tui

import (
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/render"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// previewContext is the number of neighbouring messages shown around the
// selected one.
const previewContext = 5

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
}

// loadPreviewCmd renders the selected message with its neighbours async.
func loadPreviewCmd(results []parse.Message, cursor int, key string, opts render.Options) tea.Cmd {
	return func() tea.Msg {
		start := cursor - previewContext
		if start < 0 {
			start = 0
		}
		end := cursor + previewContext + 1
		if end > len(results) {
			end = len(results)
		}
		opts.HitIndex = cursor - start
		content, hitLine := render.RenderMessages(results[start:end], opts)
		return previewRenderedMsg{key: key, content: content, hitLine: hitLine}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
