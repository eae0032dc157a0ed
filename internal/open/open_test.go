package open

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		want   string
	}{
		{"nvim", "+12 chat.txt"},
		{"/usr/bin/vim", "+12 chat.txt"},
		{"code", "--goto chat.txt:12"},
		{"less", "+12 chat.txt"},
		{"nano", "chat.txt"},
	}
	for _, tt := range tests {
		cmd := editorCommand(tt.editor, "chat.txt", 12)
		if got := strings.Join(cmd.Args[1:], " "); got != tt.want {
			t.Errorf("%s: args = %q, want %q", tt.editor, got, tt.want)
		}
	}
}

func TestMediaCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "xdg-open"},
		{"darwin", "open"},
		{"windows", "cmd"},
	}
	for _, tt := range tests {
		cmd := mediaCommand(tt.goos, "IMG-1.jpg")
		if filepath.Base(cmd.Args[0]) != tt.want {
			t.Errorf("%s: command = %q, want %q", tt.goos, cmd.Args[0], tt.want)
		}
		if cmd.Args[len(cmd.Args)-1] != "IMG-1.jpg" {
			t.Errorf("%s: path not last argument: %q", tt.goos, cmd.Args)
		}
	}
}

func TestOpenTranscriptMissingFile(t *testing.T) {
	if err := OpenTranscript(filepath.Join(t.TempDir(), "nope.txt"), 1); err == nil {
		t.Fatal("expected error for missing transcript")
	}
}
