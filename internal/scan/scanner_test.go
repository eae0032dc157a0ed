package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestChatName(t *testing.T) {
	tests := []struct {
		file string
		idx  int
		want string
	}{
		{"Chat de WhatsApp con Ana.zip", 0, "Ana"},
		{"chat de whatsapp con Grupo Familia.ZIP", 3, "Grupo Familia"},
		{"export.zip", 2, "chat-2"},
		{"Chat de WhatsApp con .zip", 1, "chat-1"},
		{"Chat de WhatsApp con ...zip", 4, "chat-4"},
		{"Chat de WhatsApp con ..zip", 5, "chat-5"},
		{`Chat de WhatsApp con a\b.zip`, 6, "chat-6"},
	}
	for _, tt := range tests {
		if got := ChatName(tt.file, tt.idx); got != tt.want {
			t.Errorf("ChatName(%q, %d) = %q, want %q", tt.file, tt.idx, got, tt.want)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanArchives(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Chat de WhatsApp con Ana.zip"))
	touch(t, filepath.Join(dir, "chat de whatsapp con Ana.ZIP"))
	touch(t, filepath.Join(dir, "other.zip"))
	touch(t, filepath.Join(dir, "notes.txt"))

	archives, err := ScanArchives(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) != 3 {
		t.Fatalf("got %d archives, want 3", len(archives))
	}
	got := map[string]bool{}
	for _, a := range archives {
		got[a.ChatName] = true
	}
	// ReadDir sorts by name: uppercase "Chat..." first, then "chat...", then "other".
	for _, want := range []string{"Ana", "chat-1", "chat-2"} {
		if !got[want] {
			t.Errorf("missing chat name %q in %v", want, got)
		}
	}
}

func TestScanArchivesEmpty(t *testing.T) {
	if _, err := ScanArchives(t.TempDir()); !errors.Is(err, ErrNoArchives) {
		t.Fatalf("err = %v, want ErrNoArchives", err)
	}
}

func TestListChatsAndTranscript(t *testing.T) {
	out := t.TempDir()
	for _, name := range []string{"Bea", "Ana"} {
		if err := os.Mkdir(filepath.Join(out, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	touch(t, filepath.Join(out, "Ana", "b.txt"))
	touch(t, filepath.Join(out, "Ana", "a.txt"))
	touch(t, filepath.Join(out, "stray.txt"))

	chats, err := ListChats(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 2 || chats[0].Name != "Ana" || chats[1].Name != "Bea" {
		t.Fatalf("chats = %+v", chats)
	}

	tr, err := chats[0].Transcript()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(tr) != "a.txt" {
		t.Errorf("transcript = %s, want a.txt", tr)
	}

	if _, err := chats[1].Transcript(); !errors.Is(err, ErrNoTranscript) {
		t.Errorf("err = %v, want ErrNoTranscript", err)
	}
}

func TestListChatsMissingDir(t *testing.T) {
	chats, err := ListChats(filepath.Join(t.TempDir(), "missing"))
	if err != nil || chats != nil {
		t.Fatalf("got %v, %v", chats, err)
	}
}

func TestFindChat(t *testing.T) {
	out := t.TempDir()
	if err := os.Mkdir(filepath.Join(out, "Ana"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := FindChat(out, "Ana"); err != nil {
		t.Fatal(err)
	}
	if _, err := FindChat(out, "Nobody"); err == nil {
		t.Fatal("expected error")
	}
}

func TestScanArchivesMissingDir(t *testing.T) {
	if _, err := ScanArchives(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrNoArchives) {
		t.Fatalf("err = %v, want ErrNoArchives", err)
	}
}
