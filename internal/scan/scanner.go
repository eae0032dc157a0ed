package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrNoArchives   = errors.New("no .zip archives found")
	ErrNoTranscript = errors.New("no .txt transcript found")
)

var chatNameRe = regexp.MustCompile(`(?i)Chat de WhatsApp con (.+)\.zip$`)

// ChatName derives the chat directory name from an archive file name,
// falling back to chat-<idx> when the name does not follow the export pattern
// or would not name a single directory.
func ChatName(filename string, idx int) string {
	if m := chatNameRe.FindStringSubmatch(filename); m != nil && safeDirName(m[1]) {
		return m[1]
	}
	return fmt.Sprintf("chat-%d", idx)
}

func safeDirName(name string) bool {
	return name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

type Archive struct {
	Path     string
	ChatName string
	Size     int64
}

// ScanArchives lists the zip archives directly inside dir in name order.
// Names that collide with an earlier archive fall back to chat-<idx>. A
// missing dir counts as empty.
func ScanArchives(dir string) ([]Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoArchives
		}
		return nil, err
	}

	var archives []Archive
	used := make(map[string]bool)
	idx := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		name := ChatName(e.Name(), idx)
		if used[name] {
			name = fmt.Sprintf("chat-%d", idx)
		}
		used[name] = true
		archives = append(archives, Archive{
			Path:     filepath.Join(dir, e.Name()),
			ChatName: name,
			Size:     info.Size(),
		})
		idx++
	}

	if len(archives) == 0 {
		return nil, ErrNoArchives
	}
	return archives, nil
}

// Chat is a read-through view over one extracted chat directory.
type Chat struct {
	Name string
	Dir  string
}

// ListChats returns every directory under outputDir, sorted by name. A
// missing outputDir yields no chats and no error.
func ListChats(outputDir string) ([]Chat, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var chats []Chat
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		chats = append(chats, Chat{Name: e.Name(), Dir: filepath.Join(outputDir, e.Name())})
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].Name < chats[j].Name })
	return chats, nil
}

// FindChat looks a chat up by directory name.
func FindChat(outputDir, name string) (Chat, error) {
	dir := filepath.Join(outputDir, name)
	info, err := os.Stat(dir)
	if err != nil {
		return Chat{}, fmt.Errorf("chat %q: %w", name, err)
	}
	if !info.IsDir() {
		return Chat{}, fmt.Errorf("chat %q: not a directory", name)
	}
	return Chat{Name: name, Dir: dir}, nil
}

// Transcript returns the first .txt file in the chat directory.
func (c Chat) Transcript() (string, error) {
	matches, err := filepath.Glob(filepath.Join(c.Dir, "*.txt"))
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", fmt.Errorf("%s: %w", c.Name, ErrNoTranscript)
}
