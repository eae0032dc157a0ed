package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Zuo-Peng/wa-viewer/internal/extract"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
)

// Resolve maps a cleaned reference to a file in dir. It tries the name as
// given, then its base name, since some transcripts embed path-like tokens.
// Candidates outside dir are never returned.
func Resolve(dir, name string) (string, bool) {
	candidates := []string{filepath.Join(dir, name)}
	if base := filepath.Base(name); base != name {
		candidates = append(candidates, filepath.Join(dir, base))
	}
	for _, p := range candidates {
		if !extract.Within(dir, p) {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

type ListOptions struct {
	Parse     parse.Options
	Extractor *Extractor
}

// ListInRange re-scans the whole transcript and returns the files in chatDir
// referenced by at least one message inside the range, sorted and unique.
// A missing chatDir lists nothing.
func ListInRange(chatDir, transcript string, opts ListOptions) ([]string, error) {
	entries, err := os.ReadDir(chatDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read chat dir: %w", err)
	}

	msgs, err := parse.ParseFile(transcript, opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	ex := opts.Extractor
	if ex == nil {
		ex = NewExtractor(nil)
	}

	referenced := make(map[string]struct{})
	for _, m := range msgs {
		for _, name := range ex.Filenames(m.Body) {
			referenced[name] = struct{}{}
			referenced[filepath.Base(name)] = struct{}{}
		}
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if _, ok := referenced[e.Name()]; ok {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
