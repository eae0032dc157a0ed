package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zuo-Peng/wa-viewer/internal/scan"
)

type Stats struct {
	Archives int
	Files    int
	Errors   int
}

func (s Stats) String() string {
	return fmt.Sprintf("archives=%d files=%d errors=%d", s.Archives, s.Files, s.Errors)
}

// ExtractAll unpacks every archive in chatsDir into outputDir/<chat name>.
// Re-running overwrites earlier output. It returns scan.ErrNoArchives when
// chatsDir holds no archives.
func ExtractAll(chatsDir, outputDir string, progress io.Writer) (Stats, error) {
	var stats Stats

	archives, err := scan.ScanArchives(chatsDir)
	if err != nil {
		return stats, err
	}

	for _, a := range archives {
		dest := filepath.Join(outputDir, a.ChatName)
		n, err := Archive(a.Path, dest)
		stats.Files += n
		if err != nil {
			stats.Errors++
			fmt.Fprintf(progress, "  WARN: extract %s: %v\n", a.Path, err)
			continue
		}
		stats.Archives++
		fmt.Fprintf(progress, "  %s -> %s (%d files)\n", filepath.Base(a.Path), dest, n)
	}
	return stats, nil
}

// Archive extracts one zip file into dest and returns the number of files
// written. Entries escaping dest are rejected.
func Archive(path, dest string) (int, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	n := 0
	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		if !Within(dest, target) {
			return n, fmt.Errorf("entry %q escapes destination", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return n, err
			}
			continue
		}
		if err := writeEntry(f, target); err != nil {
			return n, fmt.Errorf("write %s: %w", f.Name, err)
		}
		n++
	}
	return n, nil
}

func writeEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Within reports whether path lies inside dir after cleaning.
func Within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
