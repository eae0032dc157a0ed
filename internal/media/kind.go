package media

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
	KindAudio
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindDocument:
		return "document"
	default:
		return "other"
	}
}

// Inline reports whether the kind is shown in place rather than as a link.
func (k Kind) Inline() bool {
	return k == KindImage || k == KindVideo || k == KindAudio
}

// extensions is the single set used both for per-message detection and for
// range listings.
var extensions = map[string]Kind{
	"jpg": KindImage, "jpeg": KindImage, "png": KindImage, "gif": KindImage,
	"webp": KindImage, "bmp": KindImage, "heic": KindImage, "heif": KindImage,

	"mp4": KindVideo, "mov": KindVideo, "avi": KindVideo, "m4v": KindVideo,
	"webm": KindVideo, "3gp": KindVideo,

	"mp3": KindAudio, "ogg": KindAudio, "wav": KindAudio, "opus": KindAudio,
	"m4a": KindAudio, "aac": KindAudio,

	"pdf": KindDocument, "docx": KindDocument, "xlsx": KindDocument,
	"zip": KindDocument, "rar": KindDocument,
}

// Extensions returns the known extensions, longest first so that regexp
// alternation prefers "jpeg" over "jpg".
func Extensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if len(exts[i]) != len(exts[j]) {
			return len(exts[i]) > len(exts[j])
		}
		return exts[i] < exts[j]
	})
	return exts
}

// KindOf infers the coarse media category from the file extension.
func KindOf(name string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return extensions[ext]
}

// Sniff detects the MIME type from the file content.
func Sniff(path string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return mt.String(), nil
}
