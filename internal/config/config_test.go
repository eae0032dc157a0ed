package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChatsDir != "chats" || cfg.OutputDir != "output" || cfg.Locale != "es" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.ParseOptions().Continuation != parse.ContinuationAppend {
		t.Error("continuation lines should be appended by default")
	}
	if cfg.LocaleTable().AttachmentSuffix != "(archivo adjunto)" {
		t.Error("default locale should be Spanish")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
chats_dir = "~/exports"
output_dir = "/tmp/wav-out"
locale = "en"
legacy_drop_continuation = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChatsDir != filepath.Join(home, "exports") {
		t.Errorf("ChatsDir = %s", cfg.ChatsDir)
	}
	if cfg.OutputDir != "/tmp/wav-out" {
		t.Errorf("OutputDir = %s", cfg.OutputDir)
	}
	if cfg.ParseOptions().Continuation != parse.ContinuationDrop {
		t.Error("legacy flag not applied")
	}
	if cfg.LocaleTable().AttachmentSuffix != "(file attached)" {
		t.Error("locale not applied")
	}
}

func TestLoadFileRejectsUnknownLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`locale = "xx"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unsupported locale")
	}
}
