package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Zuo-Peng/wa-viewer/internal/locale"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
)

type Config struct {
	ChatsDir               string `toml:"chats_dir"`
	OutputDir              string `toml:"output_dir"`
	DBPath                 string `toml:"db_path"`
	Locale                 string `toml:"locale"`
	LegacyDropContinuation bool   `toml:"legacy_drop_continuation"`
}

// Load reads ~/.config/wav/config.toml if it exists.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "wav", "config.toml"))
}

// LoadFile applies the TOML file at cfgPath, when present, over the defaults.
func LoadFile(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ChatsDir:  "chats",
		OutputDir: "output",
		DBPath:    filepath.Join(home, ".config", "wav", "wav.db"),
		Locale:    locale.Default,
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	if _, err := locale.Lookup(cfg.Locale); err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	// expand ~ in paths
	cfg.ChatsDir = expandHome(cfg.ChatsDir, home)
	cfg.OutputDir = expandHome(cfg.OutputDir, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)

	return cfg, nil
}

// LocaleTable returns the configured localization table.
func (c *Config) LocaleTable() *locale.Table {
	tbl, err := locale.Lookup(c.Locale)
	if err != nil {
		return locale.MustDefault()
	}
	return tbl
}

// ParseOptions returns the transcript parsing options implied by the config.
func (c *Config) ParseOptions() parse.Options {
	opts := parse.Options{Continuation: parse.ContinuationAppend}
	if c.LegacyDropContinuation {
		opts.Continuation = parse.ContinuationDrop
	}
	return opts
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
