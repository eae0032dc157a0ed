package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/extract"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Unpack every exported chat archive into the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Extracting %s -> %s\n", cfg.ChatsDir, cfg.OutputDir)
			stats, err := extract.ExtractAll(cfg.ChatsDir, cfg.OutputDir, os.Stderr)
			if errors.Is(err, scan.ErrNoArchives) {
				fmt.Fprintf(os.Stderr, "  WARN: no .zip archives in %s\n", cfg.ChatsDir)
				return nil
			}
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}
}
