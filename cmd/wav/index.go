package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/index"
	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	var rebuild bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index every extracted chat for cross-chat search",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			if rebuild {
				if err := db.Invalidate(); err != nil {
					return fmt.Errorf("invalidate: %w", err)
				}
			}

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", cfg.OutputDir)

			stats, err := index.IndexAll(db, cfg.OutputDir, cfg.ParseOptions(), os.Stderr)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}

	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Re-index every chat even if unchanged")

	return cmd
}
