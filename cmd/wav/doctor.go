package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/index"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify directories, transcripts, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Directories ===")
			checkDir("Chats", cfg.ChatsDir)
			checkDir("Output", cfg.OutputDir)
			fmt.Printf("  Locale: %s\n", cfg.Locale)

			fmt.Println("\n=== Archives ===")
			archives, err := scan.ScanArchives(cfg.ChatsDir)
			switch {
			case errors.Is(err, scan.ErrNoArchives):
				fmt.Println("  none")
			case err != nil:
				fmt.Printf("  scan error: %v\n", err)
			default:
				var total int64
				for _, a := range archives {
					total += a.Size
				}
				fmt.Printf("  Archives: %d (%.1f MB)\n", len(archives), float64(total)/1024/1024)
			}

			fmt.Println("\n=== Chats ===")
			chats, err := scan.ListChats(cfg.OutputDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			}
			missing := 0
			for _, c := range chats {
				if _, err := c.Transcript(); err != nil {
					missing++
					fmt.Printf("  %s: no transcript\n", c.Name)
				}
			}
			fmt.Printf("  Chats: %d (%d without transcript)\n", len(chats), missing)

			// check DB
			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'wav index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			chatCount, err := db.ChatCount()
			if err != nil {
				return fmt.Errorf("count chats: %w", err)
			}

			msgCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}

			fmt.Printf("  Chats:    %d\n", chatCount)
			fmt.Printf("  Messages: %d\n", msgCount)

			// check FTS5
			fmt.Println("\n=== FTS5 ===")
			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == msgCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", msgCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
