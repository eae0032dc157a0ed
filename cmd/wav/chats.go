package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/spf13/cobra"
)

func chatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List extracted chats and their transcripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			chats, err := scan.ListChats(cfg.OutputDir)
			if err != nil {
				return err
			}
			if len(chats) == 0 {
				fmt.Fprintf(os.Stderr, "No chats in %s (run 'wav extract' first).\n", cfg.OutputDir)
				return nil
			}

			for _, c := range chats {
				transcript, err := c.Transcript()
				if errors.Is(err, scan.ErrNoTranscript) {
					transcript = "-"
				} else if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\n", c.Name, transcript)
			}
			return nil
		},
	}
}
