package main

import (
	"fmt"

	"github.com/Zuo-Peng/wa-viewer/internal/index"
	"github.com/Zuo-Peng/wa-viewer/internal/media"
	"github.com/Zuo-Peng/wa-viewer/internal/open"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var hitMsgID int
	var mediaName string

	cmd := &cobra.Command{
		Use:   "open <chat>",
		Short: "Open a chat transcript in $EDITOR at the hit line, or one of its media files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if mediaName != "" {
				chat, err := scan.FindChat(cfg.OutputDir, args[0])
				if err != nil {
					return err
				}
				path, ok := media.Resolve(chat.Dir, mediaName)
				if !ok {
					return fmt.Errorf("%s: %s", mediaName, cfg.LocaleTable().MissingMedia)
				}
				return open.OpenMedia(path)
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			row, err := db.GetChat(args[0])
			if err != nil {
				return fmt.Errorf("get chat: %w", err)
			}
			if row == nil {
				return fmt.Errorf("chat not indexed: %s (run 'wav index' first)", args[0])
			}

			// find line number for the hit message
			line := 1
			if hitMsgID >= 0 {
				msgs, err := db.GetMessages(args[0])
				if err == nil {
					for _, m := range msgs {
						if m.MsgID == hitMsgID {
							line = m.LineNumber
							break
						}
					}
				}
			}

			return open.OpenTranscript(row.Transcript, line)
		},
	}

	cmd.Flags().IntVar(&hitMsgID, "hit", -1, "Message ID to jump to")
	cmd.Flags().StringVar(&mediaName, "media", "", "Open this media file instead of the transcript")

	return cmd
}
