package main

import (
	"fmt"
	"path/filepath"

	"github.com/Zuo-Peng/wa-viewer/internal/media"
	"github.com/spf13/cobra"
)

func mediaCmd() *cobra.Command {
	var vf viewFlags
	var sniff bool

	cmd := &cobra.Command{
		Use:   "media <chat>",
		Short: "List media files referenced by messages in a date range",
		Long: `List the files of one chat that are referenced by at least one message in
the date range. Output is TSV: kind, path (and detected MIME type with --sniff).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			popts, err := vf.parseOptions(cfg)
			if err != nil {
				return err
			}

			chat, transcript, ok, err := loadChat(cfg, args[0])
			if err != nil || !ok {
				return err
			}

			files, err := media.ListInRange(chat.Dir, transcript, media.ListOptions{
				Parse:     popts,
				Extractor: media.NewExtractor(cfg.LocaleTable()),
			})
			if err != nil {
				return err
			}

			for _, name := range files {
				path := filepath.Join(chat.Dir, name)
				if !sniff {
					fmt.Printf("%s\t%s\n", media.KindOf(name), path)
					continue
				}
				mime, err := media.Sniff(path)
				if err != nil {
					mime = "-"
				}
				fmt.Printf("%s\t%s\t%s\n", media.KindOf(name), path, mime)
			}
			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().BoolVar(&sniff, "sniff", false, "Detect each file's MIME type from its content")

	return cmd
}
