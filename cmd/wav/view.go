package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/config"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/render"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
	"github.com/Zuo-Peng/wa-viewer/internal/search"
	"github.com/Zuo-Peng/wa-viewer/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// viewFlags are shared by the commands that parse one chat.
type viewFlags struct {
	from, to   string
	legacyDrop bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Only messages on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Only messages on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.legacyDrop, "legacy-drop", false, "Drop continuation lines instead of appending them")
}

func (f *viewFlags) parseOptions(cfg *config.Config) (parse.Options, error) {
	opts := cfg.ParseOptions()
	if f.legacyDrop {
		opts.Continuation = parse.ContinuationDrop
	}
	r, err := parse.ParseDateRange(f.from, f.to)
	if err != nil {
		return opts, err
	}
	opts.Range = r
	return opts, nil
}

// loadChat resolves a chat by name and its transcript. ok is false when the
// chat has no transcript; a warning has then already been printed.
func loadChat(cfg *config.Config, name string) (chat scan.Chat, transcript string, ok bool, err error) {
	chat, err = scan.FindChat(cfg.OutputDir, name)
	if err != nil {
		return chat, "", false, err
	}
	transcript, err = chat.Transcript()
	if errors.Is(err, scan.ErrNoTranscript) {
		fmt.Fprintf(os.Stderr, "  WARN: %v\n", err)
		return chat, "", false, nil
	}
	if err != nil {
		return chat, "", false, err
	}
	return chat, transcript, true, nil
}

func viewCmd() *cobra.Command {
	var vf viewFlags
	var query, order string
	var caseSensitive, wholeWord, noSender, noDate, plain bool

	cmd := &cobra.Command{
		Use:   "view <chat>",
		Short: "Show one chat's messages, filtered by date range and text",
		Long: `Show the messages of one extracted chat. On a terminal this opens the
interactive viewer; when piped (or with --plain) the rendered transcript is printed.`,
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

			q := search.Query{
				Text:         query,
				MatchOptions: search.MatchOptions{CaseSensitive: caseSensitive, WholeWord: wholeWord},
				Order:        search.ParseOrder(order),
			}

			// Interactive TUI when stdout is a terminal; plain output for pipes
			if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(tui.Options{
					Chat:       chat,
					Transcript: transcript,
					Parse:      popts,
					Locale:     cfg.LocaleTable(),
					Query:      q,
					ShowSender: !noSender,
					ShowDate:   !noDate,
				})
			}

			msgs, err := parse.ParseFile(transcript, popts)
			if err != nil {
				return err
			}

			ropts := render.DefaultOptions()
			ropts.ShowSender = !noSender
			ropts.ShowDate = !noDate
			ropts.Query = query
			ropts.Color = term.IsTerminal(int(os.Stdout.Fd()))
			ropts.Locale = cfg.LocaleTable()
			ropts.MediaDir = chat.Dir

			shown := q.Apply(msgs)
			if len(shown) == 0 && popts.Range.Bounded() {
				fmt.Fprintln(os.Stderr, "No messages in the selected date range.")
				return nil
			}
			out, _ := render.RenderMessages(shown, ropts)
			fmt.Print(out)
			return nil
		},
	}

	vf.register(cmd)
	cmd.Flags().StringVar(&query, "query", "", "Only messages containing this text")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match the query case-sensitively")
	cmd.Flags().BoolVar(&wholeWord, "whole-word", false, "Match the query on whole words only")
	cmd.Flags().StringVar(&order, "order", "asc", "Message order (asc/desc)")
	cmd.Flags().BoolVar(&noSender, "no-sender", false, "Hide sender names")
	cmd.Flags().BoolVar(&noDate, "no-date", false, "Hide timestamps")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print instead of opening the interactive viewer")

	return cmd
}
