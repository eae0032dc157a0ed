package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/wa-viewer/internal/index"
	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/search"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func searchCmd() *cobra.Command {
	var chat, sender, from, to, order string
	var caseSensitive, wholeWord bool
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search messages across every indexed chat",
		Long: `Search indexed chats. Output is TSV for fzf integration:
  chat, msgId, time, sender, snippet

Recommended shell function (add to .zshrc):
  wavf() {
    wav search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --bind 'enter:execute(wav open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dr, err := parse.ParseDateRange(from, to)
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			// Auto-update index before searching
			if _, err := index.IndexAll(db, cfg.OutputDir, cfg.ParseOptions(), os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "  WARN: index: %v\n", err)
			}

			results, err := search.Search(db, search.Options{
				Query:        args[0],
				Chat:         chat,
				Sender:       sender,
				Range:        dr,
				MatchOptions: search.MatchOptions{CaseSensitive: caseSensitive, WholeWord: wholeWord},
				Order:        search.ParseOrder(order),
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			color := term.IsTerminal(int(os.Stdout.Fd()))
			for _, r := range results {
				snippet := flatten(r.Snippet)
				ts, who := r.Ts, flatten(r.Sender)
				if color {
					snippet = colorizeSnippet(snippet)
					ts = sColorDim + ts + sColorReset
					who = sColorBlue + who + sColorReset
				} else {
					snippet = strings.NewReplacer(">>>", "", "<<<", "").Replace(snippet)
				}
				// first two fields (chat, msgID) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s\t%s\t%s\n", r.ChatName, r.MsgID, ts, who, snippet)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&chat, "chat", "", "Only search this chat")
	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&from, "from", "", "Only messages on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Only messages on or before this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "Match case-sensitively")
	cmd.Flags().BoolVar(&wholeWord, "whole-word", false, "Match whole words only")
	cmd.Flags().StringVar(&order, "order", "asc", "Result order by time (asc/desc)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results (0 = no limit)")

	return cmd
}
