package index

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Zuo-Peng/wa-viewer/internal/parse"
	"github.com/Zuo-Peng/wa-viewer/internal/scan"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// IndexAll re-parses every chat under outputDir whose transcript changed
// since the last run and prunes chats that disappeared. The index always
// holds whole transcripts, so opts.Range is ignored. Warnings go to warn.
func IndexAll(db *DB, outputDir string, opts parse.Options, warn io.Writer) (Stats, error) {
	var stats Stats
	opts.Range = parse.DateRange{}

	if err := db.syncMeta("continuation", fmt.Sprint(int(opts.Continuation))); err != nil {
		return stats, fmt.Errorf("meta: %w", err)
	}

	chats, err := scan.ListChats(outputDir)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(chats)

	// track which chats we see, for pruning
	seen := make(map[string]struct{})

	for _, c := range chats {
		transcript, err := c.Transcript()
		if err != nil {
			if !errors.Is(err, scan.ErrNoTranscript) {
				stats.Errors++
			}
			fmt.Fprintf(warn, "  WARN: %v\n", err)
			continue
		}
		seen[c.Name] = struct{}{}

		info, err := os.Stat(transcript)
		if err != nil {
			stats.Errors++
			continue
		}

		needs, err := needsUpdate(db, c.Name, transcript, info.ModTime().Unix(), info.Size())
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		msgs, err := parse.ParseFile(transcript, opts)
		if err != nil {
			stats.Errors++
			fmt.Fprintf(warn, "  WARN: parse %s: %v\n", transcript, err)
			continue
		}

		if err := indexChat(db, c, transcript, info, msgs); err != nil {
			stats.Errors++
			fmt.Fprintf(warn, "  WARN: index %s: %v\n", c.Name, err)
			continue
		}
		stats.Updated++
	}

	// prune chats whose directories no longer exist
	pruned, err := pruneChats(db, seen)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

func needsUpdate(db *DB, chatName, transcript string, mtime, size int64) (bool, error) {
	info, err := db.GetChatInfo(chatName)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chat
	}
	return info.Transcript != transcript || info.Mtime != mtime || info.Size != size, nil
}

func indexChat(db *DB, c scan.Chat, transcript string, info os.FileInfo, msgs []parse.Message) error {
	// delete old data first
	if err := db.DeleteChat(c.Name); err != nil {
		return err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var firstAt, lastAt string
	if len(msgs) > 0 {
		firstAt = msgs[0].Timestamp.Format(TimeLayout)
		lastAt = msgs[len(msgs)-1].Timestamp.Format(TimeLayout)
	}

	_, err = tx.Exec(
		`INSERT INTO chats (chat_name, dir, transcript, first_at, last_at, mtime, size)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name,
		c.Dir,
		transcript,
		firstAt,
		lastAt,
		info.ModTime().Unix(),
		info.Size(),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO messages (chat_name, msg_id, ts, sender, body, line_number)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, m := range msgs {
		_, err := stmt.Exec(
			c.Name,
			i,
			m.Timestamp.Format(TimeLayout),
			m.Sender,
			m.Body,
			m.Line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func pruneChats(db *DB, seen map[string]struct{}) (int, error) {
	all, err := db.AllChatNames()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for name := range all {
		if _, ok := seen[name]; !ok {
			if err := db.DeleteChat(name); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
