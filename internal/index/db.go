package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    chat_name   TEXT PRIMARY KEY,
    dir         TEXT NOT NULL,
    transcript  TEXT NOT NULL,
    first_at    TEXT NOT NULL DEFAULT '',
    last_at     TEXT NOT NULL DEFAULT '',
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    chat_name   TEXT NOT NULL,
    msg_id      INTEGER NOT NULL,
    ts          TEXT NOT NULL DEFAULT '',
    sender      TEXT NOT NULL,
    body        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chat_name, msg_id)
);

CREATE VIRTUAL TABLE IF NOT EXISTS messages_fts USING fts5(
    body,
    content=messages,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- triggers to keep FTS in sync
CREATE TRIGGER IF NOT EXISTS messages_ai AFTER INSERT ON messages BEGIN
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_ad AFTER DELETE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
END;

CREATE TRIGGER IF NOT EXISTS messages_au AFTER UPDATE ON messages BEGIN
    INSERT INTO messages_fts(messages_fts, rowid, body) VALUES('delete', old.rowid, old.body);
    INSERT INTO messages_fts(rowid, body) VALUES (new.rowid, new.body);
END;
`

// TimeLayout is how timestamps are stored; it sorts lexically.
const TimeLayout = "2006-01-02T15:04:05"

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	db.Exec("CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT)")
	d := &DB{db: db}
	d.migrateSchemaVersion()

	return d, nil
}

// schemaVersion should be bumped whenever transcript parsing changes so
// that every chat is re-indexed on the next run.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		d.Invalidate()
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

// syncMeta stores value under key and invalidates the index when it differs
// from the stored one.
func (d *DB) syncMeta(key, value string) error {
	var cur string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = ?", key).Scan(&cur)
	if err == nil && cur == value {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if err := d.Invalidate(); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// Invalidate forces every chat to be re-parsed by the next IndexAll.
func (d *DB) Invalidate() error {
	_, err := d.db.Exec("UPDATE chats SET mtime = 0, size = 0")
	return err
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ChatInfo struct {
	Transcript string
	Mtime      int64
	Size       int64
}

func (d *DB) GetChatInfo(chatName string) (*ChatInfo, error) {
	var info ChatInfo
	err := d.db.QueryRow(
		"SELECT transcript, mtime, size FROM chats WHERE chat_name = ?",
		chatName,
	).Scan(&info.Transcript, &info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllChatNames() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT chat_name FROM chats")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names[n] = struct{}{}
	}
	return names, rows.Err()
}

func (d *DB) DeleteChat(chatName string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE chat_name = ?", chatName); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM chats WHERE chat_name = ?", chatName); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// FTSCount reports the number of rows in the full-text index.
func (d *DB) FTSCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&n)
	return n, err
}

type ChatRow struct {
	ChatName   string
	Dir        string
	Transcript string
	FirstAt    string
	LastAt     string
}

func (d *DB) GetChat(chatName string) (*ChatRow, error) {
	var c ChatRow
	err := d.db.QueryRow(
		"SELECT chat_name, dir, transcript, first_at, last_at FROM chats WHERE chat_name = ?",
		chatName,
	).Scan(&c.ChatName, &c.Dir, &c.Transcript, &c.FirstAt, &c.LastAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

type MessageRow struct {
	ChatName   string
	MsgID      int
	Ts         string
	Sender     string
	Body       string
	LineNumber int
}

func (d *DB) GetMessages(chatName string) ([]MessageRow, error) {
	rows, err := d.db.Query(
		"SELECT chat_name, msg_id, ts, sender, body, line_number FROM messages WHERE chat_name = ? ORDER BY msg_id",
		chatName,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []MessageRow
	for rows.Next() {
		var m MessageRow
		if err := rows.Scan(&m.ChatName, &m.MsgID, &m.Ts, &m.Sender, &m.Body, &m.LineNumber); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
