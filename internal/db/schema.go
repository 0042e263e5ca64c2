package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS responses (
    id INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    base_word TEXT NOT NULL,
    text TEXT
);

CREATE INDEX IF NOT EXISTS responses_kind ON responses(kind, id);

CREATE TABLE IF NOT EXISTS merge_groups (
    id INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    base_word TEXT NOT NULL,
    main_word TEXT NOT NULL,
    words TEXT NOT NULL,
    UNIQUE(kind, base_word, main_word)
);

CREATE TABLE IF NOT EXISTS disabled_words (
    kind TEXT NOT NULL,
    base_word TEXT NOT NULL,
    word TEXT NOT NULL,
    PRIMARY KEY(kind, base_word, word)
);

CREATE TABLE IF NOT EXISTS analysis_runs (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    created_at TEXT NOT NULL,
    base_words INTEGER NOT NULL,
    responses INTEGER NOT NULL,
    report_path TEXT
);
`

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
