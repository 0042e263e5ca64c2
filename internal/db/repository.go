package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"wordassoc/internal/analysis"
)

// ImportResponses stores answers for one survey kind. With replace set the
// kind's previous answers are removed in the same transaction.
func ImportResponses(dbPath, kind string, responses []analysis.RawResponse, replace bool) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if replace {
		if _, err := tx.Exec(`DELETE FROM responses WHERE kind = ?`, kind); err != nil {
			return 0, fmt.Errorf("clear responses: %w", err)
		}
	}

	stmt, err := tx.Prepare(`INSERT INTO responses(kind, base_word, text) VALUES(?,?,?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	stored := 0
	for _, r := range responses {
		base := strings.TrimSpace(r.BaseWord)
		if base == "" {
			continue
		}
		var text sql.NullString
		if r.Text != nil {
			text = sql.NullString{String: *r.Text, Valid: true}
		}
		if _, err := stmt.Exec(kind, base, text); err != nil {
			return 0, fmt.Errorf("insert response: %w", err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return stored, nil
}

// LoadResponses returns a kind's answers in import order.
func LoadResponses(dbPath, kind string) ([]analysis.RawResponse, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT base_word, text FROM responses WHERE kind = ? ORDER BY id`, kind)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []analysis.RawResponse
	for rows.Next() {
		var base string
		var text sql.NullString
		if err := rows.Scan(&base, &text); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		r := analysis.RawResponse{BaseWord: base}
		if text.Valid {
			s := text.String
			r.Text = &s
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}
	return out, nil
}

// AddMergeGroup stores a merge group. A group with the same main word is
// extended with the new words rather than duplicated.
func AddMergeGroup(dbPath, kind, baseWord string, group []string) error {
	if len(group) < 2 {
		return errors.New("merge group needs a main word and at least one other word")
	}
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	main := group[0]
	words := []string{}
	var raw string
	err = tx.QueryRow(`SELECT words FROM merge_groups WHERE kind = ? AND base_word = ? AND main_word = ?`, kind, baseWord, main).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("load merge group: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &words); err != nil {
			return fmt.Errorf("decode merge group: %w", err)
		}
	}
	for _, w := range group[1:] {
		if w != main && !slices.Contains(words, w) {
			words = append(words, w)
		}
	}

	encoded, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encode merge group: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO merge_groups(kind, base_word, main_word, words) VALUES(?,?,?,?)
		 ON CONFLICT(kind, base_word, main_word) DO UPDATE SET words = excluded.words`,
		kind, baseWord, main, string(encoded),
	); err != nil {
		return fmt.Errorf("upsert merge group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RemoveMergeGroup deletes the group led by mainWord. It reports whether a
// group existed.
func RemoveMergeGroup(dbPath, kind, baseWord, mainWord string) (bool, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	res, err := conn.Exec(`DELETE FROM merge_groups WHERE kind = ? AND base_word = ? AND main_word = ?`, kind, baseWord, mainWord)
	if err != nil {
		return false, fmt.Errorf("delete merge group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("merge group rows affected: %w", err)
	}
	return n > 0, nil
}

// SetDisabled flags or unflags answers for a base word.
func SetDisabled(dbPath, kind, baseWord string, words []string, disabled bool) error {
	conn, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `DELETE FROM disabled_words WHERE kind = ? AND base_word = ? AND word = ?`
	if disabled {
		query = `INSERT OR IGNORE INTO disabled_words(kind, base_word, word) VALUES(?,?,?)`
	}
	for _, w := range words {
		if _, err := tx.Exec(query, kind, baseWord, w); err != nil {
			return fmt.Errorf("update disabled word: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadDirectives returns the merge and disable state stored for a kind.
func LoadDirectives(dbPath, kind string) (analysis.Directives, error) {
	dir := analysis.Directives{
		Merges:   map[string][][]string{},
		Disabled: map[string][]string{},
	}
	conn, err := Open(dbPath)
	if err != nil {
		return dir, err
	}
	defer conn.Close()

	rows, err := conn.Query(`SELECT base_word, main_word, words FROM merge_groups WHERE kind = ? ORDER BY id`, kind)
	if err != nil {
		return dir, fmt.Errorf("query merge groups: %w", err)
	}
	for rows.Next() {
		var base, main, raw string
		if err := rows.Scan(&base, &main, &raw); err != nil {
			rows.Close()
			return dir, fmt.Errorf("scan merge group: %w", err)
		}
		var words []string
		if err := json.Unmarshal([]byte(raw), &words); err != nil {
			rows.Close()
			return dir, fmt.Errorf("decode merge group: %w", err)
		}
		dir.Merges[base] = append(dir.Merges[base], append([]string{main}, words...))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dir, fmt.Errorf("iterate merge groups: %w", err)
	}

	rows, err = conn.Query(`SELECT base_word, word FROM disabled_words WHERE kind = ? ORDER BY base_word, word`, kind)
	if err != nil {
		return dir, fmt.Errorf("query disabled words: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var base, word string
		if err := rows.Scan(&base, &word); err != nil {
			return dir, fmt.Errorf("scan disabled word: %w", err)
		}
		dir.Disabled[base] = append(dir.Disabled[base], word)
	}
	if err := rows.Err(); err != nil {
		return dir, fmt.Errorf("iterate disabled words: %w", err)
	}
	return dir, nil
}

// Run is one recorded analysis.
type Run struct {
	ID         string
	Kind       string
	CreatedAt  time.Time
	BaseWords  int
	Responses  int
	ReportPath string
}

// RecordRun stores an analysis run and returns its id.
func RecordRun(dbPath, kind string, baseWords, responses int, reportPath string) (string, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	id := uuid.NewString()
	if _, err := conn.Exec(
		`INSERT INTO analysis_runs(id, kind, created_at, base_words, responses, report_path) VALUES(?,?,?,?,?,?)`,
		id, kind, time.Now().UTC().Format(time.RFC3339), baseWords, responses, reportPath,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// LatestRun returns the most recent run of a kind, or nil when there is none.
func LatestRun(dbPath, kind string) (*Run, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var run Run
	var created string
	var report sql.NullString
	err = conn.QueryRow(
		`SELECT id, kind, created_at, base_words, responses, report_path FROM analysis_runs
		 WHERE kind = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, kind,
	).Scan(&run.ID, &run.Kind, &created, &run.BaseWords, &run.Responses, &report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	run.CreatedAt, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("parse run time: %w", err)
	}
	run.ReportPath = report.String
	return &run, nil
}

func CountRows(dbPath, table string) (int, error) {
	conn, err := Open(dbPath)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	return countRowsConn(conn, table)
}

func countRowsConn(conn *sql.DB, table string) (int, error) {
	row := conn.QueryRow(`SELECT COUNT(*) FROM ` + table)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("scan count: %w", err)
	}
	return count, nil
}
