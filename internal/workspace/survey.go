package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"wordassoc/internal/analysis"
)

var ErrLocked = errors.New("survey is locked by another wordassoc process")

var unsafeChars = regexp.MustCompile(`[^a-z0-9_-]+`)

// Report is the JSON document written after every analysis.
type Report struct {
	Kind        string             `json:"kind"`
	RunID       string             `json:"run_id,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Responses   int                `json:"responses"`
	WordSets    []analysis.WordSet `json:"word_sets"`
	Summaries   []analysis.Summary `json:"summaries,omitempty"`
}

// Survey holds the on-disk locations of one survey kind.
type Survey struct {
	ID         string
	Kind       string
	Root       string
	DBPath     string
	ReportPath string
	lock       *flock.Flock
}

// OpenSurvey creates (if needed) the directory of a survey kind inside the
// workspace and returns its paths.
func OpenSurvey(workspaceRoot, kind string) (*Survey, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return nil, errors.New("survey kind must not be empty")
	}
	id := surveyID(kind)
	root := filepath.Join(workspaceRoot, "surveys", id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create survey dir: %w", err)
	}

	return &Survey{
		ID:         id,
		Kind:       kind,
		Root:       root,
		DBPath:     filepath.Join(root, "analysis.db"),
		ReportPath: filepath.Join(root, "report.json"),
		lock:       flock.New(filepath.Join(root, "survey.lock")),
	}, nil
}

// Lock takes the survey's exclusive lock without waiting. Callers that change
// responses or directives hold it for the duration of the change.
func (s *Survey) Lock() (func() error, error) {
	ok, err := s.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return s.lock.Unlock, nil
}

func SaveReport(path string, report Report) error {
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func LoadReport(path string) (*Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// surveyID keeps the kind readable and appends a short hash so kinds that
// differ only in punctuation never share a directory.
func surveyID(kind string) string {
	trimmed := strings.TrimSpace(strings.ToLower(kind))
	sum := sha256.Sum256([]byte(trimmed))
	slug := strings.Trim(unsafeChars.ReplaceAllString(trimmed, "-"), "-")
	if slug == "" {
		slug = "survey"
	}
	return slug + "-" + hex.EncodeToString(sum[:])[:8]
}
