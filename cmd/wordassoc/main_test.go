package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wordassoc/internal/similarity"
	"wordassoc/internal/workspace"
)

const answersCSV = `base_word,text
zwierzę,kot
zwierzę,Kot
zwierzę,kocisko
zwierzę,pies
zwierzę,kot
dom,rodzina
dom,rodzina
dom,ciepło
woda,rzeka
woda,morze
woda,rzeka
woda,rzeka
`

type cliTestEnv struct {
	configPath string
	workspace  string
	answers    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("WORDASSOC_WORKSPACE", "")
	t.Setenv("WORDASSOC_LOG_LEVEL", "")
	t.Setenv("WORDASSOC_WORKERS", "")

	env := &cliTestEnv{
		configPath: filepath.Join(base, "wordassoc.toml"),
		workspace:  filepath.Join(base, "ws"),
		answers:    filepath.Join(base, "answers.csv"),
	}
	cfg := "[paths]\nworkspace = \"" + filepath.ToSlash(env.workspace) + "\"\n\n[logging]\nlevel = \"error\"\n"
	if err := os.WriteFile(env.configPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(env.answers, []byte(answersCSV), 0o644); err != nil {
		t.Fatalf("write answers: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func analyzeJSON(t *testing.T, env *cliTestEnv) workspace.Report {
	t.Helper()
	out, _, err := runCLI(t, []string{"analyze", "ankieta", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var result workspace.Report
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode analyze output: %v\n%s", err, out)
	}
	return result
}

func TestInitCreatesWorkspace(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"init"}, env.configPath)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	requireContains(t, out, env.workspace)
	for _, dir := range []string{"configs", "surveys", "exports"} {
		if _, err := os.Stat(filepath.Join(env.workspace, dir)); err != nil {
			t.Fatalf("expected %s dir: %v", dir, err)
		}
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err == nil {
		t.Fatal("expected second config init without --overwrite to fail")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "histogram_length = 10")
}

func TestImportAndAnalyze(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"import", "ankieta", env.answers}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 12 answers")

	result := analyzeJSON(t, env)
	if result.RunID == "" || result.Responses != 12 || len(result.WordSets) != 3 {
		t.Fatalf("unexpected report %+v", result)
	}
	animal := result.WordSets[0]
	if animal.BaseWord != "zwierzę" || animal.Histogram[0].Word != "kot" || animal.Histogram[0].Frequency != 3 {
		t.Fatalf("unexpected first word set %+v", animal)
	}
	if len(animal.SimilarDistributions) != 2 {
		t.Fatalf("expected both other base words as neighbours, got %+v", animal.SimilarDistributions)
	}
	if len(result.Summaries) != 3 {
		t.Fatalf("expected one summary per base word, got %+v", result.Summaries)
	}

	saved, err := workspace.LoadReport(filepath.Join(env.workspace, "surveys", mustSurveyDir(t, env), "report.json"))
	if err != nil {
		t.Fatalf("load saved report: %v", err)
	}
	if saved.RunID != result.RunID {
		t.Fatalf("saved report run %q differs from printed run %q", saved.RunID, result.RunID)
	}

	out, _, err = runCLI(t, []string{"status", "ankieta"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Answers:        12")
	requireContains(t, out, result.RunID)

	out, _, err = runCLI(t, []string{"analyze", "ankieta", "--top", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("analyze table: %v", err)
	}
	requireContains(t, out, "== zwierzę ==")
	requireContains(t, out, "Report written to")
}

func TestMergeDisableRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", "ankieta", env.answers}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	if _, _, err := runCLI(t, []string{"merge", "ankieta", "zwierzę", "kot", "kocisko"}, env.configPath); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, _, err := runCLI(t, []string{"disable", "ankieta", "woda", "morze"}, env.configPath); err != nil {
		t.Fatalf("disable: %v", err)
	}

	result := analyzeJSON(t, env)
	head := result.WordSets[0].Histogram[0]
	if head.Word != "kot" || head.Frequency != 4 || len(head.MergedWords) != 1 || head.MergedWords[0] != "kocisko" {
		t.Fatalf("expected merged kot x4, got %+v", head)
	}
	water := result.WordSets[2].Histogram
	if pos := water.Index("morze"); pos < 0 || !water[pos].Disabled {
		t.Fatalf("expected morze disabled, got %+v", water)
	}

	out, _, err := runCLI(t, []string{"unmerge", "ankieta", "zwierzę", "kot"}, env.configPath)
	if err != nil {
		t.Fatalf("unmerge: %v", err)
	}
	requireContains(t, out, "Removed merge group")
	out, _, err = runCLI(t, []string{"unmerge", "ankieta", "zwierzę", "kot"}, env.configPath)
	if err != nil {
		t.Fatalf("second unmerge: %v", err)
	}
	requireContains(t, out, "No merge group")

	if _, _, err := runCLI(t, []string{"enable", "ankieta", "woda", "morze"}, env.configPath); err != nil {
		t.Fatalf("enable: %v", err)
	}
	result = analyzeJSON(t, env)
	if result.WordSets[0].Histogram[0].Frequency != 3 {
		t.Fatalf("expected merge to be gone, got %+v", result.WordSets[0].Histogram)
	}
	water = result.WordSets[2].Histogram
	if water[water.Index("morze")].Disabled {
		t.Fatalf("expected morze enabled again, got %+v", water)
	}
}

func TestExportCSV(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", "ankieta", env.answers}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	out, _, err := runCLI(t, []string{"export", "ankieta", "--out", "-", "--window", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", out)
	}
	if lines[0] != "base word;FAS_1;FAS_2;sd;skewness;kurtosis" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "dom;0,666667;0,333333;") {
		t.Fatalf("expected dom first in alpha order, got %q", lines[1])
	}

	out, _, err = runCLI(t, []string{"export", "ankieta"}, env.configPath)
	if err != nil {
		t.Fatalf("export to file: %v", err)
	}
	requireContains(t, out, "Exported 3 base words")
	matches, _ := filepath.Glob(filepath.Join(env.workspace, "exports", "*-fas.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one export file, got %v", matches)
	}

	if _, _, err := runCLI(t, []string{"export", "ankieta", "--sort", "median"}, env.configPath); err == nil {
		t.Fatal("expected unknown sort key to fail")
	}
}

func TestSimilar(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", "ankieta", env.answers}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	out, _, err := runCLI(t, []string{"similar", "ankieta", "dom", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if !strings.Contains(out, "woda") && !strings.Contains(out, "zwierzę") {
		t.Fatalf("expected a neighbour in %q", out)
	}

	_, _, err = runCLI(t, []string{"similar", "ankieta", "kot"}, env.configPath)
	if !errors.Is(err, similarity.ErrUnknownWord) {
		t.Fatalf("expected ErrUnknownWord, got %v", err)
	}
}

func TestAnalyzeWithoutAnswers(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"analyze", "pusta"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "no answers stored") {
		t.Fatalf("expected missing answers error, got %v", err)
	}
}

func mustSurveyDir(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(env.workspace, "surveys"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one survey dir, got %v (%v)", entries, err)
	}
	return entries[0].Name()
}
