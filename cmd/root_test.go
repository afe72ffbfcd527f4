package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/view"
)

const snapshot = `{
  "last_updated": "2024-02-01T00:00:00Z",
  "articles": [
    {"title": "Observability Basics", "url": "https://example.com/a", "published_at": "2024-01-10", "category": "Infra", "tags": ["monitoring"]},
    {"title": "React Hooks", "url": "https://example.com/b", "published_at": "2023-12-01", "category": "Frontend"}
  ]
}`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flags are package level and survive between runs
	flagCategory, flagYear, flagKeyword, flagPage, flagWidth, flagJSON, flagSource = "all", "all", "", 1, 80, false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(snapshot), 0o600); err != nil {
		t.Fatalf("Failed to write snapshot: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	defer SetVersionInfo("dev", "none", "unknown")

	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "portfolio 1.2.3 (commit: abc, built: today)") {
		t.Errorf("Unexpected version output %q", out)
	}
}

func TestArticlesCommand(t *testing.T) {
	t.Setenv("FEED_URL", writeSnapshot(t))

	out, err := runCommand(t, "articles", "--keyword", "MONITOR")
	if err != nil {
		t.Fatalf("articles failed: %v", err)
	}
	if !strings.Contains(out, "Observability Basics") {
		t.Errorf("Expected the matching article, got %s", out)
	}
	if strings.Contains(out, "React Hooks") {
		t.Errorf("Expected the keyword to filter, got %s", out)
	}
}

func TestArticlesCommand_JSON(t *testing.T) {
	path := writeSnapshot(t)

	out, err := runCommand(t, "articles", "--source", path, "--json", "--year", "2023")
	if err != nil {
		t.Fatalf("articles failed: %v", err)
	}

	var page view.Page
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("Expected JSON output: %v\n%s", err, out)
	}
	if len(page.Cards) != 1 || page.Cards[0].Title != "React Hooks" {
		t.Errorf("Expected only the 2023 article, got %+v", page.Cards)
	}
	if page.LastUpdated != "Feb 1, 2024" {
		t.Errorf("Expected last updated, got %q", page.LastUpdated)
	}
}

func TestArticlesCommand_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, err := runCommand(t, "articles", "--source", missing)
	if err != errLoadFailed {
		t.Fatalf("Expected errLoadFailed, got %v", err)
	}
	if !strings.Contains(out, view.MessageFailed) {
		t.Errorf("Expected the generic error message, got %s", out)
	}
	if strings.Contains(out, missing) {
		t.Error("Raw error detail must not be printed to the page output")
	}
}
