package internal

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func combineFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	store := NewStore(dir)

	for _, doc := range []*TranscriptDocument{
		{
			Title: "Alpha", VideoID: "aaaaaaaaaaa", VideoURL: WatchURL("aaaaaaaaaaa"),
			Timed: true, Entries: []CaptionEntry{{Start: 0, Duration: 2, Text: "alpha words"}},
		},
		{
			Title: "Beta", VideoID: "bbbbbbbbbbb", VideoURL: WatchURL("bbbbbbbbbbb"),
			Timed: true, Entries: []CaptionEntry{{Start: 5, Duration: 3, Text: "beta words"}},
		},
		{
			Title: "Gamma", VideoID: "ccccccccccc", VideoURL: WatchURL("ccccccccccc"),
			Timed: true, Entries: []CaptionEntry{{Start: 10, Duration: 1, Text: "gamma words"}},
		},
	} {
		if _, err := store.Write(doc, FormatMarkdown, false); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCombineMarkdown(t *testing.T) {
	dir := combineFixture(t)

	result, err := Combine(dir, FormatMarkdown, "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Sources != 3 {
		t.Errorf("Sources = %d, want 3", result.Sources)
	}
	if filepath.Base(result.Path) != "_combined_transcripts.md" {
		t.Errorf("Path = %q", result.Path)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{
		"# Combined Transcripts",
		"**Total videos:** 3",
		"# Alpha", "# Beta", "# Gamma",
		"`00:05` — beta words",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("combined markdown missing %q", want)
		}
	}
	// Sources appear in listing order.
	if strings.Index(content, "# Alpha") > strings.Index(content, "# Beta") {
		t.Error("sources out of order")
	}

	// The artifact itself is excluded from later listings.
	files, err := ListTranscripts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Errorf("listing after combine has %d files, want 3", len(files))
	}
}

func TestCombineJSON(t *testing.T) {
	dir := combineFixture(t)

	result, err := Combine(dir, FormatJSON, "")
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	var corpus struct {
		TotalVideos int `json:"total_videos"`
		Transcripts []struct {
			Title    string `json:"title"`
			VideoURL string `json:"video_url"`
			Entries  []struct {
				Timestamp string `json:"timestamp,omitempty"`
				Text      string `json:"text"`
			} `json:"entries"`
		} `json:"transcripts"`
	}
	if err := json.Unmarshal(data, &corpus); err != nil {
		t.Fatalf("combined JSON does not decode: %v", err)
	}
	if corpus.TotalVideos != 3 || len(corpus.Transcripts) != 3 {
		t.Fatalf("corpus = %d videos, %d transcripts", corpus.TotalVideos, len(corpus.Transcripts))
	}
	if corpus.Transcripts[1].Title != "Beta" {
		t.Errorf("second transcript = %q", corpus.Transcripts[1].Title)
	}
	if got := corpus.Transcripts[1].Entries[0].Timestamp; got != "00:05" {
		t.Errorf("timestamp = %q", got)
	}
}

func TestCombineText(t *testing.T) {
	dir := combineFixture(t)

	result, err := Combine(dir, FormatText, "")
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	for _, want := range []string{"=== Alpha ===", "=== Beta ===", "=== Gamma ===", "beta words"} {
		if !strings.Contains(content, want) {
			t.Errorf("combined text missing %q", want)
		}
	}
}

func TestCombineCustomOutput(t *testing.T) {
	dir := combineFixture(t)
	out := filepath.Join(t.TempDir(), "corpus.md")

	result, err := Combine(dir, FormatMarkdown, out)
	if err != nil {
		t.Fatal(err)
	}
	if result.Path != out {
		t.Errorf("Path = %q, want %q", result.Path, out)
	}
	if !FileExists(out) {
		t.Error("custom output file not written")
	}
}

func TestCombineInvalidFormat(t *testing.T) {
	_, err := Combine(combineFixture(t), FormatSRT, "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCombineEmptyDir(t *testing.T) {
	if _, err := Combine(t.TempDir(), FormatMarkdown, ""); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
