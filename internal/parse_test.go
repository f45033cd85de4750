package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTranscriptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFileMarkdown(t *testing.T) {
	content := "# My Talk\n\n" +
		"**Video URL:** [https://www.youtube.com/watch?v=dQw4w9WgXcQ](https://www.youtube.com/watch?v=dQw4w9WgXcQ)\n\n" +
		"## Transcript\n\n" +
		"`00:00` — welcome everyone\n" +
		"`01:23` — first topic\n" +
		"`1:02:05` — wrapping up\n"
	path := writeTranscriptFile(t, t.TempDir(), "My Talk.md", content)

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "My Talk" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", doc.VideoID)
	}
	if !doc.Timed {
		t.Error("markdown should parse as timed")
	}
	if len(doc.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(doc.Entries))
	}
	if doc.Entries[1].Start != 83 || doc.Entries[1].Text != "first topic" {
		t.Errorf("entry 1 = %+v", doc.Entries[1])
	}
	if doc.Entries[2].Start != 3725 {
		t.Errorf("hour timestamp = %v", doc.Entries[2].Start)
	}
}

func TestParseFileMarkdownLegacySeparator(t *testing.T) {
	content := "# Old File\n\n`00:05` - plain hyphen era\n"
	path := writeTranscriptFile(t, t.TempDir(), "Old File.md", content)

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(doc.Entries))
	}
	if doc.Entries[0].Start != 5 || doc.Entries[0].Text != "plain hyphen era" {
		t.Errorf("entry = %+v", doc.Entries[0])
	}
}

func TestParseFileJSONRoundTrip(t *testing.T) {
	original := sampleDoc()
	payload, err := Render(original, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	path := writeTranscriptFile(t, t.TempDir(), "Sample Video.json", string(payload))

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != original.Title || doc.VideoID != original.VideoID || doc.Language != original.Language {
		t.Errorf("header = %q / %q / %q", doc.Title, doc.VideoID, doc.Language)
	}
	// The blank source entry is dropped at render time.
	if len(doc.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(doc.Entries))
	}
	if doc.Entries[1].Start != 4.2 || doc.Entries[1].Duration != 3.1 {
		t.Errorf("entry 1 = %+v", doc.Entries[1])
	}
}

func TestParseFileSRT(t *testing.T) {
	content := "1\r\n00:00:00,000 --> 00:00:04,200\r\nhello there\r\n\r\n" +
		"2\r\n00:00:04,200 --> 00:00:07,300\r\nsplit over\r\ntwo lines\r\n\r\n"
	path := writeTranscriptFile(t, t.TempDir(), "clip.srt", content)

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "clip" {
		t.Errorf("fallback title = %q", doc.Title)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(doc.Entries))
	}
	if doc.Entries[0].Duration != 4.2 {
		t.Errorf("duration = %v", doc.Entries[0].Duration)
	}
	if doc.Entries[1].Text != "split over two lines" {
		t.Errorf("multi-line cue = %q", doc.Entries[1].Text)
	}
}

func TestParseFileText(t *testing.T) {
	original := sampleDoc()
	payload, err := Render(original, FormatText)
	if err != nil {
		t.Fatal(err)
	}
	path := writeTranscriptFile(t, t.TempDir(), "Sample Video.txt", string(payload))

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Sample Video" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.VideoURL != original.VideoURL {
		t.Errorf("VideoURL = %q", doc.VideoURL)
	}
	if doc.Timed {
		t.Error("plain text should parse as untimed")
	}
	if doc.PlainText() != "hello there general kenobi goodbye" {
		t.Errorf("body = %q", doc.PlainText())
	}
}

func TestParseFileUnknownExtension(t *testing.T) {
	path := writeTranscriptFile(t, t.TempDir(), "notes.pdf", "whatever")
	if _, err := ParseFile(path); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}
