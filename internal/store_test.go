package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "plain title", title: "My Video Title", want: "My Video Title"},
		{name: "invalid characters", title: `What: Is "Go"?`, want: "What Is Go"},
		{name: "path separators", title: "a/b\\c", want: "a b c"},
		{name: "non-ASCII", title: "Café ♞ Talk", want: "Caf Talk"},
		{name: "filler collapsed", title: "a___b   c", want: "a b c"},
		{name: "trimmed edges", title: "  .title.  ", want: "title"},
		{name: "empty", title: "", want: "untitled"},
		{name: "only invalid", title: "???", want: "untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.title); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameLengthCap(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars
	got := SanitizeFilename(long)
	if len(got) > maxFilenameLen {
		t.Errorf("sanitized length = %d, want <= %d", len(got), maxFilenameLen)
	}
	if strings.HasSuffix(got, " ") || !strings.HasSuffix(got, "word") {
		t.Errorf("cap should cut at a word boundary, got %q", got)
	}
}

func TestStoreWriteAndResume(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	doc := sampleDoc()

	result, err := store.Write(doc, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped {
		t.Fatal("first write reported skipped")
	}
	if filepath.Base(result.Path) != "Sample Video.md" {
		t.Errorf("path = %q", result.Path)
	}
	original, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}

	// Resume run: same video again, even with changed content.
	changed := sampleDoc()
	changed.Entries = changed.Entries[:1]
	again, err := NewStore(dir).Write(changed, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}
	if !again.Skipped {
		t.Error("resume write should skip existing file")
	}
	afterwards, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(afterwards) != string(original) {
		t.Error("resume write modified the existing file")
	}

	// Without resume the file is overwritten.
	forced, err := NewStore(dir).Write(changed, FormatMarkdown, false)
	if err != nil {
		t.Fatal(err)
	}
	if forced.Skipped {
		t.Error("forced write reported skipped")
	}
	overwritten, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(overwritten) == string(original) {
		t.Error("forced write left the old content in place")
	}
}

func TestStoreCollisionSameRun(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	first := &TranscriptDocument{
		Title: "Intro", VideoID: "aaaaaaaaaaa", VideoURL: WatchURL("aaaaaaaaaaa"),
		Timed: true, Entries: []CaptionEntry{{Text: "first video"}},
	}
	second := &TranscriptDocument{
		Title: "Intro", VideoID: "bbbbbbbbbbb", VideoURL: WatchURL("bbbbbbbbbbb"),
		Timed: true, Entries: []CaptionEntry{{Text: "second video"}},
	}

	r1, err := store.Write(first, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := store.Write(second, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(r1.Path) != "Intro.md" {
		t.Errorf("first path = %q", r1.Path)
	}
	if filepath.Base(r2.Path) != "Intro_bbbbbbbbbbb.md" {
		t.Errorf("second path = %q", r2.Path)
	}
	if r2.Skipped {
		t.Error("collision write reported skipped")
	}
}

func TestStoreCollisionAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	first := &TranscriptDocument{
		Title: "Intro", VideoID: "aaaaaaaaaaa", VideoURL: WatchURL("aaaaaaaaaaa"),
		Timed: true, Entries: []CaptionEntry{{Text: "first video"}},
	}
	if _, err := NewStore(dir).Write(first, FormatMarkdown, true); err != nil {
		t.Fatal(err)
	}

	// Fresh store: the on-disk file is probed for its embedded video ID.
	second := &TranscriptDocument{
		Title: "Intro", VideoID: "bbbbbbbbbbb", VideoURL: WatchURL("bbbbbbbbbbb"),
		Timed: true, Entries: []CaptionEntry{{Text: "second video"}},
	}
	r2, err := NewStore(dir).Write(second, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(r2.Path) != "Intro_bbbbbbbbbbb.md" {
		t.Errorf("second path = %q", r2.Path)
	}

	// Same video again resumes against the plain name.
	r1, err := NewStore(dir).Write(first, FormatMarkdown, true)
	if err != nil {
		t.Fatal(err)
	}
	if !r1.Skipped || filepath.Base(r1.Path) != "Intro.md" {
		t.Errorf("resume = %+v", r1)
	}
}

func TestStoreExists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	doc := sampleDoc()

	if store.Exists(doc, FormatMarkdown) {
		t.Error("Exists before write")
	}
	if _, err := store.Write(doc, FormatMarkdown, true); err != nil {
		t.Fatal(err)
	}
	if !store.Exists(doc, FormatMarkdown) {
		t.Error("Exists after write")
	}
	if store.Exists(doc, FormatSRT) {
		t.Error("Exists for a format never written")
	}
}

func TestListTranscripts(t *testing.T) {
	dir := t.TempDir()
	writeTranscriptFile(t, dir, "b.md", "# b\n")
	writeTranscriptFile(t, dir, "a.json", "{}")
	writeTranscriptFile(t, dir, "c.srt", "")
	writeTranscriptFile(t, dir, "_combined_transcripts.md", "# combined\n")
	writeTranscriptFile(t, dir, "notes.pdf", "nope")
	if err := os.Mkdir(filepath.Join(dir, "sub.md"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListTranscripts(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	want := []string{"a.json", "b.md", "c.srt"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestWriteInvalidFormat(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Write(sampleDoc(), "pdf", false); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
