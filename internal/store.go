package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	invalidFilenameRunes = regexp.MustCompile(`[\\/:*?"<>|]`)
	collapseFiller       = regexp.MustCompile(`[_\s]+`)
)

// maxFilenameLen caps sanitized titles for filesystem compatibility.
const maxFilenameLen = 150

// transcriptExtensions are the file extensions List recognizes.
var transcriptExtensions = map[string]bool{
	".md":   true,
	".json": true,
	".txt":  true,
	".srt":  true,
}

// SanitizeFilename turns a video title into a safe filename: invalid
// filesystem characters and non-ASCII runes become underscores, filler is
// collapsed to single spaces, and the result is length-capped. Empty input
// falls back to "untitled".
func SanitizeFilename(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled"
	}

	clean := invalidFilenameRunes.ReplaceAllString(title, "_")

	var sb strings.Builder
	for _, r := range clean {
		switch {
		case r == ' ':
			sb.WriteByte(' ')
		case r < 128:
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	clean = collapseFiller.ReplaceAllString(sb.String(), " ")
	clean = strings.Trim(clean, " ._")

	if len(clean) > maxFilenameLen {
		clean = clean[:maxFilenameLen]
		if cut := strings.LastIndex(clean, " "); cut > 0 {
			clean = clean[:cut]
		}
	}

	if clean == "" {
		return "untitled"
	}
	return clean
}

// Store writes and lists transcript files in a single flat directory.
// The directory listing is the index; there is no catalog file.
type Store struct {
	dir string

	// owners maps filenames written this run to their video IDs, so two
	// videos whose titles sanitize identically never clobber each other.
	owners map[string]string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir, owners: make(map[string]string)}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// WriteResult reports the outcome of a Write call.
type WriteResult struct {
	Path    string
	Skipped bool
}

// Write renders doc in the given format and writes it atomically under a
// sanitized-title filename. With resume enabled an existing file for the
// same video is skipped and reported, not overwritten. A same-named file
// belonging to a different video gets a video-ID suffix instead.
func (s *Store) Write(doc *TranscriptDocument, format string, resume bool) (WriteResult, error) {
	if !ValidFormat(format) {
		return WriteResult{}, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}

	path := s.resolvePath(doc, format)

	if resume && FileExists(path) {
		return WriteResult{Path: path, Skipped: true}, nil
	}

	payload, err := Render(doc, format)
	if err != nil {
		return WriteResult{}, err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return WriteResult{}, fmt.Errorf("creating transcript directory %s: %w", s.dir, err)
	}
	if err := writeFileAtomic(path, payload); err != nil {
		return WriteResult{}, err
	}

	s.owners[filepath.Base(path)] = doc.VideoID
	return WriteResult{Path: path}, nil
}

// Exists reports whether a transcript for doc already exists, using the
// same name resolution as Write. Used to skip fetching entirely in resume
// mode.
func (s *Store) Exists(doc *TranscriptDocument, format string) bool {
	return FileExists(s.resolvePath(doc, format))
}

// resolvePath picks the filename for doc, appending a video-ID suffix when
// the plain name is already owned by a different video.
func (s *Store) resolvePath(doc *TranscriptDocument, format string) string {
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = doc.VideoID
	}
	name := SanitizeFilename(title)
	filename := name + "." + format

	if s.collides(filename, doc.VideoID) {
		filename = name + "_" + doc.VideoID + "." + format
	}
	return filepath.Join(s.dir, filename)
}

// collides reports whether filename already belongs to a different video,
// first via the per-run registry, then by probing the on-disk file for an
// embedded video ID. Files that embed no ID are treated as the same video.
func (s *Store) collides(filename, videoID string) bool {
	if videoID == "" {
		return false
	}
	if owner, ok := s.owners[filename]; ok {
		return owner != videoID
	}

	path := filepath.Join(s.dir, filename)
	if !FileExists(path) {
		return false
	}
	existing, err := ParseFile(path)
	if err != nil {
		return false
	}
	return existing.VideoID != "" && existing.VideoID != videoID
}

// List returns the transcript files in the store's directory, sorted by
// name. Underscore-prefixed files (combined artifacts) are excluded.
func (s *Store) List() ([]string, error) {
	return ListTranscripts(s.dir)
}

// ListTranscripts returns the sorted transcript file paths in dir.
func ListTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading transcript directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		if transcriptExtensions[filepath.Ext(name)] {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it into place, so interrupted runs never leave partial files.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ytm-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
