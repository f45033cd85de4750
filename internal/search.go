package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Embedded timestamp markers per format. Markdown lines carry a
// backtick-quoted clock value; SRT timing lines carry the SubRip range.
// Plain text lines have no marker.
var (
	markdownTimestampRe = regexp.MustCompile("`(\\d{1,2}:\\d{2}(?::\\d{2})?)`")
	srtTimingRe         = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2},\d{3}) -->`)
)

// SearchMatch is one keyword occurrence with its surrounding context.
type SearchMatch struct {
	File         string
	Title        string
	LineNumber   int
	Line         string
	Context      []string
	Seconds      float64
	HasTimestamp bool
}

// SearchOptions tune a corpus search.
type SearchOptions struct {
	CaseSensitive bool
	ContextLines  int
	MaxResults    int
}

// Search scans every transcript file in dir for keyword occurrences,
// grouped by file in listing order with matches in line order. Context
// windows clamp at file boundaries. An empty result is not an error.
func Search(dir, keyword string, opts SearchOptions) ([]SearchMatch, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: search keyword cannot be empty", ErrInvalidInput)
	}

	files, err := ListTranscripts(dir)
	if err != nil {
		return nil, err
	}

	needle := keyword
	if !opts.CaseSensitive {
		needle = strings.ToLower(keyword)
	}

	var results []SearchMatch
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading transcript %s: %w", path, err)
		}

		lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		ext := filepath.Ext(path)
		title := fileTitle(path, lines)

		for i, line := range lines {
			haystack := line
			if !opts.CaseSensitive {
				haystack = strings.ToLower(line)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}

			match := SearchMatch{
				File:       filepath.Base(path),
				Title:      title,
				LineNumber: i + 1,
				Line:       strings.TrimRight(line, " \t"),
				Context:    contextWindow(lines, i, opts.ContextLines),
			}
			match.Seconds, match.HasTimestamp = lineTimestamp(ext, line)

			results = append(results, match)
			if opts.MaxResults > 0 && len(results) >= opts.MaxResults {
				return results, nil
			}
		}
	}
	return results, nil
}

// contextWindow returns up to n lines on each side of index i, clamped at
// the slice bounds. n == 0 yields an empty window.
func contextWindow(lines []string, i, n int) []string {
	if n <= 0 {
		return nil
	}
	start := max(0, i-n)
	end := min(len(lines), i+n+1)

	window := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		window = append(window, strings.TrimRight(line, " \t"))
	}
	return window
}

// lineTimestamp extracts the embedded timestamp of a line according to
// the file format. Plain text carries none.
func lineTimestamp(ext, line string) (float64, bool) {
	switch ext {
	case ".md", ".json":
		if m := markdownTimestampRe.FindStringSubmatch(line); m != nil {
			if seconds, err := ParseTimestamp(m[1]); err == nil {
				return seconds, true
			}
		}
	case ".srt":
		if m := srtTimingRe.FindStringSubmatch(line); m != nil {
			if seconds, err := parseSRTTime(m[1]); err == nil {
				return seconds, true
			}
		}
	}
	return 0, false
}

// fileTitle prefers the markdown heading on the first line, falling back
// to the filename without extension.
func fileTitle(path string, lines []string) string {
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		return strings.TrimSpace(lines[0][2:])
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FormatSearchResults renders matches for terminal display, grouped by
// source file with matching context lines marked.
func FormatSearchResults(results []SearchMatch, keyword string, showContext bool) string {
	if len(results) == 0 {
		return fmt.Sprintf("No results found for %q.", keyword)
	}

	rule := strings.Repeat("=", 60)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", rule)
	fmt.Fprintf(&sb, "  Search results for: %q\n", keyword)
	fmt.Fprintf(&sb, "  Found %d match(es)\n%s\n", len(results), rule)

	lowered := strings.ToLower(keyword)
	currentFile := ""
	for i, result := range results {
		if result.File != currentFile {
			currentFile = result.File
			fmt.Fprintf(&sb, "\n--- %s ---\n", result.Title)
			fmt.Fprintf(&sb, "    File: %s\n", result.File)
		}

		timestamp := ""
		if result.HasTimestamp {
			timestamp = fmt.Sprintf(" [%s]", FormatTimestamp(result.Seconds))
		}
		fmt.Fprintf(&sb, "\n  Match #%d (line %d)%s:\n", i+1, result.LineNumber, timestamp)

		if showContext && len(result.Context) > 0 {
			for _, line := range result.Context {
				marker := "   "
				if strings.Contains(strings.ToLower(line), lowered) {
					marker = ">>>"
				}
				fmt.Fprintf(&sb, "    %s %s\n", marker, line)
			}
		} else {
			fmt.Fprintf(&sb, "    >>> %s\n", result.Line)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n", rule)
	return sb.String()
}
