package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markdown entry separators. The em dash form is canonical; the plain
// hyphen is accepted for files written by older tooling.
var markdownSeparators = []string{"` — ", "` - "}

// ParseFile reads a stored transcript back into a document, dispatching
// on the file extension. The filename (without extension) serves as the
// title fallback for formats that embed none.
func ParseFile(path string) (*TranscriptDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript %s: %w", path, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	fallbackTitle := strings.TrimSuffix(base, ext)

	var doc *TranscriptDocument
	switch ext {
	case ".md":
		doc = parseMarkdown(string(data))
	case ".json":
		doc, err = parseJSON(data)
	case ".srt":
		doc, err = parseSRT(string(data))
	case ".txt":
		doc = parseText(string(data))
	default:
		return nil, fmt.Errorf("%w: unknown transcript extension %q", ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if doc.Title == "" {
		doc.Title = fallbackTitle
	}
	if doc.VideoID == "" && doc.VideoURL != "" {
		doc.VideoID = ExtractVideoID(doc.VideoURL)
	}
	return doc, nil
}

func parseMarkdown(content string) *TranscriptDocument {
	doc := &TranscriptDocument{Timed: true}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "# "):
			doc.Title = strings.TrimSpace(line[2:])
		case strings.HasPrefix(line, "**Video URL:**"):
			doc.VideoURL = extractURL(line)
		case strings.HasPrefix(line, "`"):
			for _, sep := range markdownSeparators {
				before, after, found := strings.Cut(line, sep)
				if !found {
					continue
				}
				start, err := ParseTimestamp(strings.Trim(before, "`"))
				if err != nil {
					break
				}
				text := strings.TrimSpace(after)
				if text != "" {
					doc.Entries = append(doc.Entries, CaptionEntry{Start: start, Text: text})
				}
				break
			}
		}
	}
	return doc
}

// extractURL picks the first http(s) URL out of a markdown link line.
func extractURL(line string) string {
	start := strings.Index(line, "http")
	if start == -1 {
		return ""
	}
	url := line[start:]
	if end := strings.IndexAny(url, ") \t"); end != -1 {
		url = url[:end]
	}
	return url
}

func parseJSON(data []byte) (*TranscriptDocument, error) {
	var raw jsonDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	doc := &TranscriptDocument{
		Title:    raw.Title,
		VideoID:  raw.VideoID,
		VideoURL: raw.VideoURL,
		Language: raw.Language,
		Timed:    true,
		Entries:  make([]CaptionEntry, 0, len(raw.Transcript)),
	}
	for _, entry := range raw.Transcript {
		doc.Entries = append(doc.Entries, CaptionEntry{
			Start:    entry.StartSeconds,
			Duration: entry.Duration,
			Text:     entry.Text,
		})
	}
	return doc, nil
}

func parseSRT(content string) (*TranscriptDocument, error) {
	doc := &TranscriptDocument{Timed: true}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		// lines[0] is the sequence number, lines[1] the timing.
		startRaw, endRaw, found := strings.Cut(lines[1], " --> ")
		if !found {
			continue
		}
		start, err := parseSRTTime(startRaw)
		if err != nil {
			return nil, err
		}
		end, err := parseSRTTime(endRaw)
		if err != nil {
			return nil, err
		}

		text := strings.TrimSpace(strings.Join(lines[2:], " "))
		if text == "" {
			continue
		}
		doc.Entries = append(doc.Entries, CaptionEntry{
			Start:    start,
			Duration: end - start,
			Text:     text,
		})
	}
	return doc, nil
}

func parseText(content string) *TranscriptDocument {
	doc := &TranscriptDocument{Timed: false}

	lines := strings.Split(content, "\n")
	var body []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case i == 0 && trimmed != "":
			doc.Title = trimmed
		case strings.HasPrefix(trimmed, "URL: "):
			doc.VideoURL = strings.TrimSpace(trimmed[len("URL: "):])
		case strings.HasPrefix(trimmed, "===="):
			// header rule
		case trimmed != "":
			body = append(body, trimmed)
		}
	}

	if len(body) > 0 {
		doc.Entries = []CaptionEntry{{Text: strings.Join(body, " ")}}
	}
	return doc
}
