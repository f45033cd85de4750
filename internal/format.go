package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Supported output formats for stored transcripts.
const (
	FormatMarkdown = "md"
	FormatJSON     = "json"
	FormatText     = "txt"
	FormatSRT      = "srt"
)

// Formats lists all supported output formats.
var Formats = []string{FormatMarkdown, FormatJSON, FormatText, FormatSRT}

// ValidFormat reports whether format names a supported output encoding.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Render encodes a transcript document in the requested format. An empty
// entry list produces a valid, content-empty document.
func Render(doc *TranscriptDocument, format string) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(doc), nil
	case FormatJSON:
		return renderJSON(doc)
	case FormatText:
		return renderText(doc), nil
	case FormatSRT:
		return renderSRT(doc), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
}

func renderMarkdown(doc *TranscriptDocument) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", doc.Title)
	if doc.VideoURL != "" {
		fmt.Fprintf(&buf, "**Video URL:** [%s](%s)\n\n", doc.VideoURL, doc.VideoURL)
	}
	buf.WriteString("## Transcript\n\n")
	for _, entry := range doc.Entries {
		text := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
		if text == "" {
			continue
		}
		fmt.Fprintf(&buf, "`%s` — %s\n", FormatTimestamp(entry.Start), text)
	}
	return buf.Bytes()
}

type jsonEntry struct {
	Timestamp    string  `json:"timestamp"`
	StartSeconds float64 `json:"start_seconds"`
	Duration     float64 `json:"duration"`
	Text         string  `json:"text"`
}

type jsonDocument struct {
	Title      string      `json:"title"`
	VideoID    string      `json:"video_id"`
	VideoURL   string      `json:"video_url"`
	Language   string      `json:"language,omitempty"`
	Transcript []jsonEntry `json:"transcript"`
}

func renderJSON(doc *TranscriptDocument) ([]byte, error) {
	out := jsonDocument{
		Title:      doc.Title,
		VideoID:    doc.VideoID,
		VideoURL:   doc.VideoURL,
		Language:   doc.Language,
		Transcript: make([]jsonEntry, 0, len(doc.Entries)),
	}
	for _, entry := range doc.Entries {
		text := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
		if text == "" {
			continue
		}
		out.Transcript = append(out.Transcript, jsonEntry{
			Timestamp:    FormatTimestamp(entry.Start),
			StartSeconds: round2(entry.Start),
			Duration:     round2(entry.Duration),
			Text:         text,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding transcript JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func renderText(doc *TranscriptDocument) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n", doc.Title)
	if doc.VideoURL != "" {
		fmt.Fprintf(&buf, "URL: %s\n", doc.VideoURL)
	}
	buf.WriteString(strings.Repeat("=", 60) + "\n\n")
	if text := doc.PlainText(); text != "" {
		buf.WriteString(text + " ")
	}
	buf.WriteString("\n")
	return buf.Bytes()
}

func renderSRT(doc *TranscriptDocument) []byte {
	var buf bytes.Buffer
	index := 1
	for _, entry := range doc.Entries {
		text := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
		if text == "" {
			continue
		}
		end := entry.Start + entry.Duration
		fmt.Fprintf(&buf, "%d\n%s --> %s\n%s\n\n", index, srtTime(entry.Start), srtTime(end), text)
		index++
	}
	return buf.Bytes()
}

// srtTime converts seconds to the SubRip HH:MM:SS,mmm form. Rounding via
// total milliseconds keeps round trips within 1ms.
func srtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	hours := millis / 3600000
	minutes := (millis % 3600000) / 60000
	secs := (millis % 60000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

func parseSRTTime(value string) (float64, error) {
	var hours, minutes, secs, millis int
	if _, err := fmt.Sscanf(strings.TrimSpace(value), "%d:%d:%d,%d", &hours, &minutes, &secs, &millis); err != nil {
		return 0, fmt.Errorf("invalid SRT time %q: %w", value, err)
	}
	return float64(hours)*3600 + float64(minutes)*60 + float64(secs) + float64(millis)/1000, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
