package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// CaptionEntry is one timed unit of transcript text.
type CaptionEntry struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// TranscriptDocument holds a fetched transcript together with its video
// details. It is written once to disk and only read afterwards.
type TranscriptDocument struct {
	Title    string
	VideoID  string
	VideoURL string
	Language string
	Entries  []CaptionEntry

	// Timed reports whether the entries carry usable timestamps.
	// Plain text files parsed back from disk have none.
	Timed bool
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// PlainText returns the whitespace-joined entry texts without timestamps.
func (d *TranscriptDocument) PlainText() string {
	var sb strings.Builder
	for _, entry := range d.Entries {
		text := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// EndSeconds returns the end offset of the last entry, or 0 for an empty
// or untimed document.
func (d *TranscriptDocument) EndSeconds() float64 {
	if !d.Timed || len(d.Entries) == 0 {
		return 0
	}
	last := d.Entries[len(d.Entries)-1]
	return last.Start + last.Duration
}

// WordCount counts whitespace-delimited tokens across all entries.
func (d *TranscriptDocument) WordCount() int {
	count := 0
	for _, entry := range d.Entries {
		count += len(strings.Fields(entry.Text))
	}
	return count
}

// FormatTimestamp converts seconds to a clock value: MM:SS below one hour,
// H:MM:SS above. Negative inputs clamp to zero.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// ParseTimestamp parses MM:SS or H:MM:SS clock values back into seconds.
func ParseTimestamp(value string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp: %q", value)
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp: %q", value)
		}
		total = total*60 + n
	}
	return float64(total), nil
}
