package internal

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileStats summarizes a single transcript file.
type FileStats struct {
	File            string
	Title           string
	Words           int
	Entries         int
	DurationSeconds float64
	Timed           bool
}

// CorpusStats aggregates a transcript directory. Recomputed on every call;
// nothing is cached.
type CorpusStats struct {
	Files           int
	TotalWords      int
	TotalEntries    int
	AvgWords        float64
	DurationSeconds float64
	Longest         FileStats
	Shortest        FileStats
	PerFile         []FileStats
}

// ComputeStats calculates corpus statistics for dir. Word counts cover the
// extracted text only, with timestamps and markup excluded. Untimed files
// contribute words and entries but no duration. An empty directory yields
// zero stats rather than an error.
func ComputeStats(dir string) (CorpusStats, error) {
	files, err := ListTranscripts(dir)
	if err != nil {
		return CorpusStats{}, err
	}

	stats := CorpusStats{PerFile: make([]FileStats, 0, len(files))}
	for _, path := range files {
		doc, err := ParseFile(path)
		if err != nil {
			return CorpusStats{}, err
		}

		fs := FileStats{
			File:            filepath.Base(path),
			Title:           doc.Title,
			Words:           doc.WordCount(),
			Entries:         len(doc.Entries),
			DurationSeconds: doc.EndSeconds(),
			Timed:           doc.Timed,
		}
		stats.PerFile = append(stats.PerFile, fs)
		stats.TotalWords += fs.Words
		stats.TotalEntries += fs.Entries
		if fs.Timed {
			stats.DurationSeconds += fs.DurationSeconds
		}

		// Strict comparisons keep the earliest file on ties.
		if stats.Files == 0 || fs.Words > stats.Longest.Words {
			stats.Longest = fs
		}
		if stats.Files == 0 || fs.Words < stats.Shortest.Words {
			stats.Shortest = fs
		}
		stats.Files++
	}

	if stats.Files > 0 {
		stats.AvgWords = float64(stats.TotalWords) / float64(stats.Files)
	}
	return stats, nil
}

// FormatStats renders corpus statistics as a markdown report, suitable for
// terminal rendering.
func FormatStats(stats CorpusStats) string {
	var sb strings.Builder
	sb.WriteString("# Transcript Statistics\n\n")

	if stats.Files == 0 {
		sb.WriteString("No transcript files found.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "- **Transcript files:** %d\n", stats.Files)
	fmt.Fprintf(&sb, "- **Total words:** %d\n", stats.TotalWords)
	fmt.Fprintf(&sb, "- **Total entries:** %d\n", stats.TotalEntries)
	fmt.Fprintf(&sb, "- **Average words per video:** %.1f\n", stats.AvgWords)
	fmt.Fprintf(&sb, "- **Estimated total duration:** %s\n", FormatTimestamp(stats.DurationSeconds))
	fmt.Fprintf(&sb, "\n**Longest:** %s (%d words)\n", stats.Longest.Title, stats.Longest.Words)
	fmt.Fprintf(&sb, "**Shortest:** %s (%d words)\n", stats.Shortest.Title, stats.Shortest.Words)

	sb.WriteString("\n| File | Words | Entries | Duration |\n|---|---|---|---|\n")
	for _, fs := range stats.PerFile {
		duration := "-"
		if fs.Timed {
			duration = FormatTimestamp(fs.DurationSeconds)
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %s |\n", fs.File, fs.Words, fs.Entries, duration)
	}
	return sb.String()
}
