package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// CombineResult reports a written corpus artifact.
type CombineResult struct {
	Path    string
	Sources int
}

// Combine concatenates every transcript in dir into one artifact in the
// requested format (md, json or txt). Each source file is parsed per its
// own extension first, so mixed-format directories combine cleanly. An
// empty output path defaults to _combined_transcripts.<ext> inside dir;
// the underscore keeps the artifact out of later listings.
func Combine(dir, format, outputPath string) (CombineResult, error) {
	if format != FormatMarkdown && format != FormatJSON && format != FormatText {
		return CombineResult{}, fmt.Errorf("%w: combine format must be md, json or txt, got %q", ErrInvalidInput, format)
	}

	files, err := ListTranscripts(dir)
	if err != nil {
		return CombineResult{}, err
	}
	if len(files) == 0 {
		return CombineResult{}, fmt.Errorf("no transcript files found in %s", dir)
	}

	docs := make([]*TranscriptDocument, 0, len(files))
	for _, path := range files {
		doc, err := ParseFile(path)
		if err != nil {
			return CombineResult{}, err
		}
		docs = append(docs, doc)
	}

	var payload []byte
	switch format {
	case FormatJSON:
		payload, err = combineJSON(docs)
	case FormatText:
		payload = combineText(docs)
	default:
		payload = combineMarkdown(docs)
	}
	if err != nil {
		return CombineResult{}, err
	}

	if outputPath == "" {
		outputPath = filepath.Join(dir, "_combined_transcripts."+format)
	}
	if err := writeFileAtomic(outputPath, payload); err != nil {
		return CombineResult{}, err
	}
	return CombineResult{Path: outputPath, Sources: len(docs)}, nil
}

func combineMarkdown(docs []*TranscriptDocument) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Combined Transcripts\n\n")
	fmt.Fprintf(&buf, "**Total videos:** %d\n\n---\n\n", len(docs))

	for _, doc := range docs {
		buf.Write(renderMarkdown(doc))
		buf.WriteString("\n\n---\n\n")
	}
	return buf.Bytes()
}

func combineText(docs []*TranscriptDocument) []byte {
	var buf bytes.Buffer
	for _, doc := range docs {
		fmt.Fprintf(&buf, "\n\n=== %s ===\n\n", doc.Title)
		if text := doc.PlainText(); text != "" {
			buf.WriteString(text + " ")
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

type combinedEntry struct {
	Timestamp string `json:"timestamp,omitempty"`
	Text      string `json:"text"`
}

type combinedTranscript struct {
	Title    string          `json:"title"`
	VideoURL string          `json:"video_url"`
	Entries  []combinedEntry `json:"entries"`
}

type combinedCorpus struct {
	TotalVideos int                  `json:"total_videos"`
	Transcripts []combinedTranscript `json:"transcripts"`
}

func combineJSON(docs []*TranscriptDocument) ([]byte, error) {
	corpus := combinedCorpus{
		TotalVideos: len(docs),
		Transcripts: make([]combinedTranscript, 0, len(docs)),
	}

	for _, doc := range docs {
		combined := combinedTranscript{
			Title:    doc.Title,
			VideoURL: doc.VideoURL,
			Entries:  make([]combinedEntry, 0, len(doc.Entries)),
		}
		for _, entry := range doc.Entries {
			text := strings.TrimSpace(entry.Text)
			if text == "" {
				continue
			}
			out := combinedEntry{Text: text}
			if doc.Timed {
				out.Timestamp = FormatTimestamp(entry.Start)
			}
			combined.Entries = append(combined.Entries, out)
		}
		corpus.Transcripts = append(corpus.Transcripts, combined)
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding combined JSON: %w", err)
	}
	return append(data, '\n'), nil
}
