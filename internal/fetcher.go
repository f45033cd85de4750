package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
)

// CaptionAPI retrieves raw timed captions for a video, trying the given
// language preferences in order.
type CaptionAPI interface {
	Fetch(ctx context.Context, videoID string, languages []string) (*TranscriptDocument, error)
}

// TranscriptFetcher implements CaptionAPI on top of the YouTube timed-text
// endpoint.
type TranscriptFetcher struct {
	client *yt_transcript.YtTranscriptClient
}

// NewTranscriptFetcher creates the default caption fetcher.
func NewTranscriptFetcher() *TranscriptFetcher {
	return &TranscriptFetcher{client: yt_transcript.NewClient()}
}

// Fetch downloads the first available transcript for videoID among the
// preferred languages.
func (f *TranscriptFetcher) Fetch(ctx context.Context, videoID string, languages []string) (*TranscriptDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	transcripts, err := f.client.GetTranscripts(videoID, languages)
	if err != nil {
		return nil, classifyFetchError(videoID, err)
	}
	if len(transcripts) == 0 || len(transcripts[0].Lines) == 0 {
		return nil, fmt.Errorf("no transcript for %s: %w", videoID, ErrTranscriptUnavailable)
	}

	t := transcripts[0]
	doc := &TranscriptDocument{
		Title:    t.VideoTitle,
		VideoID:  videoID,
		VideoURL: WatchURL(videoID),
		Language: t.Language,
		Timed:    true,
		Entries:  make([]CaptionEntry, 0, len(t.Lines)),
	}
	for _, line := range t.Lines {
		doc.Entries = append(doc.Entries, CaptionEntry{
			Start:    line.Start,
			Duration: line.Duration,
			Text:     line.Text,
		})
	}
	return doc, nil
}

// classifyFetchError sorts caption errors into the unavailable/network
// taxonomy. Disabled or missing captions are a per-video condition; the
// rest is assumed transient.
func classifyFetchError(videoID string, err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"disabled", "no transcript", "not found", "unavailable", "no captions"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("video %s: %v: %w", videoID, err, ErrTranscriptUnavailable)
		}
	}
	return fmt.Errorf("video %s: %v: %w", videoID, err, ErrNetwork)
}

// retryDelay is the pause between fetch attempts after a network failure.
var retryDelay = time.Second

// FetchWithRetry calls api.Fetch, retrying network failures up to retries
// extra times. Exhausted retries degrade to ErrTranscriptUnavailable so
// batch callers treat the video as skippable.
func FetchWithRetry(ctx context.Context, api CaptionAPI, videoID string, languages []string, retries int) (*TranscriptDocument, error) {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		var doc *TranscriptDocument
		doc, err = api.Fetch(ctx, videoID, languages)
		if err == nil {
			return doc, nil
		}
		if !IsNetworkError(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("video %s after %d attempts: %v: %w", videoID, retries+1, err, ErrTranscriptUnavailable)
}

// IsNetworkError reports whether err is a transient fetch failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
