package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeCaptions returns scripted responses in order, repeating the last one.
type fakeCaptions struct {
	calls     int
	responses []error
	doc       *TranscriptDocument
}

func (f *fakeCaptions) Fetch(ctx context.Context, videoID string, languages []string) (*TranscriptDocument, error) {
	f.calls++
	idx := min(f.calls-1, len(f.responses)-1)
	if err := f.responses[idx]; err != nil {
		return nil, err
	}
	doc := f.doc
	if doc == nil {
		doc = &TranscriptDocument{VideoID: videoID, Timed: true, Entries: []CaptionEntry{{Text: "ok"}}}
	}
	return doc, nil
}

func withFastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestFetchWithRetrySucceedsFirstTry(t *testing.T) {
	api := &fakeCaptions{responses: []error{nil}}

	doc, err := FetchWithRetry(context.Background(), api, "aaaaaaaaaaa", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || api.calls != 1 {
		t.Errorf("doc = %v, calls = %d", doc, api.calls)
	}
}

func TestFetchWithRetryRecoversFromNetworkError(t *testing.T) {
	withFastRetries(t)
	netErr := fmt.Errorf("connection reset: %w", ErrNetwork)
	api := &fakeCaptions{responses: []error{netErr, netErr, nil}}

	doc, err := FetchWithRetry(context.Background(), api, "aaaaaaaaaaa", nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if doc == nil || api.calls != 3 {
		t.Errorf("doc = %v, calls = %d", doc, api.calls)
	}
}

func TestFetchWithRetryExhaustionDegrades(t *testing.T) {
	withFastRetries(t)
	netErr := fmt.Errorf("timeout: %w", ErrNetwork)
	api := &fakeCaptions{responses: []error{netErr}}

	_, err := FetchWithRetry(context.Background(), api, "aaaaaaaaaaa", nil, 2)
	if !errors.Is(err, ErrTranscriptUnavailable) {
		t.Fatalf("err = %v, want ErrTranscriptUnavailable", err)
	}
	if api.calls != 3 {
		t.Errorf("calls = %d, want 3", api.calls)
	}
}

func TestFetchWithRetryUnavailableNotRetried(t *testing.T) {
	api := &fakeCaptions{responses: []error{fmt.Errorf("captions disabled: %w", ErrTranscriptUnavailable)}}

	_, err := FetchWithRetry(context.Background(), api, "aaaaaaaaaaa", nil, 5)
	if !errors.Is(err, ErrTranscriptUnavailable) {
		t.Fatalf("err = %v, want ErrTranscriptUnavailable", err)
	}
	if api.calls != 1 {
		t.Errorf("calls = %d, want 1", api.calls)
	}
}

func TestFetchWithRetryHonorsCancellation(t *testing.T) {
	withFastRetries(t)
	ctx, cancel := context.WithCancel(context.Background())
	netErr := fmt.Errorf("unreachable: %w", ErrNetwork)
	api := &fakeCaptions{responses: []error{netErr}}

	cancel()
	_, err := FetchWithRetry(ctx, api, "aaaaaaaaaaa", nil, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestClassifyFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "disabled captions", err: errors.New("subtitles are disabled for this video"), want: ErrTranscriptUnavailable},
		{name: "no transcript", err: errors.New("no transcript found"), want: ErrTranscriptUnavailable},
		{name: "video unavailable", err: errors.New("video unavailable"), want: ErrTranscriptUnavailable},
		{name: "connection failure", err: errors.New("dial tcp: connection refused"), want: ErrNetwork},
		{name: "http 500", err: errors.New("server returned 500"), want: ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyFetchError("aaaaaaaaaaa", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyFetchError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
