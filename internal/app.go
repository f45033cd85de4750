package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// App holds the application state and dependencies
type App struct {
	captions CaptionAPI
	lister   VideoLister
	config   *Config
	ui       UIManager

	youtubeOnce sync.Once
	youtube     *YouTube

	titlesOnce sync.Once
	titles     *TitleResolver
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		captions: NewTranscriptFetcher(),
		config:   config,
		ui:       NewUIManager(config.Verbose, config.Quiet),
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithCaptionAPI sets a custom caption fetcher
func WithCaptionAPI(api CaptionAPI) AppOption {
	return func(a *App) {
		a.captions = api
	}
}

// WithLister sets a custom channel video lister
func WithLister(lister VideoLister) AppOption {
	return func(a *App) {
		a.lister = lister
	}
}

// videoLister returns the configured lister, building the yt-dlp backed
// one on first use so corpus-only commands never install yt-dlp.
func (app *App) videoLister(ctx context.Context) VideoLister {
	if app.lister != nil {
		return app.lister
	}
	app.youtubeOnce.Do(func() {
		app.youtube = NewYouTube(ctx, app.config.Verbose)
	})
	return app.youtube
}

// titleResolver returns the Data API resolver when an API key is set,
// nil otherwise.
func (app *App) titleResolver(ctx context.Context) *TitleResolver {
	if app.config.APIKey == "" {
		return nil
	}
	app.titlesOnce.Do(func() {
		resolver, err := NewTitleResolver(ctx, app.config.APIKey, app.config.Verbose)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v; falling back to scraped titles\n", err)
			return
		}
		app.titles = resolver
	})
	return app.titles
}

// FetchOptions control a fetch run. Zero values fall back to config.
type FetchOptions struct {
	OutputDir    string
	Format       string
	Languages    []string
	SkipExisting bool
	Limit        int
}

func (app *App) fillFetchOptions(opts FetchOptions) (FetchOptions, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = app.config.TranscriptsDir
	}
	if opts.Format == "" {
		opts.Format = app.config.Format
	}
	if len(opts.Languages) == 0 {
		opts.Languages = app.config.Languages
	}
	if !ValidFormat(opts.Format) {
		return opts, fmt.Errorf("%w: unknown format %q (supported: %s)", ErrInvalidInput, opts.Format, strings.Join(Formats, ", "))
	}
	return opts, nil
}

// FetchSummary reports the outcome of a channel fetch. Batches always run
// to completion; per-video failures are recorded, not fatal.
type FetchSummary struct {
	Saved     int
	Failed    int
	Skipped   int
	FailedIDs []string
}

// FetchChannel fetches and stores transcripts for every video of a
// channel, sequentially with a progress indicator.
func (app *App) FetchChannel(ctx context.Context, channel string, opts FetchOptions) (FetchSummary, error) {
	opts, err := app.fillFetchOptions(opts)
	if err != nil {
		return FetchSummary{}, err
	}
	if err := EnsureDirs(opts.OutputDir); err != nil {
		return FetchSummary{}, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	videos, err := app.videoLister(ctx).ChannelVideos(ctx, channel)
	if err != nil {
		return FetchSummary{}, err
	}
	if len(videos) == 0 {
		app.ui.Println("No videos found for this channel.")
		return FetchSummary{}, nil
	}
	if opts.Limit > 0 && len(videos) > opts.Limit {
		videos = videos[:opts.Limit]
	}

	app.ui.Printf("Found %d videos\n", len(videos))

	store := NewStore(opts.OutputDir)
	resolver := app.titleResolver(ctx)
	bar := app.ui.NewProgressBar(len(videos), "Fetching transcripts")

	var summary FetchSummary
	for i, video := range videos {
		bar.Set(i)
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		title := video.Title
		if resolver != nil {
			if apiTitle, err := resolver.Title(video.ID); err == nil {
				title = apiTitle
			} else {
				app.ui.Verbose("Title lookup failed for %s: %v\n", video.ID, err)
			}
		}

		// Check before fetching so resume runs stay off the network.
		probe := &TranscriptDocument{Title: title, VideoID: video.ID}
		if opts.SkipExisting && store.Exists(probe, opts.Format) {
			app.ui.Verbose("Skipping (already exists): %s\n", title)
			summary.Skipped++
			continue
		}

		doc, err := FetchWithRetry(ctx, app.captions, video.ID, opts.Languages, app.config.FetchRetries)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return summary, err
			}
			app.ui.Verbose("No transcript for %s (%s): %v\n", title, video.ID, err)
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, video.ID)
			continue
		}
		doc.Title = title

		result, err := store.Write(doc, opts.Format, opts.SkipExisting)
		if err != nil {
			// Filesystem trouble is fatal, not a per-video condition.
			bar.Finish()
			return summary, err
		}
		if result.Skipped {
			summary.Skipped++
		} else {
			summary.Saved++
		}
	}
	bar.Finish()

	app.ui.Printf("Complete — Saved: %d, Failed: %d, Skipped: %d\n", summary.Saved, summary.Failed, summary.Skipped)
	if len(summary.FailedIDs) > 0 {
		app.ui.Printf("Skipped videos (no transcript): %s\n", strings.Join(summary.FailedIDs, ", "))
	}
	return summary, nil
}

// FetchVideo fetches and stores the transcript of a single video given a
// URL or ID. Returns the stored file path.
func (app *App) FetchVideo(ctx context.Context, urlOrID string, opts FetchOptions) (string, error) {
	opts, err := app.fillFetchOptions(opts)
	if err != nil {
		return "", err
	}

	videoID := ExtractVideoID(urlOrID)
	if videoID == "" {
		return "", fmt.Errorf("%w: could not extract video ID from %q", ErrInvalidInput, urlOrID)
	}
	if err := EnsureDirs(opts.OutputDir); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	doc, err := FetchWithRetry(ctx, app.captions, videoID, opts.Languages, app.config.FetchRetries)
	if err != nil {
		return "", err
	}
	doc.Title = app.resolveTitle(ctx, videoID, doc.Title)

	return app.storeDocument(doc, opts)
}

// FetchManual stores caption entries supplied by the caller, substituting
// for an unavailable automatic transcript. entriesPath names a JSON file
// holding an array of {start, duration, text} objects.
func (app *App) FetchManual(ctx context.Context, urlOrID, entriesPath string, opts FetchOptions) (string, error) {
	opts, err := app.fillFetchOptions(opts)
	if err != nil {
		return "", err
	}

	videoID := ExtractVideoID(urlOrID)
	if videoID == "" {
		return "", fmt.Errorf("%w: could not extract video ID from %q", ErrInvalidInput, urlOrID)
	}

	data, err := os.ReadFile(entriesPath)
	if err != nil {
		return "", fmt.Errorf("reading manual entries: %w", err)
	}
	var entries []CaptionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", fmt.Errorf("%w: parsing manual entries: %v", ErrInvalidInput, err)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Start < entries[j].Start })

	if err := EnsureDirs(opts.OutputDir); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	doc := &TranscriptDocument{
		VideoID:  videoID,
		VideoURL: WatchURL(videoID),
		Entries:  entries,
		Timed:    true,
	}
	doc.Title = app.resolveTitle(ctx, videoID, "")

	return app.storeDocument(doc, opts)
}

func (app *App) storeDocument(doc *TranscriptDocument, opts FetchOptions) (string, error) {
	store := NewStore(opts.OutputDir)
	result, err := store.Write(doc, opts.Format, opts.SkipExisting)
	if err != nil {
		return "", err
	}
	if result.Skipped {
		app.ui.Printf("Already exists: %s\n", result.Path)
	}
	return result.Path, nil
}

// resolveTitle picks the best available title: Data API, then yt-dlp
// metadata, then the fallback (or the video ID when that is empty too).
func (app *App) resolveTitle(ctx context.Context, videoID, fallback string) string {
	if resolver := app.titleResolver(ctx); resolver != nil {
		if title, err := resolver.Title(videoID); err == nil {
			return title
		} else {
			app.ui.Verbose("Title lookup failed for %s: %v\n", videoID, err)
		}
	}
	if fallback == "" && app.lister == nil {
		app.youtubeOnce.Do(func() {
			app.youtube = NewYouTube(ctx, app.config.Verbose)
		})
		if title, err := app.youtube.VideoTitle(ctx, videoID); err == nil {
			return title
		} else {
			app.ui.Verbose("Metadata title failed for %s: %v\n", videoID, err)
		}
	}
	if fallback != "" {
		return fallback
	}
	return videoID
}

// Search runs a keyword search over the configured transcript directory.
func (app *App) Search(dir, keyword string, opts SearchOptions) ([]SearchMatch, error) {
	if dir == "" {
		dir = app.config.TranscriptsDir
	}
	return Search(dir, keyword, opts)
}

// Combine merges the transcript directory into a single artifact.
func (app *App) Combine(dir, format, outputPath string) (CombineResult, error) {
	if dir == "" {
		dir = app.config.TranscriptsDir
	}
	if format == "" {
		format = FormatMarkdown
	}
	return Combine(dir, format, outputPath)
}

// Stats computes corpus statistics for the transcript directory.
func (app *App) Stats(dir string) (CorpusStats, error) {
	if dir == "" {
		dir = app.config.TranscriptsDir
	}
	return ComputeStats(dir)
}
