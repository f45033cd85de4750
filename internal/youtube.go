package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Video is one (id, title) pair produced by the channel lister.
type Video struct {
	ID    string
	Title string
	URL   string
}

// VideoLister enumerates the videos of a channel. The produced slice is
// materialized from a paginated scrape, consumed once per run and never
// cached across invocations.
type VideoLister interface {
	ChannelVideos(ctx context.Context, channel string) ([]Video, error)
}

var installOnce sync.Once

// YouTube lists channel videos and resolves titles through yt-dlp.
type YouTube struct {
	verbose bool
}

// NewYouTube creates the yt-dlp backed lister, installing the yt-dlp
// binary on first use.
func NewYouTube(ctx context.Context, verbose bool) *YouTube {
	installOnce.Do(func() {
		ytdlp.MustInstall(ctx, nil)
	})
	return &YouTube{verbose: verbose}
}

// flatEntry mirrors the entries of a yt-dlp flat-playlist JSON dump.
// Channel pages nest their tabs as sub-playlists.
type flatEntry struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	URL     string      `json:"url"`
	Entries []flatEntry `json:"entries"`
}

// ChannelVideos returns the (id, title) pairs of every video on a channel.
// The channel argument may be a channel ID, an @handle, or a full URL.
func (yt *YouTube) ChannelVideos(ctx context.Context, channel string) ([]Video, error) {
	url, err := ChannelURL(channel)
	if err != nil {
		return nil, err
	}
	if yt.verbose {
		fmt.Printf("Listing videos for %s\n", url)
	}

	dl := ytdlp.New().
		DumpSingleJSON().
		FlatPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing channel videos: %v: %w", err, ErrNetwork)
	}

	var root flatEntry
	if err := json.Unmarshal([]byte(result.Stdout), &root); err != nil {
		return nil, fmt.Errorf("parsing channel listing: %w", err)
	}

	videos := collectVideos(root.Entries, nil)
	if yt.verbose {
		fmt.Printf("Found %d videos\n", len(videos))
	}
	return videos, nil
}

func collectVideos(entries []flatEntry, videos []Video) []Video {
	for _, entry := range entries {
		if len(entry.Entries) > 0 {
			videos = collectVideos(entry.Entries, videos)
			continue
		}
		if entry.ID == "" {
			continue
		}
		title := entry.Title
		if title == "" {
			title = entry.ID
		}
		videos = append(videos, Video{ID: entry.ID, Title: title, URL: WatchURL(entry.ID)})
	}
	return videos
}

// VideoTitle resolves a single video's title from its metadata dump. Used
// for single-video fetches when no Data API key is configured.
func (yt *YouTube) VideoTitle(ctx context.Context, videoID string) (string, error) {
	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		return "", fmt.Errorf("fetching metadata for %s: %v: %w", videoID, err, ErrNetwork)
	}

	var meta struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(result.Stdout), &meta); err != nil {
		return "", fmt.Errorf("parsing metadata for %s: %w", videoID, err)
	}
	if meta.Title == "" {
		return "", fmt.Errorf("no title in metadata for %s", videoID)
	}
	return meta.Title, nil
}

// ChannelURL normalizes a channel ID, @handle or URL into a videos-tab URL.
func ChannelURL(channel string) (string, error) {
	channel = strings.TrimSpace(channel)
	switch {
	case channel == "":
		return "", fmt.Errorf("%w: channel cannot be empty", ErrInvalidInput)
	case strings.HasPrefix(channel, "https://"), strings.HasPrefix(channel, "http://"):
		return channel, nil
	case strings.HasPrefix(channel, "UC"):
		return "https://www.youtube.com/channel/" + channel + "/videos", nil
	case strings.HasPrefix(channel, "@"):
		return "https://www.youtube.com/" + channel + "/videos", nil
	default:
		return "https://www.youtube.com/@" + channel + "/videos", nil
	}
}

// TitleResolver upgrades video titles through the YouTube Data API when an
// API key is configured. Absence of a key degrades to lister titles.
type TitleResolver struct {
	service *youtube.Service
	verbose bool
}

// NewTitleResolver builds a Data API client for the given key.
func NewTitleResolver(ctx context.Context, apiKey string, verbose bool) (*TitleResolver, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("initializing YouTube Data API client: %w", err)
	}
	return &TitleResolver{service: service, verbose: verbose}, nil
}

// Title fetches the snippet title for a video ID.
func (r *TitleResolver) Title(videoID string) (string, error) {
	response, err := r.service.Videos.List([]string{"snippet"}).Id(videoID).Do()
	if err != nil {
		return "", fmt.Errorf("fetching title for %s: %v: %w", videoID, err, ErrNetwork)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return "", fmt.Errorf("no title found for video %s", videoID)
	}
	title := response.Items[0].Snippet.Title
	if r.verbose {
		fmt.Printf("Resolved title for %s: %s\n", videoID, title)
	}
	return title, nil
}
