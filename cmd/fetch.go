package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch {--channel ID | --video URL}",
	Short: "Fetch transcripts from YouTube",
	Long: `Fetch transcripts for all videos of a channel or for a single video.

Channel fetches run sequentially with a progress bar. Videos without
captions are skipped and listed in the final summary; they never abort the
batch. Re-running over an existing directory skips already-present files
unless --no-skip is given.`,
	Example: `  # All transcripts of a channel, resumable
  ytm fetch --channel UCsXVk37bltHxD1rDPwtNM8Q

  # Single video as JSON, German captions preferred
  ytm fetch --video dQw4w9WgXcQ --format json --language de --language en

  # First 10 videos only, re-downloading existing files
  ytm fetch --channel @somechannel --limit 10 --no-skip

  # Manual fallback when a video has no captions
  ytm fetch --video dQw4w9WgXcQ --manual entries.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, _ := cmd.Flags().GetString("channel")
		video, _ := cmd.Flags().GetString("video")
		manual, _ := cmd.Flags().GetString("manual")

		if apiKey, _ := cmd.Flags().GetString("api-key"); apiKey != "" {
			config.APIKey = apiKey
		}

		noSkip, _ := cmd.Flags().GetBool("no-skip")
		opts := internal.FetchOptions{SkipExisting: !noSkip}
		opts.OutputDir, _ = cmd.Flags().GetString("output")
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Languages, _ = cmd.Flags().GetStringSlice("language")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		app := internal.NewApp(config)

		if video != "" {
			var path string
			var err error
			if manual != "" {
				path, err = app.FetchManual(cmd.Context(), video, manual, opts)
			} else {
				path, err = app.FetchVideo(cmd.Context(), video, opts)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Transcript saved to: %s\n", path)
			return nil
		}

		if manual != "" {
			return fmt.Errorf("--manual requires --video")
		}

		summary, err := app.FetchChannel(cmd.Context(), channel, opts)
		if err != nil {
			return err
		}
		if summary.Saved == 0 && summary.Skipped == 0 && summary.Failed > 0 {
			return fmt.Errorf("no transcripts could be fetched (%d videos failed)", summary.Failed)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringP("channel", "c", "", "YouTube channel ID, @handle or URL to fetch all videos from")
	fetchCmd.Flags().String("video", "", "Single YouTube video URL or ID")
	fetchCmd.Flags().StringP("output", "o", "", "Output directory for transcript files (default: configured transcripts dir)")
	fetchCmd.Flags().StringP("format", "f", "", "Output format: md, json, txt or srt (default: configured format)")
	fetchCmd.Flags().StringSliceP("language", "l", nil, "Preferred transcript language(s), tried in order")
	fetchCmd.Flags().String("api-key", "", "YouTube Data API key (optional, enhances title accuracy)")
	fetchCmd.Flags().Bool("no-skip", false, "Re-download transcripts even if they already exist")
	fetchCmd.Flags().Int("limit", 0, "Max number of videos to process (0 = all)")
	fetchCmd.Flags().String("manual", "", "JSON file with caption entries to store instead of fetching")

	fetchCmd.MarkFlagsOneRequired("channel", "video")
	fetchCmd.MarkFlagsMutuallyExclusive("channel", "video")

	rootCmd.AddCommand(fetchCmd)
}
