package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// interactiveCmd represents the interactive command
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run in interactive mode (guided prompts)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

// runInteractive drives the guided menu. It is a thin front-end over the
// same App operations the subcommands use.
func runInteractive(ctx context.Context) error {
	app := internal.NewApp(config)

	rule := strings.Repeat("=", 60)
	fmt.Printf("\n%s\n  YouTube Transcript Manager — Interactive Mode\n%s\n\n", rule, rule)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Println("What would you like to do?")
		fmt.Println()
		fmt.Println("  1. Fetch transcripts for a YouTube channel")
		fmt.Println("  2. Fetch transcript for a single video")
		fmt.Println("  3. Search across saved transcripts")
		fmt.Println("  4. Combine transcripts into a single file")
		fmt.Println("  5. View transcript statistics")
		fmt.Println("  6. Exit")
		fmt.Println()

		switch internal.ReadLine("Enter your choice (1-6): ", "") {
		case "1":
			channel := internal.ReadLine("Enter YouTube channel ID or @handle: ", "")
			if channel == "" {
				fmt.Println("Channel cannot be empty.")
				continue
			}
			opts := promptFetchOptions()
			// FetchChannel prints its own summary through the UI manager.
			if _, err := app.FetchChannel(ctx, channel, opts); err != nil {
				fmt.Printf("Error: %v\n\n", err)
				continue
			}
			fmt.Println()

		case "2":
			video := internal.ReadLine("Enter YouTube video URL or ID: ", "")
			if video == "" {
				fmt.Println("Video URL cannot be empty.")
				continue
			}
			opts := promptFetchOptions()
			path, err := app.FetchVideo(ctx, video, opts)
			if err != nil {
				fmt.Printf("Error: %v\n\n", err)
				continue
			}
			fmt.Printf("Transcript saved to: %s\n\n", path)

		case "3":
			keyword := internal.ReadLine("Enter search keyword: ", "")
			if keyword == "" {
				fmt.Println("Keyword cannot be empty.")
				continue
			}
			dir := internal.ReadLine(transcriptDirPrompt(), "")
			results, err := app.Search(dir, keyword, internal.SearchOptions{ContextLines: 2, MaxResults: 50})
			if err != nil {
				fmt.Printf("Error: %v\n\n", err)
				continue
			}
			fmt.Println(internal.FormatSearchResults(results, keyword, true))

		case "4":
			dir := internal.ReadLine(transcriptDirPrompt(), "")
			format := internal.ReadLine("Format — md/json/txt (default: md): ", "md")
			if dir == "" {
				dir = config.TranscriptsDir
			}
			existing := filepath.Join(dir, "_combined_transcripts."+format)
			if internal.FileExists(existing) && !internal.AskUser(fmt.Sprintf("%s already exists. Overwrite?", existing)) {
				fmt.Println("Combine cancelled.")
				continue
			}
			result, err := app.Combine(dir, format, "")
			if err != nil {
				fmt.Printf("Error: %v\n\n", err)
				continue
			}
			fmt.Printf("Combined transcripts saved to: %s\n\n", result.Path)

		case "5":
			dir := internal.ReadLine(transcriptDirPrompt(), "")
			stats, err := app.Stats(dir)
			if err != nil {
				fmt.Printf("Error: %v\n\n", err)
				continue
			}
			fmt.Println(internal.RenderReport(internal.FormatStats(stats)))

		case "6":
			fmt.Println("Goodbye!")
			return nil

		default:
			fmt.Println("Invalid choice. Please enter 1-6.")
			fmt.Println()
		}
	}
}

// promptFetchOptions asks for the common fetch settings, falling back to
// configured defaults on empty answers.
func promptFetchOptions() internal.FetchOptions {
	opts := internal.FetchOptions{SkipExisting: true}
	opts.OutputDir = internal.ReadLine(transcriptDirPrompt(), "")
	opts.Format = internal.ReadLine(fmt.Sprintf("Format — md/json/txt/srt (default: %s): ", config.Format), "")
	if lang := internal.ReadLine("Language (default: en): ", ""); lang != "" {
		opts.Languages = []string{lang}
	}
	if limit := internal.ReadLine("Max videos, 0 = all (default: 0): ", "0"); limit != "0" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	return opts
}

func transcriptDirPrompt() string {
	return fmt.Sprintf("Transcript directory (default: %s): ", config.TranscriptsDir)
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
