package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine all transcripts into a single file",
	Long: `Combine every transcript in the directory into one corpus file.

Sources in different formats are parsed according to their own extension
before being re-rendered, so a directory mixing Markdown, JSON, text and
SRT files combines cleanly. The default output lands next to the sources
as _combined_transcripts.<ext>.`,
	Example: `  # Markdown corpus in the default directory
  ytm combine

  # Plain-text corpus for AI training data
  ytm combine --format txt --output corpus.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		app := internal.NewApp(config)
		result, err := app.Combine(dir, format, output)
		if err != nil {
			return err
		}

		fmt.Printf("Combined %d transcripts into: %s\n", result.Sources, result.Path)
		return nil
	},
}

func init() {
	combineCmd.Flags().StringP("dir", "d", "", "Directory containing transcript files (default: configured transcripts dir)")
	combineCmd.Flags().StringP("format", "f", "md", "Output format: md, json or txt")
	combineCmd.Flags().StringP("output", "o", "", "Output file path (default: auto-generated in transcript dir)")
	rootCmd.AddCommand(combineCmd)
}
