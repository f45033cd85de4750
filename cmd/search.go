package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search KEYWORD",
	Short: "Search for a keyword across saved transcripts",
	Example: `  # Case-insensitive search with two lines of context
  ytm search "machine learning"

  # Case-sensitive, wider context, custom directory
  ytm search GPU --case-sensitive --context 4 --dir ./Transcripts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		opts := internal.SearchOptions{}
		opts.CaseSensitive, _ = cmd.Flags().GetBool("case-sensitive")
		opts.ContextLines, _ = cmd.Flags().GetInt("context")
		opts.MaxResults, _ = cmd.Flags().GetInt("max-results")

		app := internal.NewApp(config)
		results, err := app.Search(dir, args[0], opts)
		if err != nil {
			return err
		}

		fmt.Println(internal.FormatSearchResults(results, args[0], opts.ContextLines > 0))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringP("dir", "d", "", "Directory containing transcript files (default: configured transcripts dir)")
	searchCmd.Flags().Bool("case-sensitive", false, "Enable case-sensitive search")
	searchCmd.Flags().Int("context", 2, "Number of surrounding context lines")
	searchCmd.Flags().Int("max-results", 50, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
