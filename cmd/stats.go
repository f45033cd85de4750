package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for saved transcripts",
	Example: `  # Statistics for the default transcript directory
  ytm stats

  # Statistics for a custom directory
  ytm stats --dir ./Transcripts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")

		app := internal.NewApp(config)
		stats, err := app.Stats(dir)
		if err != nil {
			return err
		}

		fmt.Println(internal.RenderReport(internal.FormatStats(stats)))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("dir", "d", "", "Directory containing transcript files (default: configured transcripts dir)")
	rootCmd.AddCommand(statsCmd)
}
