package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/averin/ytm/internal"
)

// cpCmd copies a stored transcript's plain text to the system clipboard.
var cpCmd = &cobra.Command{
	Use:   "cp FILE",
	Short: "Copy a stored transcript to the clipboard",
	Long: `Copy the plain text of a stored transcript file to the clipboard.

The argument is a transcript file path, or a bare filename resolved
against the transcript directory. Timestamps and markup are stripped.`,
	Example: `  # Copy by path
  ytm cp Transcripts/Some\ Video.md

  # Copy by filename from the default directory
  ytm cp "Some Video.md"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !internal.FileExists(path) {
			candidate := filepath.Join(config.TranscriptsDir, path)
			if !internal.FileExists(candidate) {
				return fmt.Errorf("transcript not found: %s", path)
			}
			path = candidate
		}

		doc, err := internal.ParseFile(path)
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(doc.PlainText()); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
