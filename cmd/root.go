package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/averin/ytm/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytm",
	Short: "YouTube Transcript Manager",
	Long: `ytm fetches YouTube video transcripts and organizes them locally.

Transcripts are fetched per channel or per video and stored as flat files
in Markdown, JSON, plain text or SRT format. The stored corpus can then be
searched by keyword, combined into a single file, or summarized with
aggregate statistics.

Running ytm without a subcommand starts the interactive menu.`,
	Example: `  # Fetch every transcript of a channel
  ytm fetch --channel UCsXVk37bltHxD1rDPwtNM8Q

  # Fetch a single video as SRT
  ytm fetch --video "https://www.youtube.com/watch?v=dQw4w9WgXcQ" --format srt

  # Search the stored transcripts
  ytm search "machine learning" --context 2

  # Combine and analyze the corpus
  ytm combine --format json
  ytm stats`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return handleOutputFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// No subcommand: fall through to the interactive menu.
		return runInteractive(cmd.Context())
	},
}

// handleOutputFlags copies the persistent output flags into the config
func handleOutputFlags(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Verbose = verbose
	config.Quiet = quiet
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal, shutting down...")

		// Cancel the main context to stop any in-flight fetch. Atomic
		// writes mean a terminated run leaves only complete files.
		cancel()

		// A second signal forces exit
		<-sigCh
		os.Exit(1)
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress and status output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/ytm/config.toml)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}
