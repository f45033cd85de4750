package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	TranscriptsDir string
	Format         string
	Languages      []string
	APIKey         string
	FetchRetries   int
	Verbose        bool
	Quiet          bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml
var defaultFS embed.FS

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	filePath := filepath.Join(configDir, "config.toml")
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default configuration: %w", err)
	}

	fmt.Printf("Created default configuration at %s\n", filePath)
	return nil
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytm")
	dataDir := filepath.Join(xdg.DataHome, "ytm")
	cacheDir := filepath.Join(xdg.CacheHome, "ytm")

	transcriptsDir := filepath.Join(dataDir, "transcripts")

	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("format", FormatMarkdown)
	v.SetDefault("languages", []string{"en"})
	v.SetDefault("fetch_retries", 2)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("YTM")
	v.AutomaticEnv()

	// Data API key can also come from the conventional env var
	_ = v.BindEnv("api_key", "YOUTUBE_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		TranscriptsDir: v.GetString("transcripts_dir"),
		Format:         v.GetString("format"),
		Languages:      v.GetStringSlice("languages"),
		APIKey:         v.GetString("api_key"),
		FetchRetries:   v.GetInt("fetch_retries"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),

		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
