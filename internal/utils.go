package internal

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// YouTube URL shapes a video ID can hide in.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?.*v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

var plainVideoIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// ExtractVideoID pulls an 11-character video ID out of a YouTube URL, or
// returns the input when it already is one. Empty result means no ID.
func ExtractVideoID(urlOrID string) string {
	urlOrID = strings.TrimSpace(urlOrID)
	if urlOrID == "" {
		return ""
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(urlOrID); m != nil {
			return m[1]
		}
	}
	if plainVideoIDRe.MatchString(urlOrID) {
		return urlOrID
	}
	return ""
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// AskUser is a variable that holds the function for asking user confirmation
// This allows it to be replaced in tests
var AskUser = func(message string) bool {
	fmt.Printf("%s (y/N): ", message)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return strings.HasPrefix(response, "y")
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}
	return false
}

// ReadLine prompts for a single line of input, returning fallback when the
// answer is empty. Used by the interactive menu.
func ReadLine(prompt, fallback string) string {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		if answer := strings.TrimSpace(scanner.Text()); answer != "" {
			return answer
		}
	}
	return fallback
}
