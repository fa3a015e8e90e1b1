package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pamout/devlog/schema"
)

// Color variables for console output.
var (
	XLargeColor = color.New(color.FgRed, color.Bold) // XLargeColor flags commits worth splitting.
	LargeColor  = color.New(color.FgMagenta)         // LargeColor is a strong, distinct warning.
	MediumColor = color.New(color.FgYellow)          // MediumColor is standard caution.
	SmallColor  = color.New(color.FgCyan)            // SmallColor is informational.
)

// GetPlainSizeLabel returns the size bucket name for the given line count.
// This is the label used for CSV, JSON, and table printing.
func GetPlainSizeLabel(lines int) string {
	return string(schema.SizeBucketFor(lines))
}

// GetColorSizeLabel returns a colored size label for console output (table).
func GetColorSizeLabel(lines int) string {
	text := GetPlainSizeLabel(lines)

	switch schema.SizeBucket(text) {
	case schema.XLargeSize:
		return XLargeColor.Sprint(text)
	case schema.LargeSize:
		return LargeColor.Sprint(text)
	case schema.MediumSize:
		return MediumColor.Sprint(text)
	default:
		return SmallColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.Error(msg, "err", err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.Warn(msg, "err", err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".devlog_history.db"
	}
	return filepath.Join(homeDir, ".devlog_history.db")
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
