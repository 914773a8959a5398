package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/burstaudit/burstaudit/schema"
	"github.com/fatih/color"
)

// Severity label constants for group row counts relative to the threshold.
const (
	SevereValue   = "Severe"   // More than 3x the threshold
	HighValue     = "High"     // More than 2x the threshold
	ElevatedValue = "Elevated" // Above the threshold
	NormalValue   = "Normal"   // At or below the threshold
)

// Color variables for console output.
var (
	SevereColor   = color.New(color.FgRed, color.Bold)     // severeColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ElevatedColor = color.New(color.FgYellow)              // elevatedColor represents standard caution, not bold.
	NormalColor   = color.New(color.FgCyan)                // normalColor represents informational signal.
)

// GetPlainLabel returns a plain text severity label for a group's row
// count. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(rowCount int) string {
	switch {
	case rowCount > 3*schema.BurstThreshold:
		return SevereValue
	case rowCount > 2*schema.BurstThreshold:
		return HighValue
	case rowCount > schema.BurstThreshold:
		return ElevatedValue
	default:
		return NormalValue
	}
}

// GetColorLabel returns a colored severity label for console output.
func GetColorLabel(rowCount int) string {
	text := GetPlainLabel(rowCount)
	switch text {
	case SevereValue:
		return SevereColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ElevatedValue:
		return ElevatedColor.Sprint(text)
	default:
		return NormalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for summary
// output, falling back to stdout when no path is configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
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

// GetRunLogDBPath returns the default SQLite DB file for run history.
func GetRunLogDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".burstaudit_runs.db"
	}
	return filepath.Join(homeDir, ".burstaudit_runs.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
