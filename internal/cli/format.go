package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// printSuccess prints a success message with a checkmark.
func printSuccess(format string, args ...interface{}) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// printHeader prints a section header.
func printHeader(format string, args ...interface{}) {
	_, _ = headerColor.Printf(format+"\n", args...)
}

// printLabelValue prints a label-value pair.
func printLabelValue(label string, value interface{}) {
	_, _ = labelColor.Printf("  %s: ", label)
	fmt.Println(value)
}

// printDim prints secondary information.
func printDim(format string, args ...interface{}) {
	_, _ = dimColor.Printf(format+"\n", args...)
}
