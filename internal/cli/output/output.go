package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Stdout and Stderr are where the Print helpers write.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// ColorsEnabled returns true if terminal colors should be used.
// Respects NO_COLOR environment variable (https://no-color.org/)
func ColorsEnabled() bool {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	f, ok := Stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

const (
	SymbolSuccess = "+"
	SymbolError   = "x"
	SymbolWarning = "!"
	SymbolInfo    = "*"
	SymbolArrow   = "->"
)

func style(code, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return code + text + reset
}

func Bold(text string) string    { return style(bold, text) }
func Dim(text string) string     { return style(dim, text) }
func Success(text string) string { return style(green, text) }
func Error(text string) string   { return style(red, text) }
func Warning(text string) string { return style(yellow, text) }
func Info(text string) string    { return style(cyan, text) }

// Size formats a byte count the way every message shows file sizes, e.g. "12 MiB".
func Size(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// Percent formats a fraction in [0,1].
func Percent(fraction float64) string {
	return fmt.Sprintf("%3.0f%%", fraction*100)
}

// FormatSuccess, FormatError, FormatWarning and FormatInfo return one message line
// including the trailing newline.
func FormatSuccess(message string) string {
	return fmt.Sprintf("%s %s\n", Success(SymbolSuccess), Success(message))
}

func FormatError(message string) string {
	return fmt.Sprintf("%s %s\n", Error(SymbolError), Error(message))
}

func FormatWarning(message string) string {
	return fmt.Sprintf("%s %s\n", Warning(SymbolWarning), Warning(message))
}

func FormatInfo(message string) string {
	return fmt.Sprintf("%s %s\n", Info(SymbolInfo), Info(message))
}

func PrintSuccess(message string) {
	fmt.Fprint(Stdout, FormatSuccess(message))
}

// PrintError prints an error message with X symbol to stderr
func PrintError(message string) {
	fmt.Fprint(Stderr, FormatError(message))
}

// PrintWarning prints a warning message with ! symbol to stderr
func PrintWarning(message string) {
	fmt.Fprint(Stderr, FormatWarning(message))
}

func PrintInfo(message string) {
	fmt.Fprint(Stdout, FormatInfo(message))
}

// PrintField prints an aligned "label: value" line, as used by the check command.
func PrintField(label, value string) {
	fmt.Fprintf(Stdout, "  %-20s %s\n", Dim(label+":"), value)
}

// Plural returns the singular or plural form based on count
func Plural(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
