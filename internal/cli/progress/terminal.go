package progress

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type terminalCapabilities struct {
	supportsANSI  bool
	terminalWidth int
}

// detectCapabilities inspects out. Anything that is not a terminal gets a plain
// 80-column profile.
func detectCapabilities(out io.Writer) terminalCapabilities {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return terminalCapabilities{supportsANSI: false, terminalWidth: 80}
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return terminalCapabilities{
		supportsANSI:  initTerminal(f),
		terminalWidth: width,
	}
}

// clearLine returns the escape sequence to clear the current line
func clearLine(caps terminalCapabilities) string {
	if caps.supportsANSI {
		return "\033[2K\r"
	}
	return "\r" + strings.Repeat(" ", caps.terminalWidth) + "\r"
}

// renderBar draws fraction as a fixed-width bar, e.g. "[#####-----]".
func renderBar(fraction float64, width int) string {
	if width < 1 {
		width = 1
	}
	fraction = max(0, min(1, fraction))
	filled := int(fraction * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// truncateToWidth cuts s to width visible characters. ANSI sequences take no space;
// a reset is appended when the cut happens after a style was opened.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	var result strings.Builder
	visibleLen := 0
	inEscape := false
	truncated := false

	for _, r := range s {
		if r == '\033' {
			inEscape = true
			result.WriteRune(r)
			continue
		}
		if inEscape {
			result.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
			continue
		}
		if visibleLen >= width {
			truncated = true
			break
		}
		result.WriteRune(r)
		visibleLen++
	}

	if truncated && !inEscape {
		result.WriteString("\033[0m")
	}
	return result.String()
}
