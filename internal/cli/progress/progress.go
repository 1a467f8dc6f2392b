package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

const barWidth = 24

// LoadTracker shows the progress of one chunked file load. On a terminal it redraws a
// single bar line; otherwise it prints a timestamped line every ten percent.
type LoadTracker struct {
	mu          sync.Mutex
	out         io.Writer
	name        string
	total       int64
	bytesRead   int64
	startTime   time.Time
	isTTY       bool
	useColor    bool
	caps        terminalCapabilities
	lastDecile  int
	finished    bool
	now         func() time.Time
	spinnerStep int
}

var spinnerFrames = []string{"✦", "✸", "✹", "❋", "✹", "✸"}

// NewLoadTracker creates a tracker that draws on out. Colors follow NO_COLOR.
func NewLoadTracker(out io.Writer, isTTY bool, name string, total int64) *LoadTracker {
	_, noColor := os.LookupEnv("NO_COLOR")
	caps := detectCapabilities(out)
	if isTTY && !caps.supportsANSI {
		caps.supportsANSI = true
	}
	return &LoadTracker{
		out:        out,
		name:       name,
		total:      total,
		startTime:  time.Now(),
		isTTY:      isTTY,
		useColor:   isTTY && !noColor,
		caps:       caps,
		lastDecile: -1,
		now:        time.Now,
	}
}

// Start prints the initial state.
func (t *LoadTracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.startTime = t.now()
	t.render()
}

// Update records the bytes read so far. Calls with a smaller value than before are ignored.
func (t *LoadTracker) Update(bytesRead int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished || bytesRead < t.bytesRead {
		return
	}
	t.bytesRead = bytesRead
	t.spinnerStep++
	t.render()
}

// Fraction returns the share of the file read so far.
func (t *LoadTracker) Fraction() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fraction()
}

// Finish ends the tracker. A nil err reports success; cancelled loads pass the
// cancellation error and are shown as such.
func (t *LoadTracker) Finish(err error, cancelled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.finished {
		return
	}
	t.finished = true

	elapsed := formatDuration(t.now().Sub(t.startTime))
	if t.isTTY {
		fmt.Fprint(t.out, clearLine(t.caps))
	}
	ts := ""
	if !t.isTTY {
		ts = "[" + t.now().Format("15:04:05") + "] "
	}

	switch {
	case cancelled:
		fmt.Fprintf(t.out, "%s%s %s cancelled at %s\n", ts, t.paint("\033[33m", "!"), t.name, humanize.IBytes(uint64(t.bytesRead)))
	case err != nil:
		fmt.Fprintf(t.out, "%s%s %s FAILED (%s)\n", ts, t.paint("\033[31m", "x"), t.name, elapsed)
	default:
		fmt.Fprintf(t.out, "%s%s %s loaded, %s (%s)\n", ts, t.paint("\033[32m", "+"), t.name, humanize.IBytes(uint64(t.total)), elapsed)
	}
}

func (t *LoadTracker) fraction() float64 {
	if t.total <= 0 {
		return 1
	}
	return float64(t.bytesRead) / float64(t.total)
}

func (t *LoadTracker) render() {
	fraction := t.fraction()
	sizes := fmt.Sprintf("%s / %s", humanize.IBytes(uint64(t.bytesRead)), humanize.IBytes(uint64(t.total)))

	if !t.isTTY {
		decile := int(fraction * 10)
		if decile == t.lastDecile {
			return
		}
		t.lastDecile = decile
		fmt.Fprintf(t.out, "[%s] Loading %s %3d%% (%s)\n", t.now().Format("15:04:05"), t.name, decile*10, sizes)
		return
	}

	spinner := spinnerFrames[t.spinnerStep%len(spinnerFrames)]
	line := fmt.Sprintf("  %s %s  %s %3.0f%%  %s",
		spinner,
		t.name,
		renderBar(fraction, barWidth),
		fraction*100,
		t.paint("\033[2m", sizes),
	)
	fmt.Fprint(t.out, clearLine(t.caps)+truncateToWidth(line, t.caps.terminalWidth))
}

func (t *LoadTracker) paint(code, text string) string {
	if !t.useColor {
		return text
	}
	return code + text + "\033[0m"
}

// FormatDuration formats a duration as "4s" or "1m 05s".
func FormatDuration(d time.Duration) string {
	return formatDuration(d)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second

	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
