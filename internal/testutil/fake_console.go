package testutil

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"sqe/internal/ports"
)

var _ ports.Console = (*FakeConsole)(nil)

// FakeConsole replays scripted input lines and records everything printed.
type FakeConsole struct {
	mu      sync.Mutex
	lines   []string
	output  strings.Builder
	release chan struct{}
}

func NewFakeConsole(lines ...string) *FakeConsole {
	return &FakeConsole{lines: lines}
}

// BlockWhenEmpty makes ReadLine wait for Release instead of returning io.EOF once the
// scripted lines are used up, like a terminal nobody is typing into.
func (c *FakeConsole) BlockWhenEmpty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release = make(chan struct{})
}

func (c *FakeConsole) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.release != nil {
		close(c.release)
		c.release = nil
	}
}

func (c *FakeConsole) ReadLine() (string, error) {
	c.mu.Lock()
	if len(c.lines) == 0 {
		release := c.release
		c.mu.Unlock()
		if release != nil {
			<-release
		}
		return "", io.EOF
	}
	line := c.lines[0]
	c.lines = c.lines[1:]
	c.mu.Unlock()
	return line, nil
}

func (c *FakeConsole) Printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(&c.output, format, args...)
}

func (c *FakeConsole) Writer() io.Writer {
	return c
}

func (c *FakeConsole) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.Write(p)
}

func (c *FakeConsole) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.String()
}
