package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"sqe/internal/ports"
)

var _ ports.Console = (*StdioConsole)(nil)

// StdioConsole reads commands line by line from stdin and writes to stdout.
type StdioConsole struct {
	reader *bufio.Reader
	writer io.Writer
}

func ProvideStdioConsole() *StdioConsole {
	return NewConsole(os.Stdin, os.Stdout)
}

func NewConsole(r io.Reader, w io.Writer) *StdioConsole {
	return &StdioConsole{reader: bufio.NewReader(r), writer: w}
}

func (c *StdioConsole) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *StdioConsole) Writer() io.Writer {
	return c.writer
}

func (c *StdioConsole) Printf(format string, args ...any) {
	fmt.Fprintf(c.writer, format, args...)
}
