package ports

import "io"

// Console is the line-oriented terminal the edit loop talks to.
type Console interface {
	// ReadLine blocks until a full line is available. It returns io.EOF when input ends.
	ReadLine() (string, error)
	Printf(format string, args ...any)
	// Writer is the underlying output. It is an *os.File when output goes to a terminal.
	Writer() io.Writer
}
