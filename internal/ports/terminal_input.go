package ports

// TerminalInput provides information about the controlling terminal.
type TerminalInput interface {
	// IsTerminal returns true if stdin is connected to a terminal.
	IsTerminal() bool
}
