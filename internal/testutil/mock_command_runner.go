package testutil

import (
	"sqe/internal/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.CommandRunner = (*MockCommandRunner)(nil)

// MockCommandRunner provides a testify mock for ports.CommandRunner
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) RunInteractive(name string, args ...string) error {
	callArgs := m.Called(name, args)
	return callArgs.Error(0)
}

func (m *MockCommandRunner) RunInteractiveInDir(dir, name string, args ...string) error {
	callArgs := m.Called(dir, name, args)
	return callArgs.Error(0)
}

func (m *MockCommandRunner) LookPath(name string) (string, error) {
	callArgs := m.Called(name)
	return callArgs.String(0), callArgs.Error(1)
}

func (m *MockCommandRunner) Executable() (string, error) {
	callArgs := m.Called()
	return callArgs.String(0), callArgs.Error(1)
}
