package testutil

import (
	"os"

	"sqe/internal/ports"

	"github.com/stretchr/testify/mock"
)

var _ ports.AccessProbe = (*MockAccessProbe)(nil)

// MockAccessProbe provides a testify mock for ports.AccessProbe
type MockAccessProbe struct {
	mock.Mock
}

func (m *MockAccessProbe) CanRead(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockAccessProbe) CanWrite(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockAccessProbe) CanSearch(path string) bool {
	return m.Called(path).Bool(0)
}

func (m *MockAccessProbe) Owner(info os.FileInfo) (int, int, bool) {
	args := m.Called(info)
	return args.Int(0), args.Int(1), args.Bool(2)
}

func (m *MockAccessProbe) EffectiveUID() int {
	return m.Called().Int(0)
}

func (m *MockAccessProbe) IsElevated() bool {
	return m.Called().Bool(0)
}
