package handler

import (
	"bytes"
	"errors"
	"testing"

	"sqe/internal/cli/output"
	"sqe/internal/core/domain"
	"sqe/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := output.Stdout, output.Stderr
	output.Stdout, output.Stderr = stdout, stderr
	t.Cleanup(func() { output.Stdout, output.Stderr = oldOut, oldErr })
	return stdout, stderr
}

func TestInitializeCommandHandler_HandleReturnsErrorIfConfigExists(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("ConfigExists").Return(true, nil)
	configRepository.On("ConfigPath").Return("~/.sqe-config.yaml")
	sut := ProvideInitializeCommandHandler(configRepository)

	err := sut.Handle()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	configRepository.AssertNotCalled(t, "SaveConfig", mock.Anything)
}

func TestInitializeCommandHandler_HandleWritesDefaultConfigIfNoConfigExists(t *testing.T) {
	stdout, _ := captureOutput(t)
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("ConfigExists").Return(false, nil)
	configRepository.On("ConfigPath").Return("/home/user/.sqe-config.yaml")
	expected := domain.CreateDefaultConfig()
	configRepository.On("SaveConfig", &expected).Return(nil)
	sut := ProvideInitializeCommandHandler(configRepository)

	err := sut.Handle()

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "/home/user/.sqe-config.yaml")
	configRepository.AssertExpectations(t)
}

func TestInitializeCommandHandler_HandlePropagatesSaveFailure(t *testing.T) {
	configRepository := new(testutil.MockConfigRepository)
	configRepository.On("ConfigExists").Return(false, nil)
	configRepository.On("SaveConfig", mock.Anything).Return(errors.New("disk full"))
	sut := ProvideInitializeCommandHandler(configRepository)

	err := sut.Handle()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
