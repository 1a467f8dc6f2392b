package handler

import (
	"fmt"

	"sqe/internal/cli/output"
	"sqe/internal/core"
	"sqe/internal/core/domain"
)

type InitializeCommandHandler struct {
	configRepository core.ConfigRepository
}

func ProvideInitializeCommandHandler(
	configRepository core.ConfigRepository,
) InitializeCommandHandler {
	return InitializeCommandHandler{
		configRepository: configRepository,
	}
}

// Handle writes the default configuration. An existing file is never overwritten.
func (h *InitializeCommandHandler) Handle() error {
	configExists, err := h.configRepository.ConfigExists()
	if err != nil {
		return err
	}
	if configExists {
		return fmt.Errorf("config file %s already exists", h.configRepository.ConfigPath())
	}
	config := domain.CreateDefaultConfig()
	if err := h.configRepository.SaveConfig(&config); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	output.PrintSuccess(fmt.Sprintf("wrote default configuration to %s", h.configRepository.ConfigPath()))
	return nil
}
