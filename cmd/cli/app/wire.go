//go:build wireinject
// +build wireinject

package app

import (
	"sqe/internal/adapters/access"
	"sqe/internal/adapters/command_runner"
	"sqe/internal/adapters/console"
	"sqe/internal/adapters/filesystem"
	"sqe/internal/adapters/terminal"
	"sqe/internal/adapters/watcher"
	"sqe/internal/core"
	"sqe/internal/core/handler"
	"sqe/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	command_runner.ProvideOsCommandRunner,
	wire.Bind(new(ports.CommandRunner), new(*command_runner.OsCommandRunner)),
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
	access.ProvideAccessProbe,
	wire.Bind(new(ports.AccessProbe), new(*access.Probe)),
	terminal.ProvideTerminalInput,
	wire.Bind(new(ports.TerminalInput), new(*terminal.TerminalInput)),
	console.ProvideStdioConsole,
	wire.Bind(new(ports.Console), new(*console.StdioConsole)),
	watcher.ProvideFsnotifyWatcher,
	wire.Bind(new(ports.FileWatcher), new(*watcher.FsnotifyWatcher)),
)

// CoreSet provides the config and the file access services
var CoreSet = wire.NewSet(
	core.ProvideFileSystemConfigRepository,
	wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	core.ProvideLoadLimits,
	core.ProvideElevationSettings,
	core.ProvidePermissionClassifier,
	core.ProvidePrivilegeRelauncher,
	core.ProvideTextDecoder,
	core.ProvideChunkedFileLoader,
	core.ProvideSaveCoordinator,
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectConfigRepo(path core.ConfigPath) (core.ConfigRepository, error) {
	wire.Build(
		filesystem.ProvideOsFileSystem,
		wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
		core.ProvideFileSystemConfigRepository,
		wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
	)
	return &core.FileSystemConfigRepository{}, nil
}

func InjectOpenCommandHandler(path core.ConfigPath) (handler.OpenCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideEditLoop,
		handler.ProvideOpenCommandHandler,
	)
	return handler.OpenCommandHandler{}, nil
}

func InjectCheckCommandHandler(path core.ConfigPath) (handler.CheckCommandHandler, error) {
	wire.Build(
		filesystem.ProvideOsFileSystem,
		wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
		access.ProvideAccessProbe,
		wire.Bind(new(ports.AccessProbe), new(*access.Probe)),
		CoreSet,
		handler.ProvideCheckCommandHandler,
	)
	return handler.CheckCommandHandler{}, nil
}

func InjectInitializeCommandHandler(path core.ConfigPath) (handler.InitializeCommandHandler, error) {
	wire.Build(
		filesystem.ProvideOsFileSystem,
		wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
		core.ProvideFileSystemConfigRepository,
		wire.Bind(new(core.ConfigRepository), new(*core.FileSystemConfigRepository)),
		handler.ProvideInitializeCommandHandler,
	)
	return handler.InitializeCommandHandler{}, nil
}
