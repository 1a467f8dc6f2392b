package cmd

import (
	"testing"

	"sqe/internal/core"
	"sqe/internal/core/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExecutable = "/usr/local/bin/sqe"

func parseRootArgs(t *testing.T, argv []string) handler.OpenRequest {
	t.Helper()
	directory, sudo, elevated = "", false, false
	require.NoError(t, rootCmd.ParseFlags(argv))
	return openRequest(rootCmd.Flags().Args(), argv, "/home/user")
}

func TestRelaunchedArguments_ResolveToSameTarget(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"directory flag and filename", []string{"-d", "/etc", "hosts"}},
		{"sudo flag first", []string{"-s", "-d", "/etc", "hosts"}},
		{"long sudo flag last", []string{"/etc", "hosts", "--sudo"}},
		{"relative directory", []string{"-s", "notes", "todo.txt"}},
		{"absolute filename", []string{"-s", "/tmp", "/etc/hosts"}},
		{"no arguments", []string{"-s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := parseRootArgs(t, tt.argv)
			want, err := handler.ResolveTarget(original.Positional, original.Directory, original.WorkingDirectory)
			require.NoError(t, err)

			request := core.BuildRelaunchRequest("sudo", tt.argv, "/home/user", testExecutable)
			require.Equal(t, []string{"--", testExecutable}, request.Args[:2])
			childArgv := request.Args[2:]

			relaunched := parseRootArgs(t, childArgv)
			got, err := handler.ResolveTarget(relaunched.Positional, relaunched.Directory, request.Dir)

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.False(t, relaunched.Sudo)
			assert.True(t, elevated)
			assert.True(t, core.HasElevatedMarker(childArgv))
		})
	}
}

func TestRelaunchedArguments_NeverAddSecondMarker(t *testing.T) {
	first := core.BuildRelaunchRequest("sudo", []string{"-s", "-d", "/etc", "hosts"}, "/", testExecutable)

	second := core.BuildRelaunchRequest("sudo", first.Args[2:], "/", testExecutable)

	markers := 0
	for _, arg := range second.Args {
		if arg == core.ElevatedMarker {
			markers++
		}
	}
	assert.Equal(t, 1, markers)
	assert.Equal(t, first.Args, second.Args)
}

func TestRootCommand_RejectsTooManyArguments(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{"a", "b", "c"})

	assert.Error(t, err)
}

func TestRootCommand_ElevatedExampleOpensFileInDirectory(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "sqe -s /etc hosts ")

	request := parseRootArgs(t, []string{"-s", "/etc", "hosts"})
	target, err := handler.ResolveTarget(request.Positional, request.Directory, request.WorkingDirectory)

	require.NoError(t, err)
	assert.True(t, request.Sudo)
	assert.Equal(t, handler.Target{Directory: "/etc", File: "/etc/hosts"}, target)
}
