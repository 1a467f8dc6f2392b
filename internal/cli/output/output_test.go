package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() { Stdout, Stderr = oldOut, oldErr })
	return stdout, stderr
}

func TestPrintHelpers_WriteToTheirStreams(t *testing.T) {
	stdout, stderr := captureOutput(t)

	PrintSuccess("saved")
	PrintInfo("loading")
	PrintWarning("read-only")
	PrintError("failed")

	assert.Equal(t, "+ saved\n* loading\n", stdout.String())
	assert.Equal(t, "! read-only\nx failed\n", stderr.String())
}

func TestPrintField(t *testing.T) {
	stdout, _ := captureOutput(t)

	PrintField("writable", "false")

	assert.Equal(t, "  writable:            false\n", stdout.String())
}

func TestColorsDisabledForNonTerminalWriter(t *testing.T) {
	captureOutput(t)
	require.NoError(t, os.Unsetenv("NO_COLOR"))

	assert.False(t, ColorsEnabled())
	assert.Equal(t, "text", Bold("text"))
}

func TestSizeAndPercent(t *testing.T) {
	assert.Equal(t, "10 MiB", Size(10<<20))
	assert.Equal(t, "0 B", Size(-1))
	assert.Equal(t, " 50%", Percent(0.5))
	assert.Equal(t, "100%", Percent(1))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "file", Plural(1, "file", "files"))
	assert.Equal(t, "files", Plural(2, "file", "files"))
}
