package autostart

import (
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandLine(t *testing.T) {
	assert.Equal(t, `C:\mmaccel.exe run`, commandLine(`C:\mmaccel.exe`, "run"))
	assert.Equal(t, `"C:\Program Files\MMAccel\mmaccel.exe" run --dir "D:\My Config"`,
		commandLine(`C:\Program Files\MMAccel\mmaccel.exe`, "run", "--dir", `D:\My Config`))
	assert.Equal(t, `mmaccel`, commandLine("mmaccel"))
}

func TestCommand(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	cmd, err := Command("run", "--dir", `D:\My Config`)
	require.NoError(t, err)
	assert.Equal(t, commandLine(exe, "run", "--dir", `D:\My Config`), cmd)
	assert.Contains(t, cmd, `"D:\My Config"`)
}

func TestUnsupportedPlatform(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("touches the registry")
	}
	assert.False(t, IsEnabled())
	_, ok := Registered()
	assert.False(t, ok)
	assert.ErrorIs(t, Enable("run"), ErrUnsupported)
	assert.NoError(t, Disable())
}
