package applescript

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/platform/errors"
)

// fakeOsascript writes a shell script standing in for osascript.
func fakeOsascript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "osascript")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestSource(t *testing.T) {
	for _, name := range []string{"find", "brief", "detail", "update", "add", "delete"} {
		t.Run(name, func(t *testing.T) {
			src, err := Source(name)
			require.NoError(t, err)
			assert.Contains(t, src, "const app = Application('Contacts');", "prelude included")
			assert.Contains(t, src, "function run(argv)")
		})
	}

	_, err := Source("format-disk")
	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestOsascript_Run(t *testing.T) {
	// $1..$4 are "-l JavaScript -e <source>", the script arguments follow
	path := fakeOsascript(t, `shift 4; echo "$@"`)
	o := NewOsascript(path, time.Second, nil)

	out, err := o.Run(context.Background(), "find", "?", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "? Bob", strings.TrimSpace(string(out)))
}

func TestOsascript_PassesLanguageAndSource(t *testing.T) {
	path := fakeOsascript(t, `echo "$1 $2 $3"; case "$4" in *"function run(argv)"*) echo ok;; esac`)
	o := NewOsascript(path, time.Second, nil)

	out, err := o.Run(context.Background(), "detail", "A")
	require.NoError(t, err)
	assert.Equal(t, "-l JavaScript -e\nok\n", string(out))
}

func TestOsascript_ScriptError(t *testing.T) {
	path := fakeOsascript(t, `echo "execution error: Not authorized (-1743)" >&2; exit 3`)
	o := NewOsascript(path, time.Second, nil)

	_, err := o.Run(context.Background(), "find")
	require.Error(t, err)

	var scriptErr *errors.ScriptError
	require.True(t, errors.As(err, &scriptErr))
	assert.Equal(t, "find", scriptErr.Script)
	assert.Equal(t, 3, scriptErr.ExitCode)
	assert.Contains(t, scriptErr.Stderr, "Not authorized")
	assert.True(t, errors.IsScriptFailed(err))
}

func TestOsascript_Timeout(t *testing.T) {
	path := fakeOsascript(t, `exec sleep 5`)
	o := NewOsascript(path, 50*time.Millisecond, nil)

	_, err := o.Run(context.Background(), "find")
	assert.ErrorIs(t, err, errors.ErrTimeout)
}

func TestOsascript_MissingBinary(t *testing.T) {
	o := NewOsascript(filepath.Join(t.TempDir(), "nope"), time.Second, nil)

	_, err := o.Run(context.Background(), "find")
	require.Error(t, err)
	assert.False(t, errors.IsScriptFailed(err))
}
