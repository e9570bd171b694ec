package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	Setup("warn", &buf)

	Log.Info("hidden")
	Log.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestSetup_UnknownLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	Setup("chatty", &buf)
	Log.Info("visible")
	Log.Debug("invisible")

	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "invisible")
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	_, err = w.Write([]byte("dropped"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "app.log")
	w, err = OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.FileExists(t, path)
}
