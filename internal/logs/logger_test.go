package logs_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ian-shakespeare/tapevm/internal/config"
	"github.com/ian-shakespeare/tapevm/internal/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("stderrOnly", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		level := new(slog.LevelVar)
		logger, closer, err := logs.New(stderr, config.Log{}, level)
		require.NoError(t, err)
		defer closer.Close()

		logger.Debug("hidden")
		logger.Info("shown", "pc", 3)
		assert.NotContains(t, stderr.String(), "hidden")
		assert.Contains(t, stderr.String(), "shown pc=3")

		level.Set(slog.LevelDebug)
		logger.Debug("now visible")
		assert.Contains(t, stderr.String(), "now visible")
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "run.log")
		stderr := &bytes.Buffer{}
		logger, closer, err := logs.New(stderr, config.Log{File: path}, new(slog.LevelVar))
		require.NoError(t, err)

		logger.Error("failed", "pc", 7)
		require.NoError(t, closer.Close())

		assert.Contains(t, stderr.String(), "failed")

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(content), &record))
		assert.Equal(t, "failed", record["msg"])
		assert.Equal(t, float64(7), record["pc"])
	})

	t.Run("badFile", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "run.log")
		_, _, err := logs.New(&bytes.Buffer{}, config.Log{File: path}, new(slog.LevelVar))
		assert.Error(t, err)
	})
}
