package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Console: &buf})
	log.Info("hidden")
	log.Warn("shown", zap.String("quiz_id", "q1"))
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "q1")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "chatty", Console: &buf})
	log.Debug("debug")
	log.Info("info")
	assert.NotContains(t, buf.String(), "debug\t")
	assert.Contains(t, buf.String(), "info")
}

func TestNew_FileSinkWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.log")
	log := New(Options{File: path, Console: &bytes.Buffer{}})
	log.Info("submission scored", zap.Float64("score", 2.5))
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(raw))

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "submission scored", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, 2.5, entry["score"])
}
