package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchreview/pkg/platform/sentinel"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("REVIEW_HOST", "")
	t.Setenv("REVIEW_PORT", "")
	t.Setenv("REVIEW_RECORD_FILE", "")
	t.Setenv("REVIEW_DEBUG", "")

	cfg := FromEnv()
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.Equal(t, DefaultRecordFile, cfg.RecordFile)
	assert.False(t, cfg.Debug)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("REVIEW_HOST", "0.0.0.0")
	t.Setenv("REVIEW_PORT", "8081")
	t.Setenv("REVIEW_RECORD_FILE", "math_tests.jsonl")
	t.Setenv("REVIEW_DEBUG", "true")
	t.Setenv("REVIEW_WATCH", "true")

	cfg := FromEnv()
	assert.Equal(t, "0.0.0.0:8081", cfg.Addr())
	assert.Equal(t, "math_tests.jsonl", cfg.RecordFile)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Watch)
}

func TestValidate(t *testing.T) {
	newDataset := func(t *testing.T) Server {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, PDFDir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultRecordFile), nil, 0o644))
		return Server{DatasetDir: dir, RecordFile: DefaultRecordFile, Host: "127.0.0.1", Port: 5000}
	}

	t.Run("complete layout", func(t *testing.T) {
		require.NoError(t, newDataset(t).Validate())
	})

	t.Run("missing dataset directory", func(t *testing.T) {
		cfg := newDataset(t)
		cfg.DatasetDir = filepath.Join(cfg.DatasetDir, "absent")
		require.ErrorIs(t, cfg.Validate(), sentinel.ErrNotFound)
	})

	t.Run("missing pdfs directory", func(t *testing.T) {
		cfg := newDataset(t)
		require.NoError(t, os.Remove(cfg.PDFPath()))
		require.ErrorIs(t, cfg.Validate(), sentinel.ErrNotFound)
	})

	t.Run("missing record file", func(t *testing.T) {
		cfg := newDataset(t)
		require.NoError(t, os.Remove(cfg.RecordPath()))
		require.ErrorIs(t, cfg.Validate(), sentinel.ErrNotFound)
	})

	t.Run("record file must not escape the dataset", func(t *testing.T) {
		cfg := newDataset(t)
		cfg.RecordFile = "../elsewhere.jsonl"
		require.Error(t, cfg.Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := newDataset(t)
		cfg.Port = 0
		require.Error(t, cfg.Validate())
	})
}
