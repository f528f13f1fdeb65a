package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchreview/internal/platform/config"
	"benchreview/pkg/platform/sentinel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRejectsIncompleteDataset(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Server{DatasetDir: dir, RecordFile: config.DefaultRecordFile, Host: "127.0.0.1", Port: 5000}

	err := run(context.Background(), cfg, discardLogger())
	require.Error(t, err, "missing pdfs directory")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	require.NoError(t, os.Mkdir(filepath.Join(dir, config.PDFDir), 0o755))
	err = run(context.Background(), cfg, discardLogger())
	require.Error(t, err, "missing record file")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	cfg.DatasetDir = filepath.Join(dir, "nope")
	err = run(context.Background(), cfg, discardLogger())
	require.Error(t, err, "missing dataset directory")
}

func TestRunServesUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, config.PDFDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultRecordFile), []byte(`{"pdf":"a.pdf","id":1}`+"\n"), 0o644))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	cfg := config.Server{DatasetDir: dir, RecordFile: config.DefaultRecordFile, Host: "127.0.0.1", Port: port, Watch: true}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, discardLogger()) }()

	url := fmt.Sprintf("http://%s/api/session", cfg.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRootCmdRequiresDatasetDir(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "accepts 1 arg(s)")
}

func TestRootCmdFailsOnMissingDataset(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "--port", "5055", "--records", "tests.jsonl"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "dataset directory")
}
