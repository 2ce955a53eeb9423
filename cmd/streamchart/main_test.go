package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"streamchart/internal/config"
	"streamchart/internal/models"
)

func testConfig(t *testing.T, lines string) config.Config {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "server_logs.txt")
	require.NoError(t, os.WriteFile(logPath, []byte(lines), 0o644))

	cfg := config.DefaultConfig()
	cfg.LogFile = logPath
	cfg.OutputFile = filepath.Join(dir, "requests_per_minute.png")
	cfg.Format = config.FormatPlain
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunProducesChart(t *testing.T) {
	cfg := testConfig(t, "2024-01-01T00:00:05 play\n2024-01-01T00:00:40 play\n2024-01-01T00:01:10 play\n")

	require.NoError(t, run(cfg, discardLogger(), true))
	require.FileExists(t, cfg.OutputFile)
}

func TestRunEmptyInputFails(t *testing.T) {
	cfg := testConfig(t, "")

	err := run(cfg, discardLogger(), true)
	require.ErrorIs(t, err, models.ErrNoValidRecords)
	require.NoFileExists(t, cfg.OutputFile)
}

func TestRunToleratesMalformedLines(t *testing.T) {
	cfg := testConfig(t, "2024-01-01T00:00:05 play\nnot a log line\n2024-01-01T00:00:40 play\n2024-01-01T00:01:10 play\n")

	require.NoError(t, run(cfg, discardLogger(), true))
	require.FileExists(t, cfg.OutputFile)
}

func TestRunMissingInputFails(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "nope.log")
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.png")

	err := run(cfg, discardLogger(), true)
	require.ErrorIs(t, err, models.ErrInputNotFound)
	require.NoFileExists(t, cfg.OutputFile)
}
