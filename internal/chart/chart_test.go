package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"streamchart/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func sampleSeries(n int) models.TimeSeries {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(models.TimeSeries, n)
	for i := range series {
		series[i] = models.Bucket{Start: base.Add(time.Duration(i) * time.Minute), Count: i + 1}
	}
	return series
}

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := New(time.Minute)

	require.NoError(t, r.Render(sampleSeries(5), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), len(pngMagic))
	require.Equal(t, pngMagic, data[:len(pngMagic)])
}

func TestRenderSingleBucket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := New(time.Minute)

	require.NoError(t, r.Render(sampleSeries(1), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRenderUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "chart.png")
	r := New(time.Minute)

	err := r.Render(sampleSeries(3), path)
	require.ErrorIs(t, err, models.ErrOutputUnwritable)
	require.NoFileExists(t, path)
}

func TestRenderEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	r := New(time.Minute)

	err := r.Render(nil, path)
	require.ErrorIs(t, err, models.ErrNoValidRecords)
	require.NoFileExists(t, path)
}
