package aggregate

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"streamchart/internal/models"
)

// Properties of the aggregator, for arbitrary record sets:
//   - the sum of all bucket counts equals the number of records added
//   - the series is strictly ascending by start with no duplicates and no gaps
//   - aggregating the same records twice yields identical series data

func buildSeries(t *testing.T, offsets []int64) (models.TimeSeries, error) {
	t.Helper()
	agg := New(time.Minute, nil, 10)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, off := range offsets {
		agg.Add(models.LogRecord{Timestamp: base.Add(time.Duration(off) * time.Second)})
	}
	return agg.Series()
}

func genOffsets() gopter.Gen {
	// Offsets within a single day, in seconds, unordered and with duplicates.
	return gen.SliceOf(gen.Int64Range(0, 24*3600-1))
}

func TestPropertyCountConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("sum of bucket counts equals records added", prop.ForAll(
		func(offsets []int64) bool {
			series, err := buildSeries(t, offsets)
			if len(offsets) == 0 {
				return errors.Is(err, models.ErrNoValidRecords)
			}
			if err != nil {
				return false
			}
			return series.Total() == len(offsets)
		},
		genOffsets(),
	))

	properties.TestingRun(t)
}

func TestPropertySeriesOrderedAndGapFree(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("series is strictly ascending with no gaps", prop.ForAll(
		func(offsets []int64) bool {
			series, err := buildSeries(t, offsets)
			if err != nil {
				return len(offsets) == 0
			}
			for i := 1; i < len(series); i++ {
				if !series[i].Start.Equal(series[i-1].Start.Add(time.Minute)) {
					return false
				}
			}
			return true
		},
		genOffsets(),
	))

	properties.Property("counts are never negative", prop.ForAll(
		func(offsets []int64) bool {
			series, err := buildSeries(t, offsets)
			if err != nil {
				return len(offsets) == 0
			}
			for _, b := range series {
				if b.Count < 0 {
					return false
				}
			}
			return true
		},
		genOffsets(),
	))

	properties.TestingRun(t)
}

func TestPropertyIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("same input produces identical series data", prop.ForAll(
		func(offsets []int64) bool {
			first, err1 := buildSeries(t, offsets)
			second, err2 := buildSeries(t, offsets)
			if err1 != nil || err2 != nil {
				return err1 == err2
			}
			return reflect.DeepEqual(first, second)
		},
		genOffsets(),
	))

	properties.TestingRun(t)
}
