package aggregate

import (
	"sort"
	"strconv"
	"time"

	"streamchart/internal/models"
)

// Aggregator buckets log records into fixed-width time intervals and
// accumulates the traffic report as records stream through.
type Aggregator struct {
	interval time.Duration
	buckets  map[time.Time]int

	total       int
	ipCounts    map[string]int
	methodCount map[string]int
	pathCounts  map[string]int
	statusCount map[string]int
	botCount    int
	botMatcher  *botMatcher
	topN        int
}

// New creates an aggregator. Intervals below one minute are clamped to one
// minute, mirroring the configured minimum.
func New(interval time.Duration, botKeywords []string, topN int) *Aggregator {
	if interval < time.Minute {
		interval = time.Minute
	}
	if topN <= 0 {
		topN = 10
	}
	return &Aggregator{
		interval:    interval,
		buckets:     make(map[time.Time]int),
		ipCounts:    make(map[string]int),
		methodCount: make(map[string]int),
		pathCounts:  make(map[string]int),
		statusCount: make(map[string]int),
		botMatcher:  newBotMatcher(botKeywords),
		topN:        topN,
	}
}

// Add folds one record into the running counts. Every record maps to exactly
// one bucket: its timestamp truncated to the interval width.
func (a *Aggregator) Add(rec models.LogRecord) {
	key := rec.Timestamp.UTC().Truncate(a.interval)
	a.buckets[key]++

	a.total++
	if rec.IP != "" {
		a.ipCounts[rec.IP]++
	}
	if rec.Method != "" {
		a.methodCount[rec.Method]++
	}
	if rec.Path != "" {
		a.pathCounts[rec.Path]++
	}
	if rec.Status != 0 {
		a.statusCount[strconv.Itoa(rec.Status)]++
	}
	if a.botMatcher.match(rec.UserAgent) {
		a.botCount++
	}
}

// Series emits the ordered time series. Gaps between the first and last
// observed bucket are filled with zero-count buckets so quiet intervals are
// not silently dropped from the chart.
func (a *Aggregator) Series() (models.TimeSeries, error) {
	if len(a.buckets) == 0 {
		return nil, models.ErrNoValidRecords
	}

	starts := make([]time.Time, 0, len(a.buckets))
	for start := range a.buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	first, last := starts[0], starts[len(starts)-1]
	series := make(models.TimeSeries, 0, last.Sub(first)/a.interval+1)
	for cursor := first; !cursor.After(last); cursor = cursor.Add(a.interval) {
		series = append(series, models.Bucket{Start: cursor, Count: a.buckets[cursor]})
	}
	return series, nil
}

// Interval returns the configured bucket width.
func (a *Aggregator) Interval() time.Duration {
	return a.interval
}
