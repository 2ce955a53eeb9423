package aggregate

import (
	"math"
	"sort"
	"strings"

	"streamchart/internal/models"
)

// Report summarises everything accumulated so far. Orderings are
// deterministic: count descending, ties broken by key ascending.
func (a *Aggregator) Report() models.Report {
	rep := models.Report{
		TotalRequests: a.total,
		UniqueIPs:     len(a.ipCounts),
		TopIPs:        topEntries(a.ipCounts, a.topN),
		BotRequests:   a.botCount,
		Methods:       topEntries(a.methodCount, len(a.methodCount)),
		TopPaths:      topEntries(a.pathCounts, a.topN),
		StatusCodes:   topEntries(a.statusCount, len(a.statusCount)),
	}
	if a.total > 0 {
		rep.BotShare = round2(float64(a.botCount) / float64(a.total) * 100)
	}
	if series, err := a.Series(); err == nil {
		if peak, ok := series.Peak(); ok {
			rep.Peak = peak
		}
	}
	return rep
}

func topEntries(counts map[string]int, limit int) []models.CountEntry {
	if len(counts) == 0 {
		return nil
	}
	entries := make([]models.CountEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, models.CountEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if limit < len(entries) {
		entries = entries[:limit]
	}
	return entries
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// botMatcher flags user agents containing any of the configured keywords.
type botMatcher struct {
	keywords []string
}

func newBotMatcher(keywords []string) *botMatcher {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &botMatcher{keywords: lowered}
}

func (m *botMatcher) match(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	agent := strings.ToLower(userAgent)
	for _, kw := range m.keywords {
		if strings.Contains(agent, kw) {
			return true
		}
	}
	return false
}
