package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"streamchart/internal/config"
	"streamchart/internal/models"
)

// accessPattern matches one access-log line:
//
//	IP CODE USER [02/01/2006:15:04:05] "METHOD PATH PROTO" STATUS SIZE "REFERRER" "USER-AGENT" DURATION
var accessPattern = regexp.MustCompile(
	`^(\S+) (\S+) (\S+) \[([^\]]*)\] "([^"]*)" (\d+) (\d+) "([^"]*)" "([^"]*)" (\d+)$`)

// Parser turns raw lines into log records for one declared format.
// Malformed lines are skipped and tallied, never fatal.
type Parser struct {
	format string
	stats  models.ParseStats
	json   fastjson.Parser
}

// New creates a parser for the given format.
func New(format string) (*Parser, error) {
	switch format {
	case config.FormatAccess, config.FormatPlain, config.FormatJSONL:
		return &Parser{format: format}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// ParseLine parses a single raw line. The second return is false when the
// line does not match the declared format; such lines are tallied as malformed.
func (p *Parser) ParseLine(line string) (models.LogRecord, bool) {
	p.stats.LinesScanned++

	var (
		rec models.LogRecord
		ok  bool
	)
	switch p.format {
	case config.FormatAccess:
		rec, ok = p.parseAccess(line)
	case config.FormatPlain:
		rec, ok = p.parsePlain(line)
	case config.FormatJSONL:
		rec, ok = p.parseJSON(line)
	}

	if !ok {
		p.stats.Malformed++
		return models.LogRecord{}, false
	}
	p.stats.Parsed++
	return rec, true
}

// Stats returns the tallies accumulated so far.
func (p *Parser) Stats() models.ParseStats {
	return p.stats
}

func (p *Parser) parseAccess(line string) (models.LogRecord, bool) {
	groups := accessPattern.FindStringSubmatch(strings.TrimSpace(line))
	if groups == nil {
		return models.LogRecord{}, false
	}

	stamp := groups[4]
	if stamp == "-" {
		return models.LogRecord{}, false
	}
	ts, err := time.Parse(accessTimeLayout, stamp)
	if err != nil {
		return models.LogRecord{}, false
	}

	status, err := strconv.Atoi(groups[6])
	if err != nil {
		return models.LogRecord{}, false
	}

	method, path := splitRequest(groups[5])
	return models.LogRecord{
		Timestamp: ts,
		IP:        groups[1],
		Method:    method,
		Path:      path,
		Status:    status,
		UserAgent: groups[9],
	}, true
}

// splitRequest breaks `"GET /api/episodes HTTP/1.1"` into method and path.
func splitRequest(request string) (method, path string) {
	parts := strings.Fields(request)
	if len(parts) > 0 {
		method = parts[0]
	}
	if len(parts) > 1 {
		path = parts[1]
	}
	return method, path
}

// parsePlain handles `<timestamp> [event...]` lines. The timestamp may span
// up to three whitespace-separated fields depending on its layout.
func (p *Parser) parsePlain(line string) (models.LogRecord, bool) {
	fields := strings.Fields(line)
	for take := 1; take <= 3 && take <= len(fields); take++ {
		ts, err := parseTimestamp(strings.Join(fields[:take], " "))
		if err != nil {
			continue
		}
		return models.LogRecord{
			Timestamp: ts,
			Event:     strings.Join(fields[take:], " "),
		}, true
	}
	return models.LogRecord{}, false
}

func (p *Parser) parseJSON(line string) (models.LogRecord, bool) {
	v, err := p.json.Parse(line)
	if err != nil {
		return models.LogRecord{}, false
	}

	tsValue := v.Get("ts")
	if tsValue == nil {
		tsValue = v.Get("timestamp")
	}
	if tsValue == nil {
		return models.LogRecord{}, false
	}

	var ts time.Time
	switch tsValue.Type() {
	case fastjson.TypeString:
		raw, _ := tsValue.StringBytes()
		parsed, err := parseTimestamp(string(raw))
		if err != nil {
			return models.LogRecord{}, false
		}
		ts = parsed
	case fastjson.TypeNumber:
		// Numeric timestamps are unix seconds, fractional part allowed.
		secs := tsValue.GetFloat64()
		ts = time.Unix(int64(secs), int64((secs-float64(int64(secs)))*1e9)).UTC()
	default:
		return models.LogRecord{}, false
	}

	return models.LogRecord{
		Timestamp: ts,
		Event:     string(v.GetStringBytes("event")),
		IP:        string(v.GetStringBytes("ip")),
		Method:    string(v.GetStringBytes("method")),
		Path:      string(v.GetStringBytes("path")),
		Status:    v.GetInt("status"),
		UserAgent: string(v.GetStringBytes("user_agent")),
	}, true
}
