package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"streamchart/internal/aggregate"
	"streamchart/internal/chart"
	"streamchart/internal/config"
	"streamchart/internal/parser"
	"streamchart/internal/reader"
	"streamchart/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to configuration file (YAML)")
		logPath    = flag.String("log", "", "path to the input log file")
		outPath    = flag.String("out", "", "path for the output chart image")
		format     = flag.String("format", "", "log line format (access, plain or jsonl)")
		interval   = flag.Int("interval", 0, "bucket width in minutes")
		topN       = flag.Int("top", 0, "how many IPs and paths to list in the report")
		quiet      = flag.Bool("quiet", false, "suppress the terminal report")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *logPath, *outPath, *format, *interval, *topN, *verbose)

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if cfg.LogFile == "" {
		fmt.Fprintln(os.Stderr, "no input log file given (use -log or log_file in the config)")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg, logger, *quiet); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override values from the config file.
func applyFlags(cfg *config.Config, logPath, outPath, format string, interval, topN int, verbose bool) {
	if logPath == "" && flag.NArg() > 0 {
		logPath = flag.Arg(0)
	}
	if logPath != "" {
		cfg.LogFile = logPath
	}
	if outPath != "" {
		cfg.OutputFile = outPath
	}
	if format != "" {
		cfg.Format = format
	}
	if interval > 0 {
		cfg.IntervalMinutes = interval
	}
	if topN > 0 {
		cfg.TopN = topN
	}
	if verbose {
		cfg.Verbose = true
	}
}

// run executes the pipeline: read -> parse -> aggregate -> render -> report.
func run(cfg config.Config, logger *slog.Logger, quiet bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	scanner, err := reader.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	defer scanner.Close()

	p, err := parser.New(cfg.Format)
	if err != nil {
		return err
	}

	agg := aggregate.New(cfg.Interval(), cfg.BotKeywords, cfg.TopN)
	for scanner.Scan() {
		rec, ok := p.ParseLine(scanner.Line())
		if !ok {
			continue
		}
		agg.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	stats := p.Stats()
	logger.Debug("finished scanning",
		"file", cfg.LogFile,
		"lines", stats.LinesScanned,
		"parsed", stats.Parsed,
		"malformed", stats.Malformed)
	if stats.Malformed > 0 {
		logger.Info("skipped malformed lines", "count", stats.Malformed)
	}

	series, err := agg.Series()
	if err != nil {
		return err
	}

	renderer := chart.New(cfg.Interval())
	if err := renderer.Render(series, cfg.OutputFile); err != nil {
		return err
	}
	logger.Info("chart written", "path", cfg.OutputFile, "buckets", len(series))

	if !quiet {
		printer := report.New(os.Stdout)
		printer.Print(agg.Report(), stats)
		printer.PrintChartNotice(cfg.OutputFile, series)
	}
	return nil
}
