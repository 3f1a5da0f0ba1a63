package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/cyra/proxylog-report/internal/calendar"
	"github.com/cyra/proxylog-report/internal/config"
	"github.com/cyra/proxylog-report/internal/logsource"
	"github.com/cyra/proxylog-report/internal/parser"
	"github.com/cyra/proxylog-report/internal/report"
)

// LineError records a candidate or line that was skipped.
type LineError struct {
	Source string
	Line   int
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one parse run.
type Result struct {
	Records []report.Record
	Sources int
	Lines   int
	Skipped []*LineError
}

// Parse runs p over every line of every source and returns the aggregated
// records, most recently seen first. Malformed lines never fail the run;
// they are reported in Result.Skipped.
func Parse(sources []logsource.Source, p parser.Parser) *Result {
	set := report.NewSet()
	res := &Result{Sources: len(sources)}

	for _, src := range sources {
		for i, raw := range strings.Split(decode(src.Data), "\n") {
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			res.Lines++

			candidates, err := p.Parse(line)
			if err != nil {
				res.Skipped = append(res.Skipped, &LineError{Source: src.Name, Line: i + 1, Err: err})
			}
			for _, c := range candidates {
				set.Merge(c)
			}
		}
	}

	res.Records = set.Sorted()
	return res
}

// decode converts data to UTF-8, replacing invalid sequences with U+FFFD.
func decode(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return string(out)
}

// Logger defines the logging interface needed by the Runner.
type Logger interface {
	Infof(string, ...any)
	Warnf(string, ...any)
}

// Runner performs a complete report run against the current configuration.
type Runner struct {
	cfgStore *config.Store
	logger   Logger
	now      func() int64
}

// NewRunner creates a Runner reading its settings from cfgStore on every run.
func NewRunner(cfgStore *config.Store, logger Logger) *Runner {
	return &Runner{
		cfgStore: cfgStore,
		logger:   logger,
		now:      func() int64 { return time.Now().Unix() },
	}
}

// SetClock overrides the wall clock used to pick the log year.
func (r *Runner) SetClock(now func() int64) {
	r.now = now
}

// Run collects the configured logs and parses them. A source that cannot
// be read aborts the run with an error wrapping logsource.ErrSourceUnavailable.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.cfgStore.Current()

	year := calendar.EpochYear(r.now())
	p, err := parser.New(cfg.Log.Format, year)
	if err != nil {
		return nil, err
	}

	sources, err := logsource.Collect(ctx, logsource.Options{
		Dir:     cfg.Log.Dir,
		Include: cfg.Log.Include,
		TempDir: cfg.Log.TempDir,
	}, r.logger)
	if err != nil {
		return nil, err
	}

	res := Parse(sources, p)
	r.logger.Infof("parsed %d lines from %d sources: %d records, %d skipped", res.Lines, res.Sources, len(res.Records), len(res.Skipped))
	return res, nil
}
