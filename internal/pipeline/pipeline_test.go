package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cyra/proxylog-report/internal/calendar"
	"github.com/cyra/proxylog-report/internal/config"
	"github.com/cyra/proxylog-report/internal/logsource"
	"github.com/cyra/proxylog-report/internal/parser"
)

type nopLogger struct{}

func (nopLogger) Infof(string, ...any) {}
func (nopLogger) Warnf(string, ...any) {}

func mustParser(t *testing.T, year int) parser.Parser {
	t.Helper()
	p, err := parser.New("tinyproxy", year)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

const logA = `INFO      Jun 14 20:00:00 [1]: Initializing tinyproxy ...
CONNECT   Jun 14 20:25:00 [2]: Request (file descriptor 7): GET http://a.example/ HTTP/1.1

CONNECT   Jun 14 20:26:00 [2]: Request (file descriptor 7): GET http://a.example/ HTTP/1.1
CONNECT   Jun 14 20:10:00 [3]: Request (file descriptor 8): POST http://b.example/form HTTP/1.1
CONNECT   Foo 14 20:10:00 [3]: Request (file descriptor 8): GET http://bad.example/ HTTP/1.1
`

const logB = "CONNECT   Jun 13 08:00:00 [4]: Request (file descriptor 9): GET http://a.example/ HTTP/1.1\r\n" +
	"CONNECT   Jun 15 09:00:00 [5]: Request (file descriptor 9): GET http://c.example/\xff\xfe HTTP/1.1\r\n" +
	"GET\r\n"

func TestParseAggregatesAcrossSources(t *testing.T) {
	sources := []logsource.Source{
		{Name: "tinyproxy.log", Data: []byte(logA)},
		{Name: "tinyproxy.log.1.gz", Compressed: true, Data: []byte(logB)},
	}
	res := Parse(sources, mustParser(t, 2019))

	if len(res.Records) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(res.Records), res.Records)
	}

	// Jun 15 first, then Jun 14 20:26, then Jun 14 20:10.
	c, a, b := res.Records[0], res.Records[1], res.Records[2]
	if !strings.HasPrefix(c.URL, "http://c.example/") || !strings.Contains(c.URL, "\uFFFD") {
		t.Errorf("records[0] = %+v", c)
	}
	if a.URL != "http://a.example/" || a.Count != 3 || a.LastSeenDisplay != "Jun 14 20:26:00 2019" {
		t.Errorf("records[1] = %+v", a)
	}
	if b.URL != "http://b.example/form" || b.Method != parser.MethodPost || b.Count != 1 {
		t.Errorf("records[2] = %+v", b)
	}

	if res.Sources != 2 || res.Lines != 8 {
		t.Errorf("sources=%d lines=%d", res.Sources, res.Lines)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("skipped = %v", res.Skipped)
	}
	if !errors.Is(res.Skipped[0], calendar.ErrInvalidMonth) || res.Skipped[0].Line != 6 {
		t.Errorf("skipped[0] = %v", res.Skipped[0])
	}
	if res.Skipped[1].Source != "tinyproxy.log.1.gz" || !errors.Is(res.Skipped[1], calendar.ErrInvalidFormat) {
		t.Errorf("skipped[1] = %v", res.Skipped[1])
	}
}

func TestParseDualMethodLine(t *testing.T) {
	src := logsource.Source{Name: "x", Data: []byte(
		"CONNECT   Jun 14 20:25:00 [1]: GET http://a/ HTTP/1.1 POST http://b/ HTTP/1.1\n")}
	res := Parse([]logsource.Source{src}, mustParser(t, 2019))
	if len(res.Records) != 2 {
		t.Fatalf("records = %+v", res.Records)
	}
}

func TestParseEmpty(t *testing.T) {
	res := Parse(nil, mustParser(t, 2020))
	if len(res.Records) != 0 || res.Lines != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestRunnerRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tinyproxy.log"), []byte(logA), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Log.Dir = dir
	r := NewRunner(config.NewStore(cfg), nopLogger{})
	r.SetClock(func() int64 { return 1603974716 })

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %+v", res.Records)
	}
	if got := res.Records[0].LastSeenDisplay; got != "Jun 14 20:26:00 2020" {
		t.Errorf("year not taken from clock: %s", got)
	}
}

func TestRunnerMissingDir(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Dir = filepath.Join(t.TempDir(), "missing")
	r := NewRunner(config.NewStore(cfg), nopLogger{})
	if _, err := r.Run(context.Background()); !errors.Is(err, logsource.ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}
