package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cyra/proxylog-report/internal/calendar"
)

// Tinyproxy log line example:
// CONNECT   Jun 14 20:25:00 [1234]: Request (file descriptor 7): GET http://example.com/ HTTP/1.1
// The line carries no year, so the parser is given one.

var keywords = []Method{MethodGet, MethodPost}

type tinyproxyParser struct {
	year string
}

func newTinyproxyParser(year int) *tinyproxyParser {
	return &tinyproxyParser{year: strconv.Itoa(year)}
}

func (p *tinyproxyParser) Parse(line string) ([]Candidate, error) {
	var found []Method
	var positions []int
	for _, m := range keywords {
		if pos := strings.Index(line, string(m)); pos >= 0 {
			found = append(found, m)
			positions = append(positions, pos)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}

	epoch, err := p.timestamp(line)
	if err != nil {
		return nil, fmt.Errorf("tinyproxy parser: parse time: %w", err)
	}

	var out []Candidate
	var errs []error
	for i, m := range found {
		url, err := requestURL(line, positions[i], m)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, Candidate{
			Epoch:      epoch,
			Method:     m,
			URL:        url,
			URLDisplay: ShortenURL(url),
		})
	}
	return out, errors.Join(errs...)
}

// timestamp reads the month, day and time tokens at positions 1..3.
func (p *tinyproxyParser) timestamp(line string) (int64, error) {
	var toks []string
	for _, s := range strings.Split(line, " ") {
		if strings.TrimSpace(s) != "" {
			toks = append(toks, s)
		}
	}
	if len(toks) < 4 {
		return 0, fmt.Errorf("line has %d fields, want at least 4: %w", len(toks), calendar.ErrInvalidFormat)
	}
	return calendar.ParseDatetime(strings.Join([]string{toks[1], toks[2], toks[3], p.year}, " "))
}

// requestURL returns the space-terminated text following the method
// keyword at pos and its separating space.
func requestURL(line string, pos int, m Method) (string, error) {
	start := pos + len(m) + 1
	if start > len(line) {
		return "", fmt.Errorf("tinyproxy parser: %s at end of line: %w", m, ErrMalformedRequestLine)
	}
	rest := line[start:]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		return "", fmt.Errorf("tinyproxy parser: no URL after %s in %q: %w", m, rest, ErrMalformedRequestLine)
	}
	return rest[:end], nil
}
