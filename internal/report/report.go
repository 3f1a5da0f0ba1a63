// Package report folds request candidates into per-(method, URL) records.
package report

import (
	"sort"

	"github.com/cyra/proxylog-report/internal/calendar"
	"github.com/cyra/proxylog-report/internal/parser"
)

// Record is one aggregated request observation.
type Record struct {
	LastSeen        int64         `json:"last_seen"`
	LastSeenDisplay string        `json:"last_seen_display"`
	Method          parser.Method `json:"method"`
	URL             string        `json:"url"`
	URLDisplay      string        `json:"url_display"`
	Count           int           `json:"count"`
}

type key struct {
	method parser.Method
	url    string
}

// Set holds the records of a single parse run. It is not safe for
// concurrent use.
type Set struct {
	byKey map[key]*Record
	order []*Record
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{byKey: make(map[key]*Record)}
}

// Merge folds c into the set. A repeated (method, URL) bumps the count and
// moves the last-seen time forward when c is newer.
func (s *Set) Merge(c parser.Candidate) {
	k := key{method: c.Method, url: c.URL}
	if r, ok := s.byKey[k]; ok {
		r.Count++
		if c.Epoch > r.LastSeen {
			r.LastSeen = c.Epoch
			r.LastSeenDisplay = calendar.FormatEpoch(c.Epoch)
		}
		return
	}

	display := c.URLDisplay
	if display == "" {
		display = parser.ShortenURL(c.URL)
	}
	r := &Record{
		LastSeen:        c.Epoch,
		LastSeenDisplay: calendar.FormatEpoch(c.Epoch),
		Method:          c.Method,
		URL:             c.URL,
		URLDisplay:      display,
		Count:           1,
	}
	s.byKey[k] = r
	s.order = append(s.order, r)
}

// Len returns the number of distinct records.
func (s *Set) Len() int {
	return len(s.order)
}

// Sorted returns copies of the records, most recently seen first. Records
// with the same last-seen time keep the order they were first merged in.
func (s *Set) Sorted() []Record {
	out := make([]Record, len(s.order))
	for i, r := range s.order {
		out[i] = *r
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastSeen > out[j].LastSeen
	})
	return out
}
