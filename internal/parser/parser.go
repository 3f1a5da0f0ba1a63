package parser

import (
	"errors"
	"fmt"
)

// Method is the HTTP method of an extracted request.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Candidate is a single unaggregated request extracted from one log line.
type Candidate struct {
	Epoch      int64
	Method     Method
	URL        string
	URLDisplay string
}

// Parser extracts request candidates from one trimmed log line.
// A line may yield candidates together with an error describing the
// candidates that were skipped.
type Parser interface {
	Parse(line string) ([]Candidate, error)
}

var (
	// ErrUnknownParser is returned when an unsupported parser name is requested.
	ErrUnknownParser = fmt.Errorf("unknown parser")

	// ErrMalformedRequestLine is returned when a method keyword is not
	// followed by a space-terminated URL.
	ErrMalformedRequestLine = errors.New("malformed request line")
)

// New returns a parser implementation by name. year is substituted for the
// year the log lines do not carry.
func New(name string, year int) (Parser, error) {
	switch name {
	case "tinyproxy", "":
		return newTinyproxyParser(year), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownParser, name)
	}
}

const displayLimit = 100

// ShortenURL returns url unchanged when it has at most 100 characters,
// otherwise its first and last 50 characters joined by "...".
func ShortenURL(url string) string {
	r := []rune(url)
	if len(r) <= displayLimit {
		return url
	}
	half := displayLimit / 2
	return string(r[:half]) + "..." + string(r[len(r)-half:])
}
