// Package logsource snapshots a proxy log directory into memory.
package logsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
)

// ErrSourceUnavailable is returned when the log directory or one of its
// files cannot be read, copied or decompressed.
var ErrSourceUnavailable = errors.New("log source unavailable")

// Source is the content of one log file, decompressed if it was gzipped.
type Source struct {
	Name       string
	Compressed bool
	Data       []byte
}

// Logger defines the logging interface needed while collecting sources.
type Logger interface {
	Infof(string, ...any)
	Warnf(string, ...any)
}

// Options selects which files are collected.
type Options struct {
	Dir     string // directory holding the logs
	Include string // doublestar pattern matched against base names; "" matches all
	TempDir string // parent of the per-run snapshot dir; "" = os.TempDir()
}

// Collect copies every matching regular file under opts.Dir into a fresh
// temporary directory, reads it back, and gunzips files ending in ".gz".
// Any file failing to copy, read or decompress aborts the whole collection.
// The temporary directory is removed before Collect returns.
func Collect(ctx context.Context, opts Options, logger Logger) ([]Source, error) {
	include := opts.Include
	if include == "" {
		include = "*"
	}
	if !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("logsource: invalid include pattern %q", include)
	}

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("logsource: read log dir %s: %w: %w", opts.Dir, ErrSourceUnavailable, err)
	}

	tmp, err := os.MkdirTemp(opts.TempDir, "proxylog-")
	if err != nil {
		return nil, fmt.Errorf("logsource: create temp dir: %w: %w", ErrSourceUnavailable, err)
	}
	defer os.RemoveAll(tmp)
	logger.Infof("temp directory created: %s", tmp)

	var sources []Source
	num := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(opts.Dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logger.Warnf("stat %s failed, ignored: %v", path, err)
			continue
		}
		if info.IsDir() {
			continue
		}
		if ok, _ := doublestar.Match(include, entry.Name()); !ok {
			continue
		}
		logger.Infof("got one log: %s", path)

		num++
		compressed := strings.HasSuffix(entry.Name(), ".gz")
		dst := filepath.Join(tmp, fmt.Sprintf("log%d", num))
		if compressed {
			dst += ".gz"
		}

		data, err := snapshot(path, dst, compressed)
		if err != nil {
			return nil, fmt.Errorf("logsource: %s: %w: %w", path, ErrSourceUnavailable, err)
		}
		sources = append(sources, Source{
			Name:       entry.Name(),
			Compressed: compressed,
			Data:       data,
		})
	}

	return sources, nil
}

func snapshot(src, dst string, compressed bool) ([]byte, error) {
	if err := copyFile(src, dst); err != nil {
		return nil, fmt.Errorf("copy: %w", err)
	}

	f, err := os.Open(dst)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed {
		return io.ReadAll(f)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer zr.Close()
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	return data, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
