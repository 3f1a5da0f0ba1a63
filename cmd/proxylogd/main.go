package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/cyra/proxylog-report/internal/calendar"
	"github.com/cyra/proxylog-report/internal/config"
	"github.com/cyra/proxylog-report/internal/logging"
	"github.com/cyra/proxylog-report/internal/logtail"
	"github.com/cyra/proxylog-report/internal/output"
	"github.com/cyra/proxylog-report/internal/parser"
	"github.com/cyra/proxylog-report/internal/pipeline"
	"github.com/cyra/proxylog-report/internal/server"
)

var (
	configPath  = flag.String("config", "", "Path to configuration file (defaults apply when empty)")
	once        = flag.Bool("once", false, "Print one report to stdout and exit")
	followPath  = flag.String("follow", "", "Follow a live log file and print each extracted request")
	showVersion = flag.Bool("version", false, "Print version and exit")
	version     = "dev" // Set via ldflags: -X main.version=v1.0.0
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("proxylogd version", version)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.JSON)
	logger.Infof("proxylogd starting (version=%s)", version)
	logger.Infof("log dir %s (format=%s include=%s)", cfg.Log.Dir, cfg.Log.Format, cfg.Log.Include)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := config.NewStore(cfg)
	runner := pipeline.NewRunner(store, logger)

	switch {
	case *once:
		if err := printReport(ctx, runner, logger); err != nil {
			logger.Errorf("parsing tinyproxy log failed: %v", err)
			os.Exit(1)
		}
		return
	case *followPath != "":
		if err := follow(ctx, *followPath, cfg.Log.Format, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("follow %s: %v", *followPath, err)
			os.Exit(1)
		}
		return
	}

	if *configPath != "" {
		stop, err := config.WatchFile(*configPath, store, logger, nil)
		if err != nil {
			logger.Errorf("config watcher disabled: %v", err)
		} else {
			defer stop()
		}
	}

	srv := server.New(cfg.Server, runner, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("listening on %s", srv.Addr())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("server failed: %v", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func printReport(ctx context.Context, runner *pipeline.Runner, logger *logging.Logger) error {
	runLogger := logger.With("run_id", uuid.NewString())
	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		runLogger.Warnf("line ignored: %v", skipped)
	}
	output.RenderTable(os.Stdout, res.Records)
	return nil
}

// follow prints every request candidate appended to path. Nothing is
// aggregated; each line is handled on its own.
func follow(ctx context.Context, path, format string, logger *logging.Logger) error {
	p, err := parser.New(format, calendar.EpochYear(time.Now().Unix()))
	if err != nil {
		return err
	}

	lines := make(chan string, 100)
	errCh := make(chan error, 1)
	go func() {
		errCh <- logtail.New(path, logger).Tail(ctx, lines)
		close(lines)
	}()

	for raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		candidates, err := p.Parse(line)
		if err != nil {
			logger.Warnf("line ignored: %v", err)
		}
		for _, c := range candidates {
			logger.Infof("%s %s %s", calendar.FormatEpoch(c.Epoch), c.Method, c.URLDisplay)
		}
	}
	return <-errCh
}
