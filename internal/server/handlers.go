package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cyra/proxylog-report/internal/logging"
	"github.com/cyra/proxylog-report/internal/pipeline"
	"github.com/cyra/proxylog-report/internal/report"
)

// ParseFailedBody is the page served when a report run fails.
const ParseFailedBody = "Parsing tinyproxy log failed"

// Reporter produces one full report per call.
type Reporter interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

type Handlers struct {
	reporter Reporter
	logger   *logging.Logger
}

func NewHandlers(reporter Reporter, logger *logging.Logger) *Handlers {
	return &Handlers{reporter: reporter, logger: logger}
}

func (h *Handlers) Index(c *gin.Context) {
	records, ok := h.run(c)
	if !ok {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(ParseFailedBody))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"Records": records})
}

func (h *Handlers) Records(c *gin.Context) {
	records, ok := h.run(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": ParseFailedBody})
		return
	}
	if records == nil {
		records = []report.Record{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handlers) run(c *gin.Context) ([]report.Record, bool) {
	logger := h.logger.With("run_id", uuid.NewString())
	logger.Info("report requested, parsing tinyproxy logs")

	res, err := h.reporter.Run(c.Request.Context())
	if err != nil {
		logger.Errorf("parsing tinyproxy log failed: %v", err)
		return nil, false
	}
	for _, skipped := range res.Skipped {
		logger.Warnf("line ignored: %v", skipped)
	}
	return res.Records, true
}
