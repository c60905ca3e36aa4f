// Package app provides the HTTP surface: the analyze endpoint, health
// endpoints, and the middleware stack around them.
package app

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/lukawang/emoscope-go/internal/analyze"
	apperrors "github.com/lukawang/emoscope-go/internal/errors"
	"github.com/lukawang/emoscope-go/internal/logger"
	"github.com/lukawang/emoscope-go/internal/metrics"
)

// MaxTextLength is the longest accepted input text, in characters.
const MaxTextLength = 1000

// Analyzer runs the analysis pipeline for one text.
type Analyzer interface {
	Analyze(ctx context.Context, text string, findSources bool) (*analyze.Report, error)
}

// AnalyzeRequest is the analyze endpoint request body. FindSources is a
// pointer so an absent field defaults to true rather than false.
type AnalyzeRequest struct {
	Text        string `json:"text"`
	FindSources *bool  `json:"find_sources"`
}

// Handler serves the analyze endpoint.
type Handler struct {
	analyzer Analyzer
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewHandler creates the analyze handler.
func NewHandler(analyzer Analyzer, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		analyzer: analyzer,
		log:      log.WithComponent("handler"),
		metrics:  m,
	}
}

// Analyze handles POST /analyze.
func (h *Handler) Analyze(c *gin.Context) {
	start := time.Now()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordAnalyze("invalid", time.Since(start).Seconds())
		h.metrics.RecordHTTPError("malformed_body")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body"})
		return
	}

	text, err := validateText(req.Text)
	if err != nil {
		h.metrics.RecordAnalyze("invalid", time.Since(start).Seconds())
		h.metrics.RecordHTTPError("invalid_input")
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid text input"})
		return
	}

	findSources := true
	if req.FindSources != nil {
		findSources = *req.FindSources
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), text, findSources)
	if err != nil {
		h.metrics.RecordAnalyze("error", time.Since(start).Seconds())
		h.metrics.RecordHTTPError("pipeline_failure")
		h.log.WithError(err).Error("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Analysis failed"})
		return
	}

	h.metrics.RecordAnalyze("success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, report)
}

// validateText trims the input and enforces the length bounds. Length is
// counted in characters, not bytes, so multibyte text gets the full budget.
func validateText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", apperrors.ErrTextTooLong
	}
	return text, nil
}
