// Package slog provides log/slog-based logging decorators for the
// extraction services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webextract"
)

// Ensure LoggingExtractService implements webextract.ExtractService.
var _ webextract.ExtractService = (*LoggingExtractService)(nil)

// LoggingExtractService wraps an ExtractService with per-page logging.
type LoggingExtractService struct {
	next   webextract.ExtractService
	logger *slog.Logger
}

// NewLoggingExtractService creates a new LoggingExtractService.
func NewLoggingExtractService(next webextract.ExtractService, logger *slog.Logger) *LoggingExtractService {
	return &LoggingExtractService{next: next, logger: logger}
}

// Extract delegates to the wrapped service and logs the operation.
func (s *LoggingExtractService) Extract(ctx context.Context, page *webextract.RawPage) (content *webextract.ExtractedContent, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"duration", time.Since(begin),
			"err", err,
		}
		if page != nil {
			attrs = append(attrs, "url", page.URL, "bytes", len(page.Body))
		}
		if content != nil {
			attrs = append(attrs,
				"mimetype", content.MimeType,
				"encoding", string(content.Encoding),
				"links", len(content.Links),
				"text_len", len(content.TextContent),
			)
		}
		s.logger.Info("page extraction", attrs...)
	}(time.Now())
	return s.next.Extract(ctx, page)
}
