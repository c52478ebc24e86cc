package mock

import (
	"context"

	"github.com/fwojciec/webextract"
)

var _ webextract.FallbackExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor is a mock implementation of webextract.FallbackExtractor.
type FallbackExtractor struct {
	ExtractFn func(html string) (*webextract.FallbackResult, error)
}

func (e *FallbackExtractor) Extract(html string) (*webextract.FallbackResult, error) {
	return e.ExtractFn(html)
}

var _ webextract.ExtractService = (*ExtractService)(nil)

// ExtractService is a mock implementation of webextract.ExtractService.
type ExtractService struct {
	ExtractFn func(ctx context.Context, page *webextract.RawPage) (*webextract.ExtractedContent, error)
}

func (s *ExtractService) Extract(ctx context.Context, page *webextract.RawPage) (*webextract.ExtractedContent, error) {
	return s.ExtractFn(ctx, page)
}
