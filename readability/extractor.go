// Package readability wraps go-readability as the second fallback
// extractor, consulted when trafilatura comes up empty.
package readability

import (
	"strings"

	"github.com/fwojciec/webextract"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webextract.FallbackExtractor at compile time.
var _ webextract.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*webextract.FallbackResult, error) {
	if rawHTML == "" {
		return nil, webextract.Errorf(webextract.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &webextract.FallbackResult{
		Title:       article.Title,
		ContentHTML: article.Content,
		ContentText: article.TextContent,
	}, nil
}
