// Package trafilatura wraps go-trafilatura as a fallback extractor for
// pages where density pruning yields nothing usable.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webextract"
	trafi "github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webextract.FallbackExtractor at compile time.
var _ webextract.FallbackExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafi.Options{
		EnableFallback: true,
	}

	result, err := trafi.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &webextract.FallbackResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
		ContentText: result.ContentText,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
