package webextract

import "context"

// CharsetDetector guesses a page's encoding from its bytes. It is the
// last resort of encoding resolution, consulted only when BOMs,
// declared metadata and the meta prescan all come up empty.
type CharsetDetector interface {
	// DetectBest returns the best-guess encoding label (lowercase
	// ASCII) and a confidence in [0, 100]. An error or an empty label
	// means no usable guess.
	DetectBest(body []byte) (label string, confidence int, err error)
}

// Normalizer collapses and trims whitespace in extracted text. It must
// be Unicode-grapheme-safe: trimming never splits a grapheme cluster.
type Normalizer interface {
	Normalize(s string) string
}

// Pruner separates boilerplate from content given the block tree built
// during the tree walk. Implementations must be deterministic: the
// same block tree always yields the same text and threshold.
type Pruner interface {
	// Prune returns the boilerplate-free text in document order and
	// the density threshold it settled on (for diagnostics).
	Prune(root *BlockNode) (text string, threshold float64)
}

// FallbackResult holds the output of a whole-page fallback extractor.
type FallbackResult struct {
	// Title is the page title as the fallback extractor sees it.
	Title string

	// ContentHTML is the main content as clean HTML, boilerplate
	// removed but structure preserved.
	ContentHTML string

	// ContentText is the main content as plain text.
	ContentText string
}

// FallbackExtractor extracts main content straight from page HTML.
// The pipeline consults fallbacks when density pruning yields nothing.
type FallbackExtractor interface {
	Extract(html string) (*FallbackResult, error)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// ExtractService runs the full extraction pipeline on one page.
type ExtractService interface {
	// Extract produces one ExtractedContent per page. The only
	// fatal failure is the external parser failing to produce a tree
	// at all (EUNPROCESSABLE); every other anomaly degrades to
	// best-effort output.
	Extract(ctx context.Context, page *RawPage) (*ExtractedContent, error)
}
