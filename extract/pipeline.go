// Package extract assembles the full page-extraction pipeline:
// encoding resolution, content-type sniffing, the single-pass tree
// walk, boilerplate pruning with whole-page fallbacks, and metadata
// scraping. One Pipeline serves many pages concurrently; all per-page
// state lives on the stack of Extract.
package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/charset"
	"github.com/fwojciec/webextract/dom"
	"github.com/fwojciec/webextract/feed"
	"github.com/fwojciec/webextract/sniff"
	"golang.org/x/net/html"
)

// Ensure Pipeline implements webextract.ExtractService at compile time.
var _ webextract.ExtractService = (*Pipeline)(nil)

// MetaScraper extracts descriptive page metadata from HTML.
type MetaScraper interface {
	Scrape(html string) webextract.PageMeta
}

// Pipeline implements webextract.ExtractService.
type Pipeline struct {
	detector  webextract.CharsetDetector
	norm      webextract.Normalizer
	pruner    webextract.Pruner
	meta      MetaScraper
	fallbacks []webextract.FallbackExtractor
}

// NewPipeline creates a Pipeline from its collaborators. detector,
// meta and fallbacks may be nil/empty; the corresponding stages are
// then skipped. norm and pruner are required.
func NewPipeline(
	detector webextract.CharsetDetector,
	norm webextract.Normalizer,
	pruner webextract.Pruner,
	meta MetaScraper,
	fallbacks ...webextract.FallbackExtractor,
) *Pipeline {
	return &Pipeline{
		detector:  detector,
		norm:      norm,
		pruner:    pruner,
		meta:      meta,
		fallbacks: fallbacks,
	}
}

// Extract runs the pipeline on one captured page.
//
// The stages run in a fixed order: sniff the real content type, decode
// the bytes to UTF-8, then branch on the type. HTML goes through the
// tree walk and the pruner; feeds are parsed as XML; plain text is
// wrapped in a synthetic document so it takes the same walk; anything
// else yields a minimal record carrying just the resolved type. The
// only fatal failure is the HTML parser producing no tree at all.
func (p *Pipeline) Extract(ctx context.Context, page *webextract.RawPage) (*webextract.ExtractedContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, webextract.Errorf(webextract.EINVALID, "page required")
	}

	mime := sniff.Sniff(page.DeclaredType, page.DeclaredCharset, page.Body)

	if !textual(mime) {
		return &webextract.ExtractedContent{
			URL:      page.URL,
			MimeType: mime,
			Stats:    webextract.NewDomStatistics(),
		}, nil
	}

	decoded, enc := charset.Resolve(page.Body, page.DeclaredCharset, p.detector)

	// Feeds with an <?xml prologue sniff as generic XML, so the feed
	// parser gets a shot at both. Anything it rejects falls through to
	// the HTML path; tag soup that happened to start with <rss> lands
	// there.
	if sniff.IsFeed(mime) || isXML(mime) {
		if content, err := p.extractFeed(page.URL, decoded, mime, enc); err == nil {
			return content, nil
		}
	}

	source := decoded
	if !sniff.IsHTML(mime) && !isXML(mime) {
		// Plain text: synthesize a document around it so it goes
		// through the same walk as everything else.
		source = "<html><body><pre>" + html.EscapeString(decoded) + "</pre></body></html>"
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, webextract.Errorf(webextract.EUNPROCESSABLE, "parsing document: %v", err)
	}

	res := dom.Walk(root, source, page.URL, p.norm)

	pruned, threshold := p.pruner.Prune(res.Blocks)
	pruned = p.normalize(pruned)
	title := res.Title

	// When pruning ate everything on a page that clearly has text, the
	// fallback extractors get a shot at the raw document.
	if pruned == "" && res.TextContent != "" {
		pruned, title = p.runFallbacks(decoded, res.TextContent, title)
	}

	content := &webextract.ExtractedContent{
		URL:         res.URL,
		Title:       title,
		Headings:    res.Headings,
		TextContent: res.TextContent,
		TextPruned:  pruned,
		Threshold:   threshold,
		Links:       res.Links,
		Resources:   res.Resources,
		Stats:       res.Stats,
		MimeType:    mime,
		Encoding:    enc,
		Decoded:     decoded,
	}
	if p.meta != nil && sniff.IsHTML(mime) {
		content.Meta = p.meta.Scrape(decoded)
	}
	return content, nil
}

// extractFeed maps a parsed feed onto the extraction output: entry
// titles become headings, titles plus summaries become the text, entry
// links become outbound links.
func (p *Pipeline) extractFeed(pageURL, decoded, mime string, enc webextract.Encoding) (*webextract.ExtractedContent, error) {
	f, err := feed.Parse(decoded)
	if err != nil {
		return nil, err
	}

	resolver := dom.NewResolver(pageURL)
	var links []string
	for _, l := range f.Links() {
		if abs, ok := resolver.Join(l); ok {
			links = append(links, abs)
		}
	}

	text := p.normalize(f.Text())
	return &webextract.ExtractedContent{
		URL:         pageURL,
		Title:       f.Title,
		Headings:    f.Headings(),
		TextContent: text,
		TextPruned:  text,
		Links:       links,
		Stats:       webextract.NewDomStatistics(),
		MimeType:    mime,
		Encoding:    enc,
		Decoded:     decoded,
	}, nil
}

// runFallbacks tries each fallback extractor in order and returns the
// first non-empty content text, normalized. The walked text and title
// are returned unchanged when every fallback comes up empty.
func (p *Pipeline) runFallbacks(decoded, walkedText, title string) (string, string) {
	for _, fb := range p.fallbacks {
		r, err := fb.Extract(decoded)
		if err != nil || r == nil {
			continue
		}
		if text := p.normalize(r.ContentText); text != "" {
			if title == "" {
				title = r.Title
			}
			return text, title
		}
	}
	return walkedText, title
}

func (p *Pipeline) normalize(s string) string {
	if p.norm == nil {
		return strings.TrimSpace(s)
	}
	return p.norm.Normalize(s)
}

// textual reports whether a sniffed type carries text the pipeline can
// decode and walk.
func textual(mime string) bool {
	return sniff.IsHTML(mime) || sniff.IsFeed(mime) || isXML(mime) ||
		mime == "text/plain" || strings.HasPrefix(mime, "text/")
}

func isXML(mime string) bool {
	return mime == "text/xml" || mime == "application/xml"
}
