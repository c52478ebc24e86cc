// Package goquery scrapes descriptive page metadata (description,
// canonical URL, Open Graph fields, favicon) out of parsed HTML with
// CSS selectors. Metadata lives in a handful of well-known meta and
// link tags; a selector query per field is simpler and more robust
// than threading all of them through the main tree walk.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webextract"
)

// MetaScraper extracts PageMeta from page HTML.
type MetaScraper struct{}

// NewMetaScraper creates a new MetaScraper.
func NewMetaScraper() *MetaScraper {
	return &MetaScraper{}
}

// Scrape parses html and collects page metadata. Parsing failures and
// absent tags both degrade to empty fields; metadata is never a reason
// to fail an extraction.
func (s *MetaScraper) Scrape(html string) webextract.PageMeta {
	var meta webextract.PageMeta

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return meta
	}

	meta.Description = metaContent(doc, `meta[name="description"]`)
	if meta.Description == "" {
		meta.Description = metaContent(doc, `meta[property="og:description"]`)
	}
	meta.OGTitle = metaContent(doc, `meta[property="og:title"]`)
	meta.OGImage = metaContent(doc, `meta[property="og:image"]`)
	meta.SiteName = metaContent(doc, `meta[property="og:site_name"]`)
	meta.Canonical = linkHref(doc, `link[rel="canonical"]`)
	meta.Favicon = firstFavicon(doc)

	return meta
}

// metaContent returns the trimmed content attribute of the first
// element matching sel.
func metaContent(doc *goquery.Document, sel string) string {
	content, _ := doc.Find(sel).First().Attr("content")
	return strings.TrimSpace(content)
}

// linkHref returns the trimmed href attribute of the first element
// matching sel.
func linkHref(doc *goquery.Document, sel string) string {
	href, _ := doc.Find(sel).First().Attr("href")
	return strings.TrimSpace(href)
}

// firstFavicon checks icon rel variants in order of specificity.
func firstFavicon(doc *goquery.Document) string {
	for _, sel := range []string{
		`link[rel="icon"]`,
		`link[rel="shortcut icon"]`,
		`link[rel="apple-touch-icon"]`,
	} {
		if href := linkHref(doc, sel); href != "" {
			return href
		}
	}
	return ""
}
