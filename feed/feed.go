// Package feed parses RSS and Atom documents that arrive through the
// pipeline instead of HTML pages. Feed XML is well-formed enough for a
// plain XML tree; entry titles and summaries stand in for page text,
// entry links for outbound links.
package feed

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/webextract"
)

// Entry is one feed item.
type Entry struct {
	Title   string
	Link    string
	Summary string
}

// Feed is the parsed form of an RSS or Atom document.
type Feed struct {
	Title   string
	Entries []Entry
}

// Parse reads a feed document. Returns EUNPROCESSABLE when the input
// is not parseable XML or not a recognizable feed.
func Parse(doc string) (*Feed, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromString(doc); err != nil {
		return nil, webextract.Errorf(webextract.EUNPROCESSABLE, "parsing feed XML: %v", err)
	}

	root := tree.Root()
	if root == nil {
		return nil, webextract.Errorf(webextract.EUNPROCESSABLE, "empty feed document")
	}

	switch root.Tag {
	case "rss", "RDF":
		return parseRSS(root), nil
	case "feed":
		return parseAtom(root), nil
	}
	return nil, webextract.Errorf(webextract.EUNPROCESSABLE, "unrecognized feed root element <%s>", root.Tag)
}

// parseRSS handles RSS 2.0 (<rss><channel>) and RSS 1.0 (<RDF> with
// channel and items as siblings).
func parseRSS(root *etree.Element) *Feed {
	f := &Feed{}

	channel := root.SelectElement("channel")
	if channel != nil {
		f.Title = elementText(channel, "title")
	}

	// RSS 2.0 nests items inside channel; RSS 1.0 puts them under the
	// root. Check both.
	items := root.SelectElements("item")
	if channel != nil {
		items = append(items, channel.SelectElements("item")...)
	}

	for _, item := range items {
		e := Entry{
			Title:   elementText(item, "title"),
			Link:    elementText(item, "link"),
			Summary: elementText(item, "description"),
		}
		if e.Title == "" && e.Link == "" && e.Summary == "" {
			continue
		}
		f.Entries = append(f.Entries, e)
	}
	return f
}

func parseAtom(root *etree.Element) *Feed {
	f := &Feed{Title: elementText(root, "title")}

	for _, entry := range root.SelectElements("entry") {
		e := Entry{
			Title:   elementText(entry, "title"),
			Link:    atomLink(entry),
			Summary: elementText(entry, "summary"),
		}
		if e.Summary == "" {
			e.Summary = elementText(entry, "content")
		}
		if e.Title == "" && e.Link == "" && e.Summary == "" {
			continue
		}
		f.Entries = append(f.Entries, e)
	}
	return f
}

// atomLink picks the entry's alternate link, falling back to the first
// link element with an href.
func atomLink(entry *etree.Element) string {
	var first string
	for _, link := range entry.SelectElements("link") {
		href := strings.TrimSpace(link.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}
		rel := link.SelectAttrValue("rel", "")
		if rel == "" || rel == "alternate" {
			return href
		}
		if first == "" {
			first = href
		}
	}
	return first
}

func elementText(parent *etree.Element, tag string) string {
	el := parent.SelectElement(tag)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Links returns the deduplicated entry links in feed order.
func (f *Feed) Links() []string {
	seen := make(map[string]bool)
	var links []string
	for _, e := range f.Entries {
		if e.Link == "" || seen[e.Link] {
			continue
		}
		seen[e.Link] = true
		links = append(links, e.Link)
	}
	return links
}

// Text joins entry titles and summaries into a plain-text rendition of
// the feed, in feed order.
func (f *Feed) Text() string {
	var parts []string
	for _, e := range f.Entries {
		if e.Title != "" {
			parts = append(parts, e.Title)
		}
		if e.Summary != "" {
			parts = append(parts, e.Summary)
		}
	}
	return strings.Join(parts, " ")
}

// Headings returns the entry titles in feed order.
func (f *Feed) Headings() []string {
	var titles []string
	for _, e := range f.Entries {
		if e.Title != "" {
			titles = append(titles, e.Title)
		}
	}
	return titles
}
