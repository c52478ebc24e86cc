// Package dom walks parsed HTML trees exactly once, collecting title,
// headings, visible text, outbound links, referenced resources, DOM
// statistics and the block tree the boilerplate pruner scores on. The
// traversal is an explicit-stack depth-first pass: input tree depth is
// attacker-influenced, so nothing here recurses.
package dom

import "github.com/fwojciec/webextract"

// tagClasses statically classifies every known tag name. Unknown tags
// fall through to Inline, the zero value. The classification drives
// word-break insertion and block grouping; it is immutable
// process-wide data.
var tagClasses = map[string]webextract.TagClass{
	"h1":     webextract.Heading,
	"h2":     webextract.Heading,
	"h3":     webextract.Heading,
	"h4":     webextract.Heading,
	"h5":     webextract.Heading,
	"h6":     webextract.Heading,
	"hgroup": webextract.Heading,

	"address":    webextract.Block,
	"article":    webextract.Block,
	"aside":      webextract.Block,
	"audio":      webextract.Block,
	"blockquote": webextract.Block,
	"body":       webextract.Block,
	"br":         webextract.Block,
	"button":     webextract.Block,
	"canvas":     webextract.Block,
	"caption":    webextract.Block,
	"center":     webextract.Block,
	"col":        webextract.Block,
	"colgroup":   webextract.Block,
	"dd":         webextract.Block,
	"details":    webextract.Block,
	"dialog":     webextract.Block,
	"dir":        webextract.Block,
	"div":        webextract.Block,
	"dl":         webextract.Block,
	"dt":         webextract.Block,
	"embed":      webextract.Block,
	"fieldset":   webextract.Block,
	"figcaption": webextract.Block,
	"figure":     webextract.Block,
	"footer":     webextract.Block,
	"form":       webextract.Block,
	"frame":      webextract.Block,
	"frameset":   webextract.Block,
	"header":     webextract.Block,
	"hr":         webextract.Block,
	"html":       webextract.Block,
	"legend":     webextract.Block,
	"li":         webextract.Block,
	"main":       webextract.Block,
	"menu":       webextract.Block,
	"menuitem":   webextract.Block,
	"nav":        webextract.Block,
	"noframes":   webextract.Block,
	"ol":         webextract.Block,
	"optgroup":   webextract.Block,
	"option":     webextract.Block,
	"p":          webextract.Block,
	"pre":        webextract.Block,
	"section":    webextract.Block,
	"select":     webextract.Block,
	"summary":    webextract.Block,
	"table":      webextract.Block,
	"tbody":      webextract.Block,
	"td":         webextract.Block,
	"textarea":   webextract.Block,
	"tfoot":      webextract.Block,
	"th":         webextract.Block,
	"thead":      webextract.Block,
	"tr":         webextract.Block,
	"ul":         webextract.Block,
	"video":      webextract.Block,

	"head":     webextract.Discard,
	"iframe":   webextract.Discard,
	"noscript": webextract.Discard,
	"script":   webextract.Discard,
	"style":    webextract.Discard,
	"template": webextract.Discard,
}

// Classify returns the static class of a (lowercase) tag name.
func Classify(tag string) webextract.TagClass {
	return tagClasses[tag]
}

// wordBreak reports whether entering or exiting a tag of this class
// injects a word break into the text stream, preventing inline text
// from adjacent blocks fusing into one word.
func wordBreak(class webextract.TagClass) bool {
	return class == webextract.Block || class == webextract.Heading
}
