package dom

import (
	"sort"
	"strings"

	"github.com/fwojciec/webextract"
	"golang.org/x/net/html"
)

// Result is everything one traversal collects.
type Result struct {
	// URL is the effective document URL: the capture URL, or the
	// honored <base href> when the document carried one.
	URL         string
	Title       string
	Headings    []string
	TextContent string
	Links       []string
	Resources   []string
	Stats       webextract.DomStatistics
	Blocks      *webextract.BlockNode
}

// Walk traverses the parsed tree exactly once, depth first, collecting
// title, headings, visible text, links, resources, DOM statistics and
// the block tree in a single pass. source is the decoded document text
// the tree was parsed from; it feeds the insertion-kind pre-pass.
//
// Walk is total: adversarial trees (deep nesting, garbled attributes,
// tag soup) degrade to best-effort output, never to a panic.
func Walk(root *html.Node, source, docURL string, norm webextract.Normalizer) *Result {
	w := &walker{
		resolver:  NewResolver(docURL),
		norm:      norm,
		insertion: newInsertionTracker(source),
		stats:     webextract.NewDomStatistics(),
		links:     make(map[string]struct{}),
		resources: make(map[string]struct{}),
		root:      webextract.NewBlockNode(webextract.Block),
	}
	w.blocks = []*webextract.BlockNode{w.root}

	w.traverse(root)

	res := &Result{
		URL:         docURL,
		Title:       w.normalize(w.title.String()),
		Headings:    w.headings,
		TextContent: w.normalize(w.text.String()),
		Links:       sortedKeys(w.links),
		Resources:   sortedKeys(w.resources),
		Stats:       w.stats,
		Blocks:      w.root,
	}
	if w.baseSeen {
		res.URL = w.resolver.Base()
	}
	return res
}

// walker carries all traversal state. One walker serves one document
// and is discarded afterwards.
type walker struct {
	resolver  *Resolver
	norm      webextract.Normalizer
	insertion *insertionTracker
	stats     webextract.DomStatistics

	text       strings.Builder
	title      strings.Builder
	headingBuf strings.Builder
	headings   []string

	links     map[string]struct{}
	resources map[string]struct{}

	root   *webextract.BlockNode
	blocks []*webextract.BlockNode

	// Nesting counters; a subtree property holds while its counter is
	// positive, which survives nested occurrences of the same tag.
	depth     int
	discard   int
	inTitle   int
	inHead    int
	inHeading int

	baseSeen bool
}

// frame is one entry of the explicit traversal stack.
type frame struct {
	n    *html.Node
	exit bool
}

// traverse runs the depth-first pass with an explicit stack. Tree
// depth is attacker-influenced, so recursion is off the table.
func (w *walker) traverse(root *html.Node) {
	stack := []frame{{n: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			w.exit(f.n)
			continue
		}
		w.enter(f.n)
		if f.n.Type == html.ElementNode {
			stack = append(stack, frame{n: f.n, exit: true})
		}
		for c := f.n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, frame{n: c})
		}
	}
}

func (w *walker) enter(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.handleText(n.Data)
		return
	case html.ElementNode:
	default:
		return
	}

	tag := n.Data
	class := Classify(tag)

	if w.insertion.kind(tag).Counted() {
		w.stats.Observe(tag, w.depth)
	}

	w.currentBlock().TagCount++
	w.extractRefs(n, tag)

	if wordBreak(class) {
		w.writeBreak()
	}

	switch class {
	case webextract.Block, webextract.Heading, webextract.Discard:
		block := webextract.NewBlockNode(class)
		w.currentBlock().AddChild(block)
		w.blocks = append(w.blocks, block)
	}

	switch {
	case class == webextract.Discard:
		w.discard++
	case class == webextract.Heading:
		w.inHeading++
	}

	if n.Namespace == "" {
		switch tag {
		case "title":
			w.inTitle++
		case "head":
			w.inHead++
		case "base":
			w.handleBase(n)
		}
	}

	w.depth++
}

func (w *walker) exit(n *html.Node) {
	w.depth--

	tag := n.Data
	class := Classify(tag)

	if n.Namespace == "" {
		switch tag {
		case "title":
			w.inTitle--
		case "head":
			w.inHead--
		}
	}

	switch class {
	case webextract.Discard:
		w.discard--
	case webextract.Heading:
		w.inHeading--
		if w.inHeading == 0 {
			w.flushHeading()
		}
	}

	switch class {
	case webextract.Block, webextract.Heading, webextract.Discard:
		if len(w.blocks) > 1 {
			w.blocks = w.blocks[:len(w.blocks)-1]
		}
	}

	if wordBreak(class) {
		w.writeBreak()
	}
}

// handleText accumulates one text node. Title text is collected
// regardless of discard state; everything else only outside discarded
// subtrees.
func (w *walker) handleText(s string) {
	if w.inTitle > 0 {
		w.title.WriteString(s)
		return
	}
	if w.discard > 0 {
		return
	}
	w.text.WriteString(s)
	w.currentBlock().AddText(s)
	if w.inHeading > 0 {
		w.headingBuf.WriteString(s)
	}
}

// handleBase honors the first <base href> sitting at depth 2 directly
// under <head>, matching the effective HTML5 base-URL behavior. Later
// or misplaced base tags are ignored.
func (w *walker) handleBase(n *html.Node) {
	if w.baseSeen || w.depth != 2 || n.Parent == nil || n.Parent.Data != "head" {
		return
	}
	if href := attr(n, "href"); href != "" {
		w.resolver.SetBase(href)
		w.baseSeen = true
	}
}

// writeBreak injects a single word break into the text stream on block
// boundaries so inline text from adjacent blocks cannot fuse.
func (w *walker) writeBreak() {
	if w.discard > 0 {
		return
	}
	w.text.WriteByte(' ')
	if w.inHeading > 0 {
		w.headingBuf.WriteByte(' ')
	}
}

func (w *walker) flushHeading() {
	h := w.normalize(w.headingBuf.String())
	w.headingBuf.Reset()
	if h != "" {
		w.headings = append(w.headings, h)
	}
}

func (w *walker) currentBlock() *webextract.BlockNode {
	return w.blocks[len(w.blocks)-1]
}

func (w *walker) normalize(s string) string {
	if w.norm == nil {
		return strings.TrimSpace(s)
	}
	return w.norm.Normalize(s)
}

func (w *walker) addLink(ref string) {
	if abs, ok := w.resolver.JoinOutbound(ref); ok {
		w.links[abs] = struct{}{}
		w.currentBlock().LinkCount++
	}
}

func (w *walker) addResource(ref string) {
	if abs, ok := w.resolver.JoinOutbound(ref); ok {
		w.resources[abs] = struct{}{}
	}
}

// Per-tag reference extraction. Runs for every element, including
// those inside discarded subtrees: a script's src is still a resource
// even though its text is suppressed.
func (w *walker) extractRefs(n *html.Node, tag string) {
	switch tag {
	case "a", "area":
		w.addLink(attr(n, "href"))
	case "iframe", "audio", "embed", "script", "source", "track":
		w.addResource(attr(n, "src"))
	case "input":
		w.addResource(attr(n, "src"))
		w.addLink(attr(n, "formaction"))
	case "button":
		w.addLink(attr(n, "formaction"))
	case "video":
		w.addResource(attr(n, "src"))
		w.addResource(attr(n, "poster"))
	case "img":
		w.addResource(attr(n, "src"))
		for _, u := range srcsetURLs(attr(n, "srcset")) {
			w.addResource(u)
		}
	case "object":
		w.addResource(attr(n, "data"))
	case "menuitem":
		w.addResource(attr(n, "icon"))
	case "form":
		w.addResource(attr(n, "action"))
	case "blockquote", "del", "ins", "q":
		w.addLink(attr(n, "cite"))
	case "link":
		w.extractLinkTag(n)
	}
}

// rel tokens that make a <link> point at a resource the page needs,
// versus a navigational link worth following. Anything else (dns-
// prefetch, preconnect, manifest, ...) is ignored.
var (
	relResource = map[string]bool{
		"icon":       true,
		"pingback":   true,
		"prefetch":   true,
		"stylesheet": true,
	}
	relLink = map[string]bool{
		"alternate": true,
		"author":    true,
		"help":      true,
		"license":   true,
		"next":      true,
		"prev":      true,
		"search":    true,
		"sidebar":   true,
	}
)

func (w *walker) extractLinkTag(n *html.Node) {
	href := attr(n, "href")
	if href == "" {
		return
	}
	rels := strings.Fields(strings.ToLower(attr(n, "rel")))
	for _, rel := range rels {
		if relResource[rel] {
			w.addResource(href)
			return
		}
	}
	for _, rel := range rels {
		if relLink[rel] {
			w.addLink(href)
			return
		}
	}
}

// srcsetURLs extracts the URL token of each comma-separated srcset
// candidate, ignoring width/density descriptors, per the srcset
// micro-syntax.
func srcsetURLs(srcset string) []string {
	if srcset == "" {
		return nil
	}
	var urls []string
	for _, candidate := range strings.Split(srcset, ",") {
		candidate = strings.TrimLeft(candidate, " \t\n\r\f")
		if candidate == "" {
			continue
		}
		if i := strings.IndexAny(candidate, " \t\n\r\f"); i >= 0 {
			candidate = candidate[:i]
		}
		if candidate != "" {
			urls = append(urls, candidate)
		}
	}
	return urls
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
