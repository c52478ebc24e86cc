package dom

import (
	"strings"

	"github.com/fwojciec/webextract"
	"golang.org/x/net/html"
)

// impliable tags are structural elements HTML lets authors omit; the
// parser inserting one of these is normal, not error recovery.
var impliable = map[string]bool{
	"html":     true,
	"head":     true,
	"body":     true,
	"tbody":    true,
	"colgroup": true,
}

// insertionTracker derives an InsertionKind for each element visited
// in document order. The tree parser does not say which elements it
// synthesized, so a tokenizer pre-pass counts literal start tags per
// name; during the walk, an element is Explicit while literal
// occurrences of its name remain, Implied if its name is impliable,
// Synthetic otherwise.
type insertionTracker struct {
	remaining map[string]int
}

// newInsertionTracker tokenizes the document source once and records
// how many literal start tags each name has. The tokenizer stops at
// malformed input without error; whatever was counted still serves.
func newInsertionTracker(source string) *insertionTracker {
	t := &insertionTracker{remaining: make(map[string]int)}
	z := html.NewTokenizer(strings.NewReader(source))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return t
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			t.remaining[string(name)]++
		}
	}
}

// kind consumes one occurrence of tag and reports how the element got
// into the tree.
func (t *insertionTracker) kind(tag string) webextract.InsertionKind {
	if t.remaining[tag] > 0 {
		t.remaining[tag]--
		return webextract.InsertionExplicit
	}
	if impliable[tag] {
		return webextract.InsertionImplied
	}
	return webextract.InsertionSynthetic
}
