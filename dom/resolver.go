package dom

import (
	"net/url"
	"strings"
)

// nonFetchable schemes never become links or resources: they do not
// name anything a capture layer could retrieve.
var nonFetchable = map[string]bool{
	"about":      true,
	"data":       true,
	"javascript": true,
	"mailto":     true,
	"tel":        true,
	"vbscript":   true,
}

// Resolver resolves relative references against the document's base
// URL. The base starts as the document URL and may be rewritten once
// by an honored <base href>.
type Resolver struct {
	doc  *url.URL // the document itself, for self-reference removal
	base *url.URL // current resolution base
}

// NewResolver creates a resolver for a document URL. An unparseable or
// empty document URL is tolerated: absolute references still resolve,
// relative ones report invalid.
func NewResolver(docURL string) *Resolver {
	r := &Resolver{}
	if u, err := url.Parse(docURL); err == nil && u.Scheme != "" {
		r.doc = u
		r.base = u
	}
	return r
}

// SetBase rewrites the resolution base, honoring a <base href>. The
// href itself resolves against the current base. Unparseable hrefs are
// ignored.
func (r *Resolver) SetBase(href string) {
	href = strings.TrimSpace(href)
	if href == "" {
		return
	}
	ref, err := url.Parse(href)
	if err != nil {
		return
	}
	if r.base != nil {
		r.base = r.base.ResolveReference(ref)
	} else if ref.IsAbs() {
		r.base = ref
	}
}

// Base returns the current effective base URL, empty if none.
func (r *Resolver) Base() string {
	if r.base == nil {
		return ""
	}
	return r.base.String()
}

// Join resolves a possibly-relative reference to an absolute URL.
// Returns false for references that cannot be made absolute.
func (r *Resolver) Join(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if r.base != nil {
		u = r.base.ResolveReference(u)
	}
	if !u.IsAbs() {
		return "", false
	}
	return u.String(), true
}

// JoinOutbound resolves a reference for link/resource extraction:
// non-fetchable schemes and references to the document itself
// (fragment-only navigation included) report invalid.
func (r *Resolver) JoinOutbound(ref string) (string, bool) {
	abs, ok := r.Join(ref)
	if !ok {
		return "", false
	}
	u, err := url.Parse(abs)
	if err != nil {
		return "", false
	}
	if nonFetchable[u.Scheme] {
		return "", false
	}
	if r.doc != nil {
		self := *u
		self.Fragment = ""
		if self.String() == r.doc.String() {
			return "", false
		}
	}
	return abs, true
}
