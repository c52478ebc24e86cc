// Package uniseg provides a grapheme-aware text normalizer on top of
// rivo/uniseg. Extracted text goes through it exactly once, at
// finalization: whitespace runs collapse to single spaces and the ends
// are trimmed without ever splitting a grapheme cluster.
package uniseg

import (
	"strings"
	"unicode"

	runiseg "github.com/rivo/uniseg"

	"github.com/fwojciec/webextract"
)

// Ensure Normalizer implements webextract.Normalizer at compile time.
var _ webextract.Normalizer = (*Normalizer)(nil)

// Normalizer collapses and trims whitespace grapheme-safely.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize collapses every run of whitespace clusters to a single
// space and trims the result. Iteration is by grapheme cluster, not by
// rune, so combining sequences and emoji never get cut apart.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(s))

	pendingSpace := false
	wroteAny := false

	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = runiseg.FirstGraphemeClusterInString(rest, state)
		if isWhitespaceCluster(cluster) {
			pendingSpace = wroteAny
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteString(cluster)
		wroteAny = true
	}

	return sb.String()
}

// isWhitespaceCluster reports whether every rune of the cluster is
// Unicode whitespace.
func isWhitespaceCluster(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
