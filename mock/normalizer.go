package mock

import "github.com/fwojciec/webextract"

var _ webextract.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of webextract.Normalizer.
type Normalizer struct {
	NormalizeFn func(s string) string
}

func (n *Normalizer) Normalize(s string) string {
	return n.NormalizeFn(s)
}
