package mock

import "github.com/fwojciec/webextract"

var _ webextract.Pruner = (*Pruner)(nil)

// Pruner is a mock implementation of webextract.Pruner.
type Pruner struct {
	PruneFn func(root *webextract.BlockNode) (string, float64)
}

func (p *Pruner) Prune(root *webextract.BlockNode) (string, float64) {
	return p.PruneFn(root)
}
