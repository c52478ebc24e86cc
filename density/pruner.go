// Package density implements the default boilerplate pruner: a
// text-density split over the block tree built during the tree walk.
// Navigation, ads and chrome are link- and markup-heavy relative to
// how little text they carry; article blocks are the opposite. The
// pruner scores every text-carrying block and keeps the ones at or
// above a single global threshold.
//
// The threshold derivation is a strategy, not gospel: it lives behind
// the webextract.Pruner interface so callers can swap it out.
package density

import (
	"strings"

	"github.com/fwojciec/webextract"
)

// Ensure Pruner implements webextract.Pruner at compile time.
var _ webextract.Pruner = (*Pruner)(nil)

// thresholdScale positions the cut below the weighted mean score, so
// ordinary articles with mild score variance keep all their prose and
// only markedly link-dense blocks fall away.
const thresholdScale = 0.5

// Pruner scores blocks by text density.
type Pruner struct{}

// NewPruner creates a new Pruner.
func NewPruner() *Pruner {
	return &Pruner{}
}

// Prune walks the block tree in document order, scores each block that
// carries direct text, and derives the global threshold as half the
// text-length-weighted mean score. Blocks at or above the threshold
// contribute their text, space-separated. Discard-class blocks and
// their subtrees are excluded a priori. Deterministic for a given
// tree.
func (p *Pruner) Prune(root *webextract.BlockNode) (string, float64) {
	if root == nil {
		return "", 0
	}

	type scored struct {
		block *webextract.BlockNode
		score float64
	}
	var blocks []scored

	// Document-order collection with an explicit stack; block-tree
	// depth follows DOM depth, which is attacker-influenced.
	stack := []*webextract.BlockNode{root}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.Class == webextract.Discard {
			continue
		}
		if b.TextLen > 0 {
			blocks = append(blocks, scored{block: b, score: score(b)})
		}
		for i := len(b.Children) - 1; i >= 0; i-- {
			stack = append(stack, b.Children[i])
		}
	}
	if len(blocks) == 0 {
		return "", 0
	}

	var weightedSum, weightTotal float64
	for _, s := range blocks {
		w := float64(s.block.TextLen)
		weightedSum += s.score * w
		weightTotal += w
	}
	threshold := thresholdScale * weightedSum / weightTotal

	var parts []string
	for _, s := range blocks {
		if s.score >= threshold {
			parts = append(parts, s.block.Text())
		}
	}
	return strings.Join(parts, " "), threshold
}

// score is the per-block text-density signal: direct text length
// against the block's markup and link density. Links weigh heavier
// than plain tags because link farms are the strongest boilerplate
// tell.
func score(b *webextract.BlockNode) float64 {
	return float64(b.TextLen) / float64(1+b.TagCount+8*b.LinkCount)
}
