// Package bloom tracks which pages a batch run has already extracted,
// keyed by URL and by content hash, using Bloom filters. Batch inputs
// routinely contain the same page under several URLs (mirrors,
// tracking parameters) and the same URL several times; a Bloom filter
// answers "seen before?" in constant memory at the cost of rare false
// positives, which for deduplication only means skipping a page twice
// captured.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// falsePositiveRate is low enough that a batch of a million pages
// wrongly skips about a thousand, acceptable for dedup.
const falsePositiveRate = 0.001

// SeenFilter remembers URLs and content hashes across one batch run.
// Not safe for concurrent use; batch workers funnel through a single
// goroutine or guard it themselves.
type SeenFilter struct {
	urls   *bloom.BloomFilter
	hashes *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected pages.
func NewSeenFilter(n uint) *SeenFilter {
	return &SeenFilter{
		urls:   bloom.NewWithEstimates(n, falsePositiveRate),
		hashes: bloom.NewWithEstimates(n, falsePositiveRate),
	}
}

// SeenURL records the URL and reports whether it was already present.
// False positives are possible; false negatives are not.
func (s *SeenFilter) SeenURL(url string) bool {
	return s.urls.TestAndAddString(url)
}

// SeenContent records a content hash and reports whether identical
// content was already extracted under another URL.
func (s *SeenFilter) SeenContent(hash string) bool {
	return s.hashes.TestAndAddString(hash)
}

// ApproxPages returns the approximate number of distinct URLs seen.
func (s *SeenFilter) ApproxPages() uint {
	return uint(s.urls.ApproximatedSize())
}
