// Package chardet adapts the gogs/chardet statistical detector to the
// webextract.CharsetDetector interface. It is the last resort of
// encoding resolution, consulted only when BOMs, declared metadata and
// the meta prescan all come up empty.
package chardet

import (
	"strings"

	"github.com/fwojciec/webextract"
	"github.com/gogs/chardet"
)

// Ensure Detector implements webextract.CharsetDetector at compile time.
var _ webextract.CharsetDetector = (*Detector)(nil)

// Detector wraps a chardet text detector.
type Detector struct {
	det *chardet.Detector
}

// NewDetector creates a detector tuned for HTML-ish input.
func NewDetector() *Detector {
	return &Detector{det: chardet.NewHtmlDetector()}
}

// NewTextDetector creates a detector for plain text input.
func NewTextDetector() *Detector {
	return &Detector{det: chardet.NewTextDetector()}
}

// DetectBest returns the best-guess encoding label, lowercased, and a
// confidence in [0, 100]. An empty body yields no guess.
func (d *Detector) DetectBest(body []byte) (string, int, error) {
	if len(body) == 0 {
		return "", 0, nil
	}
	res, err := d.det.DetectBest(body)
	if err != nil {
		return "", 0, err
	}
	return strings.ToLower(res.Charset), res.Confidence, nil
}
