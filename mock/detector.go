package mock

import "github.com/fwojciec/webextract"

var _ webextract.CharsetDetector = (*CharsetDetector)(nil)

// CharsetDetector is a mock implementation of webextract.CharsetDetector.
type CharsetDetector struct {
	DetectBestFn func(body []byte) (string, int, error)
}

func (d *CharsetDetector) DetectBest(body []byte) (string, int, error) {
	return d.DetectBestFn(body)
}
