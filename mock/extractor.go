package mock

import (
	"github.com/aknapek/crawlspace"
)

var _ crawlspace.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crawlspace.Extractor.
type Extractor struct {
	ExtractFn func(body []byte, pageURL string) (*crawlspace.PageContent, error)
}

func (e *Extractor) Extract(body []byte, pageURL string) (*crawlspace.PageContent, error) {
	return e.ExtractFn(body, pageURL)
}
