package webextract

import (
	"context"
	"time"
)

// RawPage is a captured page as handed to the pipeline: raw bytes plus
// whatever (possibly wrong, possibly absent) metadata accompanied the
// capture. It is constructed once per input page and never mutated.
type RawPage struct {
	// URL the page was captured from. Used as the base for relative
	// URL resolution unless the document rewrites it via <base href>.
	URL string

	// Body is the raw captured byte stream.
	Body []byte

	// DeclaredType is the content type as declared by the transport
	// (e.g. an HTTP Content-Type header), without parameters. May be
	// empty, generic, or simply wrong.
	DeclaredType string

	// DeclaredCharset is the charset label as declared by the
	// transport. May be empty or wrong.
	DeclaredCharset string
}

// Encoding is a canonical WHATWG encoding name. Values are produced
// only by charset label canonicalization or BOM detection; never
// hand-construct one elsewhere.
type Encoding string

// Sentinel encodings. The resolver refuses both for its own purposes:
// a page that declares them is declaring an untrustworthy label.
const (
	EncodingReplacement  Encoding = "replacement"
	EncodingXUserDefined Encoding = "x-user-defined"
)

// DecodedDocument is the canonical text form of a RawPage: valid,
// BOM-free UTF-8 plus the encoding it was decoded from and the
// resolved content type. Produced exactly once per RawPage.
type DecodedDocument struct {
	Text     string
	Encoding Encoding
	MimeType string
}

// DomStatistics counts elements seen during the tree walk, keyed by
// normalized tag name and by tree depth. Only elements that correspond
// to explicit or minimally-implied markup are counted; elements wholly
// synthesized by parser error recovery are not.
type DomStatistics struct {
	Tags   map[string]int `json:"tags"`
	Depths map[int]int    `json:"depths"`
}

// NewDomStatistics returns empty, ready-to-use statistics.
func NewDomStatistics() DomStatistics {
	return DomStatistics{
		Tags:   make(map[string]int),
		Depths: make(map[int]int),
	}
}

// Observe records one element occurrence.
func (s DomStatistics) Observe(tag string, depth int) {
	s.Tags[tag]++
	s.Depths[depth]++
}

// PageMeta holds descriptive metadata scraped from meta/link tags.
type PageMeta struct {
	Description string `json:"description,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	OGTitle     string `json:"ogTitle,omitempty"`
	OGImage     string `json:"ogImage,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
}

// ExtractedContent is the final output of the pipeline for one page.
// It is created once and owned by the caller.
type ExtractedContent struct {
	// URL is the effective document URL; it differs from the capture
	// URL when the document carried an honored <base href>.
	URL string `json:"url"`

	Title    string   `json:"title"`
	Headings []string `json:"headings"`

	// TextContent is all visible text in document order.
	TextContent string `json:"textContent"`

	// TextPruned is TextContent with boilerplate blocks removed.
	TextPruned string `json:"textPruned"`

	// Threshold is the density threshold the pruner settled on,
	// returned for diagnostics.
	Threshold float64 `json:"threshold"`

	// Links and Resources are absolute, deduplicated, sorted, with
	// self-references removed.
	Links     []string `json:"links"`
	Resources []string `json:"resources"`

	Stats DomStatistics `json:"stats"`
	Meta  PageMeta      `json:"meta"`

	MimeType string   `json:"mimetype"`
	Encoding Encoding `json:"encoding"`

	// Decoded is the full decoded document text the extraction ran on.
	Decoded string `json:"-"`
}

// Record is a persisted extraction result.
type Record struct {
	ID          string           `json:"id"`
	Content     ExtractedContent `json:"content"`
	ContentHash string           `json:"contentHash"`
	ExtractedAt time.Time        `json:"extractedAt"`
}

// Validate returns an error if the record's content cannot be stored.
func (r *Record) Validate() error {
	if r.Content.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID       *string `json:"id"`
	URL      *string `json:"url"`
	MimeType *string `json:"mimetype"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageService persists extraction results.
type PageService interface {
	// CreateRecord stores one extraction result and fills in the
	// record's ID, content hash and timestamp.
	CreateRecord(ctx context.Context, rec *Record) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*Record, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}
