package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webextract.PageService = (*PageService)(nil)

// PageService implements webextract.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRecord stores one extraction result, generating ID, content
// hash and timestamp.
func (s *PageService) CreateRecord(ctx context.Context, rec *webextract.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.ExtractedAt = time.Now().UTC()
	rec.ContentHash = hashContent(rec.Content.TextContent)

	headings, err := json.Marshal(emptyAsList(rec.Content.Headings))
	if err != nil {
		return err
	}
	links, err := json.Marshal(emptyAsList(rec.Content.Links))
	if err != nil {
		return err
	}
	resources, err := json.Marshal(emptyAsList(rec.Content.Resources))
	if err != nil {
		return err
	}
	stats, err := json.Marshal(rec.Content.Stats)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(rec.Content.Meta)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, title, headings, text_content, text_pruned, threshold,
			links, resources, stats, meta, mimetype, encoding, content_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Content.URL, rec.Content.Title, string(headings),
		rec.Content.TextContent, rec.Content.TextPruned, rec.Content.Threshold,
		string(links), string(resources), string(stats), string(meta),
		rec.Content.MimeType, string(rec.Content.Encoding), rec.ContentHash,
		rec.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *PageService) FindRecordByID(ctx context.Context, id string) (*webextract.Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" FROM pages WHERE id = ?", id)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, webextract.Errorf(webextract.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *PageService) FindRecords(ctx context.Context, filter webextract.RecordFilter) ([]*webextract.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectColumns + " FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.MimeType != nil {
		query.WriteString(" AND mimetype = ?")
		args = append(args, *filter.MimeType)
	}

	query.WriteString(" ORDER BY extracted_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*webextract.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *PageService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return webextract.Errorf(webextract.ENOTFOUND, "record not found")
	}

	return nil
}

const selectColumns = `SELECT id, url, title, headings, text_content, text_pruned, threshold,
	links, resources, stats, meta, mimetype, encoding, content_hash, extracted_at`

// scanRecord reads one row into a Record, decoding the JSON columns.
func scanRecord(scan func(dest ...any) error) (*webextract.Record, error) {
	var rec webextract.Record
	var headings, links, resources, stats, meta, encoding, extractedAt string

	if err := scan(&rec.ID, &rec.Content.URL, &rec.Content.Title, &headings,
		&rec.Content.TextContent, &rec.Content.TextPruned, &rec.Content.Threshold,
		&links, &resources, &stats, &meta,
		&rec.Content.MimeType, &encoding, &rec.ContentHash, &extractedAt); err != nil {
		return nil, err
	}

	rec.Content.Encoding = webextract.Encoding(encoding)

	if err := json.Unmarshal([]byte(headings), &rec.Content.Headings); err != nil {
		return nil, fmt.Errorf("failed to decode headings: %w", err)
	}
	if err := json.Unmarshal([]byte(links), &rec.Content.Links); err != nil {
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}
	if err := json.Unmarshal([]byte(resources), &rec.Content.Resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &rec.Content.Stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	if err := json.Unmarshal([]byte(meta), &rec.Content.Meta); err != nil {
		return nil, fmt.Errorf("failed to decode meta: %w", err)
	}

	var err error
	rec.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// emptyAsList keeps nil slices out of the JSON columns so scans always
// round-trip to the same value.
func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
