package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContent(url string) webextract.ExtractedContent {
	return webextract.ExtractedContent{
		URL:         url,
		Title:       "Budget Vote",
		Headings:    []string{"Budget Vote"},
		TextContent: "The council approved the annual budget.",
		TextPruned:  "The council approved the annual budget.",
		Threshold:   1.5,
		Links:       []string{"http://example.com/archive"},
		Resources:   []string{"http://example.com/main.css"},
		Stats: webextract.DomStatistics{
			Tags:   map[string]int{"p": 2, "html": 1},
			Depths: map[int]int{0: 1, 2: 2},
		},
		Meta:     webextract.PageMeta{Description: "Council news."},
		MimeType: "text/html",
		Encoding: "utf-8",
	}
}

func TestPageService_CreateRecord(t *testing.T) {
	t.Parallel()

	t.Run("generates ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		rec := &webextract.Record{Content: testContent("http://example.com/news")}
		err := svc.CreateRecord(context.Background(), rec)
		require.NoError(t, err)

		assert.NotEmpty(t, rec.ID)
		assert.NotEmpty(t, rec.ContentHash)
		assert.False(t, rec.ExtractedAt.IsZero())
	})

	t.Run("returns EINVALID for record without URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.CreateRecord(context.Background(), &webextract.Record{})
		require.Error(t, err)
		assert.Equal(t, webextract.EINVALID, webextract.ErrorCode(err))
	})

	t.Run("identical text yields identical hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		a := &webextract.Record{Content: testContent("http://example.com/a")}
		b := &webextract.Record{Content: testContent("http://example.com/b")}
		require.NoError(t, svc.CreateRecord(ctx, a))
		require.NoError(t, svc.CreateRecord(ctx, b))

		assert.Equal(t, a.ContentHash, b.ContentHash)
	})
}

func TestPageService_FindRecordByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips all fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		rec := &webextract.Record{Content: testContent("http://example.com/news")}
		require.NoError(t, svc.CreateRecord(ctx, rec))

		found, err := svc.FindRecordByID(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
		assert.Equal(t, rec.ContentHash, found.ContentHash)
		assert.Equal(t, rec.Content.URL, found.Content.URL)
		assert.Equal(t, rec.Content.Title, found.Content.Title)
		assert.Equal(t, rec.Content.Headings, found.Content.Headings)
		assert.Equal(t, rec.Content.TextContent, found.Content.TextContent)
		assert.Equal(t, rec.Content.TextPruned, found.Content.TextPruned)
		assert.Equal(t, rec.Content.Threshold, found.Content.Threshold)
		assert.Equal(t, rec.Content.Links, found.Content.Links)
		assert.Equal(t, rec.Content.Resources, found.Content.Resources)
		assert.Equal(t, rec.Content.Stats, found.Content.Stats)
		assert.Equal(t, rec.Content.Meta, found.Content.Meta)
		assert.Equal(t, rec.Content.MimeType, found.Content.MimeType)
		assert.Equal(t, rec.Content.Encoding, found.Content.Encoding)
	})

	t.Run("returns ENOTFOUND when missing", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		_, err := svc.FindRecordByID(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, webextract.ENOTFOUND, webextract.ErrorCode(err))
	})
}

func TestPageService_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			rec := &webextract.Record{Content: testContent(fmt.Sprintf("http://example.com/p%d", i))}
			require.NoError(t, svc.CreateRecord(ctx, rec))
		}

		url := "http://example.com/p1"
		recs, err := svc.FindRecords(ctx, webextract.RecordFilter{URL: &url})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, url, recs[0].Content.URL)
	})

	t.Run("filters by mimetype", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		html := &webextract.Record{Content: testContent("http://example.com/page")}
		require.NoError(t, svc.CreateRecord(ctx, html))

		plain := testContent("http://example.com/readme")
		plain.MimeType = "text/plain"
		require.NoError(t, svc.CreateRecord(ctx, &webextract.Record{Content: plain}))

		mt := "text/plain"
		recs, err := svc.FindRecords(ctx, webextract.RecordFilter{MimeType: &mt})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "http://example.com/readme", recs[0].Content.URL)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			rec := &webextract.Record{Content: testContent(fmt.Sprintf("http://example.com/p%d", i))}
			require.NoError(t, svc.CreateRecord(ctx, rec))
		}

		recs, err := svc.FindRecords(ctx, webextract.RecordFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, recs, 2)

		recs, err = svc.FindRecords(ctx, webextract.RecordFilter{Limit: 10, Offset: 4})
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("empty result is empty", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		recs, err := svc.FindRecords(context.Background(), webextract.RecordFilter{})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestPageService_DeleteRecord(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))
		ctx := context.Background()

		rec := &webextract.Record{Content: testContent("http://example.com/news")}
		require.NoError(t, svc.CreateRecord(ctx, rec))

		require.NoError(t, svc.DeleteRecord(ctx, rec.ID))

		_, err := svc.FindRecordByID(ctx, rec.ID)
		require.Error(t, err)
		assert.Equal(t, webextract.ENOTFOUND, webextract.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPageService(setupTestDB(t))

		err := svc.DeleteRecord(context.Background(), "no-such-id")
		require.Error(t, err)
		assert.Equal(t, webextract.ENOTFOUND, webextract.ErrorCode(err))
	})
}
