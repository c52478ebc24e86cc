package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/webextract"
	main "github.com/fwojciec/webextract/cmd/webextract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Budget Vote</title>
<meta name="description" content="Council news.">
</head>
<body>
<h1>Budget Vote</h1>
<p>The council approved the annual budget on Tuesday after a long debate.</p>
<p>See the <a href="/archive">archive</a> for earlier coverage.</p>
</body>
</html>`

// newTestMain returns a Main pointed at a throwaway database.
func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func writeSample(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCmdExtract(t *testing.T) {
	t.Parallel()

	t.Run("emits extraction JSON", func(t *testing.T) {
		t.Parallel()

		file := writeSample(t, t.TempDir(), "page.html", samplePage)

		var stdout, stderr bytes.Buffer
		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", file, "--url", "http://example.com/news"},
			&stdout, &stderr)
		require.NoError(t, err)

		var content webextract.ExtractedContent
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &content))
		assert.Equal(t, "Budget Vote", content.Title)
		assert.Equal(t, "text/html", content.MimeType)
		assert.Equal(t, webextract.Encoding("utf-8"), content.Encoding)
		assert.Contains(t, content.TextContent, "approved the annual budget")
		assert.Equal(t, []string{"http://example.com/archive"}, content.Links)
		assert.Equal(t, "Council news.", content.Meta.Description)
	})

	t.Run("markdown output", func(t *testing.T) {
		t.Parallel()

		file := writeSample(t, t.TempDir(), "page.html", samplePage)

		var stdout, stderr bytes.Buffer
		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", file, "--markdown"},
			&stdout, &stderr)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "approved the annual budget")
	})

	t.Run("missing file reports error", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := newTestMain(t).Run(context.Background(),
			[]string{"extract", "/nonexistent/page.html"},
			&stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestCmdBatchAndList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSample(t, dir, "a.html", samplePage)
	writeSample(t, dir, "b.html", strings.Replace(samplePage, "Budget Vote", "Road Closures", 2))
	writeSample(t, dir, "notes.txt", "plain text notes about the meeting")

	m := newTestMain(t)

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{"batch", dir}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Stored 3 of 3 pages")

	stdout.Reset()
	err = m.Run(context.Background(), []string{"list"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Budget Vote")
	assert.Contains(t, stdout.String(), "Road Closures")
	assert.Contains(t, stdout.String(), "text/plain")
}

func TestCmdBatchSkipsDuplicateContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSample(t, dir, "a.html", samplePage)
	writeSample(t, dir, "copy.html", samplePage)

	var stdout, stderr bytes.Buffer
	err := newTestMain(t).Run(context.Background(), []string{"batch", dir}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Stored 1 of 2 pages")
	assert.Contains(t, stdout.String(), "1 duplicates")
}

func TestCmdShowAndDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSample(t, dir, "a.html", samplePage)

	m := newTestMain(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, m.Run(context.Background(), []string{"batch", dir}, &stdout, &stderr))

	// Pull the stored record's ID out of the list output.
	stdout.Reset()
	require.NoError(t, m.Run(context.Background(), []string{"list"}, &stdout, &stderr))
	fields := strings.Fields(stdout.String())
	require.NotEmpty(t, fields)
	id := fields[0]

	stdout.Reset()
	require.NoError(t, m.Run(context.Background(), []string{"show", id}, &stdout, &stderr))
	var rec webextract.Record
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rec))
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "Budget Vote", rec.Content.Title)
	assert.NotEmpty(t, rec.ContentHash)

	stdout.Reset()
	require.NoError(t, m.Run(context.Background(), []string{"delete", id}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Deleted record")

	stderr.Reset()
	err := m.Run(context.Background(), []string{"show", id}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, stderr.String(), "record not found")
}

func TestRun_NoCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := newTestMain(t).Run(context.Background(), nil, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
