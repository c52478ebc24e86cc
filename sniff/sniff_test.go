package sniff_test

import (
	"testing"

	"github.com/fwojciec/webextract/sniff"
	"github.com/stretchr/testify/assert"
)

func TestSniff_GenericDeclaredType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		declared string
		body     []byte
		want     string
	}{
		{
			name:     "png signature",
			declared: "unknown/unknown",
			body:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00},
			want:     "image/png",
		},
		{
			name:     "gif signature",
			declared: "",
			body:     []byte("GIF89a......"),
			want:     "image/gif",
		},
		{
			name:     "jpeg signature",
			declared: "*/*",
			body:     []byte{0xFF, 0xD8, 0xFF, 0xE0},
			want:     "image/jpeg",
		},
		{
			name:     "doctype with leading whitespace",
			declared: "application/unknown",
			body:     []byte("\n\t  <!DOCTYPE html><html>"),
			want:     "text/html",
		},
		{
			name:     "html tag case-insensitive",
			declared: "",
			body:     []byte("<HTML><body>x</body>"),
			want:     "text/html",
		},
		{
			name:     "html tag requires terminator",
			declared: "",
			body:     []byte("<htmlish>"),
			want:     "text/plain",
		},
		{
			name:     "comment opener",
			declared: "",
			body:     []byte("<!-- hello -->"),
			want:     "text/html",
		},
		{
			name:     "rss feed",
			declared: "",
			body:     []byte(`<rss version="2.0"><channel></channel></rss>`),
			want:     "application/rss+xml",
		},
		{
			name:     "atom feed",
			declared: "",
			body:     []byte(`<feed xmlns="http://www.w3.org/2005/Atom"></feed>`),
			want:     "application/atom+xml",
		},
		{
			name:     "xml declaration",
			declared: "",
			body:     []byte(`<?xml version="1.0"?><root/>`),
			want:     "text/xml",
		},
		{
			name:     "pdf",
			declared: "",
			body:     []byte("%PDF-1.7 ..."),
			want:     "application/pdf",
		},
		{
			name:     "gzip",
			declared: "",
			body:     []byte{0x1F, 0x8B, 0x08, 0x00},
			want:     "application/x-gzip",
		},
		{
			name:     "zip",
			declared: "",
			body:     []byte("PK\x03\x04...."),
			want:     "application/zip",
		},
		{
			name:     "no signature plain text",
			declared: "",
			body:     []byte("just some words\nand a line"),
			want:     "text/plain",
		},
		{
			name:     "no signature binary bytes",
			declared: "",
			body:     []byte{'a', 0x00, 'b'},
			want:     "application/octet-stream",
		},
		{
			name:     "empty body",
			declared: "",
			body:     nil,
			want:     "text/plain",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := sniff.Sniff(tt.declared, "", tt.body)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSniff_MislabeledTextPlain(t *testing.T) {
	t.Parallel()

	binary := []byte{'h', 'i', 0x00, 'x'}

	t.Run("binary bytes flip to octet-stream", func(t *testing.T) {
		t.Parallel()

		got := sniff.Sniff("text/plain", "utf-8", binary)
		assert.Equal(t, "application/octet-stream", got)
	})

	t.Run("utf-8 BOM is trusted as text", func(t *testing.T) {
		t.Parallel()

		withBOM := append([]byte{0xEF, 0xBB, 0xBF}, binary...)
		got := sniff.Sniff("text/plain", "utf-8", withBOM)
		assert.Equal(t, "text/plain", got)
	})

	t.Run("utf-16 BOM is trusted as text", func(t *testing.T) {
		t.Parallel()

		withBOM := append([]byte{0xFF, 0xFE}, binary...)
		got := sniff.Sniff("text/plain", "", withBOM)
		assert.Equal(t, "text/plain", got)
	})

	t.Run("exotic declared charset is trusted", func(t *testing.T) {
		t.Parallel()

		got := sniff.Sniff("text/plain", "shift_jis", binary)
		assert.Equal(t, "text/plain", got)
	})
}

func TestSniff_DeclaredTypeTrusted(t *testing.T) {
	t.Parallel()

	got := sniff.Sniff("Application/JSON", "", []byte("<html>"))
	assert.Equal(t, "application/json", got)
}

func TestIsFeed(t *testing.T) {
	t.Parallel()

	assert.True(t, sniff.IsFeed("application/rss+xml"))
	assert.True(t, sniff.IsFeed("application/atom+xml"))
	assert.False(t, sniff.IsFeed("text/html"))
}

func TestIsHTML(t *testing.T) {
	t.Parallel()

	assert.True(t, sniff.IsHTML("text/html"))
	assert.True(t, sniff.IsHTML("application/xhtml+xml"))
	assert.False(t, sniff.IsHTML("text/plain"))
}
