package charset_test

import (
	"testing"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/charset"
	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  webextract.Encoding
		found bool
	}{
		{"utf-8", "utf-8", true},
		{"utf8", "utf-8", true},
		{"latin1", "windows-1252", true},
		{"ascii", "windows-1252", true},
		{"us-ascii", "windows-1252", true},
		{"iso-8859-1", "windows-1252", true},
		{"shift_jis", "shift_jis", true},
		{"shift-jis", "shift_jis", true},
		{"sjis", "shift_jis", true},
		{"gb18030", "gb18030", true},
		{"gb2312", "gbk", true},
		{"x-user-defined", "windows-1252", true},
		{"iso-8859-8-i", "iso-8859-8", true},
		{"iso-8859-8-e", "iso-8859-8", true},
		{"hz-gb-2312", "replacement", true},
		{"utf-16", "utf-16le", true},
		{"unicodefffe", "utf-16be", true},
		{"bogus-label", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()

			got, ok := charset.Lookup(tt.label)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_CaseSensitive(t *testing.T) {
	t.Parallel()

	// Matching is case-sensitive by contract; callers fold case first.
	_, ok := charset.Lookup("SHIFT-JIS")
	assert.False(t, ok)

	_, ok = charset.Lookup("UTF-8")
	assert.False(t, ok)
}
