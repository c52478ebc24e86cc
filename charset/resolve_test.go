package charset_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/webextract"
	"github.com/fwojciec/webextract/charset"
	"github.com/fwojciec/webextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_UTF8BOM(t *testing.T) {
	t.Parallel()

	body := append([]byte{0xEF, 0xBB, 0xBF}, []byte("héllo")...)

	text, enc := charset.Resolve(body, "", nil)

	assert.Equal(t, webextract.Encoding("utf-8"), enc)
	assert.Equal(t, "héllo", text)
	assert.False(t, strings.ContainsRune(text, '\ufeff'), "BOM must be absent from output")
}

func TestResolve_UTF16BOM(t *testing.T) {
	t.Parallel()

	t.Run("big endian", func(t *testing.T) {
		t.Parallel()

		// "hi" as UTF-16BE with BOM.
		body := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}

		text, enc := charset.Resolve(body, "", nil)

		assert.Equal(t, webextract.Encoding("utf-16be"), enc)
		assert.Equal(t, "hi", text)
	})

	t.Run("little endian", func(t *testing.T) {
		t.Parallel()

		body := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}

		text, enc := charset.Resolve(body, "", nil)

		assert.Equal(t, webextract.Encoding("utf-16le"), enc)
		assert.Equal(t, "hi", text)
	})
}

func TestResolve_DeclaredCharsetWins(t *testing.T) {
	t.Parallel()

	// 0xE4 is ä in iso-8859-1, which canonicalizes to windows-1252.
	body := []byte{'s', 'p', 0xE4, 't'}

	text, enc := charset.Resolve(body, "ISO-8859-1", nil)

	assert.Equal(t, webextract.Encoding("windows-1252"), enc)
	assert.Equal(t, "spät", text)
}

func TestResolve_DeclaredBeatsPrescan(t *testing.T) {
	t.Parallel()

	body := []byte(`<meta charset="koi8-r"><p>hi</p>`)

	_, enc := charset.Resolve(body, "utf-8", nil)

	assert.Equal(t, webextract.Encoding("utf-8"), enc)
}

func TestResolve_PrescanUsedWhenNoDeclaration(t *testing.T) {
	t.Parallel()

	body := []byte(`<meta charset="windows-1251"><p>hi</p>`)

	_, enc := charset.Resolve(body, "", nil)

	assert.Equal(t, webextract.Encoding("windows-1251"), enc)
}

func TestResolve_RejectsSentinelLabels(t *testing.T) {
	t.Parallel()

	t.Run("x-user-defined from prescan falls through", func(t *testing.T) {
		t.Parallel()

		body := []byte(`<meta charset="x-user-defined">abc`)
		det := &mock.CharsetDetector{
			DetectBestFn: func(b []byte) (string, int, error) {
				return "koi8-r", 80, nil
			},
		}

		_, enc := charset.Resolve(body, "", det)

		assert.Equal(t, webextract.Encoding("koi8-r"), enc)
	})

	t.Run("replacement-family declared label falls through", func(t *testing.T) {
		t.Parallel()

		body := []byte("plain ascii")

		_, enc := charset.Resolve(body, "hz-gb-2312", nil)

		assert.Equal(t, webextract.Encoding("windows-1252"), enc)
	})
}

func TestResolve_StatisticalFallback(t *testing.T) {
	t.Parallel()

	body := []byte("no declarations anywhere")
	det := &mock.CharsetDetector{
		DetectBestFn: func(b []byte) (string, int, error) {
			return "UTF-8", 100, nil
		},
	}

	_, enc := charset.Resolve(body, "", det)

	assert.Equal(t, webextract.Encoding("utf-8"), enc)
}

func TestResolve_DefaultsToWindows1252(t *testing.T) {
	t.Parallel()

	body := []byte{'c', 'a', 'f', 0xE9}

	text, enc := charset.Resolve(body, "", nil)

	assert.Equal(t, webextract.Encoding("windows-1252"), enc)
	assert.Equal(t, "café", text)
}

func TestResolve_NeverInvalidUTF8(t *testing.T) {
	t.Parallel()

	// Garbage declared as utf-8 must still come out as valid UTF-8.
	body := []byte{0xFF, 0xFE, 0xFD, 'a'}

	text, _ := charset.Resolve(body[2:], "utf-8", nil)

	require.True(t, utf8.ValidString(text))
}
