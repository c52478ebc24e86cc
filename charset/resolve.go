package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/webextract"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Byte order marks.
var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// Resolve determines a page's real encoding and decodes its bytes to
// UTF-8. Precedence, first match wins:
//
//  1. UTF-16 BOM
//  2. UTF-8 BOM
//  3. declared charset (transport metadata), if it canonicalizes
//  4. meta prescan over the first 1024 bytes
//  5. statistical detection, defaulting to windows-1252
//
// The prescan and declared tiers refuse the replacement and
// x-user-defined sentinel labels outright: a page declaring either is
// declaring an untrustworthy label, so resolution moves on to the next
// tier. Resolve never fails; at worst it mis-decodes as windows-1252,
// which downstream consumers tolerate by design.
func Resolve(body []byte, declared string, det webextract.CharsetDetector) (string, webextract.Encoding) {
	if bytes.HasPrefix(body, bomUTF16BE) {
		return decodeUTF16(body[2:], unicode.BigEndian), "utf-16be"
	}
	if bytes.HasPrefix(body, bomUTF16LE) {
		return decodeUTF16(body[2:], unicode.LittleEndian), "utf-16le"
	}
	if bytes.HasPrefix(body, bomUTF8) {
		return decodeUTF8(body[3:]), "utf-8"
	}

	if label := strings.ToLower(strings.TrimSpace(declared)); label != "" && !isSentinelLabel(label) {
		if enc, ok := Lookup(label); ok && !isSentinel(enc) {
			return decode(body, enc), enc
		}
	}

	if label, ok := prescanLabel(body); ok && !isSentinelLabel(label) {
		if enc, ok := canonicalizeMetaLabel(label); ok && !isSentinel(enc) {
			return decode(body, enc), enc
		}
	}

	if det != nil {
		if label, _, err := det.DetectBest(body); err == nil && label != "" {
			if enc, ok := Lookup(strings.ToLower(label)); ok && !isSentinel(enc) {
				return decode(body, enc), enc
			}
		}
	}

	return decode(body, "windows-1252"), "windows-1252"
}

func isSentinelLabel(label string) bool {
	return label == string(webextract.EncodingReplacement) ||
		label == string(webextract.EncodingXUserDefined)
}

func isSentinel(enc webextract.Encoding) bool {
	return enc == webextract.EncodingReplacement || enc == webextract.EncodingXUserDefined
}

// decode transcodes body to UTF-8 using the canonical encoding name.
// htmlindex knows every canonical WHATWG name, so no runtime-specific
// codec remapping is needed; should a codec ever be missing, or the
// transcode itself fail, the bytes are re-read as windows-1252 rather
// than aborting the pipeline.
func decode(body []byte, enc webextract.Encoding) string {
	if enc == "utf-8" {
		return decodeUTF8(bytes.TrimPrefix(body, bomUTF8))
	}
	e, err := htmlindex.Get(string(enc))
	if err != nil {
		return decodeLatin(body)
	}
	out, err := e.NewDecoder().Bytes(body)
	if err != nil {
		return decodeLatin(body)
	}
	return stripBOM(toValidUTF8(out))
}

// decodeLatin is the unconditional worst-case fallback. windows-1252
// maps every byte to a code point, so this cannot fail.
func decodeLatin(body []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(body)
	if err != nil {
		// Unreachable for a single-byte charmap, but degrade anyway.
		return toValidUTF8(body)
	}
	return stripBOM(string(out))
}

func decodeUTF16(body []byte, e unicode.Endianness) string {
	dec := unicode.UTF16(e, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(body)
	if err != nil {
		return decodeLatin(body)
	}
	return stripBOM(toValidUTF8(out))
}

func decodeUTF8(body []byte) string {
	if utf8.Valid(body) {
		return stripBOM(string(body))
	}
	return stripBOM(strings.ToValidUTF8(string(body), string(utf8.RuneError)))
}

func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}

// stripBOM removes a residual U+FEFF after decoding; the decoded
// document is BOM-free by contract.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
