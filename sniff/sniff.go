// Package sniff determines a page's real content type when the
// declared type is absent, generic, or suspect. It implements the
// subset of MIME sniffing needed to tell HTML, plain text, feeds,
// images and binary payloads apart: an ordered byte-signature table
// with per-byte masks, plus a binary-content heuristic.
package sniff

import "strings"

// signature is one entry of the sniffing table. Pattern bytes are
// compared after masking, so 0xDF mask bytes make ASCII letters match
// case-insensitively and 0x00 bytes are fully "don't care".
type signature struct {
	pattern []byte
	mask    []byte

	// skipWS skips leading HTML whitespace before matching.
	skipWS bool

	// tagTerm requires the byte after the pattern to terminate a tag
	// (space or '>'), so "<html" matches but "<htmlx" does not.
	tagTerm bool

	mime string
}

// tagSig builds a case-insensitive markup signature with whitespace
// skipping and tag termination.
func tagSig(tag, mime string) signature {
	pattern := make([]byte, len(tag))
	mask := make([]byte, len(tag))
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			pattern[i] = c & 0xDF
			mask[i] = 0xDF
		} else {
			pattern[i] = c
			mask[i] = 0xFF
		}
	}
	return signature{pattern: pattern, mask: mask, skipWS: true, tagTerm: true, mime: mime}
}

// exactSig builds an exact-prefix signature.
func exactSig(pattern []byte, mime string) signature {
	mask := make([]byte, len(pattern))
	for i := range mask {
		mask[i] = 0xFF
	}
	return signature{pattern: pattern, mask: mask, mime: mime}
}

// signatures is consulted in order; more specific and structural
// entries come before generic ones, so the first match wins.
var signatures = []signature{
	tagSig("<!DOCTYPE html", "text/html"),
	tagSig("<html", "text/html"),
	tagSig("<head", "text/html"),
	tagSig("<script", "text/html"),
	tagSig("<iframe", "text/html"),
	tagSig("<h1", "text/html"),
	tagSig("<div", "text/html"),
	tagSig("<font", "text/html"),
	tagSig("<table", "text/html"),
	tagSig("<a", "text/html"),
	tagSig("<style", "text/html"),
	tagSig("<title", "text/html"),
	tagSig("<b", "text/html"),
	tagSig("<body", "text/html"),
	tagSig("<br", "text/html"),
	tagSig("<p", "text/html"),
	tagSig("<!--", "text/html"),
	tagSig("<rss", "application/rss+xml"),
	tagSig("<feed", "application/atom+xml"),
	{pattern: []byte("<?xml"), mask: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, skipWS: true, mime: "text/xml"},
	exactSig([]byte("%PDF-"), "application/pdf"),
	exactSig([]byte("%!PS-Adobe-"), "application/postscript"),
	// UTF BOMs mark text regardless of what follows.
	exactSig([]byte{0xFE, 0xFF}, "text/plain"),
	exactSig([]byte{0xFF, 0xFE}, "text/plain"),
	exactSig([]byte{0xEF, 0xBB, 0xBF}, "text/plain"),
	exactSig([]byte("GIF87a"), "image/gif"),
	exactSig([]byte("GIF89a"), "image/gif"),
	exactSig([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, "image/png"),
	exactSig([]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"),
	exactSig([]byte("BM"), "image/bmp"),
	{
		pattern: []byte{'R', 'I', 'F', 'F', 0x00, 0x00, 0x00, 0x00, 'W', 'E', 'B', 'P', 'V', 'P'},
		mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		mime:    "image/webp",
	},
	exactSig([]byte{0x00, 0x00, 0x01, 0x00}, "image/x-icon"),
	{
		pattern: []byte{'R', 'I', 'F', 'F', 0x00, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E'},
		mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF},
		mime:    "audio/wave",
	},
	exactSig([]byte("OggS\x00"), "application/ogg"),
	exactSig([]byte("ID3"), "audio/mpeg"),
	exactSig([]byte{0x1F, 0x8B, 0x08}, "application/x-gzip"),
	exactSig([]byte("PK\x03\x04"), "application/zip"),
	exactSig([]byte("Rar!\x1A\x07\x00"), "application/x-rar-compressed"),
}

// genericTypes are declared types that carry no information.
var genericTypes = map[string]bool{
	"":                    true,
	"unknown/unknown":     true,
	"application/unknown": true,
	"*/*":                 true,
}

// Sniff resolves the real content type of a page. It is total: every
// input yields a type, worst case application/octet-stream.
//
// Generic or absent declared types go through the signature table and
// then the binary heuristic. A declared text/plain with the classic
// mislabeling charsets (none, iso-8859-1, utf-8) is re-checked: a BOM
// proves text, otherwise the binary heuristic decides. Every other
// declared type is trusted verbatim.
func Sniff(declaredType, declaredCharset string, body []byte) string {
	dt := strings.ToLower(strings.TrimSpace(declaredType))

	if genericTypes[dt] {
		for _, sig := range signatures {
			if sig.match(body) {
				return sig.mime
			}
		}
		if looksBinary(body) {
			return "application/octet-stream"
		}
		return "text/plain"
	}

	if dt == "text/plain" {
		cs := strings.ToLower(strings.TrimSpace(declaredCharset))
		if cs == "" || cs == "iso-8859-1" || cs == "utf-8" {
			if hasTextBOM(body) {
				return "text/plain"
			}
			if looksBinary(body) {
				return "application/octet-stream"
			}
			return "text/plain"
		}
	}

	return dt
}

func (s signature) match(body []byte) bool {
	data := body
	if s.skipWS {
		i := 0
		for i < len(data) && isWS(data[i]) {
			i++
		}
		data = data[i:]
	}
	if len(data) < len(s.pattern) {
		return false
	}
	for i := range s.pattern {
		if data[i]&s.mask[i] != s.pattern[i] {
			return false
		}
	}
	if s.tagTerm {
		if len(data) == len(s.pattern) {
			return false
		}
		c := data[len(s.pattern)]
		return c == 0x20 || c == '>'
	}
	return true
}

func isWS(c byte) bool {
	return c == 0x09 || c == 0x0A || c == 0x0C || c == 0x0D || c == 0x20
}

// looksBinary reports whether the body contains any byte from the
// binary-data set {0x00-0x08, 0x0B, 0x0E-0x1A, 0x1C-0x1F}.
func looksBinary(body []byte) bool {
	for _, c := range body {
		switch {
		case c <= 0x08:
			return true
		case c == 0x0B:
			return true
		case c >= 0x0E && c <= 0x1A:
			return true
		case c >= 0x1C && c <= 0x1F:
			return true
		}
	}
	return false
}

func hasTextBOM(body []byte) bool {
	if len(body) >= 3 && body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
		return true
	}
	if len(body) >= 2 {
		if body[0] == 0xFE && body[1] == 0xFF {
			return true
		}
		if body[0] == 0xFF && body[1] == 0xFE {
			return true
		}
	}
	return false
}

// IsFeed reports whether a sniffed type names a syndication feed.
func IsFeed(mime string) bool {
	return mime == "application/rss+xml" || mime == "application/atom+xml"
}

// IsHTML reports whether a sniffed type is walkable HTML.
func IsHTML(mime string) bool {
	return mime == "text/html" || mime == "application/xhtml+xml"
}
