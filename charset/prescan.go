package charset

import (
	"strings"

	"github.com/fwojciec/webextract"
)

// prescanLimit caps the prescan window. Anything past the first KiB is
// never inspected, keeping the scan O(1) on adversarial input.
const prescanLimit = 1024

// Prescan scans up to the first 1024 bytes of a page for a usable
// <meta> charset declaration and canonicalizes it. The first meta tag
// in document order that yields a recognizable label wins. Malformed
// markup is skipped, never reported: the scan either finds a usable
// declaration or reports none.
func Prescan(b []byte) (webextract.Encoding, bool) {
	label, ok := prescanLabel(b)
	if !ok {
		return "", false
	}
	return canonicalizeMetaLabel(label)
}

// canonicalizeMetaLabel resolves a raw meta charset label. A result in
// the utf-16 family is forced to utf-8: a document that really were
// UTF-16 could not have been prescanned as ASCII-compatible bytes, so
// the label describes intent, not reality.
func canonicalizeMetaLabel(label string) (webextract.Encoding, bool) {
	enc, ok := Lookup(label)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(string(enc), "utf-16") {
		enc = "utf-8"
	}
	return enc, true
}

// Attribute identities the meta scanner cares about. Names are matched
// incrementally against these targets as each character arrives, so no
// attribute name is ever buffered.
var metaAttrNames = [3]string{"charset", "content", "http-equiv"}

const (
	attrCharset = iota
	attrContent
	attrHTTPEquiv
	attrOther
)

// metaTag accumulates the interesting attributes of one <meta> tag.
// Only the first occurrence of each attribute counts.
type metaTag struct {
	charset      string
	content      string
	httpEquiv    string
	hasCharset   bool
	hasContent   bool
	hasHTTPEquiv bool
}

// usableLabel applies the meta charset rules once the tag is complete:
// a bare charset attribute wins if it canonicalizes; otherwise an
// http-equiv="content-type" tag may carry a charset= parameter inside
// its content attribute.
func (m *metaTag) usableLabel() (string, bool) {
	if m.hasCharset {
		label := strings.ToLower(strings.TrimSpace(m.charset))
		if _, ok := Lookup(label); ok {
			return label, true
		}
	}
	if m.hasHTTPEquiv && m.hasContent && strings.EqualFold(strings.TrimSpace(m.httpEquiv), "content-type") {
		if label, ok := charsetParam(m.content); ok {
			if _, ok := Lookup(label); ok {
				return label, true
			}
		}
	}
	return "", false
}

// prescanLabel runs the byte state machine and returns the first
// usable raw charset label, lowercased. It never fails on malformed
// markup; broken constructs are stepped over.
func prescanLabel(b []byte) (string, bool) {
	limit := min(len(b), prescanLimit)

	i := 0
	for i < limit {
		if b[i] != '<' {
			i++
			continue
		}
		// Comments are skipped structurally; the terminating --> may
		// share dashes with the opener (<!--> ends immediately).
		if hasPrefixAt(b, limit, i+1, "!--") {
			end := indexFrom(b, limit, i+2, "-->")
			if end < 0 {
				return "", false
			}
			i = end + 3
			continue
		}
		// Other markup declarations and processing instructions run to
		// the next '>'.
		if i+1 < limit && (b[i+1] == '!' || b[i+1] == '?' || b[i+1] == '/') {
			i = skipToTagEnd(b, limit, i+2)
			continue
		}
		if i+1 < limit && isASCIILetter(b[i+1]) {
			var ok bool
			var label string
			label, ok, i = scanTag(b, limit, i+1)
			if ok {
				return label, true
			}
			continue
		}
		i++
	}
	return "", false
}

// scanTag consumes one start tag beginning at the first tag-name byte.
// The tag name is matched letter-by-letter against "meta"; attribute
// scanning collects values only for meta tags but quote handling is
// applied to every tag so a '>' inside a quoted value never terminates
// the scan early. Returns a usable label if this tag produced one, and
// the position after the tag.
func scanTag(b []byte, limit, i int) (string, bool, int) {
	const meta = "meta"
	matched := 0
	for i < limit && isASCIILetter(b[i]) {
		c := lowerASCII(b[i])
		if matched >= 0 && matched < len(meta) && c == meta[matched] {
			matched++
		} else {
			matched = -1
		}
		i++
	}
	if i >= limit {
		return "", false, limit
	}
	// "meta" must be complete and delimited by whitespace, '/' or '>'.
	isMeta := matched == len(meta) && (isSpace(b[i]) || b[i] == '/' || b[i] == '>')

	var tag metaTag
	for i < limit {
		// Between attributes: skip whitespace and stray slashes.
		for i < limit && (isSpace(b[i]) || b[i] == '/') {
			i++
		}
		if i >= limit {
			return "", false, limit
		}
		if b[i] == '>' {
			i++
			if isMeta {
				if label, ok := tag.usableLabel(); ok {
					return label, true, i
				}
			}
			return "", false, i
		}
		i = scanAttribute(b, limit, i, isMeta, &tag)
	}
	return "", false, limit
}

// scanAttribute consumes one attribute. The name is compared
// incrementally against the three interesting names; the value is
// buffered only when one of them matched in full.
func scanAttribute(b []byte, limit, i int, collect bool, tag *metaTag) int {
	// alive[k] tracks whether metaAttrNames[k] still matches the name
	// seen so far; pos is how many name characters have arrived.
	alive := [3]bool{true, true, true}
	pos := 0
	for i < limit {
		c := b[i]
		if isSpace(c) || c == '/' || c == '=' || c == '>' {
			break
		}
		lc := lowerASCII(c)
		for k := range metaAttrNames {
			if alive[k] {
				if pos >= len(metaAttrNames[k]) || metaAttrNames[k][pos] != lc {
					alive[k] = false
				}
			}
		}
		pos++
		i++
	}
	which := attrOther
	for k := range metaAttrNames {
		if alive[k] && pos == len(metaAttrNames[k]) {
			which = k
			break
		}
	}

	for i < limit && isSpace(b[i]) {
		i++
	}
	if i >= limit || b[i] != '=' {
		// Valueless attribute; nothing to record.
		return i
	}
	i++
	for i < limit && isSpace(b[i]) {
		i++
	}
	if i >= limit {
		return limit
	}

	var val []byte
	buffer := collect && which != attrOther
	if b[i] == '"' || b[i] == '\'' {
		quote := b[i]
		i++
		for i < limit && b[i] != quote {
			if buffer {
				val = append(val, b[i])
			}
			i++
		}
		if i < limit {
			i++ // closing quote
		}
	} else {
		for i < limit && !isSpace(b[i]) && b[i] != '>' {
			if buffer {
				val = append(val, b[i])
			}
			i++
		}
	}

	if buffer {
		switch which {
		case attrCharset:
			if !tag.hasCharset {
				tag.charset, tag.hasCharset = string(val), true
			}
		case attrContent:
			if !tag.hasContent {
				tag.content, tag.hasContent = string(val), true
			}
		case attrHTTPEquiv:
			if !tag.hasHTTPEquiv {
				tag.httpEquiv, tag.hasHTTPEquiv = string(val), true
			}
		}
	}
	return i
}

// charsetParam extracts the value of a charset= parameter from a
// content attribute value ("text/html; charset=utf-8"). The value may
// be quoted or unquoted, whitespace-tolerant, terminated by the
// matching quote, whitespace, ';' or end of string. Returns the label
// lowercased.
func charsetParam(content string) (string, bool) {
	s := strings.ToLower(content)
	from := 0
	for {
		idx := strings.Index(s[from:], "charset")
		if idx < 0 {
			return "", false
		}
		i := from + idx + len("charset")
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) || s[i] != '=' {
			from += idx + len("charset")
			continue
		}
		i++
		for i < len(s) && isSpace(s[i]) {
			i++
		}
		if i >= len(s) {
			return "", false
		}
		start := i
		if s[i] == '"' || s[i] == '\'' {
			quote := s[i]
			i++
			start = i
			for i < len(s) && s[i] != quote {
				i++
			}
			if i >= len(s) {
				return "", false // unterminated quote
			}
			return s[start:i], i > start
		}
		for i < len(s) && !isSpace(s[i]) && s[i] != ';' {
			i++
		}
		return s[start:i], i > start
	}
}

func skipToTagEnd(b []byte, limit, i int) int {
	for i < limit && b[i] != '>' {
		i++
	}
	if i < limit {
		i++
	}
	return i
}

func hasPrefixAt(b []byte, limit, i int, prefix string) bool {
	if i+len(prefix) > limit {
		return false
	}
	for k := 0; k < len(prefix); k++ {
		if b[i+k] != prefix[k] {
			return false
		}
	}
	return true
}

func indexFrom(b []byte, limit, i int, needle string) int {
	for ; i+len(needle) <= limit; i++ {
		if hasPrefixAt(b, limit, i, needle) {
			return i
		}
	}
	return -1
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
