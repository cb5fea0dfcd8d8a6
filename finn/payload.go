package finn

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/fwojciec/tomtejakt"
)

// The site has migrated its embedded page state between two encodings over
// time; both remain in the wild and both must decode to the same tree
// shape. Each variant is detected by a cheap marker probe and handled in
// full isolation so a third encoding can be added without touching either.
const (
	// Encoding A: one large JSON literal assigned to a script global.
	markerA = "window.__remixContext"
	// Encoding B: a doubly-encoded JSON string inside a streaming enqueue
	// call, referencing values by index in a flat array.
	markerB = "self.__next_f.push("
)

var encodingARe = regexp.MustCompile(`(?s)window\.__remixContext\s*=\s*(\{.*?\})\s*;?\s*</script>`)

// DecodePage extracts and decodes the embedded page-state payload from raw
// HTML, returning a plain nested tree regardless of which encoding the page
// uses. Decode failure is a hard EDECODE error for the page.
func DecodePage(html string) (any, error) {
	if strings.Contains(html, markerA) {
		return decodeEmbeddedObject(html)
	}
	return decodeReferenceStream(html)
}

// decodeEmbeddedObject handles Encoding A: capture the object literal up to
// the closing script tag and parse it as JSON.
func decodeEmbeddedObject(html string) (any, error) {
	m := encodingARe.FindStringSubmatch(html)
	if m == nil {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "embedded state object not found")
	}
	var tree any
	if err := json.Unmarshal([]byte(m[1]), &tree); err != nil {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "embedded state object is not valid JSON: %v", err)
	}
	return tree, nil
}

// decodeReferenceStream handles Encoding B: locate the enqueue call, scan
// the quoted payload honoring backslash escapes (the payload itself
// contains escaped quotes, so naive quote matching breaks), unescape it
// once by parsing it as a JSON string, parse the result as a JSON array,
// and resolve the indexed reference graph.
func decodeReferenceStream(html string) (any, error) {
	at := strings.Index(html, markerB)
	if at < 0 {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "no known page-state marker found")
	}
	rest := html[at+len(markerB):]

	open := strings.IndexByte(rest, '"')
	if open < 0 {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "reference stream payload has no opening quote")
	}
	quoted, err := scanQuoted(rest[open:])
	if err != nil {
		return nil, err
	}

	var inner string
	if err := json.Unmarshal([]byte(quoted), &inner); err != nil {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "reference stream payload is not a valid string literal: %v", err)
	}

	var refs []any
	if err := json.Unmarshal([]byte(inner), &refs); err != nil {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "reference stream is not a valid JSON array: %v", err)
	}

	return resolveGraph(refs)
}

// scanQuoted returns the leading quoted string of s, including both quote
// characters. s must start with a double quote.
func scanQuoted(s string) (string, error) {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return s[:i+1], nil
		}
	}
	return "", tomtejakt.Errorf(tomtejakt.EDECODE, "reference stream payload has no closing quote")
}
