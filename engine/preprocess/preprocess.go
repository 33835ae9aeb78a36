package preprocess

import (
	"strings"

	"github.com/google/uuid"
)

// PlaceholderPrefix starts every generated payload placeholder
const PlaceholderPrefix = "__unisql_payload_"

// Bulk insert markers, matched case-insensitively
var bulkMarkers = []string{"VALUES_BASE64", "VALUES_JSON"}

// Payloads maps a placeholder to the payload text it replaced
type Payloads map[string]string

// Result is the outcome of preprocessing one command. It is owned by the
// caller and never shared between commands.
type Result struct {
	Text      string
	Payloads  Payloads
	Corrected bool // the incert misspelling was rewritten
}

// Preprocess rewrites a raw command before tokenizing.
//
// If "incert" appears anywhere (any case) the whole command is lower-cased and
// every occurrence becomes "insert". The rewrite is a plain substring replace
// and also touches literals and payloads.
//
// If the command carries a VALUES_BASE64 or VALUES_JSON marker, the text
// between the first quote after the marker and the last quote before the
// final ')' is moved into Payloads and the quoted span is replaced by a quoted
// placeholder. Without a closing parenthesis or a quote pair the text passes
// through unchanged.
func Preprocess(raw string) *Result {
	res := &Result{
		Text:     raw,
		Payloads: Payloads{},
	}

	lowered := strings.ToLower(raw)
	if strings.Contains(lowered, "incert") {
		res.Text = strings.ReplaceAll(lowered, "incert", "insert")
		res.Corrected = true
	}

	res.Text = extractPayload(res.Text, res.Payloads)
	return res
}

func extractPayload(text string, payloads Payloads) string {
	markerEnd := findMarker(text)
	if markerEnd < 0 {
		return text
	}

	closeParen := strings.LastIndexByte(text, ')')
	if closeParen < markerEnd {
		return text
	}

	open := strings.IndexAny(text[markerEnd:closeParen], `'"`)
	if open < 0 {
		return text
	}
	open += markerEnd

	end := strings.LastIndexAny(text[open+1:closeParen], `'"`)
	if end < 0 {
		return text
	}
	end += open + 1

	placeholder := NewPlaceholder()
	payloads[placeholder] = text[open+1 : end]

	return text[:open] + "'" + placeholder + "'" + text[end+1:]
}

// findMarker returns the byte offset just past the first bulk marker, or -1
func findMarker(text string) int {
	upper := asciiUpper(text)
	best := -1
	bestEnd := -1
	for _, marker := range bulkMarkers {
		idx := strings.Index(upper, marker)
		if idx >= 0 && (best < 0 || idx < best) {
			best = idx
			bestEnd = idx + len(marker)
		}
	}
	return bestEnd
}

// asciiUpper upper-cases ASCII letters only so byte offsets stay valid
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// NewPlaceholder returns a fresh placeholder identifier
func NewPlaceholder() string {
	id := uuid.New()
	return PlaceholderPrefix + strings.ReplaceAll(id.String(), "-", "")
}

// IsPlaceholder reports whether s has the shape of a generated placeholder
func IsPlaceholder(s string) bool {
	return strings.HasPrefix(s, PlaceholderPrefix)
}
