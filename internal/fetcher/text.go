package fetcher

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// invisibleElements hold text that a browser does not render.
var invisibleElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// VisibleTextLength returns the number of characters of rendered text in
// an HTML document. Text inside script, style, noscript and template is
// ignored and runs of whitespace count as a single space.
func VisibleTextLength(body []byte) int {
	z := html.NewTokenizer(bytes.NewReader(body))
	var text strings.Builder
	hidden := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed document: count what was read.
			return collapsedLength(text.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if invisibleElements[string(name)] {
				hidden++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if invisibleElements[string(name)] && hidden > 0 {
				hidden--
			}
		case html.TextToken:
			if hidden == 0 {
				text.Write(z.Text())
				text.WriteByte(' ')
			}
		}
	}
}

// collapsedLength counts runes in s after collapsing whitespace.
func collapsedLength(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n := len(fields) - 1
	for _, f := range fields {
		n += utf8.RuneCountInString(f)
	}
	return n
}
