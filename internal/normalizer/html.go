package normalizer

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML drops markup, decodes entities and collapses whitespace
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		default:
			// tags separate words
			b.WriteByte(' ')
		}
	}
}
