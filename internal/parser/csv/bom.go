package csv

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\uFEFF"

// NormalizeHeaders returns canonical column names: surrounding space is
// trimmed, a UTF-8 BOM on the first cell is removed and accents are folded
// away ("município" -> "municipio") so lookups by the expected column names
// are stable. Case is preserved.
func NormalizeHeaders(h []string) []string {
	out := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		out[i] = foldASCII(c)
	}
	return out
}

func foldASCII(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
