// README: Download names for exported quotes.
package export

import (
	"strings"
	"unicode"
)

// Filename turns a trip name into "<name>_quote.<ext>". Whitespace runs become
// underscores and anything unsafe in a header or path is dropped.
func Filename(tripName, ext string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(tripName) {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.':
		default:
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte('_')
		}
		space = false
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" {
		name = "trip"
	}
	return name + "_quote." + ext
}
