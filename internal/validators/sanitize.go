package validators

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// plain restores the escapes bluemonday applies to ordinary punctuation.
// Angle brackets stay escaped so the result never carries markup.
var plain = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// SanitizeText strips all markup from user-written text and trims surrounding space.
// Entities are decoded before sanitising so encoded tags are stripped too.
func SanitizeText(s string) string {
	return strings.TrimSpace(plain.Replace(strict.Sanitize(html.UnescapeString(s))))
}
