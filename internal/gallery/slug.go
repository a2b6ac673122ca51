package gallery

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9-]+`)

	apostrophes = strings.NewReplacer(
		"’", "'",
		"‘", "'",
		"`", "'",
		"´", "'",
	)
)

// SlugFromPath derives a slug from the last non-empty segment of a request path.
func SlugFromPath(path string) string {
	last := ""
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			last = segment
		}
	}

	slug := slugDisallowed.ReplaceAllString(strings.ToLower(last), "-")
	return strings.Trim(slug, "-")
}

// SlugToFolderName turns "the-beatles" into "The-Beatles". Curly quotes, back-ticks
// and acute accents become a straight apostrophe so "guns-n’-roses" and
// "guns-n'-roses" resolve to the same folder.
func SlugToFolderName(slug string) string {
	if slug == "" {
		return ""
	}

	parts := strings.Split(slug, "-")
	pretty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		pretty = append(pretty, titleCase(apostrophes.Replace(part)))
	}
	return strings.Join(pretty, "-")
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
// A Caser keeps state, so a fresh one is built per call.
func titleCase(value string) string {
	return cases.Title(language.Und).String(value)
}

// escapeSegment percent-encodes a single path segment, spaces included, leaving
// only unreserved characters intact.
func escapeSegment(segment string) string {
	return strings.ReplaceAll(url.QueryEscape(segment), "+", "%20")
}
