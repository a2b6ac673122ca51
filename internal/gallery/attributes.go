package gallery

import (
	"regexp"
	"strings"
)

var attributePattern = regexp.MustCompile(`([a-zA-Z0-9_\-]+)\s*=\s*("([^"]*)"|'([^']*)'|(\S+))`)

// Attributes maps lower-cased shortcode attribute names to their raw values.
type Attributes map[string]string

// Lookup returns the value stored for key and whether it was present.
func (a Attributes) Lookup(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	value, ok := a[strings.ToLower(key)]
	return value, ok
}

// ParseAttributes tokenizes the text between the tag name and the closing brace.
// Tokens look like key=value, key="value with spaces" or key='value'. Anything
// else is skipped, so the result is empty rather than an error for garbage input.
// When a key repeats, the first occurrence wins.
func ParseAttributes(raw string) Attributes {
	attrs := Attributes{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return attrs
	}

	for _, match := range attributePattern.FindAllStringSubmatch(raw, -1) {
		key := strings.ToLower(match[1])
		if _, exists := attrs[key]; exists {
			continue
		}

		var value string
		switch {
		case strings.HasPrefix(match[2], `"`) && len(match[2]) >= 2 && strings.HasSuffix(match[2], `"`):
			value = match[3]
		case strings.HasPrefix(match[2], `'`) && len(match[2]) >= 2 && strings.HasSuffix(match[2], `'`):
			value = match[4]
		default:
			// an unterminated quote falls through to the bare alternative
			if strings.HasPrefix(match[5], `"`) || strings.HasPrefix(match[5], `'`) {
				continue
			}
			value = match[5]
		}

		attrs[key] = value
	}

	return attrs
}
