package gallery

import (
	"slices"
	"strconv"
	"strings"
)

// RootToken in a base directory is replaced by Config.RootPath.
const RootToken = "{ROOT}"

// DefaultExtensions is used whenever an extension list comes out empty.
var DefaultExtensions = []string{"jpg", "jpeg", "png", "gif", "webp", "avif"}

const DefaultColClasses = "col-6 col-sm-4 col-md-3 col-lg-3"

// Config is the resolved configuration for one gallery occurrence.
type Config struct {
	Lightbox     bool
	BaseFS       string
	BaseURL      string
	Extensions   []string
	ColClasses   string
	ShowCaptions bool
	ShowEmpty    bool
	ShowDebug    bool
	Prefixes     []string

	ImageWidth     string
	ImageHeight    string
	ThumbMinWidth  string
	ThumbMaxWidth  string
	ThumbMinHeight string
	ThumbMaxHeight string

	// RootPath is inherited by every occurrence and cannot be overridden by attributes.
	RootPath string
}

// DefaultConfig mirrors the stock plugin settings, rooted at rootPath.
func DefaultConfig(rootPath string) Config {
	return Config{
		Lightbox:     true,
		BaseFS:       NormalizeBasePath(RootToken+"/images/music", rootPath),
		BaseURL:      "/images/music",
		Extensions:   slices.Clone(DefaultExtensions),
		ColClasses:   DefaultColClasses,
		ShowCaptions: true,
		ShowEmpty:    true,
		RootPath:     rootPath,
	}
}

// WithOverrides returns a copy of c where every field named in attrs is replaced
// by the coerced attribute value. Values that cannot be coerced keep the
// inherited setting.
func (c Config) WithOverrides(attrs Attributes) Config {
	out := c
	out.Extensions = slices.Clone(c.Extensions)
	out.Prefixes = slices.Clone(c.Prefixes)

	if v, ok := attrs.Lookup("lightbox"); ok {
		out.Lightbox = ParseBool(v, c.Lightbox)
	}
	if v, ok := attrs.Lookup("base_fs"); ok {
		out.BaseFS = NormalizeBasePath(v, c.RootPath)
	}
	if v, ok := attrs.Lookup("base_url"); ok {
		out.BaseURL = strings.TrimRight(v, "/")
	}
	if v, ok := attrs.Lookup("extensions"); ok {
		out.Extensions = ParseExtensions(v)
	}
	if v, ok := attrs.Lookup("col_classes"); ok {
		out.ColClasses = v
	}
	if v, ok := attrs.Lookup("show_captions"); ok {
		out.ShowCaptions = ParseBool(v, c.ShowCaptions)
	}
	if v, ok := attrs.Lookup("show_empty_message"); ok {
		out.ShowEmpty = ParseBool(v, c.ShowEmpty)
	}
	if v, ok := attrs.Lookup("show_debug_path"); ok {
		out.ShowDebug = ParseBool(v, c.ShowDebug)
	}
	if v, ok := attrs.Lookup("prefix"); ok {
		out.Prefixes = ParseList(v)
	}

	overrideString(attrs, "width", &out.ImageWidth)
	overrideString(attrs, "height", &out.ImageHeight)
	overrideString(attrs, "thumb_min_w", &out.ThumbMinWidth)
	overrideString(attrs, "thumb_max_w", &out.ThumbMaxWidth)
	overrideString(attrs, "thumb_min_h", &out.ThumbMinHeight)
	overrideString(attrs, "thumb_max_h", &out.ThumbMaxHeight)

	return out
}

// Style collects the per-instance CSS overrides.
func (c Config) Style() StyleOverrides {
	return StyleOverrides{
		ThumbMinWidth:  c.ThumbMinWidth,
		ThumbMaxWidth:  c.ThumbMaxWidth,
		ThumbMinHeight: c.ThumbMinHeight,
		ThumbMaxHeight: c.ThumbMaxHeight,
		ImageWidth:     c.ImageWidth,
		ImageHeight:    c.ImageHeight,
	}
}

func overrideString(attrs Attributes, key string, target *string) {
	if v, ok := attrs.Lookup(key); ok {
		*target = v
	}
}

// ParseBool accepts 1/0, true/false, yes/no and on/off. Other integers follow
// their truthiness; anything else returns fallback.
func ParseBool(value string, fallback bool) bool {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	switch trimmed {
	case "":
		return fallback
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		return n != 0
	}
	return fallback
}

// ParseList splits a comma separated list, dropping blank entries.
func ParseList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseExtensions lower-cases the entries of a comma separated list, strips a
// leading dot and falls back to DefaultExtensions when nothing remains.
func ParseExtensions(value string) []string {
	var out []string
	for _, ext := range ParseList(value) {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext != "" && !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	if len(out) == 0 {
		return slices.Clone(DefaultExtensions)
	}
	return out
}

// NormalizeBasePath substitutes RootToken and removes trailing slashes.
func NormalizeBasePath(value, rootPath string) string {
	if rootPath == "" {
		rootPath = "."
	}
	value = strings.ReplaceAll(value, RootToken, strings.TrimRight(rootPath, "/"))
	trimmed := strings.TrimRight(value, "/")
	if trimmed == "" && strings.HasPrefix(value, "/") {
		return "/"
	}
	return trimmed
}
