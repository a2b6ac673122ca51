package gallery

import (
	"html/template"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// ContainerClass scopes the gallery stylesheet.
	ContainerClass = "auto-gallery"
	// LightboxClass is the selector the lightbox script binds to.
	LightboxClass = "glightbox"
	// LightboxGroup groups thumbnails into one lightbox slideshow.
	LightboxGroup = "auto-gallery"
)

var (
	separatorRun  = regexp.MustCompile(`[_\-]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// StyleOverrides are emitted as CSS custom properties on the gallery container.
type StyleOverrides struct {
	ThumbMinWidth  string
	ThumbMaxWidth  string
	ThumbMinHeight string
	ThumbMaxHeight string
	ImageWidth     string
	ImageHeight    string
}

// Declarations returns escaped "--name:value" pairs for the non-empty fields.
func (s StyleOverrides) Declarations() []string {
	pairs := []struct {
		property string
		value    string
	}{
		{"--thumb-min-w", s.ThumbMinWidth},
		{"--thumb-max-w", s.ThumbMaxWidth},
		{"--thumb-min-h", s.ThumbMinHeight},
		{"--thumb-max-h", s.ThumbMaxHeight},
		{"--img-width", s.ImageWidth},
		{"--img-height", s.ImageHeight},
	}

	var decls []string
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		decls = append(decls, pair.property+":"+template.HTMLEscapeString(pair.value))
	}
	return decls
}

func (s StyleOverrides) attribute() string {
	decls := s.Declarations()
	if len(decls) == 0 {
		return ""
	}
	return ` style="` + strings.Join(decls, ";") + `"`
}

// RenderOptions controls the markup produced by Render.
type RenderOptions struct {
	Title        string
	ColClasses   string
	ShowCaptions bool
	ShowEmpty    bool
	Lightbox     bool
	Style        StyleOverrides
}

// Render builds the gallery grid. With no images it returns a notice naming the
// title, or nothing when ShowEmpty is off.
func Render(images []Image, opts RenderOptions) string {
	if len(images) == 0 {
		if !opts.ShowEmpty {
			return ""
		}
		return `<div class="alert alert-info ` + ContainerClass + `">No images found for <strong>` +
			template.HTMLEscapeString(opts.Title) + `</strong>.</div>`
	}

	colClasses := template.HTMLEscapeString(opts.ColClasses)

	lines := make([]string, 0, len(images)+2)
	lines = append(lines, `<div class="`+ContainerClass+`"`+opts.Style.attribute()+`><div class="row g-3">`)

	for _, img := range images {
		caption := template.HTMLEscapeString(FilenameToCaption(img.Name))
		src := template.HTMLEscapeString(img.URL)
		thumb := `<div class="thumb"><img src="` + src + `" alt="` + caption + `" loading="lazy" class="img-fluid"/></div>`

		var sb strings.Builder
		sb.WriteString(`<div class="` + colClasses + `">`)
		if opts.Lightbox {
			sb.WriteString(`<a href="` + src + `" class="` + LightboxClass + `" data-gallery="` + LightboxGroup + `"`)
			if opts.ShowCaptions {
				sb.WriteString(` data-title="` + caption + `"`)
			}
			sb.WriteString(`>` + thumb + `</a>`)
		} else {
			sb.WriteString(`<div class="gallery-item">` + thumb + `</div>`)
		}
		sb.WriteString(`</div>`)

		lines = append(lines, sb.String())
	}

	lines = append(lines, `</div></div>`)
	return strings.Join(lines, "\n")
}

// FilenameToCaption turns "my_song__title-01.png" into "My Song Title 01".
// Names with nothing left after cleanup become "Image".
func FilenameToCaption(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = separatorRun.ReplaceAllString(name, " ")
	name = whitespaceRun.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "Image"
	}
	return titleCase(name)
}
