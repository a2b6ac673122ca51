package gallery

import (
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"autogallery/pkg/logger"
)

// TagName is the placeholder recognised in content text.
const TagName = "auto-gallery"

// The body may contain RootToken; any other brace ends the tag.
var tagPattern = regexp.MustCompile(`\{` + regexp.QuoteMeta(TagName) +
	`((?:\s(?:[^{}]|` + regexp.QuoteMeta(RootToken) + `)*)?)\}`)

// Outcome classifies what happened to a single placeholder.
type Outcome string

const (
	OutcomeRendered   Outcome = "rendered"
	OutcomeEmpty      Outcome = "empty"
	OutcomeHidden     Outcome = "hidden"
	OutcomeSuppressed Outcome = "suppressed"
)

// Observer is notified once per processed placeholder.
type Observer interface {
	ObserveOccurrence(outcome Outcome)
}

// Options configures an Engine.
type Options struct {
	Defaults          Config
	LightboxStyleURL  string
	LightboxScriptURL string
	Observer          Observer
}

// Request is one content item handed to the engine.
type Request struct {
	Text        string
	Context     string
	ItemID      uint
	RequestPath string
	Assets      AssetSink
}

// Engine replaces {auto-gallery ...} placeholders with gallery markup. It holds no
// per-render state and may be shared between goroutines.
type Engine struct {
	opts Options
}

func NewEngine(opts Options) (*Engine, error) {
	if len(opts.Defaults.Extensions) == 0 {
		return nil, fmt.Errorf("gallery defaults must list at least one extension")
	}
	if opts.LightboxStyleURL == "" {
		opts.LightboxStyleURL = DefaultLightboxStyleURL
	}
	if opts.LightboxScriptURL == "" {
		opts.LightboxScriptURL = DefaultLightboxScriptURL
	}
	return &Engine{opts: opts}, nil
}

// Defaults returns the base configuration every placeholder starts from.
func (e *Engine) Defaults() Config {
	return e.opts.Defaults
}

// Process returns req.Text with every placeholder replaced. Instance tracking and
// asset bookkeeping live only for the duration of this call.
func (e *Engine) Process(req Request) string {
	if !strings.Contains(req.Text, "{"+TagName) {
		return req.Text
	}

	matches := tagPattern.FindAllStringSubmatchIndex(req.Text, -1)
	if len(matches) == 0 {
		return req.Text
	}

	p := &pass{
		engine: e,
		req:    req,
		guard:  NewInstanceGuard(),
	}

	var out strings.Builder
	out.Grow(len(req.Text))

	last := 0
	for _, m := range matches {
		out.WriteString(req.Text[last:m[0]])

		raw := ""
		if m[2] >= 0 {
			raw = req.Text[m[2]:m[3]]
		}
		out.WriteString(p.occurrence(raw))

		last = m[1]
	}
	out.WriteString(req.Text[last:])

	return out.String()
}

type pass struct {
	engine *Engine
	req    Request
	guard  *InstanceGuard

	stylesAdded       bool
	lightboxRequested bool
}

func (p *pass) occurrence(raw string) string {
	// editors often store quotes as entities
	attrs := ParseAttributes(html.UnescapeString(raw))

	instance, _ := attrs.Lookup("instance")
	once := false
	if v, ok := attrs.Lookup("once"); ok {
		once = ParseBool(v, false)
	}
	if !p.guard.ShouldRender(instance, once) {
		p.observe(OutcomeSuppressed, instance, "", 0)
		return ""
	}

	cfg := p.engine.opts.Defaults.WithOverrides(attrs)
	loc := p.locate(attrs, cfg)
	images := FindImages(loc, cfg.Extensions, cfg.BaseFS, cfg.Prefixes)

	p.ensureAssets(cfg)

	var out strings.Builder
	if cfg.ShowDebug {
		out.WriteString(debugBanner(loc.URL, p.req.Context, p.req.ItemID))
	}
	out.WriteString(Render(images, RenderOptions{
		Title:        loc.Title,
		ColClasses:   cfg.ColClasses,
		ShowCaptions: cfg.ShowCaptions,
		ShowEmpty:    cfg.ShowEmpty,
		Lightbox:     cfg.Lightbox,
		Style:        cfg.Style(),
	}))

	outcome := OutcomeRendered
	switch {
	case len(images) > 0:
	case cfg.ShowEmpty:
		outcome = OutcomeEmpty
	default:
		outcome = OutcomeHidden
	}
	p.observe(outcome, instance, loc.URL, len(images))

	return out.String()
}

func (p *pass) locate(attrs Attributes, cfg Config) Location {
	if folder, ok := attrs.Lookup("folder"); ok && folder != "" {
		return ResolveFolder(folder, cfg.BaseFS, cfg.BaseURL)
	}

	slug, ok := attrs.Lookup("slug")
	if !ok {
		slug = SlugFromPath(p.req.RequestPath)
	}
	return MapSlug(slug, cfg.BaseFS, cfg.BaseURL)
}

func (p *pass) ensureAssets(cfg Config) {
	sink := p.req.Assets
	if sink == nil {
		return
	}

	if cfg.Lightbox && !p.lightboxRequested {
		p.lightboxRequested = true
		if !sink.HasAsset(LightboxAsset) {
			sink.RegisterAsset(LightboxAsset, p.engine.opts.LightboxStyleURL, p.engine.opts.LightboxScriptURL)
		}
		sink.UseAsset(LightboxAsset)
		sink.AddInlineScript(lightboxInitScript)
	}

	if !p.stylesAdded {
		p.stylesAdded = true
		sink.AddInlineStyle(galleryStyles)
	}
}

func (p *pass) observe(outcome Outcome, instance, dirURL string, count int) {
	logger.Debug("Processed gallery placeholder", map[string]interface{}{
		"context":  p.req.Context,
		"item_id":  p.req.ItemID,
		"instance": instance,
		"dir_url":  dirURL,
		"images":   count,
		"outcome":  string(outcome),
	})

	if p.engine.opts.Observer != nil {
		p.engine.opts.Observer.ObserveOccurrence(outcome)
	}
}

func debugBanner(dirURL, context string, itemID uint) string {
	source := template.HTMLEscapeString(context)
	if itemID != 0 {
		source += fmt.Sprintf(" #%d", itemID)
	}
	return `<div class="alert alert-secondary ` + ContainerClass + `">` +
		`Looking for images in: <code>` + template.HTMLEscapeString(dirURL) + `</code>` +
		`<br><small>Context: ` + source + `</small>` +
		`</div>`
}
