package assets

import (
	"html/template"
	"slices"
	"strings"
	"sync"
)

// Asset is a named stylesheet and script pair. Either URL may be empty.
type Asset struct {
	Name      string
	StyleURL  string
	ScriptURL string
}

// Collector gathers the assets requested while a page is prepared. One collector
// belongs to one page render, but it is safe for concurrent use.
type Collector struct {
	mu            sync.Mutex
	registry      map[string]Asset
	used          []string
	inlineStyles  []string
	inlineScripts []string
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{registry: make(map[string]Asset)}
}

// RegisterAsset records a named asset. The first registration of a name wins.
func (c *Collector) RegisterAsset(name, styleURL, scriptURL string) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registry == nil {
		c.registry = make(map[string]Asset)
	}
	if _, exists := c.registry[name]; exists {
		return
	}
	c.registry[name] = Asset{Name: name, StyleURL: styleURL, ScriptURL: scriptURL}
}

func (c *Collector) HasAsset(name string) bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.registry[strings.TrimSpace(name)]
	return ok
}

// UseAsset marks a registered asset for output. Unknown names are ignored and
// repeated calls have no further effect.
func (c *Collector) UseAsset(name string) {
	name = strings.TrimSpace(name)
	if c == nil || name == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.registry[name]; !ok {
		return
	}
	if slices.Contains(c.used, name) {
		return
	}
	c.used = append(c.used, name)
}

func (c *Collector) AddInlineStyle(css string) {
	if c == nil || strings.TrimSpace(css) == "" {
		return
	}
	c.mu.Lock()
	c.inlineStyles = append(c.inlineStyles, css)
	c.mu.Unlock()
}

func (c *Collector) AddInlineScript(js string) {
	if c == nil || strings.TrimSpace(js) == "" {
		return
	}
	c.mu.Lock()
	c.inlineScripts = append(c.inlineScripts, js)
	c.mu.Unlock()
}

// Used returns the assets marked for output in the order they were first used.
func (c *Collector) Used() []Asset {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Asset, 0, len(c.used))
	for _, name := range c.used {
		result = append(result, c.registry[name])
	}
	return result
}

func (c *Collector) InlineStyles() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.inlineStyles)
}

func (c *Collector) InlineScripts() []string {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.inlineScripts)
}

// Empty reports whether nothing was requested.
func (c *Collector) Empty() bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.used) == 0 && len(c.inlineStyles) == 0 && len(c.inlineScripts) == 0
}

// HeadHTML renders stylesheet links followed by a single inline style block.
// Inline content comes from trusted code and is written verbatim.
func (c *Collector) HeadHTML() template.HTML {
	var sb strings.Builder
	for _, asset := range c.Used() {
		if asset.StyleURL == "" {
			continue
		}
		sb.WriteString(`<link rel="stylesheet" href="` + template.HTMLEscapeString(asset.StyleURL) + `">` + "\n")
	}

	if styles := c.InlineStyles(); len(styles) > 0 {
		sb.WriteString("<style>\n" + strings.Join(styles, "\n") + "\n</style>\n")
	}

	return template.HTML(sb.String())
}

// BodyHTML renders script tags followed by the inline scripts, meant for the end
// of the document body.
func (c *Collector) BodyHTML() template.HTML {
	var sb strings.Builder
	for _, asset := range c.Used() {
		if asset.ScriptURL == "" {
			continue
		}
		sb.WriteString(`<script src="` + template.HTMLEscapeString(asset.ScriptURL) + `" defer></script>` + "\n")
	}

	for _, script := range c.InlineScripts() {
		sb.WriteString("<script>" + script + "</script>\n")
	}

	return template.HTML(sb.String())
}
