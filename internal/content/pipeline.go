package content

import (
	"fmt"
	"strings"
	"sync"

	"autogallery/internal/assets"
	"autogallery/pkg/logger"
)

// Item is a piece of stored content on its way to the page.
type Item struct {
	ID      uint
	Context string
	Text    string
}

// Environment carries what a preparer may need about the current request.
type Environment struct {
	RequestPath string
	Assets      *assets.Collector
}

// Preparer rewrites an item before it is rendered. Implementations must not keep
// state between calls since one preparer serves every request.
type Preparer interface {
	Name() string
	Prepare(env Environment, item *Item) error
}

// Sanitizer cleans untrusted markup. *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

// Pipeline sanitizes content and then passes it through the registered preparers
// in registration order.
type Pipeline struct {
	mu        sync.RWMutex
	sanitizer Sanitizer
	preparers []Preparer
}

func NewPipeline(sanitizer Sanitizer) *Pipeline {
	return &Pipeline{sanitizer: sanitizer}
}

// Register adds a preparer. A preparer with the same name replaces the old one in place.
func (p *Pipeline) Register(preparer Preparer) error {
	if p == nil {
		return fmt.Errorf("pipeline is not initialised")
	}
	if preparer == nil {
		return fmt.Errorf("preparer is required")
	}

	name := strings.TrimSpace(preparer.Name())
	if name == "" {
		return fmt.Errorf("preparer name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, existing := range p.preparers {
		if existing.Name() == name {
			p.preparers[i] = preparer
			return nil
		}
	}
	p.preparers = append(p.preparers, preparer)
	return nil
}

// Unregister removes the preparer with the given name, if any.
func (p *Pipeline) Unregister(name string) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, existing := range p.preparers {
		if existing.Name() == name {
			p.preparers = append(p.preparers[:i], p.preparers[i+1:]...)
			return
		}
	}
}

// Names lists the registered preparers in execution order.
func (p *Pipeline) Names() []string {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.preparers))
	for _, preparer := range p.preparers {
		names = append(names, preparer.Name())
	}
	return names
}

// Run prepares item in place. A failing or panicking preparer is logged and
// skipped; the item keeps the text it had before that preparer ran.
func (p *Pipeline) Run(env Environment, item *Item) {
	if p == nil || item == nil {
		return
	}

	p.mu.RLock()
	sanitizer := p.sanitizer
	preparers := make([]Preparer, len(p.preparers))
	copy(preparers, p.preparers)
	p.mu.RUnlock()

	if sanitizer != nil {
		item.Text = sanitizer.Sanitize(item.Text)
	}

	for _, preparer := range preparers {
		before := item.Text
		if err := runPreparer(preparer, env, item); err != nil {
			item.Text = before
			logger.Error(err, "Content preparer failed", map[string]interface{}{
				"preparer": preparer.Name(),
				"context":  item.Context,
				"item_id":  item.ID,
			})
		}
	}
}

func runPreparer(preparer Preparer, env Environment, item *Item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("preparer panicked: %v", r)
		}
	}()
	return preparer.Prepare(env, item)
}
