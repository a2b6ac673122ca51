package registry

import (
	"sort"
	"strings"
	"sync"

	"autogallery/internal/plugin/host"
	pluginruntime "autogallery/internal/plugin/runtime"
)

type Factory func(host.Host) (pluginruntime.Feature, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

func Register(slug string, factory Factory) {
	cleaned := normalize(slug)
	if cleaned == "" || factory == nil {
		return
	}

	mu.Lock()
	factories[cleaned] = factory
	mu.Unlock()
}

func FactoryFor(slug string) (Factory, bool) {
	cleaned := normalize(slug)
	if cleaned == "" {
		return nil, false
	}

	mu.RLock()
	factory, ok := factories[cleaned]
	mu.RUnlock()
	return factory, ok
}

// Slugs returns the registered plugin slugs in sorted order.
func Slugs() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(factories))
	for slug := range factories {
		result = append(result, slug)
	}
	sort.Strings(result)
	return result
}

func normalize(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
