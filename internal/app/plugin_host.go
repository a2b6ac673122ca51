package app

import (
	"fmt"
	"strings"

	"autogallery/internal/config"
	"autogallery/internal/content"
	"autogallery/internal/plugin/host"
	"autogallery/internal/plugin/registry"
	pluginruntime "autogallery/internal/plugin/runtime"
	"autogallery/pkg/logger"

	// registers the built-in plugin factories
	_ "autogallery/plugins/autogallery"
)

type applicationHost struct {
	app *Application
}

var _ host.Host = (*applicationHost)(nil)

func (h *applicationHost) Config() *config.Config {
	return h.app.cfg
}

func (h *applicationHost) Content() *content.Pipeline {
	return h.app.pipeline
}

// activatePlugins builds and activates every registered plugin listed in PLUGINS.
func (a *Application) activatePlugins() error {
	a.runtime = pluginruntime.New()
	h := &applicationHost{app: a}

	for _, slug := range a.cfg.Plugins {
		slug = strings.ToLower(strings.TrimSpace(slug))
		if a.runtime.IsActive(slug) {
			continue
		}

		factory, ok := registry.FactoryFor(slug)
		if !ok {
			logger.Warn("Configured plugin is not available", map[string]interface{}{
				"plugin":    slug,
				"available": registry.Slugs(),
			})
			continue
		}

		feature, err := factory(h)
		if err != nil {
			return fmt.Errorf("failed to build plugin %s: %w", slug, err)
		}

		a.runtime.Register(slug, feature)
		if err := a.runtime.Activate(slug); err != nil {
			return err
		}

		logger.Info("Plugin activated", map[string]interface{}{"plugin": slug})
	}

	return nil
}
