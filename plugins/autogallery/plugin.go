package autogallery

import (
	"fmt"
	"strings"

	"autogallery/internal/content"
	"autogallery/internal/gallery"
	"autogallery/internal/plugin/host"
	"autogallery/internal/plugin/registry"
	pluginruntime "autogallery/internal/plugin/runtime"
	"autogallery/pkg/logger"
)

// Slug identifies the plugin in the registry and the content pipeline.
const Slug = "autogallery"

func init() {
	registry.Register(Slug, NewFeature)
}

type Feature struct {
	host host.Host
}

func NewFeature(h host.Host) (pluginruntime.Feature, error) {
	if h == nil {
		return nil, fmt.Errorf("host is required")
	}
	return &Feature{host: h}, nil
}

func (f *Feature) Activate() error {
	if f == nil || f.host == nil {
		return fmt.Errorf("feature host is not configured")
	}

	cfg := f.host.Config()
	if cfg == nil {
		return fmt.Errorf("host configuration is required")
	}
	pipeline := f.host.Content()
	if pipeline == nil {
		return fmt.Errorf("content pipeline is required")
	}

	initMetrics()

	engine, err := gallery.NewEngine(gallery.Options{
		Defaults:          cfg.GalleryDefaults(),
		LightboxStyleURL:  cfg.Gallery.LightboxStyleURL,
		LightboxScriptURL: cfg.Gallery.LightboxScriptURL,
		Observer:          metricsObserver{},
	})
	if err != nil {
		return fmt.Errorf("failed to build gallery engine: %w", err)
	}

	if err := pipeline.Register(NewPreparer(engine)); err != nil {
		return fmt.Errorf("failed to register gallery preparer: %w", err)
	}

	logger.Info("Auto gallery enabled", map[string]interface{}{
		"base_fs":  engine.Defaults().BaseFS,
		"base_url": engine.Defaults().BaseURL,
	})
	return nil
}

func (f *Feature) Deactivate() error {
	if f == nil || f.host == nil {
		return nil
	}

	if pipeline := f.host.Content(); pipeline != nil {
		pipeline.Unregister(Slug)
	}
	return nil
}

// Preparer runs the gallery engine over content items.
type Preparer struct {
	engine *gallery.Engine
}

func NewPreparer(engine *gallery.Engine) *Preparer {
	return &Preparer{engine: engine}
}

func (p *Preparer) Name() string {
	return Slug
}

func (p *Preparer) Prepare(env content.Environment, item *content.Item) error {
	if p == nil || p.engine == nil {
		return fmt.Errorf("gallery engine is not configured")
	}
	if !strings.Contains(item.Text, "{"+gallery.TagName) {
		return nil
	}

	var sink gallery.AssetSink
	if env.Assets != nil {
		sink = env.Assets
	}

	item.Text = p.engine.Process(gallery.Request{
		Text:        item.Text,
		Context:     item.Context,
		ItemID:      item.ID,
		RequestPath: env.RequestPath,
		Assets:      sink,
	})

	if itemsPrepared != nil {
		itemsPrepared.Inc()
	}
	return nil
}
