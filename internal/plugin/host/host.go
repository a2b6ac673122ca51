package host

import (
	"autogallery/internal/config"
	"autogallery/internal/content"
)

// Host exposes the application capabilities a plugin feature may use.
type Host interface {
	Config() *config.Config
	Content() *content.Pipeline
}
