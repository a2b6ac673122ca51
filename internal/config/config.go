package config

import (
	"fmt"
	"os"
	"strings"

	"autogallery/internal/gallery"
	"autogallery/pkg/validator"
)

type Config struct {
	// Database
	DBHost      string
	DBPort      string `validate:"required,numeric"`
	DBUser      string
	DBPassword  string
	DBName      string `validate:"required"`
	DBSSLMode   string
	DatabaseURL string

	// Server
	Port        string `validate:"required,numeric"`
	Environment string `validate:"oneof=development production test"`
	RootPath    string `validate:"required"`
	LogLevel    string `validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`

	// CORS
	CORSOrigins []string

	// Rate Limiting
	RateLimitRequests int `validate:"gte=0"`
	RateLimitWindow   int `validate:"gte=1"`
	RateLimitBurst    int `validate:"gte=0"`

	// Features
	EnableMetrics   bool
	SanitizeContent bool
	SeedDemoContent bool
	Plugins         []string

	// Site Meta
	SiteName string `validate:"no_html"`

	Gallery GalleryConfig
}

// GalleryConfig holds the site-wide gallery settings every shortcode starts from.
type GalleryConfig struct {
	EnableLightbox    bool
	BaseFS            string `validate:"required"`
	BaseURL           string `validate:"required,url_path"`
	Extensions        string `validate:"required,extension_list"`
	ColClasses        string `validate:"no_html"`
	ShowCaptions      bool
	ShowEmptyMessage  bool
	ShowDebugPath     bool
	FilenamePrefix    string
	ImageWidth        string `validate:"no_html"`
	ImageHeight       string `validate:"no_html"`
	ThumbMinWidth     string `validate:"no_html"`
	ThumbMaxWidth     string `validate:"no_html"`
	ThumbMinHeight    string `validate:"no_html"`
	ThumbMaxHeight    string `validate:"no_html"`
	LightboxStyleURL  string
	LightboxScriptURL string
}

func New() *Config {
	c := &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "gallery"),
		DBPassword: getEnv("DB_PASSWORD", "gallery"),
		DBName:     getEnv("DB_NAME", "gallerydb"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		RootPath:    getEnv("ROOT_PATH", "."),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// CORS
		CORSOrigins: getEnvAsList("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),

		// Rate Limiting
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Features
		EnableMetrics:   getEnvAsBool("ENABLE_METRICS", true),
		SanitizeContent: getEnvAsBool("CONTENT_SANITIZE", true),
		SeedDemoContent: getEnvAsBool("SEED_DEMO_CONTENT", false),
		Plugins:         getEnvAsList("PLUGINS", "autogallery"),

		// Site Meta
		SiteName: getEnv("SITE_NAME", "Auto Gallery"),

		Gallery: GalleryConfig{
			EnableLightbox:    getEnvAsBool("GALLERY_ENABLE_LIGHTBOX", true),
			BaseFS:            getEnv("GALLERY_BASE_FS", gallery.RootToken+"/images/music"),
			BaseURL:           getEnv("GALLERY_BASE_URL", "/images/music"),
			Extensions:        getEnv("GALLERY_EXTENSIONS", strings.Join(gallery.DefaultExtensions, ",")),
			ColClasses:        getEnv("GALLERY_COL_CLASSES", gallery.DefaultColClasses),
			ShowCaptions:      getEnvAsBool("GALLERY_SHOW_CAPTIONS", true),
			ShowEmptyMessage:  getEnvAsBool("GALLERY_SHOW_EMPTY_MESSAGE", true),
			ShowDebugPath:     getEnvAsBool("GALLERY_SHOW_DEBUG_PATH", false),
			FilenamePrefix:    getEnv("GALLERY_FILENAME_PREFIX", ""),
			ImageWidth:        getEnv("GALLERY_IMAGE_WIDTH", ""),
			ImageHeight:       getEnv("GALLERY_IMAGE_HEIGHT", ""),
			ThumbMinWidth:     getEnv("GALLERY_THUMB_MIN_W", ""),
			ThumbMaxWidth:     getEnv("GALLERY_THUMB_MAX_W", ""),
			ThumbMinHeight:    getEnv("GALLERY_THUMB_MIN_H", ""),
			ThumbMaxHeight:    getEnv("GALLERY_THUMB_MAX_H", ""),
			LightboxStyleURL:  getEnv("GALLERY_LIGHTBOX_STYLE_URL", gallery.DefaultLightboxStyleURL),
			LightboxScriptURL: getEnv("GALLERY_LIGHTBOX_SCRIPT_URL", gallery.DefaultLightboxScriptURL),
		},
	}

	// Build DSN
	c.DatabaseURL = fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)

	return c
}

// Validate checks the loaded values against the struct tags.
func (c *Config) Validate() error {
	if err := validator.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GalleryDefaults converts the gallery settings into the base configuration of
// every shortcode occurrence.
func (c *Config) GalleryDefaults() gallery.Config {
	g := c.Gallery
	return gallery.Config{
		Lightbox:       g.EnableLightbox,
		BaseFS:         gallery.NormalizeBasePath(g.BaseFS, c.RootPath),
		BaseURL:        strings.TrimRight(g.BaseURL, "/"),
		Extensions:     gallery.ParseExtensions(g.Extensions),
		ColClasses:     g.ColClasses,
		ShowCaptions:   g.ShowCaptions,
		ShowEmpty:      g.ShowEmptyMessage,
		ShowDebug:      g.ShowDebugPath,
		Prefixes:       gallery.ParseList(g.FilenamePrefix),
		ImageWidth:     g.ImageWidth,
		ImageHeight:    g.ImageHeight,
		ThumbMinWidth:  g.ThumbMinWidth,
		ThumbMaxWidth:  g.ThumbMaxWidth,
		ThumbMinHeight: g.ThumbMinHeight,
		ThumbMaxHeight: g.ThumbMaxHeight,
		RootPath:       c.RootPath,
	}
}

// GalleryDir is the directory served under the gallery base URL.
func (c *Config) GalleryDir() string {
	return gallery.NormalizeBasePath(c.Gallery.BaseFS, c.RootPath)
}

// PluginEnabled reports whether slug is listed in PLUGINS.
func (c *Config) PluginEnabled(slug string) bool {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, candidate := range c.Plugins {
		if strings.ToLower(candidate) == slug {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	return gallery.ParseBool(getEnv(key, ""), defaultValue)
}

func getEnvAsList(key, defaultValue string) []string {
	return gallery.ParseList(getEnv(key, defaultValue))
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
