package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"autogallery/internal/assets"
	"autogallery/internal/config"
	"autogallery/internal/content"
	"autogallery/internal/gallery"
	"autogallery/internal/models"
	"autogallery/pkg/logger"
	"autogallery/pkg/validator"
	"autogallery/plugins/autogallery"
)

type renderOptions struct {
	requestPath string
	context     string
	itemID      uint
	output      string
	withAssets  bool
	sanitize    bool
}

func newRootCommand() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Expand auto-gallery placeholders in a content file",
		Long: `Reads article HTML, replaces every {auto-gallery ...} placeholder with the
gallery markup for the configured image directories and prints the result.

Gallery defaults come from the same GALLERY_* environment variables the server uses.

Examples:
  render article.html --path /bands/the-beatles
  cat article.html | render - --assets --out page.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			err := runRender(cmd, source, opts)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.requestPath, "path", "p", "", "request path used to derive the slug when a placeholder has none")
	cmd.Flags().StringVar(&opts.context, "context", models.ArticleContext, "content context shown in debug banners")
	cmd.Flags().UintVar(&opts.itemID, "id", 0, "content item id shown in debug banners")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.withAssets, "assets", false, "append the stylesheet and script tags the galleries need")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "sanitize the input before expanding placeholders")

	return cmd
}

func runRender(cmd *cobra.Command, source string, opts *renderOptions) error {
	input, err := readSource(cmd.InOrStdin(), source)
	if err != nil {
		return err
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)

	engine, err := gallery.NewEngine(gallery.Options{
		Defaults:          cfg.GalleryDefaults(),
		LightboxStyleURL:  cfg.Gallery.LightboxStyleURL,
		LightboxScriptURL: cfg.Gallery.LightboxScriptURL,
	})
	if err != nil {
		return err
	}

	var sanitizer content.Sanitizer
	if opts.sanitize {
		sanitizer = validator.ContentPolicy()
	}
	pipeline := content.NewPipeline(sanitizer)
	if err := pipeline.Register(autogallery.NewPreparer(engine)); err != nil {
		return err
	}

	collector := assets.NewCollector()
	item := &content.Item{ID: opts.itemID, Context: opts.context, Text: string(input)}
	pipeline.Run(content.Environment{RequestPath: opts.requestPath, Assets: collector}, item)

	var out bytes.Buffer
	if opts.withAssets {
		out.WriteString(string(collector.HeadHTML()))
	}
	out.WriteString(item.Text)
	if opts.withAssets {
		if body := string(collector.BodyHTML()); body != "" {
			if !strings.HasSuffix(item.Text, "\n") {
				out.WriteString("\n")
			}
			out.WriteString(body)
		}
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(out.Bytes())
		return err
	}

	if err := atomic.WriteFile(opts.output, &out); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	logger.Info("Rendered content written", map[string]interface{}{"file": opts.output})
	return nil
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}
