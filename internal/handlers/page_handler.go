package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"autogallery/internal/assets"
	"autogallery/internal/config"
	"autogallery/internal/content"
	"autogallery/internal/models"
	"autogallery/internal/repository"
	"autogallery/pkg/logger"
	"autogallery/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageHandler serves stored articles as HTML pages.
type PageHandler struct {
	articles  repository.ArticleRepository
	pipeline  *content.Pipeline
	templates *template.Template
	config    *config.Config
}

func NewPageHandler(articles repository.ArticleRepository, pipeline *content.Pipeline, cfg *config.Config) (*PageHandler, error) {
	if articles == nil {
		return nil, fmt.Errorf("article repository is required")
	}
	if pipeline == nil {
		return nil, fmt.Errorf("content pipeline is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	templates, err := utils.LoadTemplates(templatesFS, "templates")
	if err != nil {
		return nil, err
	}

	return &PageHandler{
		articles:  articles,
		pipeline:  pipeline,
		templates: templates,
		config:    cfg,
	}, nil
}

// Show renders the article stored under the request path.
func (h *PageHandler) Show(c *gin.Context) {
	requestPath := c.Request.URL.Path

	article, err := h.articles.GetByPath(utils.NormalizePath(requestPath))
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			h.renderError(c, http.StatusNotFound, "Page not found", "The page you are looking for does not exist.")
			return
		}
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to load article")
		h.renderError(c, http.StatusInternalServerError, "Server error", "")
		return
	}

	collector := assets.NewCollector()
	item := &content.Item{ID: article.ID, Context: models.ArticleContext, Text: article.Content}
	h.pipeline.Run(content.Environment{RequestPath: requestPath, Assets: collector}, item)

	h.render(c, http.StatusOK, gin.H{
		"Title":       article.Title,
		"Description": article.Description,
		"Article":     article,
		"Body":        template.HTML(item.Text),
		"HeadAssets":  collector.HeadHTML(),
		"BodyAssets":  collector.BodyHTML(),
	})
}

// Health reports liveness.
func (h *PageHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PageHandler) renderError(c *gin.Context, status int, title, msg string) {
	h.render(c, status, gin.H{
		"Title":       title,
		"Description": "",
		"StatusCode":  status,
		"Message":     msg,
		"HeadAssets":  template.HTML(""),
		"BodyAssets":  template.HTML(""),
	})
}

func (h *PageHandler) render(c *gin.Context, status int, data gin.H) {
	data["SiteName"] = h.config.SiteName

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "base.html", data); err != nil {
		logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to render page")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
