package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"autogallery/internal/models"
	"autogallery/internal/repository"
	"autogallery/pkg/logger"
	"autogallery/pkg/utils"
)

//go:embed data/articles/*.json
var defaultArticlesFS embed.FS

// EnsureDemoArticles loads the embedded demo articles and creates the ones whose
// path is not taken yet.
func EnsureDemoArticles(repo repository.ArticleRepository) {
	entries, err := fs.ReadDir(defaultArticlesFS, "data/articles")
	if err != nil {
		logger.Error(err, "Failed to read embedded article definitions", nil)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		data, err := defaultArticlesFS.ReadFile(fmt.Sprintf("data/articles/%s", name))
		if err != nil {
			logger.Error(err, "Failed to read embedded article file", map[string]interface{}{"file": name})
			continue
		}

		articles, err := parseArticles(data)
		if err != nil {
			logger.Error(err, "Failed to parse embedded article file", map[string]interface{}{"file": name})
			continue
		}

		for i := range articles {
			ensureArticle(repo, &articles[i], name)
		}
	}
}

func ensureArticle(repo repository.ArticleRepository, article *models.Article, source string) {
	article.Path = utils.NormalizePath(article.Path)
	fields := map[string]interface{}{"path": article.Path, "source": source}

	exists, err := repo.ExistsByPath(article.Path)
	if err != nil {
		logger.Error(err, "Failed to verify demo article", fields)
		return
	}
	if exists {
		logger.Debug("Demo article already present", fields)
		return
	}

	if err := repo.Create(article); err != nil {
		logger.Error(err, "Failed to create demo article", fields)
		return
	}

	logger.Info("Ensured demo article", fields)
}

func parseArticles(data []byte) ([]models.Article, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var articles []models.Article
		if err := json.Unmarshal(trimmed, &articles); err != nil {
			return nil, err
		}
		return articles, nil
	}

	var article models.Article
	if err := json.Unmarshal(trimmed, &article); err != nil {
		return nil, err
	}
	if article.Path == "" {
		return nil, errors.New("article path is required")
	}
	return []models.Article{article}, nil
}
