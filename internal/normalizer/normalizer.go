// Package normalizer maps raw JSON snapshot records and Atom/RSS entries onto
// the canonical article shape.
package normalizer

import (
	"strings"

	"portfolio/internal/models"
)

// Document is the normalized content of one payload
type Document struct {
	Articles    []models.Article
	LastUpdated string
	// Dropped counts records discarded for missing a title or url
	Dropped int
	// Warnings lists fields that were present but ignored
	Warnings []string
}

func (d *Document) add(article models.Article) {
	if article.Title == "" || article.URL == "" {
		d.Dropped++
		return
	}
	if article.Category == "" {
		article.Category = models.UncategorizedCategory
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	d.Articles = append(d.Articles, article)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
