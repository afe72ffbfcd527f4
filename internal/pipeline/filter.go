// Package pipeline holds the pure filter, sort and paginate stages applied to
// a session's article collection on every render pass.
package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"portfolio/internal/models"
)

// Filter returns the articles matching every predicate of filters, in input order.
// The input slice is never modified.
func Filter(articles []models.Article, filters models.FilterState) []models.Article {
	keyword := strings.ToLower(strings.TrimSpace(filters.Keyword))

	result := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if !matchesCategory(article, filters.Category) {
			continue
		}
		if !matchesYear(article, filters.Year) {
			continue
		}
		if !matchesKeyword(article, keyword) {
			continue
		}
		result = append(result, article)
	}
	return result
}

func isAll(value string) bool {
	return value == "" || value == models.AllValue
}

func matchesCategory(article models.Article, category string) bool {
	return isAll(category) || article.Category == category
}

// Articles with unknown dates never match a specific year
func matchesYear(article models.Article, year string) bool {
	if isAll(year) {
		return true
	}
	articleYear := article.Year()
	return articleYear != "" && articleYear == year
}

func matchesKeyword(article models.Article, keyword string) bool {
	if keyword == "" {
		return true
	}
	parts := make([]string, 0, len(article.Tags)+2)
	parts = append(parts, article.Title, article.Summary)
	parts = append(parts, article.Tags...)
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), keyword)
}

// CategoryOptions returns "all" followed by the distinct categories in first-seen order
func CategoryOptions(articles []models.Article) []string {
	options := []string{models.AllValue}
	seen := make(map[string]bool)
	for _, article := range articles {
		if seen[article.Category] {
			continue
		}
		seen[article.Category] = true
		options = append(options, article.Category)
	}
	return options
}

// YearOptions returns "all" followed by the distinct publish years, newest first
func YearOptions(articles []models.Article) []string {
	seen := make(map[string]bool)
	var years []string
	for _, article := range articles {
		year := article.Year()
		if year == "" || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}

	sort.SliceStable(years, func(i, j int) bool {
		a, _ := strconv.Atoi(years[i])
		b, _ := strconv.Atoi(years[j])
		return a > b
	})

	return append([]string{models.AllValue}, years...)
}

// NewCollection builds a collection and derives its filter options once
func NewCollection(articles []models.Article) *models.Collection {
	return &models.Collection{
		Articles:   articles,
		Categories: CategoryOptions(articles),
		Years:      YearOptions(articles),
	}
}
