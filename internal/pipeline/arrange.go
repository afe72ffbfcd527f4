package pipeline

import (
	"sort"
	"time"

	"portfolio/internal/models"
)

// Sort returns a copy of articles ordered by publish date, newest first.
// Unknown dates sort last and ties keep their relative order.
func Sort(articles []models.Article) []models.Article {
	type keyed struct {
		article models.Article
		date    time.Time
		known   bool
	}

	items := make([]keyed, len(articles))
	for i, article := range articles {
		t, ok := article.Published()
		items[i] = keyed{article: article, date: t, known: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.known != b.known {
			return a.known
		}
		return a.date.After(b.date)
	})

	sorted := make([]models.Article, len(items))
	for i, item := range items {
		sorted[i] = item.article
	}
	return sorted
}

// Page is one slice of the sorted articles
type Page struct {
	Articles     []models.Article
	CurrentPage  int
	TotalPages   int
	ItemsPerPage int
}

// Paginate slices sorted into the requested page, clamping the page number into
// [1, TotalPages]. ItemsPerPage of zero returns everything as a single page.
func Paginate(sorted []models.Article, state models.PaginationState) Page {
	if state.ItemsPerPage <= 0 {
		return Page{Articles: sorted, CurrentPage: 1, TotalPages: 1}
	}

	totalPages := TotalPages(len(sorted), state.ItemsPerPage)
	current := state.CurrentPage
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * state.ItemsPerPage
	end := start + state.ItemsPerPage
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return Page{
		Articles:     sorted[start:end],
		CurrentPage:  current,
		TotalPages:   totalPages,
		ItemsPerPage: state.ItemsPerPage,
	}
}

// TotalPages is ceil(count/pageSize) with a minimum of one page
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// Result is the outcome of one render pass over a view state
type Result struct {
	Page Page
	// Filtered is the number of articles matching the filters
	Filtered int
	// Total is the size of the whole collection
	Total int
}

// Apply runs filter, sort and paginate over state
func Apply(state models.ViewState) Result {
	var articles []models.Article
	if state.Collection != nil {
		articles = state.Collection.Articles
	}

	filtered := Filter(articles, state.Filters)
	page := Paginate(Sort(filtered), state.Pagination)

	return Result{
		Page:     page,
		Filtered: len(filtered),
		Total:    len(articles),
	}
}
