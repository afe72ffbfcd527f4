// Package view projects a pipeline result into a UI-independent page model
// shared by the HTML, JSON and terminal renderers.
package view

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/models"
	"portfolio/internal/pipeline"
	"portfolio/internal/theme"
)

const (
	MessageNoArticles = "No articles are available right now. Please check back later."
	MessageNoMatches  = "No articles match the current filters. Try changing the filters."
	MessageFailed     = "Could not load articles. Please try again later."

	UnknownDate        = "unknown date"
	SummaryPlaceholder = "Read the full article on the original site."

	dateLayout        = "Jan 2, 2006"
	machineDateLayout = "2006-01-02"
)

type State string

const (
	StateLoaded State = "loaded"
	StateFailed State = "failed"
)

// Outcome distinguishes the three loaded states
type Outcome string

const (
	OutcomeHasResults Outcome = "has_results"
	OutcomeNoArticles Outcome = "no_articles"
	OutcomeNoMatches  Outcome = "no_matches"
)

// Styles resolves the style token of a category
type Styles interface {
	Token(category string) string
}

// Options carries the presentation settings of a projection
type Options struct {
	Title      string
	ProfileURL string
	// BasePath is the path filter and page links point to
	BasePath string
	Styles   Styles
	Now      func() time.Time
}

type Card struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Category  string   `json:"category"`
	Date      string   `json:"date"`
	DateTime  string   `json:"datetime,omitempty"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags"`
	Style     string   `json:"style"`
	Enclosure string   `json:"enclosure,omitempty"`
}

// Option is one filter button
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Link   string `json:"link"`
	Active bool   `json:"active"`
}

// PageLink is one pagination control. Disabled controls have no link.
type PageLink struct {
	Label     string `json:"label"`
	AriaLabel string `json:"aria_label"`
	Link      string `json:"link,omitempty"`
	Current   bool   `json:"current,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
}

type Pagination struct {
	Prev  PageLink   `json:"prev"`
	Pages []PageLink `json:"pages"`
	Next  PageLink   `json:"next"`
}

// Page is everything a renderer needs to draw the article section
type Page struct {
	Title       string             `json:"title"`
	State       State              `json:"state"`
	Outcome     Outcome            `json:"outcome,omitempty"`
	Message     string             `json:"message,omitempty"`
	ProfileURL  string             `json:"profile_url,omitempty"`
	Cards       []Card             `json:"cards"`
	Categories  []Option           `json:"categories"`
	Years       []Option           `json:"years"`
	Filters     models.FilterState `json:"filters"`
	Pagination  *Pagination        `json:"pagination,omitempty"`
	CurrentPage int                `json:"current_page"`
	TotalPages  int                `json:"total_pages"`
	Filtered    int                `json:"filtered"`
	Total       int                `json:"total"`
	LastUpdated string             `json:"last_updated,omitempty"`
	Year        int                `json:"year"`
	BasePath    string             `json:"-"`
	// Theme is filled in by the web surface
	Theme string `json:"-"`
}

// Project builds the page for a loaded session
func Project(state models.ViewState, result pipeline.Result, opts Options) *Page {
	page := newPage(opts)
	page.State = StateLoaded
	page.Filters = normalizeFilters(state.Filters)
	page.CurrentPage = result.Page.CurrentPage
	page.TotalPages = result.Page.TotalPages
	page.Filtered = result.Filtered
	page.Total = result.Total

	if state.Collection != nil {
		page.Categories = options(state.Collection.Categories, page.Filters.Category, opts.BasePath, page.Filters, withCategory)
		page.Years = options(state.Collection.Years, page.Filters.Year, opts.BasePath, page.Filters, withYear)
		page.LastUpdated = formatTimestamp(state.Collection.LastUpdated)
	}

	switch {
	case result.Total == 0:
		page.Outcome = OutcomeNoArticles
		page.Message = MessageNoArticles
		return page
	case result.Filtered == 0:
		page.Outcome = OutcomeNoMatches
		page.Message = MessageNoMatches
		return page
	}

	page.Outcome = OutcomeHasResults
	for _, article := range result.Page.Articles {
		page.Cards = append(page.Cards, newCard(article, opts.Styles))
	}
	if result.Page.TotalPages > 1 {
		page.Pagination = paginate(result.Page.CurrentPage, result.Page.TotalPages, opts.BasePath, page.Filters)
	}
	return page
}

// Failed builds the page shown when the session could not be loaded
func Failed(opts Options) *Page {
	page := newPage(opts)
	page.State = StateFailed
	page.Message = MessageFailed
	page.ProfileURL = opts.ProfileURL
	page.Filters = models.DefaultFilters()
	page.CurrentPage = 1
	page.TotalPages = 1
	return page
}

func newPage(opts Options) *Page {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	return &Page{
		Title:      opts.Title,
		Cards:      []Card{},
		Categories: []Option{},
		Years:      []Option{},
		Year:       now().Year(),
		BasePath:   basePath(opts.BasePath),
	}
}

func newCard(article models.Article, styles Styles) Card {
	card := Card{
		Title:     article.Title,
		URL:       article.URL,
		Category:  article.Category,
		Date:      UnknownDate,
		Summary:   article.Summary,
		Tags:      article.Tags,
		Enclosure: article.Enclosure,
	}
	if card.Category == "" {
		card.Category = models.UncategorizedCategory
	}
	if strings.TrimSpace(card.Summary) == "" {
		card.Summary = SummaryPlaceholder
	}
	if card.Tags == nil {
		card.Tags = []string{}
	}
	if t, ok := article.Published(); ok {
		card.Date = t.Format(dateLayout)
		card.DateTime = t.Format(machineDateLayout)
	}
	if styles != nil {
		card.Style = styles.Token(card.Category)
	}
	return card
}

func normalizeFilters(filters models.FilterState) models.FilterState {
	if filters.Category == "" {
		filters.Category = models.AllValue
	}
	if filters.Year == "" {
		filters.Year = models.AllValue
	}
	return filters
}

func withCategory(filters models.FilterState, value string) models.FilterState {
	filters.Category = value
	return filters
}

func withYear(filters models.FilterState, value string) models.FilterState {
	filters.Year = value
	return filters
}

func options(values []string, active, base string, filters models.FilterState, with func(models.FilterState, string) models.FilterState) []Option {
	opts := make([]Option, 0, len(values))
	for _, value := range values {
		label := value
		if value == models.AllValue {
			label = "All"
		}
		opts = append(opts, Option{
			Value:  value,
			Label:  label,
			Link:   Link(base, with(filters, value), 0),
			Active: value == active,
		})
	}
	return opts
}

func paginate(current, total int, base string, filters models.FilterState) *Pagination {
	p := &Pagination{
		Prev: PageLink{Label: "Prev", AriaLabel: "Previous page"},
		Next: PageLink{Label: "Next", AriaLabel: "Next page"},
	}

	if current > 1 {
		p.Prev.Link = Link(base, filters, current-1)
	} else {
		p.Prev.Disabled = true
	}
	if current < total {
		p.Next.Link = Link(base, filters, current+1)
	} else {
		p.Next.Disabled = true
	}

	for n := 1; n <= total; n++ {
		p.Pages = append(p.Pages, PageLink{
			Label:     strconv.Itoa(n),
			AriaLabel: "Page " + strconv.Itoa(n),
			Link:      Link(base, filters, n),
			Current:   n == current,
		})
	}
	return p
}

// Link returns base with filters encoded as query parameters. A page below 2
// is omitted so filter links always land on the first page.
func Link(base string, filters models.FilterState, page int) string {
	q := url.Values{}
	if filters.Category != "" && filters.Category != models.AllValue {
		q.Set("category", filters.Category)
	}
	if filters.Year != "" && filters.Year != models.AllValue {
		q.Set("year", filters.Year)
	}
	if filters.Keyword != "" {
		q.Set("q", filters.Keyword)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}

	base = basePath(base)
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func basePath(base string) string {
	if base == "" {
		return "/"
	}
	return base
}

func formatTimestamp(value string) string {
	if value == "" {
		return ""
	}
	if t, ok := models.ParseDate(value); ok {
		return t.Format(dateLayout)
	}
	return value
}

// Self links back to the page as currently shown
func (p *Page) Self() string {
	return Link(p.BasePath, p.Filters, p.CurrentPage)
}

// NextTheme is the theme the toggle switches to
func (p *Page) NextTheme() string {
	current, _ := theme.Parse(p.Theme)
	return string(current.Toggle())
}
