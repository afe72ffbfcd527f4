package models

import (
	"strings"
	"time"
)

const (
	// AllValue is the filter sentinel meaning "no constraint on this dimension"
	AllValue = "all"

	// UncategorizedCategory is assigned to articles without a category
	UncategorizedCategory = "uncategorized"
)

// Article is one normalized reference to an externally published post
type Article struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	PublishedAt string   `json:"published_at"`
	Summary     string   `json:"summary"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Enclosure   string   `json:"enclosure,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// ParseDate parses the date formats found in feeds and snapshots.
// The second return value is false when the string is empty or unparseable.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Published returns the parsed publish date of the article
func (a Article) Published() (time.Time, bool) {
	return ParseDate(a.PublishedAt)
}

// Year returns the four digit publish year, or "" when the date is unknown
func (a Article) Year() string {
	t, ok := a.Published()
	if !ok {
		return ""
	}
	return t.Format("2006")
}

// FilterState holds the user-selected constraints narrowing the displayed set
type FilterState struct {
	Category string `json:"category"`
	Year     string `json:"year"`
	Keyword  string `json:"keyword"`
}

// DefaultFilters returns a filter state that matches every article
func DefaultFilters() FilterState {
	return FilterState{Category: AllValue, Year: AllValue}
}

// PaginationState describes the requested page. ItemsPerPage of zero disables pagination.
type PaginationState struct {
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

// Collection is the article set of one session together with its derived filter options
type Collection struct {
	Articles    []Article `json:"articles"`
	Categories  []string  `json:"categories"`
	Years       []string  `json:"years"`
	LastUpdated string    `json:"last_updated,omitempty"`
	Source      string    `json:"source"`
	LoadedAt    time.Time `json:"loaded_at"`
}

// ViewState is the single owned state a render pass is computed from
type ViewState struct {
	Collection *Collection
	Filters    FilterState
	Pagination PaginationState
}

// LoadState is the lifecycle of a session load
type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadLoaded  LoadState = "loaded"
	LoadFailed  LoadState = "failed"
)

// LoadRecord is one entry of the load history
type LoadRecord struct {
	ID           string    `json:"id"`
	Source       string    `json:"source"`
	State        LoadState `json:"state"`
	ArticleCount int       `json:"article_count"`
	ErrorKind    string    `json:"error_kind,omitempty"`
	ErrorDetail  string    `json:"-"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Format is the payload format of a feed source
type Format string

const (
	// FormatJSON is the pre-generated JSON snapshot
	FormatJSON Format = "json"
	// FormatFeed is a live Atom or RSS document
	FormatFeed Format = "feed"
)
