package models

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "RFC3339 with offset",
			value: "2024-01-10T09:30:00+09:00",
			want:  time.Date(2024, 1, 10, 0, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "RFC3339 with fraction",
			value: "2023-12-01T10:00:00.123Z",
			want:  time.Date(2023, 12, 1, 10, 0, 0, 123000000, time.UTC),
			ok:    true,
		},
		{
			name:  "Date only",
			value: "2024-01-10",
			want:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "RFC1123Z",
			value: "Mon, 01 Jan 2024 12:00:00 +0000",
			want:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "Surrounding whitespace",
			value: "  2024-02-03  ",
			want:  time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{name: "Empty", value: "", ok: false},
		{name: "Garbage", value: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.value)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.value, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestArticle_Year(t *testing.T) {
	article := Article{PublishedAt: "2023-12-31T23:30:00+09:00"}
	if got := article.Year(); got != "2023" {
		t.Errorf("Expected year 2023 in the article's own offset, got %q", got)
	}

	unknown := Article{PublishedAt: "not a date"}
	if got := unknown.Year(); got != "" {
		t.Errorf("Expected empty year for unparseable date, got %q", got)
	}
}

func TestDefaultFilters(t *testing.T) {
	filters := DefaultFilters()

	if filters.Category != AllValue {
		t.Errorf("Expected category %q, got %q", AllValue, filters.Category)
	}
	if filters.Year != AllValue {
		t.Errorf("Expected year %q, got %q", AllValue, filters.Year)
	}
	if filters.Keyword != "" {
		t.Errorf("Expected empty keyword, got %q", filters.Keyword)
	}
}
