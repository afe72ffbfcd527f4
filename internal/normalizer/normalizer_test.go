package normalizer

import (
	"testing"

	"portfolio/internal/feederr"
	"portfolio/internal/models"
)

const snapshotJSON = `{
  "last_updated": "2024-02-01T00:00:00+00:00",
  "articles": [
    {"title": "  Observability Basics ", "url": "https://example.com/a", "published_at": "2024-01-10",
     "summary": "Metrics and traces", "category": "Infra", "tags": ["monitoring", "otel"]},
    {"title": "", "url": "https://example.com/no-title"},
    {"title": "No url"},
    {"title": "Defaults", "url": "https://example.com/b", "tags": "not-an-array"},
    42,
    {"title": "Mixed tags", "url": "https://example.com/c", "tags": ["go", 7, "web"]}
  ]
}`

func TestFromJSON_LastUpdated(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		want         string
		wantWarnings int
	}{
		{name: "string", payload: `{"last_updated": "2024-02-01", "articles": []}`, want: "2024-02-01"},
		{name: "missing", payload: `{"articles": []}`},
		{name: "null", payload: `{"last_updated": null, "articles": []}`},
		{name: "number", payload: `{"last_updated": 1706745600, "articles": []}`, wantWarnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromJSON([]byte(tt.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.LastUpdated != tt.want {
				t.Errorf("Expected last_updated %q, got %q", tt.want, doc.LastUpdated)
			}
			if len(doc.Warnings) != tt.wantWarnings {
				t.Errorf("Expected %d warnings, got %v", tt.wantWarnings, doc.Warnings)
			}
		})
	}
}

func TestFromJSON_NormalizesAndDropsIncompleteRecords(t *testing.T) {
	doc, err := FromJSON([]byte(snapshotJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(doc.Articles))
	}
	if doc.Dropped != 3 {
		t.Errorf("Expected 3 dropped records, got %d", doc.Dropped)
	}
	if len(doc.Articles)+doc.Dropped != 6 {
		t.Error("Expected kept plus dropped to equal the input length")
	}
	if doc.LastUpdated != "2024-02-01T00:00:00+00:00" {
		t.Errorf("Expected last_updated to be carried, got %q", doc.LastUpdated)
	}

	first := doc.Articles[0]
	if first.Title != "Observability Basics" {
		t.Errorf("Expected trimmed title, got %q", first.Title)
	}
	if first.Category != "Infra" || len(first.Tags) != 2 || first.Tags[0] != "monitoring" {
		t.Errorf("Unexpected category/tags: %q %v", first.Category, first.Tags)
	}

	defaults := doc.Articles[1]
	if defaults.Category != models.UncategorizedCategory {
		t.Errorf("Expected default category, got %q", defaults.Category)
	}
	if defaults.Summary != "" || defaults.Tags == nil || len(defaults.Tags) != 0 {
		t.Errorf("Expected empty summary and tags, got %q %v", defaults.Summary, defaults.Tags)
	}

	mixed := doc.Articles[2]
	if len(mixed.Tags) != 2 || mixed.Tags[1] != "web" {
		t.Errorf("Expected only string tags in order, got %v", mixed.Tags)
	}
}

func TestFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind feederr.Kind
	}{
		{"Invalid JSON", `{"articles": [`, feederr.KindParse},
		{"Missing articles", `{"items": []}`, feederr.KindShape},
		{"Articles not an array", `{"articles": {}}`, feederr.KindShape},
		{"Null articles", `{"articles": null}`, feederr.KindShape},
		{"Top level array", `[]`, feederr.KindShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.data))
			if got := feederr.KindOf(err); got != tt.kind {
				t.Errorf("Expected %v, got %v (%v)", tt.kind, got, err)
			}
		})
	}
}

func TestFromJSON_EmptyArticles(t *testing.T) {
	doc, err := FromJSON([]byte(`{"articles": []}`))
	if err != nil {
		t.Fatalf("an empty snapshot is valid: %v", err)
	}
	if len(doc.Articles) != 0 {
		t.Errorf("Expected no articles, got %d", len(doc.Articles))
	}
}

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Blog</title>
  <updated>2024-02-01T00:00:00Z</updated>
  <entry>
    <title>Observability Basics</title>
    <link rel="self" href="https://example.com/self"/>
    <link rel="alternate" href="https://example.com/observability"/>
    <link rel="enclosure" href="https://example.com/cover.png"/>
    <published>2024-01-10T09:00:00+09:00</published>
    <updated>2024-01-11T09:00:00+09:00</updated>
    <summary type="html">&lt;p&gt;Metrics &amp;amp; traces&lt;/p&gt;&lt;p&gt;in   practice&lt;/p&gt;</summary>
    <category term="Infra"/>
    <category term="monitoring"/>
  </entry>
  <entry>
    <title>Updated only</title>
    <link href="https://example.com/updated"/>
    <updated>2023-12-01T00:00:00Z</updated>
    <content type="html">&lt;b&gt;Body&lt;/b&gt; text</content>
  </entry>
  <entry>
    <title></title>
    <link href="https://example.com/untitled"/>
  </entry>
</feed>`

func TestFromFeed_Atom(t *testing.T) {
	doc, err := FromFeed([]byte(atomFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(doc.Articles))
	}
	if doc.Dropped != 1 {
		t.Errorf("Expected 1 dropped entry, got %d", doc.Dropped)
	}

	first := doc.Articles[0]
	if first.URL != "https://example.com/observability" {
		t.Errorf("Expected alternate link, got %q", first.URL)
	}
	if first.Enclosure != "https://example.com/cover.png" {
		t.Errorf("Expected enclosure link, got %q", first.Enclosure)
	}
	if first.PublishedAt != "2024-01-10T09:00:00+09:00" {
		t.Errorf("Expected published date, got %q", first.PublishedAt)
	}
	if first.Summary != "Metrics & traces in practice" {
		t.Errorf("Expected stripped summary, got %q", first.Summary)
	}
	if first.Category != "Infra" || len(first.Tags) != 2 || first.Tags[1] != "monitoring" {
		t.Errorf("Unexpected category/tags: %q %v", first.Category, first.Tags)
	}

	second := doc.Articles[1]
	if second.URL != "https://example.com/updated" {
		t.Errorf("Expected first link as fallback, got %q", second.URL)
	}
	if second.PublishedAt != "2023-12-01T00:00:00Z" {
		t.Errorf("Expected updated as fallback date, got %q", second.PublishedAt)
	}
	if second.Summary != "Body text" {
		t.Errorf("Expected content as fallback summary, got %q", second.Summary)
	}
	if second.Category != models.UncategorizedCategory || len(second.Tags) != 0 {
		t.Errorf("Expected default category and no tags, got %q %v", second.Category, second.Tags)
	}
}

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Blog</title>
    <item>
      <title>Hello World</title>
      <link>https://example.com/hello</link>
      <pubDate>Mon, 01 Jan 2024 12:00:00 +0900</pubDate>
      <description>Short</description>
      <content:encoded><![CDATA[<p>Full <em>content</em></p>]]></content:encoded>
      <category>Web</category>
      <enclosure url="https://example.com/hello.png" length="1" type="image/png"/>
    </item>
    <item>
      <title>No link</title>
    </item>
  </channel>
</rss>`

func TestFromFeed_RSS(t *testing.T) {
	doc, err := FromFeed([]byte(rssFeed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(doc.Articles))
	}

	article := doc.Articles[0]
	if article.PublishedAt != "2024-01-01T03:00:00Z" {
		t.Errorf("Expected UTC RFC3339 date, got %q", article.PublishedAt)
	}
	if article.Summary != "Full content" {
		t.Errorf("Expected encoded content as summary, got %q", article.Summary)
	}
	if article.Category != "Web" {
		t.Errorf("Expected category Web, got %q", article.Category)
	}
	if article.Enclosure != "https://example.com/hello.png" {
		t.Errorf("Expected enclosure url, got %q", article.Enclosure)
	}
}

func TestFromFeed_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind feederr.Kind
	}{
		{"Not XML", `{"articles": []}`, feederr.KindParse},
		{"Unknown root", `<html><body>blocked</body></html>`, feederr.KindParse},
		{"No entries", `<feed xmlns="http://www.w3.org/2005/Atom"><title>x</title></feed>`, feederr.KindEmptyFeed},
		{"Only invalid entries", `<feed xmlns="http://www.w3.org/2005/Atom"><entry><title>t</title></entry></feed>`, feederr.KindEmptyFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromFeed([]byte(tt.data))
			if got := feederr.KindOf(err); got != tt.kind {
				t.Errorf("Expected %v, got %v (%v)", tt.kind, got, err)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<p>Hello</p><p>World</p>", "Hello World"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple \n  spaces  </div>", "Multiple spaces"},
		{"Fish &amp; chips", "Fish & chips"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
