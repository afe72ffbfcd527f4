package normalizer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"

	"portfolio/internal/feederr"
	"portfolio/internal/models"
)

// FromFeed normalizes an Atom or RSS 2.0 document
func FromFeed(data []byte) (*Document, error) {
	var (
		doc *Document
		err error
	)

	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		doc, err = fromAtom(data)
	case gofeed.FeedTypeRSS:
		doc, err = fromRSS(data)
	default:
		return nil, feederr.New(feederr.KindParse, "", errors.New("payload is neither Atom nor RSS"))
	}
	if err != nil {
		return nil, feederr.New(feederr.KindParse, "", err)
	}

	if len(doc.Articles) == 0 {
		return nil, feederr.New(feederr.KindEmptyFeed, "", errors.New("the feed did not contain any articles"))
	}
	return doc, nil
}

func fromAtom(data []byte) (*Document, error) {
	parser := &atom.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse atom feed: %w", err)
	}

	doc := &Document{Articles: make([]models.Article, 0, len(feed.Entries)), LastUpdated: feed.Updated}
	for _, entry := range feed.Entries {
		summary := entry.Summary
		if strings.TrimSpace(summary) == "" && entry.Content != nil {
			summary = entry.Content.Value
		}

		var tags []string
		for _, c := range entry.Categories {
			if c == nil {
				continue
			}
			if term := strings.TrimSpace(firstNonEmpty(c.Term, c.Label)); term != "" {
				tags = append(tags, term)
			}
		}

		doc.add(models.Article{
			Title:       strings.TrimSpace(entry.Title),
			URL:         atomLink(entry.Links),
			PublishedAt: strings.TrimSpace(firstNonEmpty(entry.Published, entry.Updated)),
			Summary:     StripHTML(summary),
			Category:    firstTag(tags),
			Tags:        tags,
			Enclosure:   atomEnclosure(entry.Links),
		})
	}
	return doc, nil
}

// atomLink prefers rel="alternate" and falls back to the first link
func atomLink(links []*atom.Link) string {
	var first *atom.Link
	for _, l := range links {
		if l == nil {
			continue
		}
		if l.Rel == "alternate" {
			return strings.TrimSpace(l.Href)
		}
		if first == nil {
			first = l
		}
	}
	if first == nil {
		return ""
	}
	return strings.TrimSpace(first.Href)
}

func atomEnclosure(links []*atom.Link) string {
	for _, l := range links {
		if l != nil && l.Rel == "enclosure" {
			return strings.TrimSpace(l.Href)
		}
	}
	return ""
}

func fromRSS(data []byte) (*Document, error) {
	parser := &rss.Parser{}
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}

	doc := &Document{Articles: make([]models.Article, 0, len(feed.Items)), LastUpdated: feed.LastBuildDate}
	for _, item := range feed.Items {
		publishedAt := strings.TrimSpace(item.PubDate)
		if item.PubDateParsed != nil {
			publishedAt = item.PubDateParsed.UTC().Format(time.RFC3339)
		}

		var tags []string
		for _, c := range item.Categories {
			if c == nil {
				continue
			}
			if v := strings.TrimSpace(c.Value); v != "" {
				tags = append(tags, v)
			}
		}

		enclosure := ""
		if item.Enclosure != nil {
			enclosure = strings.TrimSpace(item.Enclosure.URL)
		}

		doc.add(models.Article{
			Title:       strings.TrimSpace(item.Title),
			URL:         strings.TrimSpace(item.Link),
			PublishedAt: publishedAt,
			Summary:     StripHTML(firstNonEmpty(item.Content, item.Description)),
			Category:    firstTag(tags),
			Tags:        tags,
			Enclosure:   enclosure,
		})
	}
	return doc, nil
}

func firstTag(tags []string) string {
	if len(tags) == 0 {
		return models.UncategorizedCategory
	}
	return tags[0]
}
