package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"portfolio/internal/feederr"
	"portfolio/internal/models"
)

var errMissingArticles = errors.New("invalid feed structure: missing articles array")

// FromJSON normalizes a snapshot document of the form
// {"last_updated": "...", "articles": [...]}.
func FromJSON(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, feederr.New(feederr.KindParse, "", errors.New("payload is not valid JSON"))
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, feederr.New(feederr.KindShape, "", fmt.Errorf("payload is not an object: %w", err))
	}

	raw, ok := top["articles"]
	if !ok {
		return nil, feederr.New(feederr.KindShape, "", errMissingArticles)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil || records == nil {
		return nil, feederr.New(feederr.KindShape, "", errMissingArticles)
	}

	doc := &Document{Articles: make([]models.Article, 0, len(records))}
	if lu, ok := top["last_updated"]; ok {
		if err := json.Unmarshal(lu, &doc.LastUpdated); err != nil {
			doc.Warnings = append(doc.Warnings, fmt.Sprintf("ignored last_updated %s: not a string", truncateRaw(lu)))
		}
	}

	for _, record := range records {
		var fields map[string]any
		if err := json.Unmarshal(record, &fields); err != nil {
			doc.Dropped++
			continue
		}
		doc.add(models.Article{
			Title:       strings.TrimSpace(stringField(fields, "title")),
			URL:         stringField(fields, "url"),
			PublishedAt: stringField(fields, "published_at"),
			Summary:     stringField(fields, "summary"),
			Category:    stringField(fields, "category"),
			Tags:        stringSlice(fields["tags"]),
			Enclosure:   stringField(fields, "enclosure"),
		})
	}

	return doc, nil
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func stringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

func truncateRaw(raw json.RawMessage) string {
	const maxLen = 40
	if len(raw) > maxLen {
		return string(raw[:maxLen]) + "..."
	}
	return string(raw)
}
