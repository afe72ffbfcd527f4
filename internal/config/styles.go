package config

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_styles.yaml
var defaultStylesFS embed.FS

// CategoryStyles maps a category to the style token used for its cards
type CategoryStyles struct {
	Default    string            `yaml:"default"`
	Categories map[string]string `yaml:"categories"`
}

// Token returns the style token for category, or the default token
func (s *CategoryStyles) Token(category string) string {
	if token, ok := s.Categories[category]; ok && token != "" {
		return token
	}
	return s.Default
}

func DefaultCategoryStyles() *CategoryStyles {
	data, err := defaultStylesFS.ReadFile("default_styles.yaml")
	if err != nil {
		panic(fmt.Sprintf("reading embedded styles: %v", err))
	}
	styles, err := parseStyles(data)
	if err != nil {
		panic(fmt.Sprintf("parsing embedded styles: %v", err))
	}
	return styles
}

// LoadCategoryStyles reads the style table at path. Entries in the file
// override the embedded defaults; an empty path returns the defaults.
func LoadCategoryStyles(path string) (*CategoryStyles, error) {
	styles := DefaultCategoryStyles()
	if path == "" {
		return styles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading category styles: %w", err)
	}
	override, err := parseStyles(data)
	if err != nil {
		return nil, fmt.Errorf("parsing category styles %s: %w", path, err)
	}

	if override.Default != "" {
		styles.Default = override.Default
	}
	for category, token := range override.Categories {
		styles.Categories[category] = token
	}
	return styles, nil
}

func parseStyles(data []byte) (*CategoryStyles, error) {
	var styles CategoryStyles
	if err := yaml.Unmarshal(data, &styles); err != nil {
		return nil, err
	}
	if styles.Categories == nil {
		styles.Categories = make(map[string]string)
	}
	return &styles, nil
}
