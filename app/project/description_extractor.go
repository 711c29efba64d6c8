package project

import (
	"fmt"
	"log/slog"
	"strings"

	readability "codeberg.org/readeck/go-readability"
)

// DescriptionExtractor derives a plain-text project description from a
// homepage HTML document.
type DescriptionExtractor struct{}

func NewDescriptionExtractor() *DescriptionExtractor {
	return &DescriptionExtractor{}
}

func (e *DescriptionExtractor) Run(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(strings.NewReader(string(data)), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	description := strings.TrimSpace(article.Excerpt)
	if description == "" {
		description = strings.TrimSpace(article.TextContent)
	}
	if description == "" {
		return "", fmt.Errorf("no description extracted from HTML data")
	}

	slog.Debug("Description extracted successfully",
		"title", article.Title,
		"description_length", len(description))

	return description, nil
}
