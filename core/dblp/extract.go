package dblp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTag returns the text content of every element named tag, in document order.
func ExtractTag(body []byte, tag string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	var out []string
	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out, nil
}

// extractLocators returns the non-empty, trimmed <url> values of a search response.
func extractLocators(body []byte) ([]string, error) {
	raw, err := ExtractTag(body, "url")
	if err != nil {
		return nil, err
	}
	locators := make([]string, 0, len(raw))
	for _, u := range raw {
		if u = strings.TrimSpace(u); u != "" {
			locators = append(locators, u)
		}
	}
	return locators, nil
}
