package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/amadeusai/amadeus/internal/schema"
)

const fetchCharLimit = 6000

// FetchWebpage downloads a page and extracts its readable article text.
func FetchWebpage(ctx context.Context, rawURL string, maxChars int) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("URL is empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = "https://" + rawURL
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", fmt.Errorf("invalid URL %q", rawURL)
	}
	if maxChars <= 0 {
		maxChars = fetchCharLimit
	}

	article, err := readability.FromURL(rawURL, httpClient.Timeout)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", rawURL)
	}
	if len(text) > maxChars {
		text = text[:maxChars] + fmt.Sprintf("\n... (truncated at %d characters)", maxChars)
	}
	if article.Title != "" {
		return article.Title + "\n\n" + text, nil
	}
	return text, nil
}

// WebTools returns the page-fetching tool set.
func WebTools() []*schema.ToolDefinition {
	return []*schema.ToolDefinition{
		{
			Name:        "fetch_webpage",
			Description: "Fetches a webpage and returns its readable text. Args: url (str), max_chars (int, optional)",
			Category:    schema.CategoryInformation,
			Parameters: map[string]schema.ParamSpec{
				"url":       {Type: schema.ParamString, Required: true, Description: "Page URL to fetch"},
				"max_chars": {Type: schema.ParamInteger, Description: "Maximum characters to return, defaults to 6000"},
			},
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return FetchWebpage(ctx, argString(args, "url", ""), argInt(args, "max_chars", 0))
			},
		},
	}
}
