package tool_fetchurl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/elee1766/drover/src/agent"
	"github.com/elee1766/drover/src/droveragent/toolsutil"
)

// Tool name constant
const Name = "fetch_url"

const fetchURLPrompt = `Fetches content from a URL and returns it in the requested format.

Usage:
- Provide the URL to fetch content from
- Specify the desired output format (text, markdown, or html)
- Optionally set a timeout in seconds for the request

Limitations:
- Maximum response size is 5MB
- Only HTTP and HTTPS URLs are supported
- Cannot handle authentication or cookies`

// FetchURLInput represents the parameters for fetch_url
type FetchURLInput struct {
	URL     string `json:"url" required:"true" description:"The URL to fetch content from"`
	Format  string `json:"format,omitempty" description:"The format to return the content in (text, markdown, or html; default text)"`
	Timeout int    `json:"timeout,omitempty" description:"Optional timeout in seconds (max 120, default 30)"`
}

// FetchURLOutput represents the response from fetch_url
type FetchURLOutput struct {
	Content     string `json:"content" description:"The fetched content in the requested format"`
	StatusCode  int    `json:"status_code" description:"HTTP status code of the response"`
	URL         string `json:"url" description:"The final URL after any redirects"`
	ContentType string `json:"content_type,omitempty" description:"Content-Type header from the response"`
}

// Tool returns the fetch_url tool definition.
func Tool() (agent.Tool, error) {
	return agent.NewGenericTool(Name, fetchURLPrompt, fetchURLHandler)
}

func fetchURLHandler(ctx context.Context, input FetchURLInput) (FetchURLOutput, error) {
	format := strings.ToLower(input.Format)
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "markdown" && format != "html" {
		return FetchURLOutput{}, fmt.Errorf("format must be one of: text, markdown, html")
	}

	if !strings.HasPrefix(input.URL, "http://") && !strings.HasPrefix(input.URL, "https://") {
		return FetchURLOutput{}, fmt.Errorf("URL must start with http:// or https://")
	}

	timeout := input.Timeout
	if timeout <= 0 {
		timeout = 30
	} else if timeout > 120 {
		timeout = 120
	}

	client := &http.Client{
		Timeout: time.Duration(timeout) * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return FetchURLOutput{}, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "drover/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return FetchURLOutput{}, fmt.Errorf("failed to fetch URL: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchURLOutput{}, fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}

	const maxSize = 5 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSize))
	if err != nil {
		return FetchURLOutput{}, fmt.Errorf("failed to read response: %v", err)
	}

	content := string(body)
	contentType := resp.Header.Get("Content-Type")
	isHTML := strings.Contains(contentType, "text/html")

	var processed string
	switch format {
	case "text":
		processed = content
		if isHTML {
			if text, err := extractTextFromHTML(content); err == nil {
				processed = text
			} else {
				toolsutil.GetLogger().Warn("failed to extract text from html", "url", input.URL, "error", err)
			}
		}
	case "markdown":
		switch {
		case isHTML:
			markdown, err := convertHTMLToMarkdown(content)
			if err != nil {
				toolsutil.GetLogger().Warn("failed to convert html to markdown", "url", input.URL, "error", err)
				processed = "```html\n" + content + "\n```"
			} else {
				processed = markdown
			}
		case strings.Contains(contentType, "application/json"):
			processed = "```json\n" + content + "\n```"
		default:
			processed = "```\n" + content + "\n```"
		}
	case "html":
		processed = content
	}

	toolsutil.GetLogger().Info("fetched url",
		"url", input.URL,
		"status", resp.StatusCode,
		"size", len(body),
		"format", format,
	)

	return FetchURLOutput{
		Content:     processed,
		StatusCode:  resp.StatusCode,
		URL:         resp.Request.URL.String(),
		ContentType: contentType,
	}, nil
}

// extractTextFromHTML extracts plain text from HTML content.
func extractTextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var cleaned []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "\n"), nil
}

// convertHTMLToMarkdown converts HTML content to Markdown.
func convertHTMLToMarkdown(html string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	markdown = strings.TrimSpace(markdown)
	markdown = strings.ReplaceAll(markdown, "\n\n\n", "\n\n")
	return markdown, nil
}
