// Package jd sources the job description from literal text, a file, or a URL.
package jd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-customizer-cli/internal/model"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "Mozilla/5.0 (compatible; ResumeCustomizer/1.0)"
)

// FromText returns the literal job description, trimmed.
func FromText(text string) string {
	return strings.TrimSpace(text)
}

// FromFile reads the job description from a file, trimmed.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &model.NotFoundError{What: "job description file", Path: path, Err: err}
		}
		return "", fmt.Errorf("failed to read job description file %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// FromURL fetches a job posting page and extracts its main text. When
// useBrowser is set the page is rendered in a headless browser first, which
// handles JavaScript-only job boards.
func FromURL(ctx context.Context, rawURL string, useBrowser bool) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid job posting URL %q", rawURL)
	}

	var html string
	if useBrowser {
		html, err = renderWithBrowser(ctx, rawURL)
	} else {
		html, err = fetchHTML(ctx, rawURL)
	}
	if err != nil {
		return "", err
	}

	text, err := ExtractText(html)
	if err != nil {
		return "", fmt.Errorf("failed to extract job posting text from %s: %w", rawURL, err)
	}
	if text == "" {
		return "", fmt.Errorf("no job posting text found at %s (try --use-browser for JavaScript-rendered pages)", rawURL)
	}
	return text, nil
}

func fetchHTML(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch %s: HTTP status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response from %s: %w", rawURL, err)
	}
	return string(body), nil
}

// jobPostingSelectors are tried in order before falling back to <body>.
var jobPostingSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"main",
	"article",
	".content",
	"#content",
}

// ExtractText parses HTML and returns the main job posting text, trimmed.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .cookie-banner, .sidebar").Remove()

	var content *goquery.Selection
	for _, selector := range jobPostingSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return cleanWhitespace(content.Text()), nil
}

// cleanWhitespace trims every line and collapses runs of blank lines.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
