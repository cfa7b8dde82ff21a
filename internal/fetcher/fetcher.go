// Package fetcher imports job postings from public careers pages.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/talentbridge/jobboard/pkg/model"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; TalentBridgeImporter/1.0)"

// ErrNoPosting means the page carried no recognisable job posting.
var ErrNoPosting = errors.New("no job posting found")

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Fetch downloads pageURL and extracts the posting it describes.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*model.CreateJobReq, error) {
	u, err := url.Parse(pageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("invalid url: %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u.Host, resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse reads an HTML page. schema.org JobPosting data wins; otherwise the
// visible heading and article text are used.
func Parse(r io.Reader) (*model.CreateJobReq, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	if job, ok := fromJSONLD(doc); ok {
		return job, nil
	}
	return fromMarkup(doc)
}

func fromMarkup(doc *goquery.Document) (*model.CreateJobReq, error) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = metaContent(doc, "og:title")
	}
	if title == "" {
		return nil, ErrNoPosting
	}

	body := doc.Find("article, main, .job-description").First()
	if body.Length() == 0 {
		body = doc.Find("body")
	}
	body.Find("script, style, nav, header, footer").Remove()

	return &model.CreateJobReq{
		Title:       cleanText(title),
		Company:     metaContent(doc, "og:site_name"),
		Description: paragraphs(body),
	}, nil
}

func metaContent(doc *goquery.Document, property string) string {
	v, _ := doc.Find(`meta[property="` + property + `"]`).Attr("content")
	return strings.TrimSpace(v)
}

// paragraphs flattens block elements into blank-line separated text.
func paragraphs(s *goquery.Selection) string {
	var parts []string
	s.Find("p, h2, h3, h4, li").Each(func(_ int, el *goquery.Selection) {
		if text := cleanText(el.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return cleanText(s.Text())
	}
	return strings.Join(parts, "\n\n")
}

var (
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n+`)
)

// cleanText collapses runs of whitespace and drops blank lines.
func cleanText(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = newlineRun.ReplaceAllString(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}
