package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleSelectors are tried in order to find the page title.
var titleSelectors = []string{
	"h1.article-title",
	"h1.page-title",
	".article-header h1",
	"h1",
	"title",
}

// Page is a parsed HTML page handed to each Strategy.
type Page struct {
	// RawURL is the page URL as given by the caller.
	RawURL string

	// URL is the parsed page URL used to resolve relative links.
	// It is nil when RawURL does not parse.
	URL *url.URL

	// HTML is the raw page markup.
	HTML []byte

	dom *goquery.Document
}

// NewPage parses rawHTML.
func NewPage(rawHTML []byte, pageURL string) (*Page, error) {
	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		u = nil
	}
	return &Page{RawURL: pageURL, URL: u, HTML: rawHTML, dom: dom}, nil
}

// Title returns the first non-empty match of titleSelectors.
func (p *Page) Title() string {
	for _, sel := range titleSelectors {
		if text := collapse(p.dom.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// Metadata returns the content of every meta tag keyed by its name or,
// for Open Graph style tags, its property. Later tags with the same key
// win.
func (p *Page) Metadata() map[string]string {
	meta := make(map[string]string)
	p.dom.Find("meta[content]").Each(func(_ int, s *goquery.Selection) {
		key := strings.TrimSpace(s.AttrOr("name", ""))
		if key == "" {
			key = strings.TrimSpace(s.AttrOr("property", ""))
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if key != "" && content != "" {
			meta[key] = content
		}
	})
	return meta
}

// resolve resolves href against the page URL. Links that do not point to
// a document (javascript:, mailto:, tel:, data: and same-page fragments)
// resolve to "".
func (p *Page) resolve(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if p.URL == nil {
		return u.String()
	}
	return p.URL.ResolveReference(u).String()
}

// collapse trims s and replaces runs of whitespace with one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
