package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/nao1215/docscore/internal/model"
	"golang.org/x/net/html"
)

// DefaultSelectors are the content containers tried before the
// readability algorithm, most specific first.
var DefaultSelectors = []string{
	".article-body",
	".article-content",
	".post-content",
	".content-body",
	".main-content",
	"main",
	"article",
	".content",
	"[role=main]",
}

// Strategy locates the main content of a page and builds a Document
// from it. Extract returns ErrNoMatch when the strategy does not apply.
type Strategy interface {
	Name() string
	Extract(page *Page) (*model.Document, error)
}

// DefaultStrategies returns the selector strategies followed by the
// readability and whole-body fallbacks.
func DefaultStrategies() []Strategy {
	strategies := make([]Strategy, 0, len(DefaultSelectors)+2)
	for _, sel := range DefaultSelectors {
		strategies = append(strategies, SelectorStrategy{Selector: sel})
	}
	return append(strategies, ReadabilityStrategy{}, BodyStrategy{})
}

// SelectorStrategy uses the first element matching a CSS selector.
type SelectorStrategy struct {
	Selector string
}

// Name returns "selector:" followed by the selector.
func (s SelectorStrategy) Name() string {
	return "selector:" + s.Selector
}

// Extract builds a Document from the first matching element.
func (s SelectorStrategy) Extract(page *Page) (*model.Document, error) {
	sel := page.dom.Find(s.Selector).First()
	if sel.Length() == 0 {
		return nil, ErrNoMatch
	}
	return build(page, sel.Nodes[0]), nil
}

// ReadabilityStrategy uses the readability algorithm to find the main
// article of pages without a recognizable container.
type ReadabilityStrategy struct{}

// Name returns "readability".
func (ReadabilityStrategy) Name() string {
	return "readability"
}

// Extract builds a Document from the article readability selects.
// Readability rewrites the markup it returns (headings are demoted and
// classes dropped), so the article is mapped back onto the original
// page and built from there. The rewritten content is used only when
// no original node matches.
func (ReadabilityStrategy) Extract(page *Page) (*model.Document, error) {
	article, err := readability.FromReader(bytes.NewReader(page.HTML), page.URL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, ErrNoMatch
	}

	root := article.Node
	if root == nil {
		if root, err = html.Parse(strings.NewReader(article.Content)); err != nil {
			return nil, err
		}
	}
	if original := locateOriginal(page, root); original != nil {
		root = original
	}

	doc := build(page, root)
	if doc.Title == "" {
		doc.Title = collapse(article.Title)
	}
	return doc, nil
}

// anchorElements are the blocks whose text identifies an article within
// the original page.
const anchorElements = "p, pre, li, h1, h2, h3, h4, h5, h6"

// locateOriginal finds the element of the original page that holds the
// article: the lowest common ancestor of the elements matching the
// article's first and last text blocks. It returns nil when either block
// is not found.
func locateOriginal(page *Page, article *html.Node) *html.Node {
	anchors := goquery.NewDocumentFromNode(article).Find(anchorElements)
	var texts []string
	anchors.Each(func(_ int, s *goquery.Selection) {
		if text := collapse(textOf(s.Nodes[0])); text != "" {
			texts = append(texts, text)
		}
	})
	if len(texts) == 0 {
		return nil
	}

	var first, last *html.Node
	for _, n := range page.dom.Find(anchorElements).Nodes {
		text := collapse(textOf(n))
		if first == nil && text == texts[0] {
			first = n
		}
		if text == texts[len(texts)-1] {
			last = n
		}
	}
	if first == nil || last == nil {
		return nil
	}

	container := commonAncestor(first, last)
	if container == first {
		container = first.Parent
	}
	if container == nil || container.Type != html.ElementNode {
		return nil
	}
	return container
}

// commonAncestor returns the lowest node that contains both a and b.
func commonAncestor(a, b *html.Node) *html.Node {
	ancestors := make(map[*html.Node]bool)
	for n := a; n != nil; n = n.Parent {
		ancestors[n] = true
	}
	for n := b; n != nil; n = n.Parent {
		if ancestors[n] {
			return n
		}
	}
	return nil
}

// BodyStrategy uses the whole body element.
type BodyStrategy struct{}

// Name returns "body".
func (BodyStrategy) Name() string {
	return "body"
}

// Extract builds a Document from the body element.
func (BodyStrategy) Extract(page *Page) (*model.Document, error) {
	sel := page.dom.Find("body").First()
	if sel.Length() == 0 {
		return nil, ErrNoMatch
	}
	return build(page, sel.Nodes[0]), nil
}
