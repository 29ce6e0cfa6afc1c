package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/nao1215/docscore/internal/model"
	"golang.org/x/net/html"
)

// ignoredElements are skipped entirely inside a content container.
var ignoredElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"nav":      true,
	"footer":   true,
	"aside":    true,
	"form":     true,
}

// blockElements break the text flow, so their text is separated from
// the surrounding text by whitespace.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// builder collects the parts of a Document while walking a container.
type builder struct {
	page *Page
	doc  *model.Document

	seenImages map[string]bool
	seenLinks  map[[2]string]bool
}

// build creates a Document from the subtree rooted at root.
func build(page *Page, root *html.Node) *model.Document {
	b := &builder{
		page: page,
		doc: &model.Document{
			URL:        page.RawURL,
			Title:      page.Title(),
			Headings:   make([]model.Heading, 0),
			Paragraphs: make([]string, 0),
			Lists:      make([]model.List, 0),
			CodeBlocks: make([]model.CodeBlock, 0),
			Images:     make([]model.Image, 0),
			Links:      make([]model.Link, 0),
			Metadata:   page.Metadata(),
		},
		seenImages: make(map[string]bool),
		seenLinks:  make(map[[2]string]bool),
	}

	b.walk(root, false)

	b.doc.FullText = collapse(textOf(root))
	b.doc.WordCount = len(strings.Fields(b.doc.FullText))
	b.doc.CharacterCount = utf8.RuneCountInString(b.doc.FullText)
	return b.doc
}

// walk visits n and its descendants. inList is true below a list item,
// where nested lists are part of the item text.
func (b *builder) walk(n *html.Node, inList bool) {
	if n.Type == html.ElementNode {
		if ignoredElements[n.Data] {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if text := collapse(textOf(n)); text != "" {
				b.doc.Headings = append(b.doc.Headings, model.Heading{
					Level: int(n.Data[1] - '0'),
					Text:  text,
				})
			}

		case "p":
			if text := collapse(textOf(n)); text != "" {
				b.doc.Paragraphs = append(b.doc.Paragraphs, text)
			}

		case "ul", "ol":
			if !inList {
				b.addList(n)
			}
			inList = true

		case "pre":
			b.addCode(n, rawTextOf(n))
			return

		case "code":
			// Inline code stays part of the text.
			if content := rawTextOf(n); strings.Contains(strings.TrimSpace(content), "\n") {
				b.addCode(n, content)
			}
			return

		case "img":
			b.addImage(n)

		case "a":
			b.addLink(n)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.walk(c, inList)
	}
}

// addList records a list and its direct items. Nested lists are folded
// into the text of the item that holds them.
func (b *builder) addList(n *html.Node) {
	list := model.List{Ordered: n.Data == "ol", Items: make([]string, 0)}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		if text := collapse(textOf(c)); text != "" {
			list.Items = append(list.Items, text)
		}
	}
	if len(list.Items) > 0 {
		b.doc.Lists = append(b.doc.Lists, list)
	}
}

// addCode records a code block unless it is blank.
func (b *builder) addCode(n *html.Node, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	b.doc.CodeBlocks = append(b.doc.CodeBlocks, model.CodeBlock{
		Language: codeLanguage(n),
		Content:  content,
	})
}

func (b *builder) addImage(n *html.Node) {
	src := b.page.resolve(getAttr(n, "src"))
	if src == "" || b.seenImages[src] {
		return
	}
	b.seenImages[src] = true
	b.doc.Images = append(b.doc.Images, model.Image{Src: src, Alt: strings.TrimSpace(getAttr(n, "alt"))})
}

func (b *builder) addLink(n *html.Node) {
	href := b.page.resolve(getAttr(n, "href"))
	if href == "" {
		return
	}
	text := collapse(textOf(n))
	key := [2]string{href, text}
	if b.seenLinks[key] {
		return
	}
	b.seenLinks[key] = true
	b.doc.Links = append(b.doc.Links, model.Link{Href: href, Text: text})
}

// codeLanguage reads a language-xxx or lang-xxx class from n or, for a
// pre element, from its first code child.
func codeLanguage(n *html.Node) *string {
	if lang := languageClass(n); lang != "" {
		return &lang
	}
	if n.Data == "pre" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "code" {
				if lang := languageClass(c); lang != "" {
					return &lang
				}
				break
			}
		}
	}
	return nil
}

func languageClass(n *html.Node) string {
	for _, class := range strings.Fields(getAttr(n, "class")) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
				return strings.ToLower(lang)
			}
		}
	}
	return ""
}

// textOf returns the visible text below n. Block elements are separated
// by newlines; ignored elements contribute nothing.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if ignoredElements[n.Data] {
				return
			}
		case html.CommentNode:
			return
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	walk(n)
	return sb.String()
}

// rawTextOf concatenates the text nodes below n, keeping whitespace.
func rawTextOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
