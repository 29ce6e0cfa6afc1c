package model

// Document is the structured content extracted from a single page.
// It is produced by the extractor and consumed read-only by the analyzers,
// so it can be shared across goroutines without synchronization.
type Document struct {
	// URL is the address the document was fetched from.
	URL string `json:"url"`

	// Title is the page title. Empty when the page has none.
	Title string `json:"title"`

	// Headings contains h1-h6 elements in document order.
	Headings []Heading `json:"headings"`

	// Paragraphs contains the trimmed text of every paragraph block.
	Paragraphs []string `json:"paragraphs"`

	// Lists contains ordered and unordered lists. Nested lists are
	// flattened into the text of their parent item.
	Lists []List `json:"lists"`

	// CodeBlocks contains preformatted code found in the content.
	CodeBlocks []CodeBlock `json:"code_blocks"`

	// Images contains images deduplicated by src.
	Images []Image `json:"images"`

	// Links contains anchors deduplicated by (href, text).
	Links []Link `json:"links"`

	// FullText is the visible text of the content container with
	// whitespace collapsed.
	FullText string `json:"full_text"`

	// WordCount is the number of whitespace-delimited tokens in FullText.
	WordCount int `json:"word_count"`

	// CharacterCount is the number of runes in FullText.
	CharacterCount int `json:"character_count"`

	// Metadata maps meta tag names (or properties) to their content.
	Metadata map[string]string `json:"metadata"`
}

// Heading is a single h1-h6 element.
type Heading struct {
	// Level is the heading level, 1 through 6.
	Level int `json:"level"`

	// Text is the trimmed heading text.
	Text string `json:"text"`
}

// List is a single ul or ol element.
type List struct {
	Ordered bool     `json:"ordered"`
	Items   []string `json:"items"`
}

// CodeBlock is a block of preformatted code.
type CodeBlock struct {
	// Language comes from a language-xxx class. Nil when unknown.
	Language *string `json:"language"`

	// Content is the raw text of the block.
	Content string `json:"content"`
}

// Image is an img element.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Link is an anchor element with a resolved href.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// HeadingLevels returns the level of every heading in order.
func (d *Document) HeadingLevels() []int {
	levels := make([]int, len(d.Headings))
	for i, h := range d.Headings {
		levels[i] = h.Level
	}
	return levels
}

// OrderedListCount returns the number of ordered lists.
func (d *Document) OrderedListCount() int {
	n := 0
	for _, l := range d.Lists {
		if l.Ordered {
			n++
		}
	}
	return n
}

// ImagesWithoutAlt returns the number of images whose alt text is empty.
func (d *Document) ImagesWithoutAlt() int {
	n := 0
	for _, img := range d.Images {
		if img.Alt == "" {
			n++
		}
	}
	return n
}

// Info returns the document summary embedded in analysis results.
func (d *Document) Info() DocumentInfo {
	return DocumentInfo{
		Title:          d.Title,
		WordCount:      d.WordCount,
		CharacterCount: d.CharacterCount,
		HeadingCount:   len(d.Headings),
		ParagraphCount: len(d.Paragraphs),
		CodeBlockCount: len(d.CodeBlocks),
		ImageCount:     len(d.Images),
		LinkCount:      len(d.Links),
		Metadata:       d.Metadata,
	}
}

// DocumentInfo is a compact description of an analyzed document.
type DocumentInfo struct {
	Title          string `json:"title"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	HeadingCount   int    `json:"heading_count"`
	ParagraphCount int    `json:"paragraph_count"`
	CodeBlockCount int    `json:"code_block_count"`
	ImageCount     int    `json:"image_count"`
	LinkCount      int    `json:"link_count"`

	Metadata map[string]string `json:"metadata,omitempty"`
}
