package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// Options selects the optional passage types extracted beyond the default
// set. The default set (title, meta description, h1-h6) is always emitted.
type Options struct {
	Paragraphs      bool
	Images          bool
	DefinitionLists bool
	Articles        bool
}

// OptionsFromConfig maps the extract configuration onto extractor options.
func OptionsFromConfig(cfg domain.ExtractConfig) Options {
	return Options{
		Paragraphs:      cfg.Paragraphs,
		Images:          cfg.Images,
		DefinitionLists: cfg.DefinitionLists,
		Articles:        cfg.Articles,
	}
}

// Extractor converts raw markup into an ordered sequence of typed passages.
type Extractor struct {
	opts Options
}

// New creates an extractor with the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Extract parses markup and returns passages in document order.
//
// Every default passage type is represented: when a tag is absent from the
// source a single empty-text placeholder stands in for it, so downstream
// stages can rely on absence being representable rather than thrown.
// Optional types are appended after the default set, non-empty occurrences
// only. Malformed markup degrades to partial results; only nil or blank
// input is an error.
func (e *Extractor) Extract(markup []byte) ([]domain.Passage, error) {
	if len(bytes.TrimSpace(markup)) == 0 {
		return nil, fmt.Errorf("%w: empty markup", domain.ErrExtraction)
	}

	// html.Parse is tolerant: it repairs malformed markup instead of
	// failing, which gives the degrade-to-partial behaviour for free.
	root, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	found := map[domain.PassageType][]string{}
	walk(root, func(n *html.Node) {
		if t, text, ok := e.classify(n); ok && text != "" {
			found[t] = append(found[t], text)
		}
	})

	var passages []domain.Passage
	for _, t := range domain.DefaultPassageTypes {
		texts := found[t]
		if len(texts) == 0 {
			passages = append(passages, domain.Passage{Type: t})
			continue
		}
		for _, text := range texts {
			passages = append(passages, domain.Passage{Type: t, Text: text})
		}
	}
	for _, t := range domain.OptionalPassageTypes {
		for _, text := range found[t] {
			passages = append(passages, domain.Passage{Type: t, Text: text})
		}
	}

	logger.Debug("Extracted %d passages (%d optional types enabled)",
		len(passages), e.enabledCount())
	return passages, nil
}

func (e *Extractor) enabledCount() int {
	n := 0
	for _, on := range []bool{e.opts.Paragraphs, e.opts.Images, e.opts.DefinitionLists, e.opts.Articles} {
		if on {
			n++
		}
	}
	return n
}

// classify maps a node to its passage type and text, honouring the enabled
// optional types.
func (e *Extractor) classify(n *html.Node) (domain.PassageType, string, bool) {
	if n.Type != html.ElementNode {
		return "", "", false
	}

	switch n.DataAtom {
	case atom.Title:
		return domain.PassageTitle, textContent(n), true
	case atom.Meta:
		if strings.EqualFold(attr(n, "name"), "description") {
			return domain.PassageMetaDescription, strings.TrimSpace(attr(n, "content")), true
		}
	case atom.H1:
		return domain.PassageHeading1, textContent(n), true
	case atom.H2:
		return domain.PassageHeading2, textContent(n), true
	case atom.H3:
		return domain.PassageHeading3, textContent(n), true
	case atom.H4:
		return domain.PassageHeading4, textContent(n), true
	case atom.H5:
		return domain.PassageHeading5, textContent(n), true
	case atom.H6:
		return domain.PassageHeading6, textContent(n), true
	case atom.P:
		if e.opts.Paragraphs {
			return domain.PassageParagraph, textContent(n), true
		}
	case atom.Img:
		if e.opts.Images {
			return domain.PassageImageAlt, strings.TrimSpace(attr(n, "alt")), true
		}
	case atom.Figcaption:
		if e.opts.Images {
			return domain.PassageFigureCaption, textContent(n), true
		}
	case atom.Dt:
		if e.opts.DefinitionLists {
			return domain.PassageDefinitionTerm, textContent(n), true
		}
	case atom.Dd:
		if e.opts.DefinitionLists {
			return domain.PassageDefinitionData, textContent(n), true
		}
	case atom.Article:
		if e.opts.Articles {
			return domain.PassageArticleBlock, textContent(n), true
		}
	}
	return "", "", false
}

// walk visits nodes depth-first in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// textContent collects the visible text of a subtree, skipping script and
// style blocks, with whitespace collapsed.
func textContent(n *html.Node) string {
	var b strings.Builder
	var gather func(*html.Node)
	gather = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style || n.DataAtom == atom.Noscript) {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			gather(c)
		}
	}
	gather(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
