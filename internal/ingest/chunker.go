package ingest

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	minChunkRunes = 50
	maxChunkRunes = 700 // ~450 tokens, under a 512-token embedding context
)

// Chunk is one heading-scoped section of a note.
type Chunk struct {
	Index       int
	HeadingPath string // "# A > ## B"
	Text        string
}

// Chunker splits markdown notes into heading-scoped chunks.
type Chunker struct {
	md goldmark.Markdown
}

// NewChunker creates a Chunker that understands GFM tables.
func NewChunker() *Chunker {
	return &Chunker{md: goldmark.New(goldmark.WithExtensions(extension.Table))}
}

type heading struct {
	level int
	text  string
}

// Split returns the note title and its chunks. The title is the first level-1
// heading, else the first level-2 heading, else the filename.
func (c *Chunker) Split(source []byte, filename string) (string, []Chunk) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return titleFromFilename(filename), nil
	}

	doc := c.md.Parser().Parse(text.NewReader(source))
	title := findTitle(doc, source, filename)

	var (
		chunks []Chunk
		stack  []heading
		cur    = &Chunk{HeadingPath: "# " + title}
		buf    strings.Builder
	)
	flush := func() {
		if t := strings.TrimSpace(buf.String()); t != "" {
			cur.Text = t
			chunks = append(chunks, *cur)
		}
		buf.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			flush()
			for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, heading{level: h.Level, text: nodeText(h, source)})
			cur = &Chunk{HeadingPath: headingPath(stack)}
			continue
		}
		if t := blockText(n, source); t != "" {
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(t)
		}
	}
	flush()

	return title, sizeChunks(chunks)
}

func findTitle(doc ast.Node, source []byte, filename string) string {
	var h2 string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if h.Level == 1 {
			return nodeText(h, source)
		}
		if h.Level == 2 && h2 == "" {
			h2 = nodeText(h, source)
		}
	}
	if h2 != "" {
		return h2
	}
	return titleFromFilename(filename)
}

func titleFromFilename(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' || unicode.IsSpace(r) })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func headingPath(stack []heading) string {
	parts := make([]string, len(stack))
	for i, h := range stack {
		parts[i] = strings.Repeat("#", h.level) + " " + h.text
	}
	return strings.Join(parts, " > ")
}

// blockText renders a top-level block as plain text. Code blocks keep their
// lines; table rows become pipe-separated lines.
func blockText(n ast.Node, source []byte) string {
	switch b := n.(type) {
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var sb strings.Builder
		lines := b.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		return strings.TrimRight(sb.String(), "\n")
	case *ast.List:
		var items []string
		for li := b.FirstChild(); li != nil; li = li.NextSibling() {
			if t := nodeText(li, source); t != "" {
				items = append(items, "- "+t)
			}
		}
		return strings.Join(items, "\n")
	}
	if strings.HasPrefix(n.Kind().String(), "Table") {
		var rows []string
		for row := n.FirstChild(); row != nil; row = row.NextSibling() {
			var cells []string
			for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
				cells = append(cells, nodeText(cell, source))
			}
			rows = append(rows, strings.Join(cells, " | "))
		}
		return strings.Join(rows, "\n")
	}
	return nodeText(n, source)
}

// nodeText concatenates the inline text under n.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// sizeChunks merges undersized chunks into their successor and splits
// oversized ones at paragraph, line or sentence boundaries. Sizes are in runes.
func sizeChunks(in []Chunk) []Chunk {
	var out []Chunk
	for i := 0; i < len(in); i++ {
		cur := in[i]
		for utf8.RuneCountInString(cur.Text) < minChunkRunes && i+1 < len(in) {
			merged := cur.Text + "\n\n" + in[i+1].Text
			if utf8.RuneCountInString(merged) > maxChunkRunes {
				break
			}
			cur.Text = merged
			i++
		}
		out = append(out, split(cur)...)
	}
	for i := range out {
		out[i].Index = i
	}
	return out
}

func split(c Chunk) []Chunk {
	runes := []rune(c.Text)
	if len(runes) <= maxChunkRunes {
		return []Chunk{c}
	}

	var parts []Chunk
	for len(runes) > maxChunkRunes {
		cut := cutPoint(runes[:maxChunkRunes])
		parts = append(parts, Chunk{HeadingPath: c.HeadingPath, Text: strings.TrimSpace(string(runes[:cut]))})
		runes = runes[cut:]
	}
	if t := strings.TrimSpace(string(runes)); t != "" {
		parts = append(parts, Chunk{HeadingPath: c.HeadingPath, Text: t})
	}
	return parts
}

// cutPoint returns the rune offset after the last good boundary in window.
func cutPoint(window []rune) int {
	for _, sep := range []string{"\n\n", "\n", ". "} {
		sepRunes := []rune(sep)
		for i := len(window) - len(sepRunes); i > 0; i-- {
			if string(window[i:i+len(sepRunes)]) == sep {
				return i + len(sepRunes)
			}
		}
	}
	return len(window)
}
