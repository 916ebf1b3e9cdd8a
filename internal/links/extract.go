package links

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// [[Target]], [[Target#Heading]] and [[Target|Alias]].
var wikilinkPattern = regexp.MustCompile(`\[\[([^\]|#]+)(?:#[^\]|]*)?(?:\|[^\]]*)?\]\]`)

// Extractor finds link targets in markdown.
type Extractor struct {
	parser goldmark.Markdown
}

// NewExtractor creates a new goldmark-backed extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Targets returns the internal link targets of a markdown document in order of
// appearance, without duplicates. External URLs, mail links and in-page anchors are
// skipped. Targets are normalized: no anchor, no directory, no .md extension.
// Links inside code blocks are ignored.
func (e *Extractor) Targets(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	doc := e.parser.Parser().Parse(text.NewReader(content))

	var targets []string
	seen := make(map[string]struct{})
	add := func(raw string) {
		target := normalizeTarget(raw)
		if target == "" {
			return
		}
		if _, ok := seen[strings.ToLower(target)]; ok {
			return
		}
		seen[strings.ToLower(target)] = struct{}{}
		targets = append(targets, target)
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Link:
			dest := string(node.Destination)
			if isExternal(dest) {
				return ast.WalkContinue, nil
			}
			add(dest)
		case *ast.Paragraph, *ast.Heading:
			// Wikilinks are not markdown syntax; they survive as raw text in block lines.
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				for _, m := range wikilinkPattern.FindAllSubmatch(seg.Value(content), -1) {
					add(string(m[1]))
				}
			}
		}
		return ast.WalkContinue, nil
	})

	return targets
}

func isExternal(dest string) bool {
	lower := strings.ToLower(dest)
	return dest == "" ||
		strings.HasPrefix(lower, "#") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.Contains(lower, "://")
}

func normalizeTarget(raw string) string {
	target := strings.TrimSpace(raw)
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}
	target = path.Base(strings.ReplaceAll(target, "\\", "/"))
	if target == "." || target == "/" {
		return ""
	}
	target = strings.TrimSuffix(target, ".md")
	return strings.TrimSpace(target)
}
