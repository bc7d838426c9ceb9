package usedfiles

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// parseMarkdown collects paths from list items and code blocks. Headings and
// free paragraphs are ignored, so a list can carry its own explanation:
//
//	## Entry points
//	- `public/index.php`
//	- bin/console.php
func parseMarkdown(content []byte) ([]string, error) {
	doc := markdown.Parser().Parse(text.NewReader(content))

	var entries []string
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.ListItem:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				switch c.(type) {
				case *ast.TextBlock, *ast.Paragraph:
					entries = append(entries, blockLines(c, content, false)...)
				}
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			entries = append(entries, blockLines(node, content, true)...)
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// blockLines returns the trimmed source lines of a block. List item text has
// surrounding backticks removed; code block lines starting with "#" are
// comments.
func blockLines(n ast.Node, source []byte, code bool) []string {
	var out []string
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimSpace(string(seg.Value(source)))
		if line == "" {
			continue
		}
		if code {
			if strings.HasPrefix(line, "#") {
				continue
			}
		} else {
			line = strings.TrimSpace(strings.Trim(line, "`"))
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
