package linter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// genericLinkTexts are phrases that tell the reader nothing about the target.
var genericLinkTexts = map[string]struct{}{
	"click here": {},
	"here":       {},
	"link":       {},
	"read more":  {},
}

// asteriskBullet matches bullet list lines using an asterisk marker.
var asteriskBullet = regexp.MustCompile(`^\s*\*\s`)

// frontMatterDelimiter opens a YAML frontmatter block.
var frontMatterDelimiter = []byte("---")

// splitFrontMatter strips a leading frontmatter block, recording an error
// when the block does not parse. It returns the Markdown body and the number
// of lines removed, so rules can report original line numbers.
func (l *linter) splitFrontMatter(file string, content []byte) ([]byte, int) {
	if !bytes.HasPrefix(content, frontMatterDelimiter) {
		return content, 0
	}

	var meta map[string]any

	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		l.report.AddError(file, fmt.Sprintf("invalid frontmatter: %v", err))
		return content, 0
	}

	stripped := len(content) - len(body)
	if stripped <= 0 || !bytes.HasSuffix(content, body) {
		return content, 0
	}

	return body, bytes.Count(content[:stripped], []byte("\n"))
}

// checkHeadings enforces a single H1 and warns about level jumps.
func (l *linter) checkHeadings(file string, body []byte, lineOffset int) {
	doc := l.md.Parser().Parse(text.NewReader(body))

	type headingInfo struct {
		level int
		line  int
	}

	var headings []headingInfo

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if h, ok := n.(*ast.Heading); ok {
			line := 0
			if h.Lines().Len() > 0 {
				line = lineNumber(body, h.Lines().At(0).Start) + lineOffset
			}

			headings = append(headings, headingInfo{level: h.Level, line: line})
		}

		return ast.WalkContinue, nil
	})

	h1Count := 0
	for _, h := range headings {
		if h.level == 1 {
			h1Count++
		}
	}

	if h1Count != 1 {
		l.report.AddError(file, fmt.Sprintf("found %d H1 headings, should have exactly 1", h1Count))
	}

	for i := 1; i < len(headings); i++ {
		prev, curr := headings[i-1], headings[i]
		if curr.level > prev.level+1 {
			l.report.AddWarning(file,
				fmt.Sprintf("line %d: heading level jumps from H%d to H%d", curr.line, prev.level, curr.level))
		}
	}
}

// checkLinks warns on generic link text and errors on internal .md links
// that do not resolve relative to the docs root.
func (l *linter) checkLinks(file string, body []byte) {
	doc := l.md.Parser().Parse(text.NewReader(body))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		linkText := nodeText(link, body)
		if _, generic := genericLinkTexts[strings.ToLower(linkText)]; generic {
			l.report.AddWarning(file, fmt.Sprintf("non-descriptive link text: %q", linkText))
		}

		dest := string(link.Destination)
		if strings.HasSuffix(dest, ".md") && !strings.HasPrefix(dest, "http") {
			target := filepath.Join(l.docsDir, filepath.FromSlash(dest))
			if _, err := os.Stat(target); err != nil {
				l.report.AddError(file, fmt.Sprintf("broken internal link: %s", dest))
			}
		}

		return ast.WalkContinue, nil
	})
}

// checkCodeFences warns on fences without a language and errors when a
// fence is left unclosed at end of file.
func (l *linter) checkCodeFences(file string, body []byte, lineOffset int) {
	inBlock := false

	for i, line := range strings.Split(string(body), "\n") {
		if !strings.HasPrefix(line, "```") {
			continue
		}

		if !inBlock {
			if language := strings.TrimSpace(line[3:]); language == "" {
				l.report.AddWarning(file,
					fmt.Sprintf("line %d: code block missing language specification", i+1+lineOffset))
			}

			inBlock = true

			continue
		}

		inBlock = false
	}

	if inBlock {
		l.report.AddError(file, "unclosed code block found")
	}
}

// checkTrailingNewline errors when the file does not end with a newline.
func (l *linter) checkTrailingNewline(file string, content []byte) {
	if !bytes.HasSuffix(content, []byte("\n")) {
		l.report.AddError(file, "file should end with a newline")
	}
}

// checkBulletMarkers warns on asterisk bullets; hyphens are the house style.
func (l *linter) checkBulletMarkers(file string, body []byte, lineOffset int) {
	for i, line := range strings.Split(string(body), "\n") {
		if asteriskBullet.MatchString(line) {
			l.report.AddWarning(file,
				fmt.Sprintf("line %d: use hyphens (-) instead of asterisks (*) for bullets", i+1+lineOffset))
		}
	}
}

// lineNumber converts a byte offset into a 1-based line number.
func lineNumber(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return 1 + bytes.Count(source[:offset], []byte("\n"))
}

// nodeText collects the plain text content beneath a node.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(source))
			}
		}

		return ast.WalkContinue, nil
	})

	return sb.String()
}
