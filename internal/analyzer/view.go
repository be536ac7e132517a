package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/ludo-technologies/mobilescan/domain"
)

// componentView is the pre-processed, read-only form of a component shared by
// all evaluators of one analysis
type componentView struct {
	source     domain.ComponentSource
	content    string
	lower      string
	lines      []string
	lowerLines []string
	category   domain.DomainCategory
	blank      bool
}

func newComponentView(src domain.ComponentSource, category domain.DomainCategory) *componentView {
	lines := src.Lines()
	lowerLines := make([]string, len(lines))
	for i, l := range lines {
		lowerLines[i] = strings.ToLower(l)
	}
	return &componentView{
		source:     src,
		content:    src.Content,
		lower:      strings.ToLower(src.Content),
		lines:      lines,
		lowerLines: lowerLines,
		category:   category,
		blank:      strings.TrimSpace(src.Content) == "",
	}
}

// classTokens splits a line into class-like tokens. Quotes, braces, backticks
// and whitespace separate tokens; brackets and parentheses do not, so
// arbitrary values such as min-h-[44px] stay intact.
func classTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\'' || r == '`' || r == '{' || r == '}'
	})
}

var classAttrPattern = regexp.MustCompile(`(?:className|class|:class)\s*=\s*(?:"([^"]*)"|'([^']*)'|\{\s*["'` + "`" + `]([^"'` + "`" + `]*)["'` + "`" + `]\s*\})`)

var (
	classExprPattern     = regexp.MustCompile(`(?:className|class)\s*=\s*\{(.*)\}`)
	stringLiteralPattern = regexp.MustCompile(`"([^"]*)"|'([^']*)'|` + "`" + `([^` + "`" + `]*)` + "`")
)

// classAttribute extracts the class attribute value from a line. Expression
// values such as cn(...) or clsx(...) yield their string literals joined.
func classAttribute(line string) (string, bool) {
	if m := classAttrPattern.FindStringSubmatch(line); m != nil {
		return firstGroup(m), true
	}
	m := classExprPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	var parts []string
	for _, lit := range stringLiteralPattern.FindAllStringSubmatch(m[1], -1) {
		if value := firstGroup(lit); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " "), true
}

func firstGroup(m []string) string {
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}

// hasClassSignature reports whether the line carries a class attribute
func hasClassSignature(lowerLine string) bool {
	return strings.Contains(lowerLine, "classname=") ||
		strings.Contains(lowerLine, "class=") ||
		strings.Contains(lowerLine, ":class=")
}

// lineAt converts a byte offset into a 1-based line number
func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}

// firstLineContaining returns the 1-based line of the first lower-cased line
// containing any of the needles, or 0
func (v *componentView) firstLineContaining(needles []string) int {
	for i, l := range v.lowerLines {
		for _, n := range needles {
			if n != "" && strings.Contains(l, n) {
				return i + 1
			}
		}
	}
	return 0
}

var tagNamePattern = regexp.MustCompile(`<([A-Za-z][\w.]*)`)

// elementName returns the first tag name on the line, or "element"
func elementName(line string) string {
	if m := tagNamePattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return "element"
}
