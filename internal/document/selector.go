package document

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultSelector matches the elements the rendering layer marks as timestamps.
const DefaultSelector = ".timestamp"

// Selector matches element nodes. It supports a subset of CSS:
//   - tag: "time"
//   - .class: ".timestamp"
//   - #id: "#posted-at"
//   - tag.class, tag#id
//   - [attr], [attr=val]: "[data-timestamp]", "span[data-kind=created]"
//   - descendant combinator: "article .timestamp"
type Selector struct {
	raw   string
	parts []simpleSelector
}

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

// ParseSelector parses a selector. An empty string yields DefaultSelector.
func ParseSelector(sel string) Selector {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		sel = DefaultSelector
	}
	s := Selector{raw: sel}
	for _, part := range strings.Fields(sel) {
		s.parts = append(s.parts, parseSimpleSelector(part))
	}
	return s
}

// String returns the selector text.
func (s Selector) String() string {
	return s.raw
}

// MatchAll returns all nodes under root matching the selector, in document order.
func (s Selector) MatchAll(root *html.Node) []*html.Node {
	if len(s.parts) == 0 {
		return nil
	}

	matches := matchSimple(root, s.parts[0])
	for i := 1; i < len(s.parts); i++ {
		var next []*html.Node
		seen := make(map[*html.Node]bool)
		for _, parent := range matches {
			for c := parent.FirstChild; c != nil; c = c.NextSibling {
				for _, n := range matchSimple(c, s.parts[i]) {
					if !seen[n] {
						seen[n] = true
						next = append(next, n)
					}
				}
			}
		}
		matches = next
	}
	return matches
}

// matchSimple finds all nodes in the subtree rooted at root matching one part.
func matchSimple(root *html.Node, m simpleSelector) []*html.Node {
	var results []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if matchesSelector(n, m) {
			results = append(results, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return results
}

// parseSimpleSelector parses "tag.class", "#id", "tag[attr=val]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eqIdx := strings.IndexByte(attrPart, '='); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = strings.ToLower(sel)
	return s
}

func matchesSelector(n *html.Node, s simpleSelector) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && getAttr(n, "id") != s.id {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	if s.attrKey != "" {
		if s.attrVal != "" {
			return getAttr(n, s.attrKey) == s.attrVal
		}
		return hasAttr(n, s.attrKey)
	}
	return true
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
