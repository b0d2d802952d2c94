// Package document holds an HTML view in memory and exposes its timestamp
// elements to the refresher.
package document

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/diogenes-ai-code/timeago/internal/refresh"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AttrElementID carries the element identity into the rendered HTML so that
// live clients can address elements.
const AttrElementID = "data-ts-id"

// Document is a parsed HTML page. It is safe for concurrent use: Each holds
// the write lock for the whole callback, rendering holds the read lock.
type Document struct {
	mu       sync.RWMutex
	root     *html.Node
	selector Selector
	ids      map[*html.Node]string
	nextID   int
	scripts  []string
}

// Parse reads an HTML page. The parser is lenient; malformed markup is
// repaired the way browsers repair it.
func Parse(r io.Reader, selector Selector) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{
		root:     root,
		selector: selector,
		ids:      make(map[*html.Node]string),
	}, nil
}

// ParseString is Parse over a string.
func ParseString(s string, selector Selector) (*Document, error) {
	return Parse(strings.NewReader(s), selector)
}

// Selector returns the selector used to find timestamp elements.
func (d *Document) Selector() Selector {
	return d.selector
}

// Each calls fn for every element matching the selector, in document order.
func (d *Document) Each(fn func(refresh.Element)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, n := range d.selector.MatchAll(d.root) {
		fn(&element{node: n, id: d.idFor(n)})
	}
}

// Count returns the number of timestamp elements currently present.
func (d *Document) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.selector.MatchAll(d.root))
}

// Replace swaps in a new page. Elements of the old page are gone; elements of
// the new page receive fresh identities even if their markup is unchanged.
func (d *Document) Replace(r io.Reader) error {
	root, err := html.Parse(r)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.root = root
	d.ids = make(map[*html.Node]string)
	for _, src := range d.scripts {
		appendScript(d.root, src)
	}
	return nil
}

// AppendScript adds <script src="..."> at the end of the body. The script
// survives Replace.
func (d *Document) AppendScript(src string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.scripts = append(d.scripts, src)
	appendScript(d.root, src)
}

// Render writes the current page.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// String returns the current page as HTML.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// idFor assigns identities in discovery order. Identities are never reused,
// not even across Replace.
func (d *Document) idFor(n *html.Node) string {
	if id, ok := d.ids[n]; ok {
		return id
	}
	d.nextID++
	id := "ts-" + strconv.Itoa(d.nextID)
	d.ids[n] = id
	setAttr(n, AttrElementID, id)
	return id
}

func appendScript(root *html.Node, src string) {
	body := findFirst(root, atom.Body)
	if body == nil {
		body = root
	}
	script := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
	body.AppendChild(script)
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// element adapts an *html.Node to refresh.Element.
type element struct {
	node *html.Node
	id   string
}

func (e *element) ID() string {
	return e.id
}

// Text returns the concatenated text of all descendant text nodes.
func (e *element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *element) SetText(text string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *element) SetAttr(key, val string) {
	setAttr(e.node, key, val)
}
