package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML view. Exports read regions from it and may
// temporarily attach capture clones to its body.
type Document struct {
	root *html.Node
}

func ParseDocument(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{root: root}, nil
}

func ParseDocumentString(s string) (*Document, error) {
	return ParseDocument(strings.NewReader(s))
}

// HTML serializes the document in its current state.
func (d *Document) HTML() (string, error) {
	var b bytes.Buffer
	if err := html.Render(&b, d.root); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return b.String(), nil
}

// ElementCount is the number of element nodes in the document.
func (d *Document) ElementCount() int {
	n := 0
	walk(d.root, func(node *html.Node) bool {
		if node.Type == html.ElementNode {
			n++
		}
		return true
	})
	return n
}

// FindByID returns the first element whose id attribute equals id.
func (d *Document) FindByID(id string) *html.Node {
	return findFirst(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
}

// Body returns the <body> element. html.Parse always synthesizes one.
func (d *Document) Body() *html.Node {
	return findFirst(d.root, func(n *html.Node) bool { return n.DataAtom == atom.Body })
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(node *html.Node) bool {
		if found != nil {
			return false
		}
		if node.Type == html.ElementNode && match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// findAll returns every element below n (n included) carrying the attribute.
func findAll(n *html.Node, key string) []*html.Node {
	var out []*html.Node
	walk(n, func(node *html.Node) bool {
		if node.Type == html.ElementNode {
			if _, ok := attr(node, key); ok {
				out = append(out, node)
			}
		}
		return true
	})
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// appendStyle adds declarations to the inline style attribute.
func appendStyle(n *html.Node, decls string) {
	cur, _ := attr(n, "style")
	cur = strings.TrimSpace(cur)
	if cur != "" && !strings.HasSuffix(cur, ";") {
		cur += ";"
	}
	if cur != "" {
		cur += " "
	}
	setAttr(n, "style", cur+decls)
}

// cloneTree deep-copies n. The copy has no parent or siblings.
func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(cloneTree(ch))
	}
	return c
}

// textContent concatenates every text node below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(node *html.Node) bool {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		return true
	})
	return b.String()
}
