package export

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// captureAttr marks the clone currently attached for capture.
const captureAttr = "data-export-capture"

// captureSelector selects the attached clone in the serialized document.
const captureSelector = "[" + captureAttr + "]"

// prepareClone copies region into a form the rasterizer can capture in
// full: the clone sits off-screen, every textarea becomes a div showing its
// whole value (or its placeholder, dimmed), and closed accordions open.
func prepareClone(region *html.Node) *html.Node {
	clone := cloneTree(region)
	// The clone must not shadow the live region's id.
	removeAttr(clone, "id")
	setAttr(clone, captureAttr, "")
	appendStyle(clone, "position: absolute; left: -9999px; top: 0; overflow: visible; height: auto;")

	var textareas []*html.Node
	walk(clone, func(n *html.Node) bool {
		switch n.DataAtom {
		case atom.Textarea:
			textareas = append(textareas, n)
			return false
		case atom.Details:
			setAttr(n, "open", "")
		}
		return true
	})
	for _, ta := range textareas {
		ta.Parent.InsertBefore(textareaDiv(ta), ta)
		ta.Parent.RemoveChild(ta)
	}
	return clone
}

// textareaDiv builds the div that stands in for a textarea in a capture.
func textareaDiv(ta *html.Node) *html.Node {
	div := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	if class, ok := attr(ta, "class"); ok {
		setAttr(div, "class", class)
	}
	style := "white-space: pre-wrap; word-break: break-word; min-height: auto; height: auto; overflow: visible;"
	text := textContent(ta)
	if text == "" {
		text, _ = attr(ta, "placeholder")
		style += " opacity: 0.5;"
	}
	setAttr(div, "style", style)
	div.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return div
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// withAttachedClone prepares a clone of region, appends it to the body for
// the duration of fn, and always detaches it afterwards.
func (d *Document) withAttachedClone(region *html.Node, fn func(clone *html.Node) error) error {
	body := d.Body()
	clone := prepareClone(region)
	body.AppendChild(clone)
	defer body.RemoveChild(clone)
	return fn(clone)
}
