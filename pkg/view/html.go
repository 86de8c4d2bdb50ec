package view

import (
	"html"
	"io"
	"sort"
	"strings"
)

var voidElements = map[string]struct{}{
	"area": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

var booleanAttrs = map[string]struct{}{
	"checked": {}, "disabled": {}, "hidden": {}, "multiple": {},
	"novalidate": {}, "readonly": {}, "required": {}, "selected": {},
}

// HTML serialises the tree. Attributes are emitted in sorted order so output
// is deterministic; event handlers are not serialised.
func HTML(n *Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

// WriteHTML serialises the tree into w.
func WriteHTML(w io.Writer, n *Node) error {
	_, err := io.WriteString(w, HTML(n))
	return err
}

func writeNode(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.kind {
	case kindText:
		b.WriteString(html.EscapeString(n.text))
		return
	case kindRaw:
		b.WriteString(n.text)
		return
	case kindFragment:
		for _, child := range n.Children {
			writeNode(b, child)
		}
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)
	writeAttrs(b, n.Attrs)
	b.WriteByte('>')
	if _, void := voidElements[n.Tag]; void {
		return
	}
	for _, child := range n.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}

func writeAttrs(b *strings.Builder, attrs Attrs) {
	if len(attrs) == 0 {
		return
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		if _, ok := booleanAttrs[name]; ok {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attrs[name]))
		b.WriteByte('"')
	}
}
