package view

import (
	"sort"
	"strings"
)

type nodeKind uint8

const (
	kindElement nodeKind = iota
	kindText
	kindFragment
	kindRaw
)

// Attrs holds element attributes. Boolean attributes (disabled, checked, ...)
// are present when the key exists, regardless of value.
type Attrs map[string]string

// Node is a single entry of a rendered tree: an element, a text run, a
// fragment grouping siblings without a wrapper, or pre-sanitised markup.
type Node struct {
	Tag      string
	Key      string
	Attrs    Attrs
	Children []*Node

	kind     nodeKind
	text     string
	handlers map[EventType]Handler
}

// El builds an element node.
func El(tag string, attrs Attrs, children ...*Node) *Node {
	n := &Node{Tag: strings.ToLower(strings.TrimSpace(tag)), kind: kindElement}
	if len(attrs) > 0 {
		n.Attrs = make(Attrs, len(attrs))
		for k, v := range attrs {
			n.Attrs[k] = v
		}
	}
	n.Append(children...)
	return n
}

// Text builds a text node.
func Text(value string) *Node {
	return &Node{kind: kindText, text: value}
}

// Fragment groups children without emitting a wrapper element.
func Fragment(children ...*Node) *Node {
	n := &Node{kind: kindFragment}
	n.Append(children...)
	return n
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.kind == kindElement
}

// IsFragment reports whether the node is a fragment.
func (n *Node) IsFragment() bool {
	return n != nil && n.kind == kindFragment
}

// Append adds children, skipping nil entries.
func (n *Node) Append(children ...*Node) *Node {
	for _, child := range children {
		if child == nil {
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n
}

// WithKey assigns the reconciliation key and returns the node.
func (n *Node) WithKey(key string) *Node {
	n.Key = key
	return n
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrValue returns an attribute value or the empty string.
func (n *Node) AttrValue(name string) string {
	v, _ := n.Attr(name)
	return v
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets an attribute and returns the node.
func (n *Node) SetAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(Attrs)
	}
	n.Attrs[name] = value
	return n
}

// Toggle sets a boolean attribute when on is true and removes it otherwise.
func (n *Node) Toggle(name string, on bool) *Node {
	if on {
		return n.SetAttr(name, "")
	}
	if n.Attrs != nil {
		delete(n.Attrs, name)
	}
	return n
}

// On registers an event handler on the node, replacing any previous one for
// the same event.
func (n *Node) On(event EventType, handler Handler) *Node {
	if handler == nil {
		return n
	}
	if n.handlers == nil {
		n.handlers = make(map[EventType]Handler)
	}
	n.handlers[event] = handler
	return n
}

// Handler returns the handler registered for event, if any.
func (n *Node) Handler(event EventType) Handler {
	if n == nil || n.handlers == nil {
		return nil
	}
	return n.handlers[event]
}

// Disabled reports whether the element carries the disabled attribute.
func (n *Node) Disabled() bool {
	return n.HasAttr("disabled")
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.collectText(&b, false)
	return b.String()
}

// AccessibleText is TextContent without subtrees marked aria-hidden.
func (n *Node) AccessibleText() string {
	var b strings.Builder
	n.collectText(&b, true)
	return strings.TrimSpace(b.String())
}

func (n *Node) collectText(b *strings.Builder, skipHidden bool) {
	if n == nil {
		return
	}
	if skipHidden && n.AttrValue("aria-hidden") == "true" {
		return
	}
	switch n.kind {
	case kindText:
		b.WriteString(n.text)
		return
	case kindRaw:
		b.WriteString(stripTags(n.text))
		return
	}
	for _, child := range n.Children {
		child.collectText(b, skipHidden)
	}
}

// Elements returns element children, flattening fragments.
func (n *Node) Elements() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, child := range n.Children {
		switch {
		case child.IsElement():
			out = append(out, child)
		case child.IsFragment():
			out = append(out, child.Elements()...)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first. The visitor receives the
// ancestors of the visited node, nearest last. Returning false stops the walk.
func (n *Node) Walk(visit func(node *Node, ancestors []*Node) bool) {
	if n == nil {
		return
	}
	n.walk(nil, visit)
}

func (n *Node) walk(ancestors []*Node, visit func(*Node, []*Node) bool) bool {
	if !visit(n, ancestors) {
		return false
	}
	next := append(ancestors[:len(ancestors):len(ancestors)], n)
	for _, child := range n.Children {
		if !child.walk(next, visit) {
			return false
		}
	}
	return true
}

// Style renders a style map into a deterministic inline declaration list.
func Style(decls map[string]string) string {
	if len(decls) == 0 {
		return ""
	}
	keys := make([]string, 0, len(decls))
	for k := range decls {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(decls[k]) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, strings.TrimSpace(k)+": "+strings.TrimSpace(decls[k]))
	}
	return strings.Join(parts, "; ")
}

// MergeStyle layers overrides on top of base into a new map.
func MergeStyle(base map[string]string, overrides ...map[string]string) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}
