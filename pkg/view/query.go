package view

import "strings"

// FindAll returns every node under n (inclusive) matching pred, in document
// order.
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(node *Node, _ []*Node) bool {
		if pred(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Find returns the first node matching pred.
func (n *Node) Find(pred func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(node *Node, _ []*Node) bool {
		if pred(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// AllByTestID returns elements whose data-testid equals id.
func (n *Node) AllByTestID(id string) []*Node {
	return n.FindAll(func(node *Node) bool {
		return node.IsElement() && node.AttrValue("data-testid") == id && node.HasAttr("data-testid")
	})
}

// ByTestID returns the first element whose data-testid equals id.
func (n *Node) ByTestID(id string) *Node {
	all := n.AllByTestID(id)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// AllByText returns the innermost elements whose accessible text equals text.
func (n *Node) AllByText(text string) []*Node {
	want := normalizeSpace(text)
	return n.FindAll(func(node *Node) bool {
		if !node.IsElement() || normalizeSpace(node.AccessibleText()) != want {
			return false
		}
		for _, child := range node.Elements() {
			if normalizeSpace(child.AccessibleText()) == want {
				return false
			}
		}
		return true
	})
}

// ByText returns the first innermost element whose accessible text equals
// text.
func (n *Node) ByText(text string) *Node {
	all := n.AllByText(text)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// AllLabels returns label elements whose accessible text equals text.
func (n *Node) AllLabels(text string) []*Node {
	want := normalizeSpace(text)
	return n.FindAll(func(node *Node) bool {
		return node.Tag == "label" && normalizeSpace(node.AccessibleText()) == want
	})
}

// ByLabelText resolves the control associated with a label whose text
// equals text, either through the for attribute or by nesting. Elements
// carrying a matching aria-label are also returned.
func (n *Node) ByLabelText(text string) *Node {
	for _, label := range n.AllLabels(text) {
		if control := labelledControl(n, label); control != nil {
			return control
		}
	}
	want := normalizeSpace(text)
	return n.Find(func(node *Node) bool {
		return node.IsElement() && node.Tag != "label" && normalizeSpace(node.AttrValue("aria-label")) == want && node.HasAttr("aria-label")
	})
}

// Role returns the explicit or implicit ARIA role of an element.
func (n *Node) Role() string {
	if !n.IsElement() {
		return ""
	}
	if role := n.AttrValue("role"); role != "" {
		return role
	}
	switch n.Tag {
	case "button":
		return "button"
	case "form":
		return "form"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "heading"
	case "textarea":
		return "textbox"
	case "ul", "ol":
		return "list"
	case "li":
		return "listitem"
	case "input":
		switch strings.ToLower(n.AttrValue("type")) {
		case "checkbox":
			return "checkbox"
		case "radio":
			return "radio"
		case "number":
			return "spinbutton"
		case "submit", "button":
			return "button"
		default:
			return "textbox"
		}
	}
	return ""
}

// AllByRole returns elements with role whose accessible name equals name. An
// empty name matches any element with the role.
func (n *Node) AllByRole(role, name string) []*Node {
	want := normalizeSpace(name)
	return n.FindAll(func(node *Node) bool {
		if node.Role() != role {
			return false
		}
		if want == "" {
			return true
		}
		return normalizeSpace(node.AccessibleName()) == want
	})
}

// ByRole returns the first element matching AllByRole.
func (n *Node) ByRole(role, name string) *Node {
	all := n.AllByRole(role, name)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// AccessibleName returns aria-label when present and the accessible text
// otherwise.
func (n *Node) AccessibleName() string {
	if label, ok := n.Attr("aria-label"); ok && strings.TrimSpace(label) != "" {
		return label
	}
	return n.AccessibleText()
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
