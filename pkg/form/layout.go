package form

import (
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/view"
)

// layout renders entries in order. Groups become one row of equal-width
// boxes keyed by the group key.
func (f *Form) layout(entries []model.Entry) []*view.Node {
	out := make([]*view.Node, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsGroup() {
			field, ok := entry.Field()
			if !ok {
				continue
			}
			out = append(out, f.bindField(field))
			continue
		}
		key := entry.Key()
		row := view.El("div", styleAttr(view.Attrs{
			"class":    "form-line",
			"data-key": key,
		}, f.styles.FormLine)).WithKey(key)
		for _, field := range entry.Group() {
			box := view.El("div", styleAttr(view.Attrs{"class": "form-line-box"}, f.styles.FormLineBox), f.bindField(field))
			row.Append(box.WithKey(field.Key()))
		}
		out = append(out, row)
	}
	return out
}
