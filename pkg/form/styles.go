package form

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/view"
)

var defaultTokens = map[string]string{
	"space-1":              "4px",
	"space-2":              "8px",
	"space-3":              "12px",
	"space-4":              "16px",
	"space-5":              "20px",
	"space-6":              "24px",
	"space-10":             "40px",
	"font-weight-semibold": "600",
	"font-size-md":         "16px",
	"font-size-sm":         "14px",
}

// Styles holds the inline declarations applied to each structural slot.
type Styles struct {
	FormControl           map[string]string
	FormControlRightLabel map[string]string
	FormHeader            map[string]string
	FormLine              map[string]string
	FormLineBox           map[string]string
	Heading               map[string]string
	Label                 map[string]string
	RightLabel            map[string]string
	ActionsContainer      map[string]string
}

// StylesFor derives slot styles from a theme. Tokens missing from the theme
// use the built-in spacing and font scale.
func StylesFor(cfg *theme.RendererConfig) Styles {
	token := func(name string) string {
		if cfg != nil {
			if v := strings.TrimSpace(cfg.Tokens[name]); v != "" {
				return v
			}
		}
		return defaultTokens[name]
	}
	return Styles{
		FormControl: map[string]string{
			"margin-bottom": token("space-5"),
			"white-space":   "break-spaces",
		},
		FormControlRightLabel: map[string]string{
			"display":     "flex",
			"align-items": "center",
			"flex-wrap":   "wrap",
			"line-height": token("space-10"),
		},
		FormHeader: map[string]string{
			"margin-bottom": "0",
		},
		FormLine: map[string]string{
			"display":         "flex",
			"flex-direction":  "row",
			"justify-content": "space-between",
			"gap":             token("space-4"),
			"white-space":     "nowrap",
		},
		FormLineBox: map[string]string{
			"flex":            "1",
			"justify-content": "stretch",
			"display":         "flex",
		},
		Heading: map[string]string{
			"margin-bottom": token("space-3"),
			"margin-top":    token("space-1"),
			"font-weight":   token("font-weight-semibold"),
			"font-size":     token("font-size-md"),
			"width":         "100%",
		},
		Label: map[string]string{
			"margin-bottom": token("space-1"),
			"font-size":     token("font-size-sm"),
			"font-weight":   token("font-weight-semibold"),
		},
		RightLabel: map[string]string{
			"margin-bottom": "0",
			"margin-left":   token("space-2"),
		},
		ActionsContainer: map[string]string{
			"display":         "flex",
			"gap":             token("space-2"),
			"justify-content": "flex-end",
			"margin-top":      token("space-6"),
		},
	}
}

func styleAttr(attrs view.Attrs, decls ...map[string]string) view.Attrs {
	if len(decls) == 0 {
		return attrs
	}
	if style := view.Style(view.MergeStyle(decls[0], decls[1:]...)); style != "" {
		attrs["style"] = style
	}
	return attrs
}
