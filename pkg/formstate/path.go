package formstate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []model.MenuOption:
		return append([]model.MenuOption(nil), typed...)
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}

// lookup resolves name against values. A literal key wins over a dotted path
// so flat maps such as {"author.email": ...} keep working.
func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	if !strings.Contains(name, ".") {
		return nil, false
	}
	return getPath(values, name)
}

func store(values map[string]any, name string, value any) error {
	if _, ok := values[name]; ok || !strings.Contains(name, ".") {
		values[name] = value
		return nil
	}
	return setPath(values, name, value)
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value at a dotted path, creating intermediate maps and
// growing slices for numeric segments.
func setPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("formstate: root map is nil")
	}
	segments := strings.Split(path, ".")
	var (
		current any = root
		// reattach writes a grown slice back into its parent.
		reattach = func([]any) {}
	)

	for i, segment := range segments {
		last := i == len(segments)-1
		switch node := current.(type) {
		case map[string]any:
			if last {
				node[segment] = value
				return nil
			}
			key := segment
			if _, err := strconv.Atoi(segments[i+1]); err == nil {
				child, _ := node[key].([]any)
				node[key] = child
				reattach = func(grown []any) { node[key] = grown }
				current = child
				continue
			}
			child, ok := node[key].(map[string]any)
			if !ok || child == nil {
				child = make(map[string]any)
				node[key] = child
			}
			current = child

		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return fmt.Errorf("formstate: expected numeric segment, got %q", segment)
			}
			if idx < 0 {
				return fmt.Errorf("formstate: negative index in path %q", path)
			}
			if len(node) <= idx {
				node = append(node, make([]any, idx+1-len(node))...)
				reattach(node)
			}
			if last {
				node[idx] = value
				return nil
			}
			slot := node
			if _, err := strconv.Atoi(segments[i+1]); err == nil {
				child, _ := slot[idx].([]any)
				slot[idx] = child
				reattach = func(grown []any) { slot[idx] = grown }
				current = child
				continue
			}
			child, ok := slot[idx].(map[string]any)
			if !ok || child == nil {
				child = make(map[string]any)
				slot[idx] = child
			}
			current = child

		default:
			return fmt.Errorf("formstate: unexpected container for segment %q", segment)
		}
	}
	return nil
}
