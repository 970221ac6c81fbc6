package formmeta

import "strings"

// Resolve walks a dot separated path through nested form data and returns the
// value found at the leaf. The second return reports whether the full path
// existed.
func Resolve(data map[string]interface{}, path string) (interface{}, bool) {
	if len(data) == 0 || path == "" {
		return nil, false
	}

	segments := strings.Split(path, ".")
	var current interface{} = data
	for _, segment := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ResolveString resolves a path and coerces the leaf to a trimmed string.
// Missing paths and non-string leaves yield the empty string.
func ResolveString(data map[string]interface{}, path string) string {
	value, ok := Resolve(data, path)
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
