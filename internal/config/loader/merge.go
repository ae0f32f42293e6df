package loader

import "strings"

// Merge stacks layers into a new map, later layers winning. Nested maps are
// merged key by key; any other value replaces what is below it. The layers
// are not modified and nil layers are skipped.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for key, v := range src {
		sub, isMap := v.(map[string]any)
		if !isMap {
			dst[key] = v
			continue
		}
		below, ok := dst[key].(map[string]any)
		if !ok {
			below = make(map[string]any, len(sub))
			dst[key] = below
		}
		mergeInto(below, sub)
	}
}

// Get returns the value at a dot-separated path such as "canvas.width".
func Get(data map[string]any, path string) (any, bool) {
	current := data
	for {
		key, rest, nested := strings.Cut(path, ".")
		v, ok := current[key]
		if !ok {
			return nil, false
		}
		if !nested {
			return v, true
		}
		if current, ok = v.(map[string]any); !ok {
			return nil, false
		}
		path = rest
	}
}
