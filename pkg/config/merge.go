package config

import "strings"

// Merge folds layers into one settings map. The first layer contributes its
// full key set, blanks included. A later layer overrides a key only when its
// value is non-blank after trimming, so a partially filled layer never
// erases settings it does not care about.
func Merge(layers []Layer) map[string]string {
	merged := make(map[string]string)
	for i, layer := range layers {
		for key, value := range layer.Values {
			if i == 0 {
				merged[key] = value
				continue
			}
			if strings.TrimSpace(value) != "" {
				merged[key] = value
			}
		}
	}
	return merged
}
