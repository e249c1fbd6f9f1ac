package csg

import (
	"strconv"
	"strings"
)

// formatFloats joins floats into a stable string key, used by Shared
// implementations and the FuzzyFactory canonical key.
func formatFloats(vs ...float64) string {
	var sb strings.Builder
	for i, v := range vs {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return sb.String()
}
