package unionrt

import (
	"fmt"
	"strings"
)

// Format renders a case as "Name(p1 = v1, p2 = v2)". kv alternates parameter
// names and values; a case without parameters renders as its bare name.
func Format(caseName string, kv ...any) string {
	if len(kv) == 0 {
		return caseName
	}

	var sb strings.Builder

	sb.WriteString(caseName)
	sb.WriteByte('(')

	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%v = %v", kv[i], kv[i+1])
	}

	sb.WriteByte(')')

	return sb.String()
}

// UnknownTag renders a discriminant that names no case, e.g. "ShapeTag(7)".
func UnknownTag(tagType string, tag int) string {
	return fmt.Sprintf("%s(%d)", tagType, tag)
}
