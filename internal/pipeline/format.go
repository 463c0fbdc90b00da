package pipeline

import (
	"fmt"
	"strings"

	"gribdefs/internal"
)

// CompositeID encodes a key as "7", the discipline, then the category and
// parameter number zero-padded to three digits: 0:2:5 becomes "70002005".
func CompositeID(key internal.ClassificationKey) string {
	return fmt.Sprintf("7%d%03d%03d", key.Discipline, key.Category, key.Number)
}

// FormatBlock renders one definition entry followed by a blank line.
func FormatBlock(comment, name string, key internal.ClassificationKey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s\n", comment)
	fmt.Fprintf(&b, "'%s' = {\n", name)
	fmt.Fprintf(&b, "    discipline = %d;\n", key.Discipline)
	fmt.Fprintf(&b, "    parameterCategory = %d;\n", key.Category)
	fmt.Fprintf(&b, "    parameterNumber = %d;\n", key.Number)
	b.WriteString("}\n\n")
	return b.String()
}
