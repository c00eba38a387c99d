package ossec

import (
	"fmt"
	"strings"
)

const indentSpaces = 2

// Format rewrites the whitespace of every node so serialization nests two
// spaces per depth level. Mutations leave whitespace untouched, so Format
// must run before serializing; Serialize calls it automatically.
func (m *ConfigManager) Format() {
	m.doc.Indent(indentSpaces)
}

// Serialize formats the tree and renders it with the synthetic root's
// opening and closing tags stripped, restoring the sibling-blocks shape the
// file format expects.
func (m *ConfigManager) Serialize() (string, error) {
	m.Format()
	rendered, err := m.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing config: %w", err)
	}
	return stripWrapper(rendered), nil
}

// stripWrapper removes the synthetic root markers from rendered output. The
// wrapper is always the outermost element, so one prefix and one suffix trim
// suffice; nested elements that happen to share the tag are untouched.
func stripWrapper(rendered string) string {
	s := strings.TrimRight(rendered, "\n")
	if s == "<"+wrapperTag+"/>" {
		return ""
	}
	s = strings.TrimSuffix(s, "</"+wrapperTag+">")
	s = strings.TrimPrefix(s, "<"+wrapperTag+">")
	s = strings.TrimPrefix(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}
