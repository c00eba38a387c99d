package ossec

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff between the on-disk file and what Save would
// write now. An empty string means the serialized tree matches the disk.
func (m *ConfigManager) Diff() (string, error) {
	onDisk, err := os.ReadFile(m.filePath)
	if err != nil {
		return "", fmt.Errorf("reading config file: %w", err)
	}
	current, err := m.Serialize()
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(onDisk)),
		B:        difflib.SplitLines(current),
		FromFile: m.filePath,
		ToFile:   m.filePath + " (pending)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("computing diff: %w", err)
	}
	return text, nil
}
