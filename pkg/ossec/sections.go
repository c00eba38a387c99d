package ossec

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ListItem is one entry of a list-valued update: a leaf element with the
// given tag and text. Slices of ListItem replace a child's entire content.
type ListItem struct {
	Tag  string `yaml:"tag"`
	Text string `yaml:"text"`
}

// FindPath resolves a slash-separated path of tag names by repeated
// first-match child lookup starting at the synthetic root. It returns nil
// when any segment is missing. Only the first matching child is followed at
// each step; sibling matches deeper in the document are never considered.
func (m *ConfigManager) FindPath(path string) *etree.Element {
	segs := splitPath(path)
	if len(segs) == 0 {
		return nil
	}
	current := m.root
	for _, tag := range segs {
		current = current.SelectElement(tag)
		if current == nil {
			return nil
		}
	}
	return current
}

// EnsurePath resolves path like FindPath but creates any missing node along
// the way, so a subsequent write always has a target. It returns the deepest
// node.
func (m *ConfigManager) EnsurePath(path string) *etree.Element {
	current := m.root
	for _, tag := range splitPath(path) {
		next := current.SelectElement(tag)
		if next == nil {
			next = current.CreateElement(tag)
		}
		current = next
	}
	return current
}

// SectionExists reports whether a section exists at path.
func (m *ConfigManager) SectionExists(path string) bool {
	return m.FindPath(path) != nil
}

// UpdateSection deep-merges updates into the section at path, creating the
// section first when absent. A scalar value sets or creates a single leaf's
// text. A nested map recurses into (creating if absent) a child section. A
// list value clears the named child and rebuilds it with one leaf per item;
// list replacement is destructive, not a merge.
func (m *ConfigManager) UpdateSection(path string, updates map[string]any) error {
	target := m.FindPath(path)
	if target == nil {
		target = m.EnsurePath(path)
	}
	if err := applyUpdates(target, updates); err != nil {
		return fmt.Errorf("updating section %q: %w", path, err)
	}
	m.logger.Info().Str("path", path).Msg("updated config section")
	return nil
}

// AddSection builds section under the node at path (created when absent).
// Unlike UpdateSection it never merges into existing children; every map
// entry becomes a fresh node, so repeated calls accumulate siblings.
func (m *ConfigManager) AddSection(path string, section map[string]any) error {
	parent := m.FindPath(path)
	if parent == nil {
		parent = m.EnsurePath(path)
	}
	if err := createSection(parent, section); err != nil {
		return fmt.Errorf("adding section under %q: %w", path, err)
	}
	m.logger.Info().Str("path", path).Msg("added config section")
	return nil
}

// RemoveSection removes every child whose tag matches the final segment of
// path from the path's parent node. Removal is by name, so all same-named
// siblings go at once, unlike the first-match read operations. It returns
// false when the parent node does not exist.
func (m *ConfigManager) RemoveSection(path string) bool {
	segs := splitPath(path)
	if len(segs) == 0 {
		m.logger.Warn().Str("path", path).Msg("no section found to remove")
		return false
	}

	name := segs[len(segs)-1]
	parent := m.root
	if len(segs) > 1 {
		parent = m.FindPath(strings.Join(segs[:len(segs)-1], "/"))
	}
	if parent == nil {
		m.logger.Warn().Str("path", path).Msg("no section found to remove")
		return false
	}

	removed := 0
	for _, child := range parent.SelectElements(name) {
		parent.RemoveChild(child)
		removed++
	}
	m.logger.Info().Str("path", path).Int("removed", removed).Msg("removed config section")
	return true
}

// applyUpdates merges updates into element. Keys are visited in sorted order
// so newly created children land in a stable sequence.
func applyUpdates(element *etree.Element, updates map[string]any) error {
	for _, tag := range sortedKeys(updates) {
		value := updates[tag]
		switch v := value.(type) {
		case map[string]any:
			child := element.SelectElement(tag)
			if child == nil {
				child = element.CreateElement(tag)
			}
			if err := applyUpdates(child, v); err != nil {
				return err
			}
		default:
			items, isList, err := asListItems(value)
			if err != nil {
				return fmt.Errorf("list value for %q: %w", tag, err)
			}
			if isList {
				parent := element.SelectElement(tag)
				if parent == nil {
					parent = element.CreateElement(tag)
				}
				clearElement(parent)
				for _, item := range items {
					parent.CreateElement(item.Tag).SetText(item.Text)
				}
				continue
			}
			child := element.SelectElement(tag)
			if child == nil {
				child = element.CreateElement(tag)
			}
			child.SetText(scalarText(v))
		}
	}
	return nil
}

// createSection builds section under element, always creating fresh nodes.
func createSection(element *etree.Element, section map[string]any) error {
	for _, tag := range sortedKeys(section) {
		value := section[tag]
		switch v := value.(type) {
		case map[string]any:
			if err := createSection(element.CreateElement(tag), v); err != nil {
				return err
			}
		default:
			items, isList, err := asListItems(value)
			if err != nil {
				return fmt.Errorf("list value for %q: %w", tag, err)
			}
			if isList {
				parent := element.CreateElement(tag)
				for _, item := range items {
					parent.CreateElement(item.Tag).SetText(item.Text)
				}
				continue
			}
			element.CreateElement(tag).SetText(scalarText(v))
		}
	}
	return nil
}

// asListItems recognizes the list forms an update value may take: a typed
// []ListItem, or the []any/[]map[string]any shapes produced by YAML
// decoding, where each item must carry "tag" and "text" keys.
func asListItems(value any) ([]ListItem, bool, error) {
	switch v := value.(type) {
	case []ListItem:
		return v, true, nil
	case []map[string]any:
		items := make([]ListItem, 0, len(v))
		for _, raw := range v {
			item, err := coerceListItem(raw)
			if err != nil {
				return nil, true, err
			}
			items = append(items, item)
		}
		return items, true, nil
	case []any:
		items := make([]ListItem, 0, len(v))
		for _, raw := range v {
			pair, ok := raw.(map[string]any)
			if !ok {
				return nil, true, fmt.Errorf("item %v is not a tag/text pair", raw)
			}
			item, err := coerceListItem(pair)
			if err != nil {
				return nil, true, err
			}
			items = append(items, item)
		}
		return items, true, nil
	}
	return nil, false, nil
}

func coerceListItem(pair map[string]any) (ListItem, error) {
	tag, ok := pair["tag"].(string)
	if !ok || tag == "" {
		return ListItem{}, fmt.Errorf("item %v is missing a tag", pair)
	}
	text, ok := pair["text"]
	if !ok {
		return ListItem{}, fmt.Errorf("item %v is missing a text", pair)
	}
	return ListItem{Tag: tag, Text: scalarText(text)}, nil
}

// scalarText renders a scalar update value as element text.
func scalarText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// clearElement drops every child token of el, including interleaved
// character data, leaving an empty element.
func clearElement(el *etree.Element) {
	for len(el.Child) > 0 {
		el.RemoveChildAt(len(el.Child) - 1)
	}
}
