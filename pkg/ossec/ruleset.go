package ossec

const listTag = "list"

// GetRulesetLists returns the text of every direct list child of the node at
// path, or nil when the node does not exist.
func (m *ConfigManager) GetRulesetLists(path string) []string {
	node := m.FindPath(path)
	if node == nil {
		return nil
	}
	var values []string
	for _, list := range node.SelectElements(listTag) {
		values = append(values, list.Text())
	}
	return values
}

// AddRulesetList appends a list leaf with the given value under the node at
// path. The value is deduplicated against the node's direct list children
// only; matching text anywhere else in the document does not block the add.
// It returns false when the node is missing or the value already exists.
func (m *ConfigManager) AddRulesetList(path, value string) bool {
	node := m.FindPath(path)
	if node == nil {
		m.logger.Warn().Str("path", path).Msg("ruleset section does not exist")
		return false
	}

	for _, list := range node.SelectElements(listTag) {
		if list.Text() == value {
			m.logger.Info().Str("path", path).Str("value", value).Msg("ruleset list already exists")
			return false
		}
	}

	node.CreateElement(listTag).SetText(value)
	m.logger.Info().Str("path", path).Str("value", value).Msg("added ruleset list")
	return true
}

// UpdateRulesetList rewrites the first direct list child of the node at path
// whose text equals oldValue to newValue. It returns false when the node or
// the old value is missing. The new value is not checked against existing
// entries, so an update can introduce a duplicate that AddRulesetList would
// have refused.
func (m *ConfigManager) UpdateRulesetList(path, oldValue, newValue string) bool {
	node := m.FindPath(path)
	if node == nil {
		m.logger.Warn().Str("path", path).Msg("ruleset section does not exist")
		return false
	}

	for _, list := range node.SelectElements(listTag) {
		if list.Text() == oldValue {
			list.SetText(newValue)
			m.logger.Info().Str("path", path).Str("old", oldValue).Str("new", newValue).Msg("updated ruleset list")
			return true
		}
	}
	m.logger.Warn().Str("path", path).Str("value", oldValue).Msg("no ruleset list found")
	return false
}

// RemoveRulesetList removes the first direct list child of the node at path
// whose text equals value. It returns false when the node or the value is
// missing.
func (m *ConfigManager) RemoveRulesetList(path, value string) bool {
	node := m.FindPath(path)
	if node == nil {
		m.logger.Warn().Str("path", path).Msg("ruleset section does not exist")
		return false
	}

	for _, list := range node.SelectElements(listTag) {
		if list.Text() == value {
			node.RemoveChild(list)
			m.logger.Info().Str("path", path).Str("value", value).Msg("removed ruleset list")
			return true
		}
	}
	m.logger.Warn().Str("path", path).Str("value", value).Msg("no ruleset list found")
	return false
}

// RulesetListExists reports whether the node at path has a direct list child
// with the given text.
func (m *ConfigManager) RulesetListExists(path, value string) bool {
	node := m.FindPath(path)
	if node == nil {
		return false
	}
	for _, list := range node.SelectElements(listTag) {
		if list.Text() == value {
			return true
		}
	}
	return false
}
