package ossec

import (
	"fmt"

	"github.com/beevik/etree"
)

const integrationTag = "integration"

// GetIntegrations returns the leaf fields of every integration block in the
// document, in document order.
func (m *ConfigManager) GetIntegrations() []map[string]string {
	var integrations []map[string]string
	for _, integration := range m.root.FindElements(".//" + integrationTag) {
		integrations = append(integrations, LeafFields(integration))
	}
	return integrations
}

// AddIntegration appends a new integration block with the given leaf fields
// to the primary ossec_config block. The name and hook_url fields are
// written first when present; the rest follow in sorted order.
func (m *ConfigManager) AddIntegration(fields map[string]string) error {
	container := m.Container()
	if container == nil {
		return fmt.Errorf("no %s block to attach integration to", containerTag)
	}

	integration := container.CreateElement(integrationTag)
	for _, tag := range integrationFieldOrder(fields) {
		integration.CreateElement(tag).SetText(fields[tag])
	}
	m.logger.Info().Str("name", fields["name"]).Msg("added integration")
	return nil
}

// UpdateIntegration merges leaf updates into the first integration whose
// name matches, and whose hook_url also matches when hookURL is non-empty.
// Missing leaves are created. It returns false when no integration matches.
func (m *ConfigManager) UpdateIntegration(name string, updates map[string]string, hookURL string) bool {
	integration := m.findIntegration(name, hookURL)
	if integration == nil {
		m.logger.Warn().Str("name", name).Str("hook_url", hookURL).Msg("no integration found")
		return false
	}

	for _, tag := range sortedKeys(updates) {
		leaf := integration.SelectElement(tag)
		if leaf == nil {
			leaf = integration.CreateElement(tag)
		}
		leaf.SetText(updates[tag])
	}
	m.logger.Info().Str("name", name).Str("hook_url", hookURL).Msg("updated integration")
	return true
}

// RemoveIntegration removes the first integration matching name (and
// hook_url when non-empty). It returns false when no integration matches.
func (m *ConfigManager) RemoveIntegration(name, hookURL string) bool {
	integration := m.findIntegration(name, hookURL)
	if integration == nil {
		m.logger.Warn().Str("name", name).Str("hook_url", hookURL).Msg("no integration found")
		return false
	}

	integration.Parent().RemoveChild(integration)
	m.logger.Info().Str("name", name).Str("hook_url", hookURL).Msg("removed integration")
	return true
}

// IntegrationExists reports whether an integration matching name (and
// hook_url when non-empty) exists.
func (m *ConfigManager) IntegrationExists(name, hookURL string) bool {
	return m.findIntegration(name, hookURL) != nil
}

func (m *ConfigManager) findIntegration(name, hookURL string) *etree.Element {
	for _, integration := range m.root.FindElements(".//" + integrationTag) {
		if ChildText(integration, "name") != name {
			continue
		}
		if hookURL != "" && ChildText(integration, "hook_url") != hookURL {
			continue
		}
		return integration
	}
	return nil
}

// integrationFieldOrder yields field tags with the identifying fields first
// and everything else sorted, so generated blocks read name, hook_url, then
// the remaining settings.
func integrationFieldOrder(fields map[string]string) []string {
	order := make([]string, 0, len(fields))
	for _, head := range []string{"name", "hook_url"} {
		if _, ok := fields[head]; ok {
			order = append(order, head)
		}
	}
	for _, tag := range sortedKeys(fields) {
		if tag == "name" || tag == "hook_url" {
			continue
		}
		order = append(order, tag)
	}
	return order
}
