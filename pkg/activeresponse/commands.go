package activeresponse

import (
	"github.com/beevik/etree"

	"github.com/lucid-vigil/ossecconf/pkg/ossec"
)

// GetCommands returns the leaf fields of every command definition in the
// document. Bare <command> leaves inside active-response blocks are
// references, not definitions, and are skipped.
func (m *Manager) GetCommands() []map[string]string {
	var commands []map[string]string
	for _, command := range m.Root().FindElements(".//" + commandTag) {
		if len(command.ChildElements()) == 0 {
			continue
		}
		commands = append(commands, ossec.LeafFields(command))
	}
	return commands
}

// AddCommand appends a command definition to the primary ossec_config block.
// Command names are unique; when the name is already taken nothing changes
// and false is returned.
func (m *Manager) AddCommand(name, executable string, timeoutAllowed bool) bool {
	if m.CommandExists(name) {
		m.logger.Warn().Str("command", name).Msg("command already exists")
		return false
	}

	container := m.Container()
	if container == nil {
		m.logger.Error().Str("command", name).Msg("no ossec_config block to attach command to")
		return false
	}

	command := container.CreateElement(commandTag)
	command.CreateElement("name").SetText(name)
	command.CreateElement("executable").SetText(executable)
	timeout := "no"
	if timeoutAllowed {
		timeout = "yes"
	}
	command.CreateElement("timeout_allowed").SetText(timeout)

	m.logger.Info().Str("command", name).Msg("added command")
	return true
}

// UpdateCommand merges leaf updates into the command named name, creating
// missing leaves. It returns false when no such command exists. References
// from active-response bindings are not re-checked, so renaming a command
// here can leave a dangling binding.
func (m *Manager) UpdateCommand(name string, updates map[string]string) bool {
	command := m.findCommand(name)
	if command == nil {
		m.logger.Warn().Str("command", name).Msg("no command found")
		return false
	}

	for _, tag := range sortedKeys(updates) {
		leaf := command.SelectElement(tag)
		if leaf == nil {
			leaf = command.CreateElement(tag)
		}
		leaf.SetText(updates[tag])
	}
	m.logger.Info().Str("command", name).Msg("updated command")
	return true
}

// RemoveCommand removes the command named name. It returns false when no
// such command exists. Active-response bindings referencing it are left in
// place.
func (m *Manager) RemoveCommand(name string) bool {
	command := m.findCommand(name)
	if command == nil {
		m.logger.Warn().Str("command", name).Msg("no command found")
		return false
	}

	command.Parent().RemoveChild(command)
	m.logger.Info().Str("command", name).Msg("removed command")
	return true
}

// CommandExists reports whether a command definition named name exists.
func (m *Manager) CommandExists(name string) bool {
	return m.findCommand(name) != nil
}

func (m *Manager) findCommand(name string) *etree.Element {
	for _, command := range m.Root().FindElements(".//" + commandTag) {
		if nameElem := command.SelectElement("name"); nameElem != nil && nameElem.Text() == name {
			return command
		}
	}
	return nil
}
