// Package activeresponse manages the two related section kinds that drive
// automated responses in a Wazuh/OSSEC configuration: reusable named command
// definitions, and active-response bindings that reference a command by
// name. It layers on pkg/ossec for document access and adds the
// cross-referential validation the file format implies but does not enforce.
package activeresponse

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/lucid-vigil/ossecconf/pkg/errors"
	"github.com/lucid-vigil/ossecconf/pkg/ossec"
)

const (
	commandTag        = "command"
	activeResponseTag = "active-response"
)

// Manager edits commands and active-response bindings on top of a loaded
// configuration. All ConfigManager operations remain available through
// embedding.
type Manager struct {
	*ossec.ConfigManager
	logger zerolog.Logger
}

// NewManager loads the configuration at filePath and verifies that every
// existing active-response names a defined command. A dangling reference
// fails construction with a *errors.ReferentialIntegrityError; this is the
// only point where referential integrity is checked, so later command
// removals can leave dangling bindings behind.
func NewManager(filePath string, opts ...ossec.Option) (*Manager, error) {
	cm, err := ossec.NewConfigManager(filePath, opts...)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		ConfigManager: cm,
		logger:        cm.Logger().With().Str("component", "active-response").Logger(),
	}
	if err := m.validateReferences(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) validateReferences() error {
	for _, ar := range m.Root().FindElements(".//" + activeResponseTag) {
		command := ar.SelectElement(commandTag)
		if command == nil {
			continue
		}
		if !m.CommandExists(command.Text()) {
			return errors.NewReferentialIntegrityError(command.Text())
		}
	}
	return nil
}

// sortedKeys returns map keys in a stable order for deterministic element
// creation.
func sortedKeys(updates map[string]string) []string {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
