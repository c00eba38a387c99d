package activeresponse

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/lucid-vigil/ossecconf/pkg/ossec"
)

// ActiveResponse describes a binding between an alert condition and a
// command execution. Command and Location are required. The remaining fields
// are optional; zero values (0 for the integers, "" for the strings) omit
// the element from the generated block entirely rather than writing it
// empty.
type ActiveResponse struct {
	Command    string
	Location   Location
	Level      int
	Timeout    int
	AgentID    string
	RulesGroup string
	RulesID    string
}

// GetActiveResponses returns the leaf fields of every active-response block
// in the document, in document order.
func (m *Manager) GetActiveResponses() []map[string]string {
	var responses []map[string]string
	for _, ar := range m.Root().FindElements(".//" + activeResponseTag) {
		responses = append(responses, ossec.LeafFields(ar))
	}
	return responses
}

// AddActiveResponse validates ar and appends it to the primary ossec_config
// block. Checks run in order: the command must be defined, the location must
// be one of the four recognized values, agent_id is required for the
// defined-agent location, and level, rules_group, and rules_id must pass
// their validators when supplied. Any failure leaves the document untouched
// and returns false with the reason logged.
func (m *Manager) AddActiveResponse(ar ActiveResponse) bool {
	if !m.CommandExists(ar.Command) {
		m.logger.Warn().Str("command", ar.Command).Msg("command does not exist")
		return false
	}
	if !ar.Location.Valid() {
		m.logger.Warn().Str("location", string(ar.Location)).Msg("invalid location")
		return false
	}
	if ar.Location == LocationDefinedAgent && ar.AgentID == "" {
		m.logger.Warn().Str("command", ar.Command).Msg("agent_id is required for defined-agent location")
		return false
	}
	if ar.Level != 0 && !ValidLevel(ar.Level) {
		m.logger.Warn().Int("level", ar.Level).Msg("level must be between 1 and 16")
		return false
	}
	if ar.RulesGroup != "" && !ValidRulesGroup(ar.RulesGroup) {
		m.logger.Warn().Str("rules_group", ar.RulesGroup).Msg("rules groups must be pipe-separated and end with a comma")
		return false
	}
	if ar.RulesID != "" && !ValidRulesID(ar.RulesID) {
		m.logger.Warn().Str("rules_id", ar.RulesID).Msg("rules ids must be numeric and comma-separated")
		return false
	}

	container := m.Container()
	if container == nil {
		m.logger.Error().Str("command", ar.Command).Msg("no ossec_config block to attach active-response to")
		return false
	}

	node := container.CreateElement(activeResponseTag)
	node.CreateElement(commandTag).SetText(ar.Command)
	node.CreateElement("location").SetText(string(ar.Location))
	if ar.Level != 0 {
		node.CreateElement("level").SetText(strconv.Itoa(ar.Level))
	}
	if ar.Timeout != 0 {
		node.CreateElement("timeout").SetText(strconv.Itoa(ar.Timeout))
	}
	if ar.AgentID != "" {
		node.CreateElement("agent_id").SetText(ar.AgentID)
	}
	if ar.RulesGroup != "" {
		node.CreateElement("rules_group").SetText(ar.RulesGroup)
	}
	if ar.RulesID != "" {
		node.CreateElement("rules_id").SetText(ar.RulesID)
	}

	m.logger.Info().Str("command", ar.Command).Msg("added active response")
	return true
}

// UpdateActiveResponse merges leaf updates into the first active-response
// whose command leaf equals command. The level, rules_group, and rules_id
// keys are re-validated when present in updates; other keys are applied
// unchecked, and missing target leaves are created. All values are checked
// before anything is written, so a rejected update leaves the document
// untouched.
func (m *Manager) UpdateActiveResponse(command string, updates map[string]string) bool {
	ar := m.findActiveResponse(command)
	if ar == nil {
		m.logger.Warn().Str("command", command).Msg("no active response found")
		return false
	}

	for tag, value := range updates {
		switch tag {
		case "level":
			level, err := strconv.Atoi(value)
			if err != nil || !ValidLevel(level) {
				m.logger.Warn().Str("level", value).Msg("level must be between 1 and 16")
				return false
			}
		case "rules_group":
			if !ValidRulesGroup(value) {
				m.logger.Warn().Str("rules_group", value).Msg("rules groups must be pipe-separated and end with a comma")
				return false
			}
		case "rules_id":
			if !ValidRulesID(value) {
				m.logger.Warn().Str("rules_id", value).Msg("rules ids must be numeric and comma-separated")
				return false
			}
		}
	}

	for _, tag := range sortedKeys(updates) {
		leaf := ar.SelectElement(tag)
		if leaf == nil {
			leaf = ar.CreateElement(tag)
		}
		leaf.SetText(updates[tag])
	}
	m.logger.Info().Str("command", command).Msg("updated active response")
	return true
}

// RemoveActiveResponse removes the first active-response whose command leaf
// equals command. It returns false when none matches. The referenced command
// definition is left in place.
func (m *Manager) RemoveActiveResponse(command string) bool {
	ar := m.findActiveResponse(command)
	if ar == nil {
		m.logger.Warn().Str("command", command).Msg("no active response found")
		return false
	}

	ar.Parent().RemoveChild(ar)
	m.logger.Info().Str("command", command).Msg("removed active response")
	return true
}

// ActiveResponseExists reports whether an active-response bound to command
// exists.
func (m *Manager) ActiveResponseExists(command string) bool {
	return m.findActiveResponse(command) != nil
}

func (m *Manager) findActiveResponse(command string) *etree.Element {
	for _, ar := range m.Root().FindElements(".//" + activeResponseTag) {
		if cmdElem := ar.SelectElement(commandTag); cmdElem != nil && cmdElem.Text() == command {
			return ar
		}
	}
	return nil
}
