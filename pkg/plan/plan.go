// pkg/plan/plan.go
// Package plan applies declarative YAML change plans to an OSSEC
// configuration. A plan file describes a batch of edits (section updates,
// removals, integrations, ruleset lists, commands, active responses) that
// Apply runs through the managers in one pass. Plans edit in memory only;
// saving is left to the caller.
package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucid-vigil/ossecconf/pkg/activeresponse"
)

// Plan is a parsed change plan. Every slice may be empty; empty plans apply
// cleanly as no-ops.
type Plan struct {
	RemoveSections  []string        `yaml:"remove_sections,omitempty"`
	Sections        []SectionUpdate `yaml:"sections,omitempty"`
	RulesetLists    []RulesetList   `yaml:"ruleset_lists,omitempty"`
	Integrations    []Integration   `yaml:"integrations,omitempty"`
	Commands        []Command       `yaml:"commands,omitempty"`
	ActiveResponses []Response      `yaml:"active_responses,omitempty"`
}

// SectionUpdate deep-merges updates into the section at Path, with the same
// value semantics as ossec.UpdateSection: scalars set leaves, mappings
// recurse, and lists of tag/text pairs replace children.
type SectionUpdate struct {
	Path    string         `yaml:"path"`
	Updates map[string]any `yaml:"updates"`
}

// RulesetList adds one list entry under the ruleset node at Path.
type RulesetList struct {
	Path  string `yaml:"path"`
	Value string `yaml:"value"`
}

// Integration holds the free-form leaf fields of one integration block.
// Scalar values of any YAML type are rendered to element text.
type Integration map[string]any

// Command defines one reusable response command.
type Command struct {
	Name           string `yaml:"name"`
	Executable     string `yaml:"executable"`
	TimeoutAllowed bool   `yaml:"timeout_allowed"`
}

// Response defines one active-response binding. Zero values omit the
// corresponding element, mirroring activeresponse.ActiveResponse.
type Response struct {
	Command    string `yaml:"command"`
	Location   string `yaml:"location"`
	Level      int    `yaml:"level,omitempty"`
	Timeout    int    `yaml:"timeout,omitempty"`
	AgentID    string `yaml:"agent_id,omitempty"`
	RulesGroup string `yaml:"rules_group,omitempty"`
	RulesID    string `yaml:"rules_id,omitempty"`
}

// Load reads and parses a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan file %s: %w", path, err)
	}
	return plan, nil
}

// Parse decodes a YAML plan document.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &p, nil
}

func (r Response) toActiveResponse() activeresponse.ActiveResponse {
	return activeresponse.ActiveResponse{
		Command:    r.Command,
		Location:   activeresponse.Location(r.Location),
		Level:      r.Level,
		Timeout:    r.Timeout,
		AgentID:    r.AgentID,
		RulesGroup: r.RulesGroup,
		RulesID:    r.RulesID,
	}
}
