package plan

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/lucid-vigil/ossecconf/pkg/activeresponse"
	"github.com/lucid-vigil/ossecconf/pkg/errors"
)

// Report collects the outcome of applying a plan. Every entry counts toward
// exactly one of Applied or Skipped; each skipped entry contributes one
// error to Errors, so len(Errors) equals Skipped.
type Report struct {
	Applied int
	Skipped int
	Errors  []error
}

// Err combines the collected errors, or returns nil when every entry
// applied.
func (r *Report) Err() error {
	return multierr.Combine(r.Errors...)
}

func (r *Report) ok() {
	r.Applied++
}

func (r *Report) fail(err error) {
	r.Skipped++
	r.Errors = append(r.Errors, err)
}

func (r *Report) refused(field, value, reason string) {
	r.fail(errors.NewValidationError(field, value, reason))
}

// Apply runs every plan entry against the manager and reports per-entry
// outcomes. A refused or failed entry never aborts the batch; the remaining
// entries still run. Entries run in a fixed order regardless of their order
// in the file: section removals first, then section updates, ruleset lists,
// integrations, commands, and finally active responses, so bindings can
// reference commands defined in the same plan.
func (p *Plan) Apply(m *activeresponse.Manager) *Report {
	report := &Report{}

	for _, path := range p.RemoveSections {
		if !m.RemoveSection(path) {
			report.refused("section", path, "not removed (parent path not found)")
			continue
		}
		report.ok()
	}

	for _, section := range p.Sections {
		if err := m.UpdateSection(section.Path, section.Updates); err != nil {
			report.fail(fmt.Errorf("section %q: %w", section.Path, err))
			continue
		}
		report.ok()
	}

	for _, list := range p.RulesetLists {
		if !m.AddRulesetList(list.Path, list.Value) {
			report.refused("ruleset list", list.Value, "not added (missing section or duplicate value)")
			continue
		}
		report.ok()
	}

	for _, integration := range p.Integrations {
		fields := make(map[string]string, len(integration))
		for tag, value := range integration {
			fields[tag] = fmt.Sprint(value)
		}
		if err := m.AddIntegration(fields); err != nil {
			report.fail(fmt.Errorf("integration %q: %w", fields["name"], err))
			continue
		}
		report.ok()
	}

	for _, command := range p.Commands {
		if !m.AddCommand(command.Name, command.Executable, command.TimeoutAllowed) {
			report.refused("command", command.Name, "not added (name already taken)")
			continue
		}
		report.ok()
	}

	for _, response := range p.ActiveResponses {
		if !m.AddActiveResponse(response.toActiveResponse()) {
			report.refused("active-response", response.Command, "not added (failed validation)")
			continue
		}
		report.ok()
	}

	return report
}
