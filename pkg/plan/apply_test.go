package plan

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucid-vigil/ossecconf/pkg/activeresponse"
	"github.com/lucid-vigil/ossecconf/pkg/errors"
	"github.com/lucid-vigil/ossecconf/pkg/ossec"
)

const applyFixture = `<ossec_config>
  <global>
    <log_format>plain</log_format>
  </global>
  <ruleset>
    <list>etc/lists/audit-keys</list>
  </ruleset>
  <labels>
    <label key="env">staging</label>
  </labels>
  <command>
    <name>firewall-drop</name>
    <executable>firewall-drop</executable>
    <timeout_allowed>yes</timeout_allowed>
  </command>
</ossec_config>
`

func newApplyManager(t *testing.T) *activeresponse.Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ossec.conf")
	require.NoError(t, os.WriteFile(path, []byte(applyFixture), 0o644))
	m, err := activeresponse.NewManager(path, ossec.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return m
}

func TestApply(t *testing.T) {
	m := newApplyManager(t)

	p, err := Parse([]byte(samplePlan))
	require.NoError(t, err)

	report := p.Apply(m)
	assert.Equal(t, 6, report.Applied)
	assert.Zero(t, report.Skipped)
	assert.NoError(t, report.Err())

	assert.False(t, m.SectionExists("ossec_config/labels"))
	global := m.FindPath("ossec_config/global")
	require.NotNil(t, global)
	assert.Equal(t, "json", ossec.ChildText(global, "log_format"))
	assert.Equal(t, "12", ossec.ChildText(m.FindPath("ossec_config/global/alerts"), "email_alert_level"))
	assert.Contains(t, m.GetRulesetLists("ossec_config/ruleset"), "etc/lists/blocked-ips")
	assert.True(t, m.IntegrationExists("slack", ""))
	assert.True(t, m.CommandExists("host-deny"))
	assert.True(t, m.ActiveResponseExists("host-deny"))
}

func TestApplyOrdersBindingsAfterCommands(t *testing.T) {
	// The binding lists before its command in the file, but commands always
	// apply first.
	m := newApplyManager(t)

	p, err := Parse([]byte(`active_responses:
  - command: host-deny
    location: local
commands:
  - name: host-deny
    executable: host-deny.sh
    timeout_allowed: true
`))
	require.NoError(t, err)

	report := p.Apply(m)
	assert.Equal(t, 2, report.Applied)
	assert.NoError(t, report.Err())
	assert.True(t, m.ActiveResponseExists("host-deny"))
}

func TestApplyCollectsFailures(t *testing.T) {
	m := newApplyManager(t)

	p, err := Parse([]byte(`remove_sections:
  - other_config/global
ruleset_lists:
  - path: ossec_config/ruleset
    value: etc/lists/audit-keys
commands:
  - name: firewall-drop
    executable: duplicate.sh
active_responses:
  - command: firewall-drop
    location: local
    level: 99
  - command: firewall-drop
    location: local
    level: 6
`))
	require.NoError(t, err)

	report := p.Apply(m)
	assert.Equal(t, 1, report.Applied, "the valid binding still applies")
	assert.Equal(t, 4, report.Skipped)
	require.Len(t, report.Errors, 4)

	err = report.Err()
	require.Error(t, err)
	var validationErr *errors.ValidationError
	assert.True(t, stderrors.As(err, &validationErr))

	// The duplicate command did not clobber the existing definition.
	assert.Equal(t, "firewall-drop", m.GetCommands()[0]["executable"])
}

func TestApplyEmptyPlan(t *testing.T) {
	m := newApplyManager(t)

	report := (&Plan{}).Apply(m)
	assert.Zero(t, report.Applied)
	assert.Zero(t, report.Skipped)
	assert.NoError(t, report.Err())
}
