package ossec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPath(t *testing.T) {
	m := newManager(t, sampleConfig)

	t.Run("nested path", func(t *testing.T) {
		el := m.FindPath("ossec_config/global/log_format")
		require.NotNil(t, el)
		assert.Equal(t, "plain", el.Text())
	})

	t.Run("missing segment", func(t *testing.T) {
		assert.Nil(t, m.FindPath("ossec_config/global/nope"))
		assert.Nil(t, m.FindPath("other_config/global"))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Nil(t, m.FindPath(""))
		assert.Nil(t, m.FindPath("//"))
	})

	t.Run("first match wins", func(t *testing.T) {
		dup := newManager(t, `<ossec_config>
  <localfile>
    <location>/var/log/auth.log</location>
  </localfile>
  <localfile>
    <location>/var/log/syslog</location>
  </localfile>
</ossec_config>
`)
		el := dup.FindPath("ossec_config/localfile")
		require.NotNil(t, el)
		assert.Equal(t, "/var/log/auth.log", ChildText(el, "location"))
	})
}

func TestEnsurePath(t *testing.T) {
	m := newManager(t, sampleConfig)

	el := m.EnsurePath("ossec_config/sca/enabled")
	require.NotNil(t, el)
	assert.True(t, m.SectionExists("ossec_config/sca/enabled"))

	// A second call walks the same chain instead of creating siblings.
	again := m.EnsurePath("ossec_config/sca/enabled")
	assert.Same(t, el, again)
	assert.Len(t, m.Container().SelectElements("sca"), 1)
}

func TestUpdateSectionScalars(t *testing.T) {
	m := newManager(t, sampleConfig)

	err := m.UpdateSection("ossec_config/global", map[string]any{
		"log_format":         "json",
		"max_output":         1000,
		"email_notification": "no",
	})
	require.NoError(t, err)

	global := m.FindPath("ossec_config/global")
	require.NotNil(t, global)
	assert.Equal(t, "json", ChildText(global, "log_format"))
	assert.Equal(t, "1000", ChildText(global, "max_output"))
	assert.Equal(t, "no", ChildText(global, "email_notification"))
	// Untouched leaves survive the merge.
	assert.Equal(t, "yes", ChildText(global, "alerts_log"))
}

func TestUpdateSectionNestedMap(t *testing.T) {
	m := newManager(t, sampleConfig)

	err := m.UpdateSection("ossec_config/syscheck", map[string]any{
		"frequency": "21600",
		"synchronization": map[string]any{
			"enabled":  "yes",
			"interval": "5m",
		},
	})
	require.NoError(t, err)

	sync := m.FindPath("ossec_config/syscheck/synchronization")
	require.NotNil(t, sync)
	assert.Equal(t, "yes", ChildText(sync, "enabled"))
	assert.Equal(t, "5m", ChildText(sync, "interval"))
	assert.Equal(t, "21600", ChildText(m.FindPath("ossec_config/syscheck"), "frequency"))
}

func TestUpdateSectionListReplaces(t *testing.T) {
	m := newManager(t, `<ossec_config>
  <ruleset>
    <decoder_dir>ruleset/decoders</decoder_dir>
    <list>etc/lists/audit-keys</list>
    <list>etc/lists/amazon/aws-eventnames</list>
  </ruleset>
</ossec_config>
`)

	err := m.UpdateSection("ossec_config/ruleset", map[string]any{
		"lists": []ListItem{
			{Tag: "list", Text: "etc/lists/blocked-ips"},
		},
	})
	require.NoError(t, err)

	lists := m.FindPath("ossec_config/ruleset/lists")
	require.NotNil(t, lists)
	require.Len(t, lists.ChildElements(), 1)
	assert.Equal(t, "etc/lists/blocked-ips", ChildText(lists, "list"))

	// Replacing again swaps the whole container contents.
	err = m.UpdateSection("ossec_config/ruleset", map[string]any{
		"lists": []any{
			map[string]any{"tag": "list", "text": "etc/lists/a"},
			map[string]any{"tag": "list", "text": "etc/lists/b"},
		},
	})
	require.NoError(t, err)
	require.Len(t, lists.ChildElements(), 2)
	assert.Equal(t, "etc/lists/a", lists.ChildElements()[0].Text())
	assert.Equal(t, "etc/lists/b", lists.ChildElements()[1].Text())
}

func TestUpdateSectionBadListItem(t *testing.T) {
	m := newManager(t, sampleConfig)

	err := m.UpdateSection("ossec_config/ruleset", map[string]any{
		"lists": []any{
			map[string]any{"text": "etc/lists/no-tag"},
		},
	})
	assert.Error(t, err)
}

func TestUpdateSectionCreatesMissingSection(t *testing.T) {
	m := newManager(t, sampleConfig)

	err := m.UpdateSection("ossec_config/vulnerability-detector", map[string]any{
		"enabled": "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, "yes", ChildText(m.FindPath("ossec_config/vulnerability-detector"), "enabled"))
}

func TestAddSectionIsAdditive(t *testing.T) {
	t.Run("repeated adds accumulate under the path node", func(t *testing.T) {
		m := newManager(t, sampleConfig)

		require.NoError(t, m.AddSection("ossec_config/localfile", map[string]any{
			"log_format": "syslog",
			"location":   "/var/log/auth.log",
		}))
		require.NoError(t, m.AddSection("ossec_config/localfile", map[string]any{
			"location": "/var/log/syslog",
		}))

		local := m.FindPath("ossec_config/localfile")
		require.NotNil(t, local)
		// Content nodes are created fresh every time, so the second add
		// appends a sibling leaf instead of merging into the first.
		locations := local.SelectElements("location")
		require.Len(t, locations, 2)
		assert.Equal(t, "/var/log/auth.log", locations[0].Text())
		assert.Equal(t, "/var/log/syslog", locations[1].Text())
		assert.Len(t, m.Container().SelectElements("localfile"), 1)
	})

	t.Run("nested maps build sibling blocks", func(t *testing.T) {
		m := newManager(t, sampleConfig)

		for _, location := range []string{"/var/log/auth.log", "/var/log/syslog"} {
			require.NoError(t, m.AddSection("ossec_config", map[string]any{
				"localfile": map[string]any{
					"log_format": "syslog",
					"location":   location,
				},
			}))
		}

		locals := m.Container().SelectElements("localfile")
		require.Len(t, locals, 2)
		assert.Equal(t, "/var/log/auth.log", ChildText(locals[0], "location"))
		assert.Equal(t, "/var/log/syslog", ChildText(locals[1], "location"))
	})

	t.Run("list values build leaf runs", func(t *testing.T) {
		m := newManager(t, sampleConfig)

		require.NoError(t, m.AddSection("ossec_config", map[string]any{
			"sca": map[string]any{
				"policies": []ListItem{
					{Tag: "policy", Text: "policies/cis_debian.yml"},
					{Tag: "policy", Text: "policies/web_hardening.yml"},
				},
			},
		}))

		policies := m.FindPath("ossec_config/sca/policies")
		require.NotNil(t, policies)
		require.Len(t, policies.ChildElements(), 2)
		assert.Equal(t, "policies/cis_debian.yml", policies.ChildElements()[0].Text())
	})
}

func TestRemoveSection(t *testing.T) {
	t.Run("removes all matching siblings", func(t *testing.T) {
		m := newManager(t, `<ossec_config>
  <localfile>
    <location>/var/log/auth.log</location>
  </localfile>
  <localfile>
    <location>/var/log/syslog</location>
  </localfile>
  <global>
    <log_format>plain</log_format>
  </global>
</ossec_config>
`)
		assert.True(t, m.RemoveSection("ossec_config/localfile"))
		assert.Empty(t, m.Container().SelectElements("localfile"))
		assert.True(t, m.SectionExists("ossec_config/global"))
	})

	t.Run("true when parent exists but tag does not", func(t *testing.T) {
		m := newManager(t, sampleConfig)
		assert.True(t, m.RemoveSection("ossec_config/no_such_section"))
	})

	t.Run("false when parent path missing", func(t *testing.T) {
		m := newManager(t, sampleConfig)
		assert.False(t, m.RemoveSection("other_config/global"))
		assert.False(t, m.RemoveSection("ossec_config/missing/leaf"))
	})

	t.Run("single segment removes top-level block", func(t *testing.T) {
		m := newManager(t, sampleConfig)
		assert.True(t, m.RemoveSection("ossec_config"))
		assert.Nil(t, m.Container())
	})
}

func TestSectionExists(t *testing.T) {
	m := newManager(t, sampleConfig)

	assert.True(t, m.SectionExists("ossec_config/global"))
	assert.True(t, m.SectionExists("ossec_config/global/log_format"))
	assert.False(t, m.SectionExists("ossec_config/global/missing"))
	assert.False(t, m.SectionExists(""))
}
