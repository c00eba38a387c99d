package activeresponse

// Convenience constructors for the stock Wazuh response patterns. Each one
// makes sure its well-known command is defined, then adds the binding
// through AddActiveResponse. Zero-valued arguments fall back to the
// defaults documented per constructor.

// CreateSSHBlockResponse binds the host-deny command to the SSH brute-force
// rules. Defaults: location local, level 7, timeout 600, rule IDs
// "5763,5761,5762".
func (m *Manager) CreateSSHBlockResponse(location Location, level, timeout int, rulesID string) bool {
	if location == "" {
		location = LocationLocal
	}
	if level == 0 {
		level = 7
	}
	if timeout == 0 {
		timeout = 600
	}
	if rulesID == "" {
		rulesID = "5763,5761,5762"
	}

	m.ensureCommand("host-deny", "host-deny", true)
	return m.AddActiveResponse(ActiveResponse{
		Command:  "host-deny",
		Location: location,
		Level:    level,
		Timeout:  timeout,
		RulesID:  rulesID,
	})
}

// CreateAgentRestartResponse binds the restart-ossec command so the agent
// restarts itself on high-severity alerts. Defaults: location local, level
// 12, timeout 300.
func (m *Manager) CreateAgentRestartResponse(location Location, level, timeout int) bool {
	if location == "" {
		location = LocationLocal
	}
	if level == 0 {
		level = 12
	}
	if timeout == 0 {
		timeout = 300
	}

	m.ensureCommand("restart-ossec", "restart-ossec", false)
	return m.AddActiveResponse(ActiveResponse{
		Command:  "restart-ossec",
		Location: location,
		Level:    level,
		Timeout:  timeout,
	})
}

// CreateUserDisableResponse binds the disable-account command to the
// authentication-failure rule group. Defaults: location local, level 10,
// timeout 3600, rules group "authentication_failure,".
func (m *Manager) CreateUserDisableResponse(location Location, level, timeout int, rulesGroup string) bool {
	if location == "" {
		location = LocationLocal
	}
	if level == 0 {
		level = 10
	}
	if timeout == 0 {
		timeout = 3600
	}
	if rulesGroup == "" {
		rulesGroup = "authentication_failure,"
	}

	m.ensureCommand("disable-account", "disable-account", true)
	return m.AddActiveResponse(ActiveResponse{
		Command:    "disable-account",
		Location:   location,
		Level:      level,
		Timeout:    timeout,
		RulesGroup: rulesGroup,
	})
}

// CreateFirewallDropResponse binds the firewall-drop command to drop traffic
// from offending sources. Defaults: location local, level 6, timeout 600.
func (m *Manager) CreateFirewallDropResponse(location Location, level, timeout int) bool {
	if location == "" {
		location = LocationLocal
	}
	if level == 0 {
		level = 6
	}
	if timeout == 0 {
		timeout = 600
	}

	m.ensureCommand("firewall-drop", "firewall-drop", true)
	return m.AddActiveResponse(ActiveResponse{
		Command:  "firewall-drop",
		Location: location,
		Level:    level,
		Timeout:  timeout,
	})
}

func (m *Manager) ensureCommand(name, executable string, timeoutAllowed bool) {
	if !m.CommandExists(name) {
		m.AddCommand(name, executable, timeoutAllowed)
	}
}
