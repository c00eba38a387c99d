package activeresponse

import (
	"strings"
	"unicode"
)

// Location is where an active response runs.
type Location string

const (
	LocationLocal        Location = "local"
	LocationServer       Location = "server"
	LocationDefinedAgent Location = "defined-agent"
	LocationAll          Location = "all"
)

// Valid reports whether l is one of the four recognized locations.
func (l Location) Valid() bool {
	switch l {
	case LocationLocal, LocationServer, LocationDefinedAgent, LocationAll:
		return true
	}
	return false
}

// ValidLevel reports whether level is a usable alert severity, 1 through 16.
func ValidLevel(level int) bool {
	return level >= 1 && level <= 16
}

// ValidRulesGroup reports whether rulesGroup is a well-formed rule-group
// selector: non-empty, pipe-separated, with every segment ending in a comma
// once surrounding whitespace is trimmed.
func ValidRulesGroup(rulesGroup string) bool {
	if rulesGroup == "" {
		return false
	}
	for _, group := range strings.Split(rulesGroup, "|") {
		if !strings.HasSuffix(strings.TrimSpace(group), ",") {
			return false
		}
	}
	return true
}

// ValidRulesID reports whether rulesID is a well-formed rule-ID selector:
// non-empty, comma-separated, with every segment all digits once trimmed.
func ValidRulesID(rulesID string) bool {
	if rulesID == "" {
		return false
	}
	for _, id := range strings.Split(rulesID, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			return false
		}
		for _, r := range id {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}
