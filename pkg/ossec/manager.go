// Package ossec edits Wazuh/OSSEC configuration files. An ossec.conf is not
// well-formed XML: it is a sequence of sibling top-level blocks with no
// enclosing root element. The ConfigManager wraps the raw content in a
// synthetic root, parses it into a mutable element tree, and exposes
// structured operations over sections, integrations, and ruleset lists.
// Nothing touches the disk until Save or CreateBackup is called.
package ossec

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucid-vigil/ossecconf/pkg/errors"
)

const (
	// wrapperTag is the synthetic root element added around the file content
	// so it parses as a single document. It never appears in saved output.
	wrapperTag = "root"

	// containerTag is the canonical top-level block gathering most settings.
	containerTag = "ossec_config"
)

// ConfigManager holds a parsed OSSEC configuration and its originating file
// path. All mutations are in-memory until Save.
type ConfigManager struct {
	filePath  string
	backupDir string
	doc       *etree.Document
	root      *etree.Element
	logger    zerolog.Logger
}

// Option configures a ConfigManager during construction.
type Option func(*ConfigManager)

// WithLogger routes the manager's log output through the given logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *ConfigManager) {
		m.logger = logger
	}
}

// WithBackupDir places default-named backups under dir instead of beside the
// original file. Explicit backup paths are unaffected.
func WithBackupDir(dir string) Option {
	return func(m *ConfigManager) {
		m.backupDir = dir
	}
}

// NewConfigManager reads and parses the configuration at filePath, then
// merges any repeated ossec_config blocks into the first one. It returns a
// *errors.ParseError when the content is not well-formed once wrapped.
func NewConfigManager(filePath string, opts ...Option) (*ConfigManager, error) {
	m := &ConfigManager{
		filePath: filePath,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With().Str("component", "ossec-config").Str("file", filePath).Logger()

	if err := m.load(); err != nil {
		return nil, err
	}
	m.Normalize()
	return m, nil
}

// load reads the file, wraps it in the synthetic root, and parses it.
func (m *ConfigManager) load() error {
	content, err := os.ReadFile(m.filePath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	wrapped := fmt.Sprintf("<%s>%s</%s>", wrapperTag, content, wrapperTag)

	doc := etree.NewDocument()
	if err := doc.ReadFromString(wrapped); err != nil {
		return errors.NewParseError(m.filePath, "content is not well-formed", err)
	}
	root := doc.Root()
	if root == nil {
		return errors.NewParseError(m.filePath, "no parseable content", nil)
	}

	m.doc = doc
	m.root = root
	return nil
}

// Normalize combines repeated ossec_config blocks into the first one: the
// children of every later block are appended to the first, in encounter
// order, and the emptied blocks are removed. With zero or one block this is
// a no-op.
func (m *ConfigManager) Normalize() {
	blocks := m.root.SelectElements(containerTag)
	if len(blocks) <= 1 {
		m.logger.Debug().Msg("no extra ossec_config blocks to combine")
		return
	}

	primary := blocks[0]
	for _, extra := range blocks[1:] {
		for _, child := range extra.ChildElements() {
			primary.AddChild(child)
		}
		m.root.RemoveChild(extra)
	}
	m.logger.Info().Int("combined", len(blocks)-1).Msg("combined ossec_config blocks into the first")
}

// FilePath returns the path the configuration was loaded from.
func (m *ConfigManager) FilePath() string {
	return m.filePath
}

// Root returns the synthetic root element. The top-level blocks of the file
// are its direct children. Intended for callers that need element-level
// access beyond the structured operations.
func (m *ConfigManager) Root() *etree.Element {
	return m.root
}

// Container returns the primary ossec_config block, or nil when the file has
// none.
func (m *ConfigManager) Container() *etree.Element {
	return m.root.SelectElement(containerTag)
}

// Logger returns the manager's logger for packages layered on top of it.
func (m *ConfigManager) Logger() zerolog.Logger {
	return m.logger
}

// LeafFields maps the direct child elements of el to their text values.
// Repeated tags keep the last occurrence.
func LeafFields(el *etree.Element) map[string]string {
	fields := make(map[string]string)
	for _, child := range el.ChildElements() {
		fields[child.Tag] = child.Text()
	}
	return fields
}

// ChildText returns the text of el's first child with the given tag, or ""
// when no such child exists.
func ChildText(el *etree.Element, tag string) string {
	if child := el.SelectElement(tag); child != nil {
		return child.Text()
	}
	return ""
}

// splitPath breaks a slash-separated section path into tag segments,
// dropping empty segments from leading, trailing, or doubled slashes.
func splitPath(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// sortedKeys returns the keys of updates in a stable order so repeated runs
// create elements in the same sequence.
func sortedKeys[V any](updates map[string]V) []string {
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
