package ossec

import (
	"fmt"
	"os"
	"path/filepath"
)

// SaveOptions controls where Save writes and how it backs up. The zero value
// overwrites the original file after taking a default-named backup.
type SaveOptions struct {
	// FilePath overrides the destination; empty means the original file.
	FilePath string
	// SkipBackup disables the pre-write backup.
	SkipBackup bool
	// BackupPath overrides the backup destination when a backup is taken.
	BackupPath string
}

// Save serializes the in-memory tree and writes it out. The backup, when
// taken, copies the pre-edit on-disk file, not the in-memory state. The
// write is a single buffered write of the whole document; it is not an
// atomic rename, so a crash mid-write can leave a truncated file.
func (m *ConfigManager) Save(opts SaveOptions) error {
	if !opts.SkipBackup {
		if _, err := m.CreateBackup(opts.BackupPath); err != nil {
			return err
		}
	}

	target := opts.FilePath
	if target == "" {
		target = m.filePath
	}

	text, err := m.Serialize()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating target directory: %w", err)
		}
	}
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	m.logger.Info().Str("target", target).Msg("saved configuration")
	return nil
}
