package ossec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// backupTimeLayout names backups down to the second. Two backups of the same
// file within one second share a name and the later one wins.
const backupTimeLayout = "20060102_150405"

// BackupInfo describes one timestamped backup of the configuration file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// CreateBackup copies the current on-disk file byte for byte to backupPath.
// When backupPath is empty the copy is named <file>.<YYYYMMDD_HHMMSS>.bak
// and placed beside the original, or under the configured backup directory.
// Missing destination directories are created. It returns the path written.
func (m *ConfigManager) CreateBackup(backupPath string) (string, error) {
	if backupPath == "" {
		name := fmt.Sprintf("%s.%s.bak", filepath.Base(m.filePath), time.Now().Format(backupTimeLayout))
		backupPath = filepath.Join(m.backupLocation(), name)
	}

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return "", fmt.Errorf("reading config for backup: %w", err)
	}
	info, err := os.Stat(m.filePath)
	if err != nil {
		return "", fmt.Errorf("stat config for backup: %w", err)
	}

	if dir := filepath.Dir(backupPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating backup directory: %w", err)
		}
	}
	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}

	m.logger.Info().Str("backup", backupPath).Msg("backup created")
	return backupPath, nil
}

// ListBackups returns the default-named backups of the configuration file,
// newest first. Backups written to explicit custom paths are not tracked.
func (m *ConfigManager) ListBackups() ([]BackupInfo, error) {
	dir := m.backupLocation()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	prefix := filepath.Base(m.filePath) + "."
	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".bak") {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".bak")
		ts, err := time.Parse(backupTimeLayout, stamp)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// PruneBackups deletes all but the keep newest default-named backups and
// returns how many were removed.
func (m *ConfigManager) PruneBackups(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	backups, err := m.ListBackups()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	pruned := 0
	for _, backup := range backups[keep:] {
		if err := os.Remove(backup.Path); err != nil {
			return pruned, fmt.Errorf("removing backup %s: %w", backup.Path, err)
		}
		pruned++
	}
	m.logger.Info().Int("pruned", pruned).Int("kept", keep).Msg("pruned old backups")
	return pruned, nil
}

func (m *ConfigManager) backupLocation() string {
	if m.backupDir != "" {
		return m.backupDir
	}
	return filepath.Dir(m.filePath)
}
