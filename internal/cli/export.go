package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// exportDir resolves where CSV exports land: the configured download
// directory, else ~/.pocdesk/exports.
func (a *App) exportDir() (string, error) {
	dir := a.Config.DownloadDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".pocdesk", "exports")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	return dir, nil
}

// writeExport writes CSV content under the export directory and returns the
// full path.
func (a *App) writeExport(filename, content string) (string, error) {
	dir, err := a.exportDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}
