package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileHeader = "# i2edit configuration\n# Run 'i2edit config validate' after editing.\n\n"

// Write marshals c as YAML to path, creating parent directories.
func (c Config) Write(path string) error {
	var buf bytes.Buffer
	buf.WriteString(fileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Backup copies an existing config file to path + ".bak", replacing any
// older backup. It returns an empty string if there was nothing to back up.
func Backup(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}

	backupPath := path + ".bak"
	_ = os.Remove(backupPath)

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read existing config: %w", err)
	}
	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}

// Exists reports whether a config file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
