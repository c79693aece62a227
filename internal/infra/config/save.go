package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"zeroclaw/internal/domain"
)

// Save validates cfg and writes it to cfg.ConfigPath with 0600 permissions.
// Secret fields are encrypted in the written copy when secrets.encrypt is
// set; cfg itself is not modified.
func Save(cfg *Config) error {
	if cfg.ConfigPath == "" {
		return domain.NewDomainError("config.Save", domain.ErrConfigWrite, "config_path is empty")
	}
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out, err := clone(cfg)
	if err != nil {
		return err
	}
	if out.Secrets.Encrypt {
		if err := encryptSecrets(out); err != nil {
			return domain.NewDomainError("config.Save", domain.ErrConfigWrite, err.Error())
		}
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := writeAtomic(cfg.ConfigPath, data, 0o600); err != nil {
		return domain.NewDomainError("config.Save", domain.ErrConfigWrite, err.Error())
	}
	return nil
}

func clone(cfg *Config) (*Config, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("copy config: %w", err)
	}
	return out, nil
}

// writeAtomic writes data to a temp file in the target dir and renames it.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
