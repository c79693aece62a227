package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	homeDirName         = ".zeroclaw"
	workspaceDirName    = "workspace"
	activeWorkspaceFile = "active_workspace.yaml"
)

type activeWorkspace struct {
	ConfigDir string `yaml:"config_dir"`
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// ResolveRuntimeDirs returns the config and workspace directories in effect.
//
// Precedence: ZEROCLAW_CONFIG_DIR, ZEROCLAW_WORKSPACE, the active workspace
// marker, then ~/.zeroclaw.
func ResolveRuntimeDirs() (configDir, workspaceDir string, err error) {
	if v := strings.TrimSpace(os.Getenv("ZEROCLAW_CONFIG_DIR")); v != "" {
		configDir = ExpandTilde(v)
		return configDir, filepath.Join(configDir, workspaceDirName), nil
	}
	if v := strings.TrimSpace(os.Getenv("ZEROCLAW_WORKSPACE")); v != "" {
		configDir, workspaceDir = ResolveConfigDirForWorkspace(ExpandTilde(v))
		return configDir, workspaceDir, nil
	}

	home, err := defaultHome()
	if err != nil {
		return "", "", err
	}
	if dir := readActiveWorkspace(home); dir != "" {
		return dir, filepath.Join(dir, workspaceDirName), nil
	}
	return home, filepath.Join(home, workspaceDirName), nil
}

// ResolveConfigDirForWorkspace derives the config dir for a workspace dir.
// A directory named "workspace" lives inside its config dir; any other
// directory keeps its config in a .zeroclaw subdirectory.
func ResolveConfigDirForWorkspace(ws string) (configDir, workspaceDir string) {
	ws = filepath.Clean(ws)
	if filepath.Base(ws) == workspaceDirName {
		return filepath.Dir(ws), ws
	}
	return filepath.Join(ws, homeDirName), ws
}

// PersistActiveWorkspaceDir records configDir as the active config dir.
func PersistActiveWorkspaceDir(configDir string) error {
	home, err := defaultHome()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", home, err)
	}
	data, err := yaml.Marshal(activeWorkspace{ConfigDir: configDir})
	if err != nil {
		return fmt.Errorf("marshal active workspace: %w", err)
	}
	return writeAtomic(filepath.Join(home, activeWorkspaceFile), data, 0o600)
}

func readActiveWorkspace(home string) string {
	data, err := os.ReadFile(filepath.Join(home, activeWorkspaceFile))
	if err != nil {
		return ""
	}
	var aw activeWorkspace
	if err := yaml.Unmarshal(data, &aw); err != nil {
		return ""
	}
	return strings.TrimSpace(aw.ConfigDir)
}
