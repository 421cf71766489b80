package config

import (
	"os"
	"path/filepath"
)

// Following the dot-config specification: https://dot-config.github.io/
// User config:    ~/.config/yokogaki/ (or $XDG_CONFIG_HOME/yokogaki/)
// Project config: .config/yokogaki/ (in the site root)

const (
	// ConfigDir is the subdirectory name under .config
	ConfigDir = "yokogaki"
	// ConfigFile is the filename of the YAML settings file
	ConfigFile = "config.yaml"
	// StateFile is the filename for tracking the active document
	StateFile = "state.json"
)

// siteMarkers are files that mark the root of a static site checkout.
var siteMarkers = []string{
	"hugo.toml",
	"hugo.yaml",
	"hugo.json",
	"config.toml",
	"config.yaml",
}

// Paths holds the various paths yokogaki uses
type Paths struct {
	// Home is the user's home directory
	Home string

	// UserConfigDir is ~/.config/yokogaki (or $XDG_CONFIG_HOME/yokogaki)
	UserConfigDir string
	// StateFile is ~/.config/yokogaki/state.json
	StateFile string

	// ProjectRoot is the site root containing the working directory, if any
	ProjectRoot string
	// ProjectConfigDir is .config/yokogaki in the project root (if exists)
	ProjectConfigDir string
}

// GetPaths returns the standard paths, discovering the project from the
// current working directory.
func GetPaths() (*Paths, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return GetPathsFrom(cwd)
}

// GetPathsFrom returns the standard paths, discovering the project by
// walking up from dir.
func GetPathsFrom(dir string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Follow XDG Base Directory spec
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	userConfigDir := filepath.Join(configHome, ConfigDir)

	p := &Paths{
		Home:          home,
		UserConfigDir: userConfigDir,
		StateFile:     filepath.Join(userConfigDir, StateFile),
		ProjectRoot:   FindProjectRoot(dir),
	}

	if p.ProjectRoot != "" {
		candidate := filepath.Join(p.ProjectRoot, ".config", ConfigDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			p.ProjectConfigDir = candidate
		}
	}

	return p, nil
}

// FindProjectRoot walks up from dir to the first directory that holds a
// .config/yokogaki directory, a site config file or a .git entry. It
// returns "" when it reaches the filesystem root without a match.
func FindProjectRoot(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		if isProjectRoot(dir) {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}

	return ""
}

func isProjectRoot(dir string) bool {
	candidate := filepath.Join(dir, ".config", ConfigDir)
	if info, err := os.Stat(candidate); err == nil && info.IsDir() {
		return true
	}

	for _, name := range siteMarkers {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}

	// Also check for .git to stop at repo root
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	return false
}

// HasProjectConfig returns true if a project-level config exists
func (p *Paths) HasProjectConfig() bool {
	return p.ProjectConfigDir != ""
}

// ConfigCandidates lists config files in lookup order: project first,
// then user.
func (p *Paths) ConfigCandidates() []string {
	var out []string
	if p.HasProjectConfig() {
		out = append(out, filepath.Join(p.ProjectConfigDir, ConfigFile))
	}
	return append(out, filepath.Join(p.UserConfigDir, ConfigFile))
}
