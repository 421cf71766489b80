package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/kennyg/yokogaki/internal/author"
)

// EnvRoot overrides the workspace root.
const EnvRoot = "YOKOGAKI_ROOT"

// Validator is implemented by settings that can check themselves.
type Validator interface {
	Validate() error
}

// Config is the contents of config.yaml.
type Config struct {
	// Root pins the workspace root instead of discovering it.
	Root string `yaml:"root"`
	// PostDir is where dated post folders go, relative to the root.
	PostDir string `yaml:"post_dir"`
	// Editor is the command used to open documents. Falls back to
	// $VISUAL and $EDITOR.
	Editor string `yaml:"editor"`
	// Open controls whether documents are opened in the editor at all.
	Open bool `yaml:"open"`
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		PostDir: author.DefaultPostDir,
		Open:    true,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PostDir, validation.Required, validation.By(relativeInsideRoot)),
	)
}

func relativeInsideRoot(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return errors.New("must be relative to the workspace root")
	}
	cleaned := filepath.ToSlash(filepath.Clean(s))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.New("must not leave the workspace root")
	}
	return nil
}

// LoadFile reads filename into target, expanding ${VAR} references first.
// Targets implementing Validator are validated after parsing.
func LoadFile[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// Load resolves the settings. An explicit path must exist; otherwise the
// first existing candidate from paths is used, and defaults apply when
// there is none. It returns the file that was read, or "".
func Load(explicit string, paths *Paths) (*Config, string, error) {
	cfg := NewDefaultConfig()

	file := explicit
	if file == "" && paths != nil {
		for _, candidate := range paths.ConfigCandidates() {
			if _, err := os.Stat(candidate); err == nil {
				file = candidate
				break
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, "", fmt.Errorf("stat %s: %w", candidate, err)
			}
		}
	}

	if file != "" {
		if err := LoadFile(file, cfg); err != nil {
			return nil, "", err
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	if root := os.Getenv(EnvRoot); root != "" {
		cfg.Root = root
	}

	return cfg, file, nil
}
