package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kennyg/yokogaki/internal/author"
	"github.com/kennyg/yokogaki/internal/config"
	"github.com/kennyg/yokogaki/internal/host"
	"github.com/kennyg/yokogaki/internal/prompt"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "YOKOGAKI_CONFIG"

// app is the resolved environment shared by all commands.
type app struct {
	paths     *config.Paths
	cfg       *config.Config
	cfgFile   string
	root      string
	stateFile string
	editor    string
	logger    *slog.Logger
}

func loadApp() (*app, error) {
	level := slog.LevelWarn
	if verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	paths, err := config.GetPaths()
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	explicit := configFlag
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	cfg, cfgFile, err := config.Load(explicit, paths)
	if err != nil {
		return nil, err
	}

	root, err := resolveRoot(rootFlag, cfg.Root, paths.ProjectRoot)
	if err != nil {
		return nil, err
	}

	stateFile := paths.StateFile
	if paths.HasProjectConfig() {
		stateFile = filepath.Join(paths.ProjectConfigDir, config.StateFile)
	}

	editor := cfg.Editor
	if editor == "" {
		editor = host.EditorFromEnv()
	}

	logger.Debug("environment resolved",
		slog.String("root", root),
		slog.String("config", cfgFile),
		slog.String("state", stateFile),
		slog.String("post_dir", cfg.PostDir),
		slog.String("editor", editor))

	return &app{
		paths:     paths,
		cfg:       cfg,
		cfgFile:   cfgFile,
		root:      root,
		stateFile: stateFile,
		editor:    editor,
		logger:    logger,
	}, nil
}

// resolveRoot picks the first non-empty candidate and makes it absolute.
func resolveRoot(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", fmt.Errorf("resolve root %s: %w", c, err)
		}
		return abs, nil
	}
	return "", nil
}

// hostFor builds the terminal host. active may be empty.
func (a *app) hostFor(active string, p prompt.Prompter, noOpen bool) *host.Terminal {
	return host.New(a.hostOptions(active, p, noOpen))
}

func (a *app) hostOptions(active string, p prompt.Prompter, noOpen bool) host.Options {
	return host.Options{
		Root:      a.root,
		Active:    active,
		StateFile: a.stateFile,
		Editor:    a.editor,
		Open:      a.cfg.Open && !noOpen,
		Prompter:  p,
		Out:       os.Stdout,
		Logger:    a.logger,
	}
}

func (a *app) helper(h author.Host) *author.Helper {
	return author.New(h,
		author.WithPostDir(a.cfg.PostDir),
		author.WithLogger(a.logger),
	)
}

// display shortens path relative to the site root when it lies inside it.
func (a *app) display(path string) string {
	if a.root == "" {
		return path
	}
	rel, err := filepath.Rel(a.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
