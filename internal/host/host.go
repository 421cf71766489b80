// Package host runs the authoring actions in a terminal. The working tree
// is the workspace, the last opened file is the active document, and
// "showing" a document means handing it to the user's editor.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kennyg/yokogaki/internal/author"
	"github.com/kennyg/yokogaki/internal/config"
	"github.com/kennyg/yokogaki/internal/prompt"
	"github.com/kennyg/yokogaki/internal/ui"
)

var (
	// ErrDestinationExists is returned by RenameFile when the target is
	// taken and overwriting was not requested.
	ErrDestinationExists = fmt.Errorf("destination already exists: %w", fs.ErrExist)

	// ErrUnsupportedScheme is returned for documents that are not local files.
	ErrUnsupportedScheme = errors.New("unsupported document scheme")
)

// Launcher starts an editor. argv[0] is the program.
type Launcher func(ctx context.Context, argv []string) error

// Options configures a Terminal host.
type Options struct {
	// Root is the workspace root; empty means no workspace.
	Root string
	// Active is an explicitly chosen active document. When empty the last
	// opened document from the state file is used.
	Active string
	// StateFile records the active document between runs.
	StateFile string
	// Editor is the editor command line. Empty disables launching.
	Editor string
	// Open controls whether OpenAndShowDocument launches the editor.
	Open bool

	Prompter prompt.Prompter
	Launch   Launcher
	Out      io.Writer
	Logger   *slog.Logger
	Now      func() time.Time
}

// Terminal implements author.Host on the local machine.
type Terminal struct {
	opts Options
	log  *slog.Logger
}

var _ author.Host = (*Terminal)(nil)

// New returns a Terminal host.
func New(opts Options) *Terminal {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Launch == nil {
		opts.Launch = RunEditor
	}
	if opts.Prompter == nil {
		opts.Prompter = prompt.Auto(os.Stdin, opts.Out)
	}
	return &Terminal{opts: opts, log: opts.Logger}
}

// EditorFromEnv returns $VISUAL, else $EDITOR.
func EditorFromEnv() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	return os.Getenv("EDITOR")
}

// RunEditor runs argv attached to the current terminal and waits for it.
func RunEditor(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// FileExists implements author.Host.
func (t *Terminal) FileExists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteFile creates path with data. It refuses to replace an existing file.
func (t *Terminal) WriteFile(_ context.Context, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// RenameFile implements author.Host.
func (t *Terminal) RenameFile(_ context.Context, from, to author.Document, opts author.RenameOptions) error {
	if from.Scheme != author.SchemeFile || to.Scheme != author.SchemeFile {
		return fmt.Errorf("%w: %s -> %s", ErrUnsupportedScheme, from.Scheme, to.Scheme)
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(to.Path); err == nil {
			return fmt.Errorf("rename %s -> %s: %w", from.Path, to.Path, ErrDestinationExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", to.Path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(to.Path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.Rename(from.Path, to.Path); err != nil {
		return err
	}
	t.log.Debug("file renamed", slog.String("from", from.Path), slog.String("to", to.Path))

	if t.opts.Active != "" && sameFile(t.opts.Active, from.Path) {
		active, err := filepath.Abs(to.Path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", to.Path, err)
		}
		t.opts.Active = active
	}
	return nil
}

// sameFile compares two paths after making them absolute.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// WorkspaceRoot implements author.Host.
func (t *Terminal) WorkspaceRoot(context.Context) (string, bool) {
	return t.opts.Root, t.opts.Root != ""
}

// ActiveDocument implements author.Host. Documents that no longer exist on
// disk are not reported.
func (t *Terminal) ActiveDocument(context.Context) (author.Document, bool) {
	path := t.opts.Active
	if path == "" {
		state, err := t.loadState()
		if err != nil {
			t.log.Warn("could not read state", slog.String("error", err.Error()))
			return author.Document{}, false
		}
		if state.Active == nil || state.Active.Path == "" {
			return author.Document{}, false
		}
		path = state.Active.Path
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		t.log.Debug("active document unavailable", slog.String("path", path))
		return author.Document{}, false
	}
	return author.FileDocument(path), true
}

// SaveActiveDocument flushes the active file to stable storage. The
// terminal has no unsaved buffers, so this is all saving means here.
func (t *Terminal) SaveActiveDocument(ctx context.Context) error {
	doc, ok := t.ActiveDocument(ctx)
	if !ok {
		return nil
	}

	f, err := os.Open(doc.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Sync()
}

// PromptForText implements author.Host.
func (t *Terminal) PromptForText(ctx context.Context, req author.PromptRequest) (string, bool, error) {
	return t.opts.Prompter.Prompt(ctx, prompt.Request{
		Title:    req.Title,
		Value:    req.Value,
		SelStart: req.Selection.Start,
		SelEnd:   req.Selection.End,
	})
}

// OpenAndShowDocument records doc as active and opens it in the editor
// when one is configured.
func (t *Terminal) OpenAndShowDocument(ctx context.Context, doc author.Document) error {
	if doc.Scheme != author.SchemeFile {
		return fmt.Errorf("%w: %s", ErrUnsupportedScheme, doc.Scheme)
	}

	// The state outlives the working directory, so it only holds absolute paths.
	abs, err := filepath.Abs(doc.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", doc.Path, err)
	}
	doc = doc.WithPath(abs)

	if err := t.recordActive(doc); err != nil {
		return fmt.Errorf("record active document: %w", err)
	}
	t.opts.Active = doc.Path

	if !t.opts.Open {
		return nil
	}
	argv := strings.Fields(t.opts.Editor)
	if len(argv) == 0 {
		t.log.Debug("no editor configured", slog.String("path", doc.Path))
		return nil
	}

	argv = append(argv, doc.Path)
	t.log.Debug("launching editor", slog.Any("argv", argv))
	if err := t.opts.Launch(ctx, argv); err != nil {
		return fmt.Errorf("run editor %s: %w", argv[0], err)
	}
	return nil
}

// ShowInformationMessage implements author.Host.
func (t *Terminal) ShowInformationMessage(_ context.Context, text string) {
	fmt.Fprintln(t.opts.Out, ui.InfoLine(text))
}

func (t *Terminal) loadState() (*config.State, error) {
	if t.opts.StateFile == "" {
		return &config.State{Version: "1"}, nil
	}
	return config.LoadState(t.opts.StateFile)
}

func (t *Terminal) recordActive(doc author.Document) error {
	if t.opts.StateFile == "" {
		return nil
	}
	state, err := t.loadState()
	if err != nil {
		return err
	}
	state.SetActive(doc.Scheme, doc.Path, t.opts.Now())
	return config.SaveState(t.opts.StateFile, state)
}
