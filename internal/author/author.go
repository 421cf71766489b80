// Package author implements the two authoring actions of yokogaki: creating
// a dated post stub and renaming the document that is currently open. All
// I/O goes through a Host so the actions can run against a terminal, an
// editor bridge or a test fake alike.
package author

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultPostDir is where posts live, relative to the workspace root.
	DefaultPostDir = "content/post"

	// MaxUntitledAttempts bounds the untitled.md, untitled_1.md, ... probe.
	MaxUntitledAttempts = 20

	untitledStem = "untitled"
	postExt      = ".md"
)

// Informational messages shown for soft failures.
const (
	MsgNoWorkspace   = "No workspace folder is open."
	MsgCannotCreate  = "Cannot create new post :-("
	MsgNoActiveFile  = "No file :-("
	renamePromptText = "New File Name"
)

var pathSeparators = "/" + string(filepath.Separator)

// Helper runs the authoring actions against a Host.
type Helper struct {
	host    Host
	now     func() time.Time
	postDir string
	logger  *slog.Logger
}

// Option configures a Helper.
type Option func(*Helper)

// WithClock overrides the clock used to date new posts.
func WithClock(now func() time.Time) Option {
	return func(h *Helper) {
		h.now = now
	}
}

// WithPostDir sets the post directory relative to the workspace root.
func WithPostDir(dir string) Option {
	return func(h *Helper) {
		if dir != "" {
			h.postDir = dir
		}
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Helper) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New returns a Helper bound to host.
func New(host Host, opts ...Option) *Helper {
	h := &Helper{
		host:    host,
		now:     time.Now,
		postDir: DefaultPostDir,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// UntitledName returns the i-th candidate base name: untitled.md for 0,
// untitled_<i>.md after that.
func UntitledName(i int) string {
	if i == 0 {
		return untitledStem + postExt
	}
	return fmt.Sprintf("%s_%d%s", untitledStem, i, postExt)
}

// PostDir returns the directory a post created at t belongs in.
func (h *Helper) PostDir(root string, t time.Time) string {
	year, month, _ := DateParts(t)
	return filepath.Join(root, filepath.FromSlash(h.postDir), year, month)
}

// AllocateUniqueName writes content to the first free untitled name in dir
// and returns its path. ok is false when every candidate is taken, in which
// case nothing is written.
func (h *Helper) AllocateUniqueName(ctx context.Context, dir string, content []byte) (path string, ok bool, err error) {
	for i := 0; i < MaxUntitledAttempts; i++ {
		candidate := filepath.Join(dir, UntitledName(i))
		exists, err := h.host.FileExists(ctx, candidate)
		if err != nil {
			// A failed stat is treated as free; the write decides.
			h.logger.Debug("stat failed, treating as free",
				slog.String("path", candidate), slog.String("error", err.Error()))
			exists = false
		}
		if exists {
			h.logger.Debug("name taken", slog.String("path", candidate))
			continue
		}
		if err := h.host.WriteFile(ctx, candidate, content); err != nil {
			return "", false, fmt.Errorf("write %s: %w", candidate, err)
		}
		h.logger.Debug("post stub written", slog.String("path", candidate))
		return candidate, true, nil
	}
	return "", false, nil
}

// CreatePostStub creates <root>/<postDir>/<yyyy>/<mm>/untitled*.md with a
// draft front matter block for today and opens it. It returns the created
// path, or "" when nothing was created.
func (h *Helper) CreatePostStub(ctx context.Context) (string, error) {
	root, ok := h.host.WorkspaceRoot(ctx)
	if !ok || root == "" {
		h.host.ShowInformationMessage(ctx, MsgNoWorkspace)
		return "", nil
	}

	now := h.now()
	year, month, day := DateParts(now)
	dir := h.PostDir(root, now)
	h.logger.Debug("creating post stub", slog.String("dir", dir))

	path, ok, err := h.AllocateUniqueName(ctx, dir, BuildFrontMatter(year, month, day))
	if err != nil {
		return "", err
	}
	if !ok {
		h.host.ShowInformationMessage(ctx, MsgCannotCreate)
		return "", nil
	}

	if err := h.host.OpenAndShowDocument(ctx, FileDocument(path)); err != nil {
		return path, fmt.Errorf("open %s: %w", path, err)
	}
	return path, nil
}

// RenameActiveFile saves the active document, asks for its new path and
// renames it without overwriting anything. It returns the new path, or ""
// when nothing was renamed.
func (h *Helper) RenameActiveFile(ctx context.Context) (string, error) {
	doc, ok := h.host.ActiveDocument(ctx)
	if !ok || doc.Path == "" {
		h.host.ShowInformationMessage(ctx, MsgNoActiveFile)
		return "", nil
	}

	if err := h.host.SaveActiveDocument(ctx); err != nil {
		return "", fmt.Errorf("save %s: %w", doc.Path, err)
	}

	newPath, ok, err := h.host.PromptForText(ctx, PromptRequest{
		Title:     renamePromptText,
		Value:     doc.Path,
		Selection: StemSelection(doc.Path),
	})
	if err != nil {
		return "", fmt.Errorf("prompt: %w", err)
	}
	if !ok || newPath == "" || newPath == doc.Path {
		h.logger.Debug("rename skipped", slog.String("path", doc.Path))
		return "", nil
	}

	target := doc.WithPath(newPath)
	if err := h.host.RenameFile(ctx, doc, target, RenameOptions{Overwrite: false}); err != nil {
		return "", err
	}
	h.logger.Debug("renamed", slog.String("from", doc.Path), slog.String("to", newPath))

	if err := h.host.OpenAndShowDocument(ctx, target); err != nil {
		return newPath, fmt.Errorf("open %s: %w", newPath, err)
	}
	return newPath, nil
}

// StemSelection returns the span of path between its last separator and
// its extension, in runes. Without an extension the span runs to the end.
func StemSelection(path string) Selection {
	start := strings.LastIndexAny(path, pathSeparators) + 1
	end := len(path)
	if dot := strings.LastIndex(path, "."); dot >= start {
		end = dot
	}
	return Selection{
		Start: utf8.RuneCountInString(path[:start]),
		End:   utf8.RuneCountInString(path[:end]),
	}
}
