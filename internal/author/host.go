package author

import "context"

// SchemeFile is the scheme of documents that live on the local disk.
const SchemeFile = "file"

// Document identifies a document the host can open.
type Document struct {
	Scheme string
	Path   string
}

// FileDocument returns a local file document for path.
func FileDocument(path string) Document {
	return Document{Scheme: SchemeFile, Path: path}
}

// WithPath returns a document with the same scheme pointing at path.
func (d Document) WithPath(path string) Document {
	return Document{Scheme: d.Scheme, Path: path}
}

// RenameOptions controls RenameFile.
type RenameOptions struct {
	Overwrite bool
}

// Selection is a half-open [Start, End) span of rune offsets.
type Selection struct {
	Start int
	End   int
}

// PromptRequest describes a single-line text prompt.
type PromptRequest struct {
	Title     string
	Value     string
	Selection Selection
}

// Host is everything the helper needs from the surrounding editor
// environment. Implementations own filesystem access, prompting and
// document display.
type Host interface {
	// FileExists reports whether something exists at path.
	FileExists(ctx context.Context, path string) (bool, error)
	// WriteFile writes data to a new file at path.
	WriteFile(ctx context.Context, path string, data []byte) error
	// RenameFile moves from to to. With Overwrite unset it must fail when
	// to already exists.
	RenameFile(ctx context.Context, from, to Document, opts RenameOptions) error

	// WorkspaceRoot returns the first workspace folder, if any.
	WorkspaceRoot(ctx context.Context) (string, bool)
	// ActiveDocument returns the document open in the active editor, if any.
	ActiveDocument(ctx context.Context) (Document, bool)
	// SaveActiveDocument persists pending edits of the active document.
	SaveActiveDocument(ctx context.Context) error

	// PromptForText asks the user for a line of text. ok is false when the
	// user cancelled.
	PromptForText(ctx context.Context, req PromptRequest) (value string, ok bool, err error)
	// OpenAndShowDocument opens doc and makes it the active document.
	OpenAndShowDocument(ctx context.Context, doc Document) error
	// ShowInformationMessage shows a one-line informational message.
	ShowInformationMessage(ctx context.Context, text string)
}
