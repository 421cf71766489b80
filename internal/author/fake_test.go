package author

import (
	"context"
	"errors"
	"io/fs"
	"sync"
)

// fakeHost is an in-memory Host that records every call.
type fakeHost struct {
	mu sync.Mutex

	root    string
	hasRoot bool
	active  *Document
	files   map[string][]byte
	statErr map[string]error

	promptValue string
	promptOK    bool
	promptErr   error
	writeErr    error

	calls    []string
	messages []string
	opened   []Document
	prompts  []PromptRequest
	renames  [][2]Document
	saved    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		files:   map[string][]byte{},
		statErr: map[string]error{},
	}
}

func (f *fakeHost) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeHost) FileExists(_ context.Context, path string) (bool, error) {
	f.record("stat " + path)
	if err, ok := f.statErr[path]; ok {
		return false, err
	}
	_, ok := f.files[path]
	return ok, nil
}

func (f *fakeHost) WriteFile(_ context.Context, path string, data []byte) error {
	f.record("write " + path)
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[path] = append([]byte(nil), data...)
	return nil
}

func (f *fakeHost) RenameFile(_ context.Context, from, to Document, opts RenameOptions) error {
	f.record("rename " + from.Path + " " + to.Path)
	if _, ok := f.files[to.Path]; ok && !opts.Overwrite {
		return fs.ErrExist
	}
	data, ok := f.files[from.Path]
	if !ok {
		return fs.ErrNotExist
	}
	delete(f.files, from.Path)
	f.files[to.Path] = data
	f.renames = append(f.renames, [2]Document{from, to})
	return nil
}

func (f *fakeHost) WorkspaceRoot(context.Context) (string, bool) {
	return f.root, f.hasRoot
}

func (f *fakeHost) ActiveDocument(context.Context) (Document, bool) {
	if f.active == nil {
		return Document{}, false
	}
	return *f.active, true
}

func (f *fakeHost) SaveActiveDocument(context.Context) error {
	f.record("save")
	f.saved++
	return nil
}

func (f *fakeHost) PromptForText(_ context.Context, req PromptRequest) (string, bool, error) {
	f.prompts = append(f.prompts, req)
	return f.promptValue, f.promptOK, f.promptErr
}

func (f *fakeHost) OpenAndShowDocument(_ context.Context, doc Document) error {
	f.record("open " + doc.Path)
	f.opened = append(f.opened, doc)
	d := doc
	f.active = &d
	return nil
}

func (f *fakeHost) ShowInformationMessage(_ context.Context, text string) {
	f.messages = append(f.messages, text)
}

var errBoom = errors.New("boom")
