package author

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestZeroPad(t *testing.T) {
	tests := []struct {
		n     int
		width int
		want  string
	}{
		{7, 2, "07"},
		{42, 2, "42"},
		{12345, 2, "12345"},
		{3, 4, "0003"},
		{2024, 4, "2024"},
		{0, 2, "00"},
		{5, 0, "5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ZeroPad(tt.n, tt.width), "ZeroPad(%d, %d)", tt.n, tt.width)
	}
}

func TestBuildFrontMatter(t *testing.T) {
	got := BuildFrontMatter("2024", "03", "05")

	want := "---\n" +
		"title: \"Untitled\"\n" +
		"date: \"2024-03-05\"\n" +
		"draft: true\n" +
		"tags: []\n" +
		"---\n"
	assert.Equal(t, want, string(got))
}

func TestBuildFrontMatter_ParsesAsYAML(t *testing.T) {
	raw := string(BuildFrontMatter("1999", "12", "31"))
	require.Regexp(t, `^---\n(?s).*\n---\n$`, raw)

	body := raw[len("---\n") : len(raw)-len("---\n")]
	var fm struct {
		Title string   `yaml:"title"`
		Date  string   `yaml:"date"`
		Draft bool     `yaml:"draft"`
		Tags  []string `yaml:"tags"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(body), &fm))

	assert.Equal(t, "Untitled", fm.Title)
	assert.Equal(t, "1999-12-31", fm.Date)
	assert.True(t, fm.Draft)
	assert.Empty(t, fm.Tags)
}

func TestUntitledName(t *testing.T) {
	assert.Equal(t, "untitled.md", UntitledName(0))
	assert.Equal(t, "untitled_1.md", UntitledName(1))
	assert.Equal(t, "untitled_19.md", UntitledName(19))
}

func TestAllocateUniqueName_SkipsTaken(t *testing.T) {
	host := newFakeHost()
	dir := filepath.Join("/blog", "content", "post", "2024", "03")
	host.files[filepath.Join(dir, "untitled.md")] = []byte("old")

	path, ok, err := New(host).AllocateUniqueName(context.Background(), dir, []byte("new"))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, filepath.Join(dir, "untitled_1.md"), path)
	assert.Equal(t, "new", string(host.files[path]))
	assert.Equal(t, "old", string(host.files[filepath.Join(dir, "untitled.md")]))
}

func TestAllocateUniqueName_AllTaken(t *testing.T) {
	host := newFakeHost()
	dir := "/blog/drafts"
	for i := 0; i < MaxUntitledAttempts; i++ {
		host.files[filepath.Join(dir, UntitledName(i))] = []byte("x")
	}

	path, ok, err := New(host).AllocateUniqueName(context.Background(), dir, []byte("new"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, path)
	assert.Len(t, host.files, MaxUntitledAttempts)

	for _, call := range host.calls {
		assert.NotContains(t, call, "write", "nothing may be written when all names are taken")
	}
	assert.Len(t, host.calls, MaxUntitledAttempts, "exactly one probe per candidate")
}

func TestAllocateUniqueName_StatErrorCountsAsFree(t *testing.T) {
	host := newFakeHost()
	dir := "/blog/drafts"
	first := filepath.Join(dir, "untitled.md")
	host.statErr[first] = errBoom

	path, ok, err := New(host).AllocateUniqueName(context.Background(), dir, []byte("x"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, path)
}

func TestAllocateUniqueName_WriteErrorPropagates(t *testing.T) {
	host := newFakeHost()
	host.writeErr = errBoom

	_, ok, err := New(host).AllocateUniqueName(context.Background(), "/blog", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, ok)
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 9, 30, 0, 0, time.Local)
	}
}

func TestCreatePostStub(t *testing.T) {
	host := newFakeHost()
	host.root, host.hasRoot = "/blog", true

	h := New(host, WithClock(fixedClock(2024, time.March, 5)))
	path, err := h.CreatePostStub(context.Background())
	require.NoError(t, err)

	want := filepath.Join("/blog", "content", "post", "2024", "03", "untitled.md")
	assert.Equal(t, want, path)
	assert.Equal(t, string(BuildFrontMatter("2024", "03", "05")), string(host.files[want]))
	require.Len(t, host.opened, 1)
	assert.Equal(t, FileDocument(want), host.opened[0])
	assert.Empty(t, host.messages)
}

func TestCreatePostStub_CustomPostDir(t *testing.T) {
	host := newFakeHost()
	host.root, host.hasRoot = "/blog", true

	h := New(host, WithClock(fixedClock(2023, time.November, 30)), WithPostDir("post"))
	path, err := h.CreatePostStub(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/blog", "post", "2023", "11", "untitled.md"), path)
}

func TestCreatePostStub_NoWorkspace(t *testing.T) {
	host := newFakeHost()

	path, err := New(host).CreatePostStub(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, []string{MsgNoWorkspace}, host.messages)
	assert.Empty(t, host.calls)
}

func TestCreatePostStub_DirectoryFull(t *testing.T) {
	host := newFakeHost()
	host.root, host.hasRoot = "/blog", true
	dir := filepath.Join("/blog", "content", "post", "2024", "03")
	for i := 0; i < MaxUntitledAttempts; i++ {
		host.files[filepath.Join(dir, UntitledName(i))] = []byte("x")
	}

	path, err := New(host, WithClock(fixedClock(2024, time.March, 5))).CreatePostStub(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, []string{MsgCannotCreate}, host.messages)
	assert.Empty(t, host.opened)
}

func TestStemSelection(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Selection
	}{
		{"simple", "/a/b/note.md", Selection{Start: 5, End: 9}},
		{"two dots", "/a/b/my.note.md", Selection{Start: 5, End: 12}},
		{"no extension", "/a/b/README", Selection{Start: 5, End: 11}},
		{"dot in directory only", "/a.d/README", Selection{Start: 5, End: 11}},
		{"no directory", "note.md", Selection{Start: 0, End: 4}},
		{"multibyte", "/ä/ノート.md", Selection{Start: 3, End: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StemSelection(tt.path))
		})
	}
}

func activeHost(path string) *fakeHost {
	host := newFakeHost()
	doc := FileDocument(path)
	host.active = &doc
	host.files[path] = []byte("body")
	return host
}

func TestRenameActiveFile_PromptShape(t *testing.T) {
	host := activeHost("/a/b/note.md")

	_, err := New(host).RenameActiveFile(context.Background())
	require.NoError(t, err)

	require.Len(t, host.prompts, 1)
	req := host.prompts[0]
	assert.Equal(t, "/a/b/note.md", req.Value)
	assert.Equal(t, "note", req.Value[req.Selection.Start:req.Selection.End])
	assert.Equal(t, 1, host.saved)
}

func TestRenameActiveFile_Unchanged(t *testing.T) {
	host := activeHost("/a/b/note.md")
	host.promptValue, host.promptOK = "/a/b/note.md", true

	path, err := New(host).RenameActiveFile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, host.renames)
	assert.Empty(t, host.opened)
}

func TestRenameActiveFile_Cancelled(t *testing.T) {
	host := activeHost("/a/b/note.md")
	host.promptValue, host.promptOK = "", false

	path, err := New(host).RenameActiveFile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Empty(t, host.renames)
}

func TestRenameActiveFile_Renames(t *testing.T) {
	host := activeHost("/a/b/note.md")
	host.active.Scheme = "vscode-remote"
	host.promptValue, host.promptOK = "/a/b/final.md", true

	path, err := New(host).RenameActiveFile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/a/b/final.md", path)

	require.Len(t, host.renames, 1)
	assert.Equal(t, Document{Scheme: "vscode-remote", Path: "/a/b/final.md"}, host.renames[0][1])
	assert.Equal(t, "body", string(host.files["/a/b/final.md"]))
	_, stillThere := host.files["/a/b/note.md"]
	assert.False(t, stillThere)

	require.Len(t, host.opened, 1)
	assert.Equal(t, "/a/b/final.md", host.opened[0].Path)
	assert.Equal(t, []string{"save", "rename /a/b/note.md /a/b/final.md", "open /a/b/final.md"}, host.calls)
}

func TestRenameActiveFile_DestinationExists(t *testing.T) {
	host := activeHost("/a/b/note.md")
	host.files["/a/b/taken.md"] = []byte("keep me")
	host.promptValue, host.promptOK = "/a/b/taken.md", true

	path, err := New(host).RenameActiveFile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrExist))
	assert.Empty(t, path)

	assert.Equal(t, "body", string(host.files["/a/b/note.md"]))
	assert.Equal(t, "keep me", string(host.files["/a/b/taken.md"]))
	assert.Empty(t, host.opened)
}

func TestRenameActiveFile_NoActiveDocument(t *testing.T) {
	host := newFakeHost()

	path, err := New(host).RenameActiveFile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, []string{MsgNoActiveFile}, host.messages)
	assert.Empty(t, host.calls, "no filesystem call without an active document")
	assert.Empty(t, host.prompts)
}

func TestRenameActiveFile_PromptError(t *testing.T) {
	host := activeHost("/a/b/note.md")
	host.promptErr = errBoom

	_, err := New(host).RenameActiveFile(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, host.renames)
}
