package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

const bookmarksHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3>Travel</H3>
    <DL><p>
        <DT><H3>Japan</H3>
        <DL><p>
            <DT><A HREF="/photos/kyoto.jpg">Kyoto</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="/notes/todo.md">Todo</A>
</DL><p>`

// run executes the CLI with HOME pointing at a temp dir.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestAdd_RegistersFilesOnce(t *testing.T) {
	home := setupHome(t)
	dir := fs.NewDir(t, "files", fs.WithFile("a.jpg", ""), fs.WithFile("b.jpg", ""))

	out, err := run(t, "add", dir.Join("a.jpg"), dir.Join("b.jpg"))
	assert.NilError(t, err)
	assert.Equal(t, out, "Registered 2 file(s)\n")

	_, err = run(t, "add", dir.Join("a.jpg"))
	assert.NilError(t, err)

	data, err := os.ReadFile(filepath.Join(home, ".config", "tagbox", "tags.json"))
	assert.NilError(t, err)
	assert.Equal(t, bytes.Count(data, []byte(`"path"`)), 2)
}

func TestAdd_MissingFile(t *testing.T) {
	setupHome(t)

	_, err := run(t, "add", "/does/not/exist.jpg")
	assert.ErrorContains(t, err, "add /does/not/exist.jpg")
}

func TestTags_Empty(t *testing.T) {
	setupHome(t)

	out, err := run(t, "tags")
	assert.NilError(t, err)
	assert.Equal(t, out, "No tags\n")
}

func TestImportThenTags(t *testing.T) {
	setupHome(t)
	dir := fs.NewDir(t, "import", fs.WithFile("bookmarks.html", bookmarksHTML))

	out, err := run(t, "import", dir.Join("bookmarks.html"))
	assert.NilError(t, err)
	assert.Equal(t, out, "Imported 2 files, 2 tags\n")

	out, err = run(t, "import", dir.Join("bookmarks.html"))
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "(2 duplicates skipped)"))

	out, err = run(t, "tags")
	assert.NilError(t, err)
	assert.Equal(t, out, "Travel (0)\nTravel/Japan (1)\n")
}

func TestExport(t *testing.T) {
	setupHome(t)
	dir := fs.NewDir(t, "export", fs.WithFile("bookmarks.html", bookmarksHTML))

	_, err := run(t, "import", dir.Join("bookmarks.html"))
	assert.NilError(t, err)

	target := filepath.Join(dir.Path(), "out", "export.html")
	out, err := run(t, "export", target)
	assert.NilError(t, err)
	assert.Equal(t, out, "Exported to "+target+"\n")

	data, err := os.ReadFile(target)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "<H3>Japan</H3>"))
	assert.Assert(t, is.Contains(string(data), `HREF="/photos/kyoto.jpg"`))
}

func TestSQLiteBackend(t *testing.T) {
	home := setupHome(t)
	dir := fs.NewDir(t, "import", fs.WithFile("bookmarks.html", bookmarksHTML))

	_, err := run(t, "--backend", "sqlite", "import", dir.Join("bookmarks.html"))
	assert.NilError(t, err)
	assert.Assert(t, fileExists(filepath.Join(home, ".config", "tagbox", "tags.db")))

	// auto picks up the existing database
	out, err := run(t, "tags")
	assert.NilError(t, err)
	assert.Equal(t, out, "Travel (0)\nTravel/Japan (1)\n")
}

func TestUnknownBackend(t *testing.T) {
	setupHome(t)

	_, err := run(t, "--backend", "xml", "tags")
	assert.ErrorContains(t, err, `unknown storage backend "xml"`)
}

func TestCustomConfigPathIsCreated(t *testing.T) {
	setupHome(t)
	configPath := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	_, err := run(t, "--config", configPath, "tags")
	assert.NilError(t, err)

	data, err := os.ReadFile(configPath)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "recent_tags_limit: 10"))
}

func TestLogFile(t *testing.T) {
	home := setupHome(t)
	logPath := filepath.Join(home, "tagbox.log")
	configPath := filepath.Join(home, "config.yaml")
	assert.NilError(t, os.WriteFile(configPath, []byte("log_file: "+logPath+"\n"), 0644))

	_, err := run(t, "--config", configPath, "tags")
	assert.NilError(t, err)

	data, err := os.ReadFile(logPath)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "environment ready"))
}

func TestPrune(t *testing.T) {
	setupHome(t)
	dir := fs.NewDir(t, "files", fs.WithFile("keep.jpg", ""), fs.WithFile("gone.jpg", ""))

	_, err := run(t, "add", dir.Join("keep.jpg"), dir.Join("gone.jpg"))
	assert.NilError(t, err)
	assert.NilError(t, os.Remove(dir.Join("gone.jpg")))

	out, err := run(t, "prune", "--dry-run")
	assert.NilError(t, err)
	assert.Equal(t, out, "missing "+dir.Join("gone.jpg")+"\n1 of 2 file(s) missing\n")

	out, err = run(t, "prune")
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(out, "removed "+dir.Join("gone.jpg")))

	out, err = run(t, "prune")
	assert.NilError(t, err)
	assert.Equal(t, out, "0 of 1 file(s) missing\n")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
