// Package testutil provides shared test helpers for building article trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pstaylor-patrick/substack2remarkable/internal/library"
	"github.com/pstaylor-patrick/substack2remarkable/internal/storage"
)

// TestLibrary creates a temporary article tree and a Library over it.
func TestLibrary(t *testing.T) (string, *library.Library) {
	t.Helper()
	root := t.TempDir()
	fs, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, library.New(fs)
}

// WriteDoc writes a markdown document at <project>/dist/md/<name>.md under
// root and returns its root-relative slash path.
func WriteDoc(t *testing.T, root, project, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, project, "dist", "md")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return project + "/dist/md/" + name + ".md"
}

// WritePDF writes a companion PDF placeholder at <project>/dist/pdf/<name>.pdf
// under root and returns its root-relative slash path.
func WritePDF(t *testing.T, root, project, name string) string {
	t.Helper()
	dir := filepath.Join(root, project, "dist", "pdf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".pdf"), []byte("%PDF-1.4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return project + "/dist/pdf/" + name + ".pdf"
}
