// Package library discovers rendered articles on disk.
//
// Articles are the output of the html2md pipeline and live at
// <project>/dist/md/<name>.md, with an optional pre-rendered PDF companion
// at <project>/dist/pdf/<name>.pdf. The PDF itself is opaque to the server;
// it is only ever linked, never read.
package library

import (
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/pstaylor-patrick/substack2remarkable/internal/apperr"
	"github.com/pstaylor-patrick/substack2remarkable/internal/storage"
)

// DocExt is the markup extension the server renders.
const DocExt = ".md"

const (
	docSegment = "/dist/md"
	pdfExt     = ".pdf"
)

// Entry describes one discovered article. Entries are derived fresh on each
// scan and never cached.
type Entry struct {
	Name    string // filename stem, used as the display name and page title
	DocPath string // slash-separated path relative to the library root
	PDFPath string // companion PDF path, empty when the file is absent
}

// Library scans a directory tree for articles and reads their source text.
type Library struct {
	fs *storage.FS
}

// New creates a Library over the given tree.
func New(fs *storage.FS) *Library {
	return &Library{fs: fs}
}

// Scan walks the tree and returns every article sorted by document path.
// The companion PDF link is included only when the file exists at scan time.
func (l *Library) Scan() ([]Entry, error) {
	var entries []Entry
	err := l.fs.WalkFiles(func(rel string) error {
		if !isDoc(rel) {
			return nil
		}
		e := Entry{
			Name:    Stem(rel),
			DocPath: rel,
		}
		if pdf := CompanionPath(rel); l.fs.Exists(pdf) {
			e.PDFPath = pdf
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("library: scan: %w", err)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.DocPath, b.DocPath)
	})
	return entries, nil
}

// Exists reports whether a file is present at the root-relative path.
func (l *Library) Exists(rel string) bool {
	return l.fs.Exists(rel)
}

// Read returns the raw text of the document at the root-relative path.
// A missing file is reported as apperr.ErrNotFound.
func (l *Library) Read(rel string) ([]byte, error) {
	data, err := l.fs.Read(rel)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Stem returns the filename without its directory or markup extension.
func Stem(rel string) string {
	return strings.TrimSuffix(path.Base(rel), DocExt)
}

// CompanionPath derives the pre-rendered PDF path for a document path by
// swapping the md directory segment and the extension, mirroring the
// html2md output layout. Every occurrence is substituted.
func CompanionPath(docPath string) string {
	p := strings.ReplaceAll(docPath, "/md/", "/pdf/")
	return strings.ReplaceAll(p, DocExt, pdfExt)
}

// isDoc reports whether rel matches the <project>/dist/md/<name>.md layout.
// At least one path component must precede dist/md.
func isDoc(rel string) bool {
	return strings.HasSuffix(rel, DocExt) && strings.HasSuffix(path.Dir(rel), docSegment)
}
