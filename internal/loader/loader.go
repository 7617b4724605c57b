// Package loader handles reading the markup documents of the prose corpus.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/riscvdata/internal/prose"
	"github.com/retroenv/retrogolib/log"
)

// DocumentExtension is the file extension of corpus documents.
const DocumentExtension = ".adoc"

// Loader handles loading corpus documents from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new document loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// LoadDocuments discovers all files with the given extension below root,
// in lexical path order, and reads them. Files and directories that can
// not be read are logged and skipped. An error is only returned if root
// itself can not be accessed.
func (l *Loader) LoadDocuments(root, extension string) ([]prose.Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("accessing document root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document root %s is not a directory", root)
	}

	var docs []prose.Document
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			l.logger.Warn("Skipping unreadable path", log.String("path", path), log.Err(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), extension) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			l.logger.Warn("Skipping unreadable document", log.String("file", path), log.Err(err))
			return nil
		}

		docs = append(docs, prose.Document{
			Path: path,
			Text: string(data),
		})
		return nil
	})
	if err != nil && !errors.Is(err, fs.SkipDir) {
		return nil, fmt.Errorf("walking document root %s: %w", root, err)
	}

	return docs, nil
}
