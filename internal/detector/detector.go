// Package detector locates the input files inside retrieved source trees.
package detector

import (
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
)

// Names of the well known entries of the upstream source trees.
const (
	ExtensionsDir = "extensions"
	DocsDir       = "src"
)

// CSRTables lists the register tables of an opcode tree in parse order.
var CSRTables = []string{"csrs.csv", "csrs32.csv"}

// Sources contains the resolved input locations.
type Sources struct {
	OpcodesDir string
	CSRFiles   []string
	DocsDir    string
}

// Detector handles locating inputs inside source trees.
type Detector struct {
	logger *log.Logger
}

// New creates a new source detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect resolves the opcode directory and register tables inside the
// opcode tree and the document root inside the manual tree. A tree that
// is not a directory is logged and passed through unchanged, the parsing
// stages then skip it as unreadable.
func (d *Detector) Detect(opcodesTree, manualTree string) Sources {
	src := Sources{
		OpcodesDir: opcodesTree,
		DocsDir:    manualTree,
	}

	if isDir(opcodesTree) {
		src.OpcodesDir = d.detectOpcodesDir(opcodesTree)
		src.CSRFiles = d.detectCSRFiles(opcodesTree)
		if len(src.CSRFiles) == 0 {
			d.logger.Warn("No register table found", log.String("dir", opcodesTree))
		}
	} else {
		d.logger.Warn("Opcode tree is not a directory", log.String("dir", opcodesTree))
	}

	if isDir(manualTree) {
		src.DocsDir = d.detectDocsDir(manualTree)
	} else {
		d.logger.Warn("Manual tree is not a directory", log.String("dir", manualTree))
	}

	d.logger.Debug("Detected sources",
		log.String("opcodes", src.OpcodesDir),
		log.Int("csrTables", len(src.CSRFiles)),
		log.String("docs", src.DocsDir))
	return src
}

// detectOpcodesDir prefers the extensions subdirectory of newer trees and
// falls back to the tree root used by older layouts.
func (d *Detector) detectOpcodesDir(tree string) string {
	dir := filepath.Join(tree, ExtensionsDir)
	if isDir(dir) {
		return dir
	}
	return tree
}

func (d *Detector) detectCSRFiles(tree string) []string {
	var files []string
	for _, name := range CSRTables {
		path := filepath.Join(tree, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}
	return files
}

func (d *Detector) detectDocsDir(tree string) string {
	dir := filepath.Join(tree, DocsDir)
	if isDir(dir) {
		return dir
	}
	return tree
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
