// Package opcodes parses directories of RISC-V instruction definition files.
package opcodes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/encoding"
	"github.com/retroenv/retrogolib/log"
)

// UnratifiedDir is the subdirectory holding definitions of extensions
// that are not ratified yet.
const UnratifiedDir = "unratified"

// UnratifiedPrefix is prepended to the extension tag of files read from
// UnratifiedDir.
const UnratifiedPrefix = "unratified_"

const (
	commentPrefix  = "#"
	pseudoOpPrefix = "$pseudo_op"
	importPrefix   = "$import"
)

var mnemonicPattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// Parser converts instruction definition lines into instruction records.
type Parser struct {
	logger *log.Logger
	vocab  encoding.Vocabulary
}

// New returns a parser that recognizes operands of the given vocabulary.
func New(logger *log.Logger, vocab encoding.Vocabulary) *Parser {
	logger.Debug("Using operand vocabulary",
		log.String("version", vocab.Version()),
		log.Int("operands", vocab.Len()))
	return &Parser{
		logger: logger,
		vocab:  vocab,
	}
}

// Vocabulary returns the operand vocabulary the parser recognizes.
func (p *Parser) Vocabulary() encoding.Vocabulary {
	return p.vocab
}

// ParseLine parses a single definition line. The second return value is
// false for blank lines, comments, imports and lines that are not
// instruction definitions.
func (p *Parser) ParseLine(line, extension string) (dataset.Instruction, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return dataset.Instruction{}, false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case importPrefix:
		return dataset.Instruction{}, false

	case pseudoOpPrefix:
		// $pseudo_op <base> <name> <rest>
		if len(fields) < 3 {
			return dataset.Instruction{}, false
		}
		parsed := encoding.ParseFields(strings.Join(fields[3:], " "), p.vocab)
		return newInstruction(fields[2], extension, parsed, dataset.KindPseudo), true
	}

	if !mnemonicPattern.MatchString(fields[0]) {
		return dataset.Instruction{}, false
	}
	parsed := encoding.ParseFields(strings.Join(fields[1:], " "), p.vocab)
	if len(parsed.Encoding) == 0 {
		return dataset.Instruction{}, false
	}
	return newInstruction(fields[0], extension, parsed, dataset.KindInstruction), true
}

// Parse reads all definition lines from r.
func (p *Parser) Parse(r io.Reader, extension string) ([]dataset.Instruction, error) {
	var result []dataset.Instruction

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		ins, ok := p.ParseLine(sc.Text(), extension)
		if !ok {
			continue
		}
		result = append(result, ins)
	}

	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("reading lines: %w", err)
	}
	return result, nil
}

// ParseFile parses a single definition file, using the file name as
// extension tag.
func (p *Parser) ParseFile(path, extension string) ([]dataset.Instruction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	result, err := p.Parse(file, extension)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return result, nil
}

// ParseDir parses every definition file in dir, followed by the files in
// its unratified subdirectory. Files that can not be read are logged and
// skipped. Files are processed in name order.
func (p *Parser) ParseDir(dir string) ([]dataset.Instruction, error) {
	result, err := p.parseDir(dir, "")
	if err != nil {
		return nil, err
	}

	unratified := filepath.Join(dir, UnratifiedDir)
	if info, err := os.Stat(unratified); err == nil && info.IsDir() {
		more, err := p.parseDir(unratified, UnratifiedPrefix)
		if err != nil {
			p.logger.Warn("Skipping unratified definitions",
				log.String("dir", unratified), log.Err(err))
		} else {
			result = append(result, more...)
		}
	}

	return result, nil
}

func (p *Parser) parseDir(dir, prefix string) ([]dataset.Instruction, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var result []dataset.Instruction
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		instructions, err := p.ParseFile(path, prefix+entry.Name())
		if err != nil {
			p.logger.Warn("Skipping unreadable definition file",
				log.String("file", path), log.Err(err))
			continue
		}

		p.logger.Debug("Parsed definition file",
			log.String("file", path), log.Int("instructions", len(instructions)))
		result = append(result, instructions...)
	}
	return result, nil
}

func newInstruction(name, extension string, parsed encoding.Fields, kind dataset.Kind) dataset.Instruction {
	operands := parsed.Operands
	if operands == nil {
		operands = []string{}
	}
	fields := parsed.Encoding
	if fields == nil {
		fields = []encoding.BitField{}
	}
	return dataset.Instruction{
		Name:      strings.ToLower(name),
		Extension: extension,
		Operands:  operands,
		Encoding:  fields,
		Type:      kind,
	}
}
