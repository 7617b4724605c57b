// Package pipeline orchestrates the dataset generation stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/riscvdata/internal/csr"
	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/detector"
	"github.com/retroenv/riscvdata/internal/encoding"
	"github.com/retroenv/riscvdata/internal/fetch"
	"github.com/retroenv/riscvdata/internal/loader"
	"github.com/retroenv/riscvdata/internal/merge"
	"github.com/retroenv/riscvdata/internal/opcodes"
	"github.com/retroenv/riscvdata/internal/options"
	"github.com/retroenv/riscvdata/internal/prose"
	"github.com/retroenv/riscvdata/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Checkout names of the upstream trees inside the workspace.
const (
	opcodesCheckout = "riscv-opcodes"
	manualCheckout  = "riscv-isa-manual"
)

// Pipeline orchestrates the complete dataset generation workflow.
type Pipeline struct {
	logger    *log.Logger
	detector  *detector.Detector
	loader    *loader.Loader
	parser    *opcodes.Parser
	extractor *prose.Extractor
	dump      io.Writer
}

// New creates a new dataset generation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:    logger,
		detector:  detector.New(logger),
		loader:    loader.New(logger),
		parser:    opcodes.New(logger, encoding.DefaultVocabulary()),
		extractor: prose.New(logger),
		dump:      os.Stdout,
	}
}

// Execute runs the complete pipeline and writes the dataset to the
// configured output. Nothing is written if any stage before the write fails.
// Retrieved source trees are removed before Execute returns.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*dataset.Dataset, error) {
	format, err := dataset.ParseFormat(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("selecting output format: %w", err)
	}

	opcodesTree, manualTree := opts.Opcodes, opts.Docs
	if !opts.Local() {
		ws, err := fetch.NewWorkspace(p.logger)
		if err != nil {
			return nil, fmt.Errorf("fetching: %w", err)
		}
		defer func() {
			if err := ws.Close(); err != nil {
				p.logger.Error("Releasing workspace failed", log.Err(err))
			}
		}()

		opcodesTree, manualTree, err = p.fetch(ctx, ws, opts)
		if err != nil {
			return nil, fmt.Errorf("fetching: %w", err)
		}
	}

	d, err := p.Generate(ctx, opcodesTree, manualTree, opts)
	if err != nil {
		return nil, err
	}

	if err := dataset.WriteFile(opts.Output, d, format); err != nil {
		return nil, fmt.Errorf("writing dataset: %w", err)
	}
	p.logger.Info("Wrote dataset", log.String("file", opts.Output), log.String("format", string(format)))
	return d, nil
}

// Generate builds the dataset from the given source trees without writing it.
func (p *Pipeline) Generate(ctx context.Context, opcodesTree, manualTree string, opts options.Program) (*dataset.Dataset, error) {
	src := p.detector.Detect(opcodesTree, manualTree)
	if opts.CSRs != "" {
		src.CSRFiles = []string{opts.CSRs}
	}

	instructions := p.parseOpcodes(src.OpcodesDir)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parsing opcodes: %w", err)
	}

	registers := p.parseCSRs(src.CSRFiles)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parsing registers: %w", err)
	}

	descriptions := p.extractDescriptions(src.DocsDir)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extracting descriptions: %w", err)
	}

	d := merge.New(p.logger, opts.Version).Merge(instructions, registers, descriptions)

	if opts.Validate {
		verification.VerifyEncodings(p.logger, d)
	}
	if opts.Dump {
		spew.Fdump(p.dump, d)
	}
	return d, nil
}

// fetch clones the trees that are not given locally into the workspace.
func (p *Pipeline) fetch(ctx context.Context, ws *fetch.Workspace, opts options.Program) (string, string, error) {
	opcodesTree, manualTree := opts.Opcodes, opts.Docs

	if opcodesTree == "" {
		dir, err := ws.Clone(ctx, opts.OpcodesRepo, opcodesCheckout)
		if err != nil {
			return "", "", err
		}
		opcodesTree = dir
	}

	if manualTree == "" {
		dir, err := ws.Clone(ctx, opts.ManualRepo, manualCheckout)
		if err != nil {
			return "", "", err
		}
		manualTree = dir
	}

	return opcodesTree, manualTree, nil
}

func (p *Pipeline) parseOpcodes(dir string) []dataset.Instruction {
	instructions, err := p.parser.ParseDir(dir)
	if err != nil {
		p.logger.Warn("Skipping unreadable opcode directory", log.String("dir", dir), log.Err(err))
		return nil
	}

	p.logger.Info("Parsed instruction definitions", log.Int("instructions", len(instructions)))
	return instructions
}

func (p *Pipeline) parseCSRs(files []string) []dataset.CSR {
	var registers []dataset.CSR
	for _, file := range files {
		parsed, err := csr.ParseFile(file)
		if err != nil {
			p.logger.Warn("Skipping unreadable register table", log.String("file", file), log.Err(err))
			continue
		}
		registers = append(registers, parsed...)
	}

	p.logger.Info("Parsed register tables", log.Int("csrs", len(registers)), log.Int("tables", len(files)))
	return registers
}

func (p *Pipeline) extractDescriptions(dir string) prose.Result {
	docs, err := p.loader.LoadDocuments(dir, loader.DocumentExtension)
	if err != nil {
		p.logger.Warn("Skipping unreadable document root", log.String("dir", dir), log.Err(err))
	}

	result := p.extractor.Extract(docs)
	p.logger.Info("Extracted descriptions",
		log.Int("documents", len(docs)),
		log.Int("instructions", len(result.Instructions)),
		log.Int("csrs", len(result.CSRs)))
	return result
}
