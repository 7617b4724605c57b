// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/riscvdata/internal/config"
	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/options"
)

// ParseFlags parses command line flags and an optional configuration file
// and returns the program options. Flags given on the command line take
// precedence over values of the configuration file.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if err != nil {
		return opts, &UsageError{flags: flags}
	}
	if err := validateArgs(flags.Args()); err != nil {
		return opts, err
	}

	if opts.Config != "" {
		if err := config.Load(opts.Config, &opts); err != nil {
			return opts, fmt.Errorf("loading config: %w", err)
		}
		// apply the command line again to override the file values
		if err := flags.Parse(os.Args[1:]); err != nil {
			return opts, &UsageError{flags: flags}
		}
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: riscvdata [options]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks that no positional arguments are passed
func validateArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	return &UsageError{
		msg: fmt.Sprintf("Unexpected argument %s, all inputs are passed as flags", args[0]),
	}
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	format, err := dataset.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	opts.Format = string(format)

	if err := config.ValidateVersion(opts.Version); err != nil {
		return err
	}

	if opts.Output == "" {
		return errors.New("output path must not be empty")
	}

	// a local opcode tree without a manual or the reverse still needs
	// the other tree cloned, which requires its URL
	if opts.Opcodes == "" && strings.TrimSpace(opts.OpcodesRepo) == "" {
		return errors.New("either an opcode tree or its repository URL is required")
	}
	if opts.Docs == "" && strings.TrimSpace(opts.ManualRepo) == "" {
		return errors.New("either a document root or the manual repository URL is required")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", opts.Output, "name of the output dataset file")
	flags.StringVar(&opts.Format, "format", opts.Format, "format of the output dataset (json/yaml)")
	flags.StringVar(&opts.Config, "c", "", "name of a TOML config file to read options from")
	flags.StringVar(&opts.Opcodes, "opcodes", "", "path of a local riscv-opcodes checkout, cloned if not given")
	flags.StringVar(&opts.CSRs, "csrs", "", "path of the register table file, detected in the opcode tree if not given")
	flags.StringVar(&opts.Docs, "docs", "", "path of a local ISA manual document root, cloned if not given")
	flags.StringVar(&opts.OpcodesRepo, "opcodes-repo", opts.OpcodesRepo, "URL of the riscv-opcodes repository to clone")
	flags.StringVar(&opts.ManualRepo, "manual-repo", opts.ManualRepo, "URL of the ISA manual repository to clone")
	flags.StringVar(&opts.Version, "version", opts.Version, "version string written into the dataset")
	flags.BoolVar(&opts.Validate, "validate", false, "validate the instruction encodings of the assembled dataset")
	flags.BoolVar(&opts.Dump, "dump", false, "dump the assembled dataset to the console")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
