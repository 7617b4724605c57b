// Package options contains the program options.
package options

import "github.com/retroenv/riscvdata/internal/dataset"

// Default upstream repositories.
const (
	DefaultOpcodesRepo = "https://github.com/riscv/riscv-opcodes"
	DefaultManualRepo  = "https://github.com/riscv/riscv-isa-manual"
)

// Parameters contains file path options.
type Parameters struct {
	Output  string `flag:"o" toml:"output" usage:"output file of the dataset"`
	Config  string `flag:"c" toml:"-" usage:"TOML configuration file"`
	Opcodes string `flag:"opcodes" toml:"opcodes" usage:"local riscv-opcodes tree (skips cloning)"`
	CSRs    string `flag:"csrs" toml:"csrs" usage:"register table file (default: detected in the opcode tree)"`
	Docs    string `flag:"docs" toml:"docs" usage:"local manual document root (skips cloning)"`
}

// Sources contains the upstream repository options.
type Sources struct {
	OpcodesRepo string `flag:"opcodes-repo" toml:"opcodes_repo" usage:"riscv-opcodes repository URL"`
	ManualRepo  string `flag:"manual-repo" toml:"manual_repo" usage:"ISA manual repository URL"`
}

// Flags contains behavior options.
type Flags struct {
	Format   string `flag:"format" toml:"format" usage:"output format: json, yaml" default:"json"`
	Version  string `flag:"version" toml:"version" usage:"dataset version to write"`
	Validate bool   `flag:"validate" toml:"validate" usage:"validate instruction encodings"`
	Dump     bool   `flag:"dump" toml:"dump" usage:"dump the assembled dataset"`
	Debug    bool   `flag:"debug" toml:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" toml:"quiet" usage:"quiet mode"`
}

// Program options of the dataset generator.
type Program struct {
	Parameters
	Sources
	Flags
}

// New returns program options with all defaults set.
func New() Program {
	return Program{
		Parameters: Parameters{
			Output: dataset.DefaultOutput,
		},
		Sources: Sources{
			OpcodesRepo: DefaultOpcodesRepo,
			ManualRepo:  DefaultManualRepo,
		},
		Flags: Flags{
			Format:  string(dataset.JSON),
			Version: dataset.Version,
		},
	}
}

// Local reports whether both source trees are given locally so that no
// repository has to be cloned.
func (p Program) Local() bool {
	return p.Opcodes != "" && p.Docs != ""
}
