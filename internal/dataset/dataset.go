// Package dataset contains the records of the generated dataset and the
// writer for the output artifact.
package dataset

import (
	"time"

	"github.com/retroenv/riscvdata/internal/encoding"
	"github.com/retroenv/retrogolib/set"
)

// Version of the dataset schema that is written to the artifact.
const Version = "1.0.0"

// DefaultOutput is the well-known path of the artifact, relative to the
// working directory.
const DefaultOutput = "data/riscv.json"

// Kind classifies a record.
type Kind string

// Record kinds.
const (
	KindInstruction Kind = "instruction"
	KindPseudo      Kind = "pseudo"
	KindCSR         Kind = "csr"
)

// Privilege is the execution mode tier required to access a CSR.
type Privilege string

// Privilege tiers.
const (
	User       Privilege = "U"
	Supervisor Privilege = "S"
	Hypervisor Privilege = "H"
	Machine    Privilege = "M"
)

// Instruction is a single instruction or pseudo instruction definition.
type Instruction struct {
	Name        string              `json:"name" yaml:"name"`
	Extension   string              `json:"extension" yaml:"extension"`
	Operands    []string            `json:"operands" yaml:"operands"`
	Encoding    []encoding.BitField `json:"encoding" yaml:"encoding"`
	Description string              `json:"description" yaml:"description"`
	Type        Kind                `json:"type" yaml:"type"`
}

// CSR is a control and status register.
type CSR struct {
	Name        string    `json:"name" yaml:"name"`
	Address     string    `json:"address" yaml:"address"`
	Privilege   Privilege `json:"privilege" yaml:"privilege"`
	Description string    `json:"description" yaml:"description"`
	Type        Kind      `json:"type" yaml:"type"`
}

// Dataset is the top level artifact.
type Dataset struct {
	Instructions []Instruction `json:"instructions" yaml:"instructions"`
	CSRs         []CSR         `json:"csrs" yaml:"csrs"`
	Version      string        `json:"version" yaml:"version"`
	GeneratedAt  time.Time     `json:"generatedAt" yaml:"generatedAt"`
}

// Stats are the diagnostic counts reported after assembly.
type Stats struct {
	Instructions          int
	DescribedInstructions int
	CSRs                  int
	DescribedCSRs         int
	DistinctCSRNames      int
}

// Stats counts the records and how many of them carry a description.
func (d *Dataset) Stats() Stats {
	stats := Stats{
		Instructions: len(d.Instructions),
		CSRs:         len(d.CSRs),
	}
	for _, ins := range d.Instructions {
		if ins.Description != "" {
			stats.DescribedInstructions++
		}
	}
	names := set.New[string]()
	for _, reg := range d.CSRs {
		if reg.Description != "" {
			stats.DescribedCSRs++
		}
		names[reg.Name] = struct{}{}
	}
	stats.DistinctCSRNames = len(names)
	return stats
}
