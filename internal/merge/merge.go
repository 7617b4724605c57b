// Package merge assembles the parsed records and extracted descriptions into the dataset.
package merge

import (
	"time"

	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/prose"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Merger attaches descriptions to records and builds the dataset.
type Merger struct {
	logger  *log.Logger
	version string
	now     func() time.Time
}

// New returns a new merger that stamps datasets with the given version.
// An empty version selects dataset.Version.
func New(logger *log.Logger, version string) *Merger {
	if version == "" {
		version = dataset.Version
	}
	return &Merger{
		logger:  logger,
		version: version,
		now:     time.Now,
	}
}

// Merge builds the dataset from the parsed records in their traversal order.
// Instructions are deduplicated by name keeping the first occurrence,
// registers are kept as they are. The input slices are not modified.
func (m *Merger) Merge(instructions []dataset.Instruction, csrs []dataset.CSR, descriptions prose.Result) *dataset.Dataset {
	d := &dataset.Dataset{
		Instructions: make([]dataset.Instruction, 0, len(instructions)),
		CSRs:         make([]dataset.CSR, 0, len(csrs)),
		Version:      m.version,
		GeneratedAt:  m.now().UTC().Truncate(time.Second),
	}

	seen := set.New[string]()
	for _, ins := range instructions {
		if _, ok := seen[ins.Name]; ok {
			m.logger.Debug("Dropping duplicate instruction",
				log.String("name", ins.Name),
				log.String("extension", ins.Extension))
			continue
		}
		seen[ins.Name] = struct{}{}

		if text, ok := descriptions.Instructions.Lookup(ins.Name); ok {
			ins.Description = text
		}
		d.Instructions = append(d.Instructions, ins)
	}

	for _, reg := range csrs {
		if text, ok := descriptions.CSRs.Lookup(reg.Name); ok {
			reg.Description = text
		}
		d.CSRs = append(d.CSRs, reg)
	}

	stats := d.Stats()
	m.logger.Info("Assembled dataset",
		log.Int("instructions", stats.Instructions),
		log.Int("describedInstructions", stats.DescribedInstructions),
		log.Int("csrs", stats.CSRs),
		log.Int("describedCSRs", stats.DescribedCSRs),
		log.Int("distinctCSRNames", stats.DistinctCSRNames),
		log.Int("duplicatesDropped", len(instructions)-stats.Instructions))
	return d
}
