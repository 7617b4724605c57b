// Package prose recovers instruction and register descriptions from the
// AsciiDoc sources of the instruction set manual.
//
// Every document is run through an ordered list of strategies. Each
// strategy proposes candidates that are folded into the description maps
// using the merge policy attached to the candidate, so the outcome only
// depends on document order and strategy order.
package prose

import (
	"github.com/retroenv/retrogolib/log"
)

// Document is a single markup source file.
type Document struct {
	Path string
	Text string
}

// Result holds the recovered descriptions keyed by lower-cased name.
type Result struct {
	Instructions Descriptions
	CSRs         Descriptions
}

// Extractor applies extraction strategies to documents.
type Extractor struct {
	logger     *log.Logger
	strategies []Strategy
}

// New returns an extractor using the given strategies in order. Without
// strategies the default set is used.
func New(logger *log.Logger, strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{
		logger:     logger,
		strategies: strategies,
	}
}

// Extract runs all strategies over the documents and returns the merged
// descriptions.
func (e *Extractor) Extract(docs []Document) Result {
	result := Result{
		Instructions: Descriptions{},
		CSRs:         Descriptions{},
	}

	for _, doc := range docs {
		for _, strategy := range e.strategies {
			candidates := strategy.Extract(doc)
			if len(candidates) == 0 {
				continue
			}

			target := result.Instructions
			if strategy.Target == CSRs {
				target = result.CSRs
			}
			Fold(target, candidates)

			e.logger.Debug("Extracted descriptions",
				log.String("file", doc.Path),
				log.String("strategy", strategy.Name),
				log.Int("candidates", len(candidates)))
		}
	}

	return result
}

// Fold applies the candidates to the map in order.
func Fold(target Descriptions, candidates []Candidate) {
	for _, c := range candidates {
		target.Apply(c)
	}
}
