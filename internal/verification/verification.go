// Package verification checks the encodings of an assembled dataset.
package verification

import (
	"errors"

	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/encoding"
	"github.com/retroenv/retrogolib/log"
)

// Violation describes an instruction whose encoding failed validation.
type Violation struct {
	Instruction string
	Extension   string
	Err         error
}

// VerifyEncodings validates the bit fields of every instruction and logs
// each problem as a warning. The dataset is never modified; the returned
// violations are in dataset order.
func VerifyEncodings(logger *log.Logger, d *dataset.Dataset) []Violation {
	var violations []Violation

	for _, ins := range d.Instructions {
		err := encoding.Validate(ins.Encoding)
		if err == nil {
			continue
		}

		for _, problem := range unwrapJoined(err) {
			logger.Warn("Invalid instruction encoding",
				log.String("instruction", ins.Name),
				log.String("extension", ins.Extension),
				log.Err(problem))
		}
		violations = append(violations, Violation{
			Instruction: ins.Name,
			Extension:   ins.Extension,
			Err:         err,
		})
	}

	if len(violations) == 0 {
		logger.Info("Verification successful", log.Int("instructions", len(d.Instructions)))
	} else {
		logger.Warn("Verification found invalid encodings", log.Int("instructions", len(violations)))
	}
	return violations
}

func unwrapJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
