package encoding

import (
	"errors"
	"fmt"
	"slices"
)

// InstructionBits is the width of a standard instruction word.
const InstructionBits = 32

// Validate checks the semantic properties that ParseFields does not
// enforce: every range lies within the instruction word with high >= low,
// no two ranges overlap and every constant fits its range.
// All violations are returned joined together.
func Validate(fields []BitField) error {
	var errs []error

	for _, f := range fields {
		if f.Low < 0 || f.High >= InstructionBits || f.High < f.Low {
			errs = append(errs, fmt.Errorf("field %s: invalid bit range", f))
			continue
		}
		if !f.Value.IsSymbolic() && f.Width() < 64 && f.Value.Constant >= 1<<uint(f.Width()) {
			errs = append(errs, fmt.Errorf("field %s: value does not fit in %d bits", f, f.Width()))
		}
	}

	sorted := slices.Clone(fields)
	slices.SortFunc(sorted, func(a, b BitField) int {
		return a.Low - b.Low
	})
	for i := 1; i < len(sorted); i++ {
		// compare against the earlier field reaching highest
		widest := sorted[0]
		for _, f := range sorted[1:i] {
			if f.High > widest.High {
				widest = f
			}
		}
		if sorted[i].Low <= widest.High {
			errs = append(errs, fmt.Errorf("fields %s and %s overlap", widest, sorted[i]))
		}
	}

	return errors.Join(errs...)
}
