// Package encoding implements the grammar for instruction encoding lines,
// turning operand names and bit assignments into structured bit fields.
package encoding

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldValue is the value assigned to a bit field. It is either a fixed
// constant or a symbolic operand name for variable bits.
type FieldValue struct {
	Constant uint64
	Operand  string
}

// IsSymbolic returns whether the value names an operand instead of a constant.
func (v FieldValue) IsSymbolic() bool {
	return v.Operand != ""
}

func (v FieldValue) String() string {
	if v.IsSymbolic() {
		return v.Operand
	}
	return strconv.FormatUint(v.Constant, 10)
}

// MarshalJSON writes constants as JSON numbers and operands as strings.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.IsSymbolic() {
		return json.Marshal(v.Operand)
	}
	return json.Marshal(v.Constant)
}

// UnmarshalJSON accepts either a JSON number or a string.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var operand string
	if err := json.Unmarshal(data, &operand); err == nil {
		*v = FieldValue{Operand: operand}
		return nil
	}
	var constant uint64
	if err := json.Unmarshal(data, &constant); err != nil {
		return fmt.Errorf("decoding field value %s: %w", data, err)
	}
	*v = FieldValue{Constant: constant}
	return nil
}

// MarshalYAML mirrors MarshalJSON for the yaml output format.
func (v FieldValue) MarshalYAML() (any, error) {
	if v.IsSymbolic() {
		return v.Operand, nil
	}
	return v.Constant, nil
}

// UnmarshalYAML accepts either an integer or a string scalar.
func (v *FieldValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var constant uint64
		if err := node.Decode(&constant); err != nil {
			return fmt.Errorf("decoding field value: %w", err)
		}
		*v = FieldValue{Constant: constant}
		return nil
	}
	*v = FieldValue{Operand: node.Value}
	return nil
}

// BitField is a single bit range assignment within an instruction word.
type BitField struct {
	High  int        `json:"high" yaml:"high"`
	Low   int        `json:"low" yaml:"low"`
	Value FieldValue `json:"value" yaml:"value"`
}

// Width returns the number of bits the field covers.
func (f BitField) Width() int {
	return f.High - f.Low + 1
}

func (f BitField) String() string {
	if f.High == f.Low {
		return fmt.Sprintf("%d=%s", f.High, f.Value)
	}
	return fmt.Sprintf("%d..%d=%s", f.High, f.Low, f.Value)
}

// Fields is the result of parsing the remainder of a definition line.
type Fields struct {
	Operands []string
	Encoding []BitField
}

// ParseFields tokenizes the remainder of a definition line, everything
// after the mnemonic. Each token is classified as an operand name from
// the vocabulary, a bit range assignment or a single bit assignment.
// Anything else is dropped.
// Assignments whose value is an operand name record the operand and do
// not produce a bit field, as the bits are variable.
// Both lists keep the source token order.
func ParseFields(rest string, vocab Vocabulary) Fields {
	var result Fields
	for _, token := range strings.Fields(rest) {
		if vocab.Contains(token) {
			result.addOperand(token)
			continue
		}

		field, operand, ok := parseAssignment(token, vocab)
		switch {
		case !ok:
		case operand != "":
			result.addOperand(operand)
		default:
			result.Encoding = append(result.Encoding, field)
		}
	}
	return result
}

func (f *Fields) addOperand(name string) {
	for _, existing := range f.Operands {
		if existing == name {
			return
		}
	}
	f.Operands = append(f.Operands, name)
}

// parseAssignment parses tokens of the form hi..lo=value or bit=value.
// When the value is an operand name it is returned instead of a field.
func parseAssignment(token string, vocab Vocabulary) (BitField, string, bool) {
	rawRange, rawValue, found := strings.Cut(token, "=")
	if !found || rawRange == "" || rawValue == "" {
		return BitField{}, "", false
	}

	rawHigh, rawLow, isRange := strings.Cut(rawRange, "..")
	if !isRange {
		rawLow = rawHigh
	}
	high, err := strconv.Atoi(rawHigh)
	if err != nil {
		return BitField{}, "", false
	}
	low, err := strconv.Atoi(rawLow)
	if err != nil {
		return BitField{}, "", false
	}

	if vocab.Contains(rawValue) {
		return BitField{}, rawValue, true
	}

	value, ok := parseValue(rawValue)
	if !ok {
		return BitField{}, "", false
	}

	return BitField{
		High:  high,
		Low:   low,
		Value: FieldValue{Constant: value},
	}, "", true
}

// parseValue reads a hex literal with 0x prefix, a binary literal with 0b
// prefix, or a plain decimal literal. Leading zeros of decimals do not
// select octal and digit separators are rejected.
func parseValue(raw string) (uint64, bool) {
	base := 10
	digits := raw
	if len(raw) > 2 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X':
			base, digits = 16, raw[2:]
		case 'b', 'B':
			base, digits = 2, raw[2:]
		}
	}
	if strings.ContainsAny(digits, "_+-") {
		return 0, false
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
