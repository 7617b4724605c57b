package encoding

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestParseFields(t *testing.T) {
	vocab := DefaultVocabulary()

	tests := []struct {
		name     string
		rest     string
		operands []string
		encoding []BitField
	}{
		{
			name:     "r-type with operand assignments",
			rest:     "31..25=0 24..20=rs2 19..15=rs1 14..12=0 11..7=rd 6..0=0x33",
			operands: []string{"rs2", "rs1", "rd"},
			encoding: []BitField{
				{High: 31, Low: 25, Value: FieldValue{Constant: 0}},
				{High: 14, Low: 12, Value: FieldValue{Constant: 0}},
				{High: 6, Low: 0, Value: FieldValue{Constant: 0x33}},
			},
		},
		{
			name:     "bare operand tokens",
			rest:     "rd rs1 rs2 31..25=0 14..12=0 6..2=0x0C 1..0=3",
			operands: []string{"rd", "rs1", "rs2"},
			encoding: []BitField{
				{High: 31, Low: 25, Value: FieldValue{Constant: 0}},
				{High: 14, Low: 12, Value: FieldValue{Constant: 0}},
				{High: 6, Low: 2, Value: FieldValue{Constant: 0x0c}},
				{High: 1, Low: 0, Value: FieldValue{Constant: 3}},
			},
		},
		{
			name:     "single bit assignment",
			rest:     "rd 12=1 6..0=0x73",
			operands: []string{"rd"},
			encoding: []BitField{
				{High: 12, Low: 12, Value: FieldValue{Constant: 1}},
				{High: 6, Low: 0, Value: FieldValue{Constant: 0x73}},
			},
		},
		{
			name: "unrecognized tokens are dropped",
			rest: "foo 31..x=1 7..0=bar =3 5..= 3..1=0x2",
			encoding: []BitField{
				{High: 3, Low: 1, Value: FieldValue{Constant: 2}},
			},
		},
		{
			name:     "duplicate operand recorded once",
			rest:     "rd rd 11..7=rd",
			operands: []string{"rd"},
		},
		{
			name:     "source order is kept, not bit order",
			rest:     "1..0=3 31..20=0x7ff",
			encoding: []BitField{
				{High: 1, Low: 0, Value: FieldValue{Constant: 3}},
				{High: 31, Low: 20, Value: FieldValue{Constant: 0x7ff}},
			},
		},
		{
			name: "no validation of range direction",
			rest: "3..7=1",
			encoding: []BitField{
				{High: 3, Low: 7, Value: FieldValue{Constant: 1}},
			},
		},
		{
			name: "leading zeros are decimal",
			rest: "6..0=010 11..7=08 14..12=0X7 19..15=0b101",
			encoding: []BitField{
				{High: 6, Low: 0, Value: FieldValue{Constant: 10}},
				{High: 11, Low: 7, Value: FieldValue{Constant: 8}},
				{High: 14, Low: 12, Value: FieldValue{Constant: 7}},
				{High: 19, Low: 15, Value: FieldValue{Constant: 5}},
			},
		},
		{
			name: "digit separators and octal prefix are rejected",
			rest: "6..0=0_1 11..7=0o7 14..12=+1 19..15=0x 24..20=0x_1",
		},
		{
			name: "empty remainder",
			rest: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFields(tt.rest, vocab)
			if diff := cmp.Diff(tt.operands, got.Operands); diff != "" {
				t.Errorf("operands mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.encoding, got.Encoding); diff != "" {
				t.Errorf("encoding mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFieldsRangeProperty(t *testing.T) {
	vocab := NewVocabulary("test")

	for high := 0; high < InstructionBits; high++ {
		for low := 0; low <= high; low++ {
			value := uint64(high*31+low) & (1<<uint(high-low+1) - 1)

			hex := ParseFields(fmt.Sprintf("%d..%d=0x%x", high, low, value), vocab)
			assert.Equal(t, 1, len(hex.Encoding))
			assert.Equal(t, BitField{High: high, Low: low, Value: FieldValue{Constant: value}}, hex.Encoding[0])

			dec := ParseFields(fmt.Sprintf("%d..%d=%d", high, low, value), vocab)
			assert.Equal(t, 1, len(dec.Encoding))
			assert.Equal(t, hex.Encoding[0], dec.Encoding[0])
		}
	}
}

func TestFieldValueJSON(t *testing.T) {
	fields := []BitField{
		{High: 6, Low: 0, Value: FieldValue{Constant: 0x33}},
		{High: 11, Low: 7, Value: FieldValue{Operand: "rd"}},
	}

	data, err := json.Marshal(fields)
	assert.NoError(t, err)
	assert.Equal(t, `[{"high":6,"low":0,"value":51},{"high":11,"low":7,"value":"rd"}]`, string(data))

	var decoded []BitField
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fields, decoded)
}

func TestVocabulary(t *testing.T) {
	vocab := NewVocabulary("v1", "rs2", "rd", "rs1", "rd")

	assert.Equal(t, "v1", vocab.Version())
	assert.Equal(t, 3, vocab.Len())
	assert.True(t, vocab.Contains("rd"))
	assert.False(t, vocab.Contains("imm12"))

	def := DefaultVocabulary()
	assert.True(t, def.Contains("rs1"))
	assert.True(t, def.Contains("c_nzuimm10"))
	assert.False(t, def.Contains("add"))
}
