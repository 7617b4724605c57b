package encoding

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fields  []BitField
		wantErr string
	}{
		{
			name: "valid r-type",
			fields: []BitField{
				{High: 31, Low: 25, Value: FieldValue{Constant: 0}},
				{High: 14, Low: 12, Value: FieldValue{Constant: 0}},
				{High: 6, Low: 0, Value: FieldValue{Constant: 0x33}},
			},
		},
		{
			name:   "gaps are allowed",
			fields: []BitField{{High: 1, Low: 0, Value: FieldValue{Constant: 3}}},
		},
		{
			name:    "reversed range",
			fields:  []BitField{{High: 3, Low: 7, Value: FieldValue{Constant: 1}}},
			wantErr: "invalid bit range",
		},
		{
			name:    "range outside word",
			fields:  []BitField{{High: 32, Low: 30, Value: FieldValue{Constant: 1}}},
			wantErr: "invalid bit range",
		},
		{
			name:    "value too wide",
			fields:  []BitField{{High: 14, Low: 12, Value: FieldValue{Constant: 8}}},
			wantErr: "does not fit in 3 bits",
		},
		{
			name: "overlapping ranges",
			fields: []BitField{
				{High: 31, Low: 20, Value: FieldValue{Constant: 0}},
				{High: 24, Low: 24, Value: FieldValue{Constant: 1}},
			},
			wantErr: "overlap",
		},
		{
			name: "overlap hidden behind a nested field",
			fields: []BitField{
				{High: 10, Low: 0, Value: FieldValue{Constant: 0}},
				{High: 2, Low: 2, Value: FieldValue{Constant: 1}},
				{High: 6, Low: 5, Value: FieldValue{Constant: 1}},
			},
			wantErr: "fields 10..0=0 and 6..5=1 overlap",
		},
		{
			name: "symbolic values are not width checked",
			fields: []BitField{
				{High: 11, Low: 7, Value: FieldValue{Operand: "rd"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.fields)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
