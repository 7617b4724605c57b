package merge

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/riscvdata/internal/dataset"
	"github.com/retroenv/riscvdata/internal/encoding"
	"github.com/retroenv/riscvdata/internal/prose"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func testInstructions() []dataset.Instruction {
	return []dataset.Instruction{
		{
			Name:      "add",
			Extension: "rv_i",
			Operands:  []string{"rs2", "rs1", "rd"},
			Encoding: []encoding.BitField{
				{High: 31, Low: 25, Value: encoding.FieldValue{Constant: 0}},
				{High: 6, Low: 0, Value: encoding.FieldValue{Constant: 0x33}},
			},
			Type: dataset.KindInstruction,
		},
		{
			Name:      "mv",
			Extension: "rv_i",
			Operands:  []string{"rd", "rs1"},
			Encoding:  []encoding.BitField{{High: 6, Low: 0, Value: encoding.FieldValue{Constant: 0x13}}},
			Type:      dataset.KindPseudo,
		},
		{
			Name:      "add",
			Extension: "unratified_rv_x",
			Operands:  []string{},
			Encoding:  []encoding.BitField{{High: 6, Low: 0, Value: encoding.FieldValue{Constant: 0x7f}}},
			Type:      dataset.KindInstruction,
		},
	}
}

func testCSRs() []dataset.CSR {
	return []dataset.CSR{
		{Name: "mtvec", Address: "0x305", Privilege: dataset.Machine, Type: dataset.KindCSR},
		{Name: "fflags", Address: "0x001", Privilege: dataset.User, Type: dataset.KindCSR},
		{Name: "mtvec", Address: "0x305", Privilege: dataset.Machine, Type: dataset.KindCSR},
	}
}

func testDescriptions() prose.Result {
	return prose.Result{
		Instructions: prose.Descriptions{"add": "ADD performs integer addition."},
		CSRs:         prose.Descriptions{"mtvec": "Trap vector base address."},
	}
}

func newMerger(t *testing.T) *Merger {
	t.Helper()
	m := New(log.NewTestLogger(t), "")
	m.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 30, 45, 123, time.FixedZone("X", 3600))
	}
	return m
}

func TestMerge(t *testing.T) {
	d := newMerger(t).Merge(testInstructions(), testCSRs(), testDescriptions())

	expected := []dataset.Instruction{
		{
			Name:        "add",
			Extension:   "rv_i",
			Operands:    []string{"rs2", "rs1", "rd"},
			Description: "ADD performs integer addition.",
			Encoding: []encoding.BitField{
				{High: 31, Low: 25, Value: encoding.FieldValue{Constant: 0}},
				{High: 6, Low: 0, Value: encoding.FieldValue{Constant: 0x33}},
			},
			Type: dataset.KindInstruction,
		},
		testInstructions()[1],
	}
	if diff := cmp.Diff(expected, d.Instructions); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 3, len(d.CSRs))
	assert.Equal(t, "Trap vector base address.", d.CSRs[0].Description)
	assert.Equal(t, "", d.CSRs[1].Description)
	assert.Equal(t, "Trap vector base address.", d.CSRs[2].Description)

	stats := d.Stats()
	assert.Equal(t, 3, stats.CSRs)
	assert.Equal(t, 2, stats.DescribedCSRs)
	assert.Equal(t, 2, stats.DistinctCSRNames)
	assert.Equal(t, 1, stats.DescribedInstructions)

	assert.Equal(t, dataset.Version, d.Version)
	assert.Equal(t, time.Date(2024, 5, 1, 11, 30, 45, 0, time.UTC), d.GeneratedAt)
}

func TestMergeFirstOccurrenceWins(t *testing.T) {
	d := newMerger(t).Merge(testInstructions(), nil, prose.Result{})

	var names []string
	for _, ins := range d.Instructions {
		names = append(names, ins.Name)
	}
	assert.Equal(t, []string{"add", "mv"}, names)
	assert.Equal(t, "rv_i", d.Instructions[0].Extension)
	assert.Equal(t, 0, len(d.CSRs))
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	instructions := testInstructions()
	csrs := testCSRs()

	newMerger(t).Merge(instructions, csrs, testDescriptions())

	if diff := cmp.Diff(testInstructions(), instructions); diff != "" {
		t.Errorf("instructions were modified (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testCSRs(), csrs); diff != "" {
		t.Errorf("registers were modified (-want +got):\n%s", diff)
	}
}

func TestMergeIdempotent(t *testing.T) {
	first := New(log.NewTestLogger(t), "").Merge(testInstructions(), testCSRs(), testDescriptions())
	time.Sleep(10 * time.Millisecond)
	second := New(log.NewTestLogger(t), "").Merge(testInstructions(), testCSRs(), testDescriptions())

	first.GeneratedAt = time.Time{}
	second.GeneratedAt = time.Time{}

	a, err := dataset.Encode(first, dataset.JSON)
	assert.NoError(t, err)
	b, err := dataset.Encode(second, dataset.JSON)
	assert.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMergeVersion(t *testing.T) {
	d := New(log.NewTestLogger(t), "2.1.0").Merge(nil, nil, prose.Result{})
	assert.Equal(t, "2.1.0", d.Version)
	assert.NotNil(t, d.Instructions)
	assert.NotNil(t, d.CSRs)
}
