package encoding

import "github.com/retroenv/retrogolib/set"

// VocabularyVersion identifies the revision of the default operand list.
const VocabularyVersion = "riscv-opcodes-2024"

// Vocabulary is the closed set of operand field identifiers that the
// grammar recognizes.
type Vocabulary struct {
	version string
	names   set.Set[string]
}

// NewVocabulary returns a vocabulary containing the given operand names.
func NewVocabulary(version string, names ...string) Vocabulary {
	v := Vocabulary{
		version: version,
		names:   set.New[string](),
	}
	for _, name := range names {
		v.names[name] = struct{}{}
	}
	return v
}

// DefaultVocabulary returns the operand names used by the RISC-V opcode
// definition files.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(VocabularyVersion, defaultOperands...)
}

// Version returns the revision tag of the vocabulary.
func (v Vocabulary) Version() string {
	return v.version
}

// Contains returns whether name is a known operand.
func (v Vocabulary) Contains(name string) bool {
	_, ok := v.names[name]
	return ok
}

// Len returns the number of operand names.
func (v Vocabulary) Len() int {
	return len(v.names)
}

var defaultOperands = []string{
	// integer and floating point registers
	"rd", "rt", "rs1", "rs2", "rs3",

	// atomics and fences
	"aqrl", "aq", "rl", "fm", "pred", "succ",

	// rounding mode and generic function fields
	"rm", "funct3", "funct2", "funct7", "opcode", "amoop",

	// immediates
	"imm20", "jimm20", "imm12", "csr", "imm12hi", "bimm12hi", "imm12lo", "bimm12lo",
	"shamtq", "shamtw", "shamtw4", "shamtd", "bs", "rnum", "rc",
	"imm2", "imm3", "imm4", "imm5", "imm6", "zimm",

	// vector extension
	"vd", "vs3", "vs1", "vs2", "vm", "wd", "nf",
	"simm5", "zimm5", "zimm10", "zimm11", "zimm6hi", "zimm6lo",

	// compressed extension immediates
	"c_nzuimm10", "c_uimm7lo", "c_uimm7hi", "c_uimm8lo", "c_uimm8hi",
	"c_uimm9lo", "c_uimm9hi", "c_nzimm6lo", "c_nzimm6hi", "c_imm6lo", "c_imm6hi",
	"c_nzimm10hi", "c_nzimm10lo", "c_nzimm18hi", "c_nzimm18lo", "c_imm12",
	"c_bimm9lo", "c_bimm9hi", "c_nzuimm5", "c_nzuimm6lo", "c_nzuimm6hi",
	"c_uimm8splo", "c_uimm8sphi", "c_uimm8sp_s", "c_uimm10splo", "c_uimm10sphi",
	"c_uimm9splo", "c_uimm9sphi", "c_uimm10sp_s", "c_uimm9sp_s",
	"c_uimm1", "c_uimm2", "c_rlist", "c_spimm", "c_index",

	// compressed extension registers
	"rs1_p", "rs2_p", "rd_p", "rd_rs1_n0", "rd_rs1_p", "rd_rs1",
	"rd_n2", "rd_n0", "rs1_n0", "c_rs2_n0", "c_rs1_n0", "c_rs2",
	"c_sreg1", "c_sreg2",

	// may-be-operations
	"mop_r_t_30", "mop_r_t_27_26", "mop_r_t_21_20",
	"mop_rr_t_30", "mop_rr_t_27_26", "c_mop_t",
}
