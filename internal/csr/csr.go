// Package csr parses the tabular listing of control and status registers.
package csr

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/retroenv/riscvdata/internal/dataset"
)

// recordPattern matches lines like: 0x305, "mtvec"
var recordPattern = regexp.MustCompile(`^\s*(0[xX][0-9a-fA-F]+)\s*,\s*"([^"]+)"`)

// addressRange maps the half-open address interval [start, end) to a
// privilege tier. An end of 0 leaves the range open upwards.
type addressRange struct {
	start, end uint64
	privilege  dataset.Privilege
}

// privilegeRanges is checked in order, the first match wins.
var privilegeRanges = []addressRange{
	{0x100, 0x200, dataset.Supervisor},
	{0x200, 0x300, dataset.Hypervisor},
	{0x300, 0x400, dataset.Machine},
	{0x500, 0x600, dataset.Supervisor},
	{0x600, 0x700, dataset.Hypervisor},
	{0x700, 0x800, dataset.Machine},
	{0xB00, 0xC00, dataset.Machine},
	{0xC00, 0xD00, dataset.User},
	{0xF00, 0, dataset.Machine},
}

// PrivilegeOf returns the privilege tier for a CSR address. Addresses
// outside of all known ranges default to user level.
func PrivilegeOf(address uint64) dataset.Privilege {
	for _, r := range privilegeRanges {
		if address >= r.start && (r.end == 0 || address < r.end) {
			return r.privilege
		}
	}
	return dataset.User
}

// ParseLine parses a single table record. Lines that do not match the
// record format return false.
func ParseLine(line string) (dataset.CSR, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return dataset.CSR{}, false
	}

	match := recordPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return dataset.CSR{}, false
	}

	address, err := strconv.ParseUint(match[1], 0, 64)
	if err != nil {
		return dataset.CSR{}, false
	}

	return dataset.CSR{
		Name:      strings.ToLower(match[2]),
		Address:   match[1],
		Privilege: PrivilegeOf(address),
		Type:      dataset.KindCSR,
	}, true
}

// Parse reads all records from r, skipping lines that do not match.
func Parse(r io.Reader) ([]dataset.CSR, error) {
	var result []dataset.CSR

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		reg, ok := ParseLine(sc.Text())
		if !ok {
			continue
		}
		result = append(result, reg)
	}

	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("reading lines: %w", err)
	}
	return result, nil
}

// ParseFile parses a register table file.
func ParseFile(path string) ([]dataset.CSR, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	result, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return result, nil
}
