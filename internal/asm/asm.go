// Package asm is a single-pass assembler for 6502 source text. Malformed
// lines are logged and dropped; compilation never aborts.
package asm

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tobyv/mos6502/internal/mos"
)

const defaultOrigin = uint16(0x0200)

// Line records one emitted instruction for listings and debugging.
type Line struct {
	Number int
	PC     uint16
	Opcode uint8
	Op     mos.Instruction
	Mode   mos.AddrMode
	Value  uint16
}

// Program is the compiled output: the load address of the first emitted
// instruction and the raw byte code starting there.
type Program struct {
	Origin   uint16
	ByteCode []uint8
	Lines    []Line
}

// CompileFile reads and compiles a source file. Only the read can fail;
// bad source lines are dropped with a diagnostic like Compile does.
func CompileFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("asm: read source: %w", err)
	}
	return Compile(string(data)), nil
}

// Compile assembles source text in a single pass. Symbols and labels must be
// defined before they are used.
func Compile(src string) *Program {
	c := compiler{
		pc:      defaultOrigin,
		symbols: make(map[string]uint16),
		prog: &Program{
			Origin: defaultOrigin,
		},
	}

	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		c.line++
		c.statement(sc.Text())
	}

	return c.prog
}

type compiler struct {
	prog      *Program
	pc        uint16
	line      int
	symbols   map[string]uint16
	originSet bool
}

// statement compiles one physical line: comment stripping, label bindings,
// assignments, then at most one instruction.
func (c *compiler) statement(raw string) {
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return
	}

	for {
		i := strings.IndexByte(raw, ':')
		if i < 0 {
			break
		}
		name := strings.TrimSpace(raw[:i])
		if name == "" || strings.ContainsAny(name, " \t") {
			break
		}
		c.symbols[name] = c.pc
		raw = strings.TrimSpace(raw[i+1:])
		if raw == "" {
			return
		}
	}

	if i := strings.IndexByte(raw, '='); i >= 0 {
		c.assign(strings.TrimSpace(raw[:i]), strings.TrimSpace(raw[i+1:]))
		return
	}

	fields := strings.Fields(raw)
	op := mos.InstructionFromMnemonic(fields[0])
	if op == mos.OpILL {
		if len(fields) == 1 {
			// A bare identifier binds as a label.
			c.symbols[fields[0]] = c.pc
			return
		}
		c.assign(fields[0], strings.Join(fields[1:], ""))
		return
	}

	c.instruction(op, strings.Join(fields[1:], ""))
}

func (c *compiler) assign(name, expr string) {
	v, err := c.eval(c.substitute(expr))
	if err != nil {
		log.Printf("asm: line %d: %s", c.line, err)
		return
	}
	if name == "*" {
		c.pc = v
		return
	}
	c.symbols[name] = v
}

var branchOps = map[mos.Instruction]bool{
	mos.OpBCC: true,
	mos.OpBCS: true,
	mos.OpBEQ: true,
	mos.OpBMI: true,
	mos.OpBNE: true,
	mos.OpBPL: true,
	mos.OpBVC: true,
	mos.OpBVS: true,
}

func (c *compiler) instruction(op mos.Instruction, operand string) {
	instrPC := c.pc

	mode, value, ok := c.classify(c.substitute(operand))
	if !ok {
		return
	}

	// Relativize branch targets against the branch's successor address.
	// Out-of-range targets keep the mode the operand parsed to.
	if branchOps[op] && mode != mos.ModeREL {
		diff := int(value) - int(instrPC) - 2
		if diff >= -128 && diff <= 127 {
			mode = mos.ModeREL
			value = uint16(diff) & 0xff
		}
	}

	det := mos.Find(op, mode)
	if det.Op == mos.OpILL {
		// Some instructions only have the absolute form (JMP, JSR),
		// so retry a zero-page operand at full width.
		if wide, ok := widen(mode); ok {
			det = mos.Find(op, wide)
		}
	}
	if det.Op == mos.OpILL {
		log.Printf("asm: line %d: no %s encoding with %s addressing", c.line, op, mode)
		return
	}

	if !c.originSet {
		c.prog.Origin = instrPC
		c.originSet = true
	}

	c.prog.ByteCode = append(c.prog.ByteCode, det.Opcode)
	switch det.Bytes {
	case 2:
		c.prog.ByteCode = append(c.prog.ByteCode, uint8(value))
	case 3:
		c.prog.ByteCode = append(c.prog.ByteCode, uint8(value), uint8(value>>8))
	}

	c.prog.Lines = append(c.prog.Lines, Line{
		Number: c.line,
		PC:     instrPC,
		Opcode: det.Opcode,
		Op:     det.Op,
		Mode:   det.Mode,
		Value:  value,
	})

	c.pc = instrPC + uint16(det.Bytes)
}

func widen(mode mos.AddrMode) (mos.AddrMode, bool) {
	switch mode {
	case mos.ModeZPG:
		return mos.ModeABS, true
	case mos.ModeZPX:
		return mos.ModeABX, true
	case mos.ModeZPY:
		return mos.ModeABY, true
	}
	return mode, false
}

// classify maps operand syntax to an addressing mode and value. The operand
// has symbols substituted and contains no whitespace.
func (c *compiler) classify(operand string) (mos.AddrMode, uint16, bool) {
	fail := func(err error) (mos.AddrMode, uint16, bool) {
		log.Printf("asm: line %d: %s", c.line, err)
		return mos.ModeILL, 0, false
	}

	switch {
	case operand == "":
		return mos.ModeIMP, 0, true
	case operand == "A":
		return mos.ModeACC, 0, true
	}

	switch operand[0] {
	case '#':
		v, err := c.eval(operand[1:])
		if err != nil {
			return fail(err)
		}
		return mos.ModeIMM, v, true

	case '*', '+', '-':
		v, err := c.relOffset(operand)
		if err != nil {
			return fail(err)
		}
		return mos.ModeREL, v, true

	case '(':
		par := strings.IndexByte(operand, ')')
		if par < 0 {
			return fail(fmt.Errorf("unterminated indirect operand %q", operand))
		}
		com := strings.IndexByte(operand, ',')

		var inner string
		mode := mos.ModeIND
		switch {
		case com >= 0 && com < par: // (v,X)
			mode = mos.ModeINX
			inner = operand[1:com]
		case com > par: // (v),Y
			mode = mos.ModeINY
			inner = operand[1:par]
		default:
			inner = operand[1:par]
		}

		v, err := c.eval(inner)
		if err != nil {
			return fail(err)
		}
		return mode, v, true
	}

	com := strings.IndexByte(operand, ',')
	if com < 0 {
		v, err := c.eval(operand)
		if err != nil {
			return fail(err)
		}
		if v > 0xff {
			return mos.ModeABS, v, true
		}
		return mos.ModeZPG, v, true
	}

	v, err := c.eval(operand[:com])
	if err != nil {
		return fail(err)
	}
	isX := strings.HasSuffix(operand, "X")
	if v > 0xff {
		if isX {
			return mos.ModeABX, v, true
		}
		return mos.ModeABY, v, true
	}
	if isX {
		return mos.ModeZPX, v, true
	}
	return mos.ModeZPY, v, true
}

// relOffset parses an explicit relative operand: *expr, +n or -n.
func (c *compiler) relOffset(operand string) (uint16, error) {
	s := operand
	if s[0] == '*' {
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("empty relative offset")
	}
	if s[0] == '+' || s[0] == '-' {
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return 0, fmt.Errorf("bad relative offset %q", operand)
		}
		return uint16(n) & 0xff, nil
	}
	v, err := c.eval(s)
	if err != nil {
		return 0, err
	}
	return v & 0xff, nil
}

// eval parses one expression literal: $hex, %binary, decimal or * for the
// current PC. Symbols were already substituted textually.
func (c *compiler) eval(s string) (uint16, error) {
	if s == "" {
		return 0, fmt.Errorf("empty expression")
	}
	if s == "*" {
		return c.pc, nil
	}

	var (
		v   uint64
		err error
	)
	switch s[0] {
	case '$':
		v, err = strconv.ParseUint(s[1:], 16, 16)
	case '%':
		v, err = strconv.ParseUint(s[1:], 2, 16)
	default:
		v, err = strconv.ParseUint(s, 10, 16)
	}
	if err != nil {
		return 0, fmt.Errorf("bad expression %q", s)
	}
	return uint16(v), nil
}

// substitute replaces every known symbol with its decimal value, longest
// names first so one symbol can't clobber part of another.
func (c *compiler) substitute(s string) string {
	if len(c.symbols) == 0 {
		return s
	}

	names := make([]string, 0, len(c.symbols))
	for name := range c.symbols {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		s = strings.ReplaceAll(s, name, strconv.Itoa(int(c.symbols[name])))
	}
	return s
}
