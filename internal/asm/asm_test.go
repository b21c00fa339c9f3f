package asm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobyv/mos6502/internal/mos"
)

func Test_CompileAddressingSyntax(t *testing.T) {
	type testArgs struct {
		src  string
		want []uint8
	}

	testDo := func(t *testing.T, in testArgs) {
		prog := Compile(in.src)
		assert.Equal(t, in.want, prog.ByteCode)
	}

	t.Run("implied", func(t *testing.T) {
		testDo(t, testArgs{src: "NOP", want: []uint8{0xea}})
	})
	t.Run("accumulator", func(t *testing.T) {
		testDo(t, testArgs{src: "LSR A", want: []uint8{0x4a}})
	})
	t.Run("immediate", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA #$42", want: []uint8{0xa9, 0x42}})
	})
	t.Run("zero page", func(t *testing.T) {
		testDo(t, testArgs{src: "STA $10", want: []uint8{0x85, 0x10}})
	})
	t.Run("zero page X", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA $10,X", want: []uint8{0xb5, 0x10}})
	})
	t.Run("zero page Y", func(t *testing.T) {
		testDo(t, testArgs{src: "LDX $10,Y", want: []uint8{0xb6, 0x10}})
	})
	t.Run("absolute", func(t *testing.T) {
		testDo(t, testArgs{src: "STA $1234", want: []uint8{0x8d, 0x34, 0x12}})
	})
	t.Run("absolute X", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA $1234,X", want: []uint8{0xbd, 0x34, 0x12}})
	})
	t.Run("absolute Y", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA $1234,Y", want: []uint8{0xb9, 0x34, 0x12}})
	})
	t.Run("indirect", func(t *testing.T) {
		testDo(t, testArgs{src: "JMP ($0300)", want: []uint8{0x6c, 0x00, 0x03}})
	})
	t.Run("indexed indirect", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA ($10,X)", want: []uint8{0xa1, 0x10}})
	})
	t.Run("indirect indexed", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA ($10),Y", want: []uint8{0xb1, 0x10}})
	})
	t.Run("explicit relative", func(t *testing.T) {
		testDo(t, testArgs{src: "BEQ *+2", want: []uint8{0xf0, 0x02}})
	})
	t.Run("explicit negative relative", func(t *testing.T) {
		testDo(t, testArgs{src: "BEQ -4", want: []uint8{0xf0, 0xfc}})
	})
	t.Run("binary literal", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA #%10000001", want: []uint8{0xa9, 0x81}})
	})
	t.Run("decimal literal", func(t *testing.T) {
		testDo(t, testArgs{src: "LDA #65", want: []uint8{0xa9, 0x41}})
	})
}

func Test_CompileNormalization(t *testing.T) {
	prog := Compile("  lda   #$0f   ; comment here\n\n; full comment line\n\tnop")

	assert.Equal(t, []uint8{0xa9, 0x0f, 0xea}, prog.ByteCode)
	require.Len(t, prog.Lines, 2)
	assert.Equal(t, mos.OpLDA, prog.Lines[0].Op)
	assert.Equal(t, 1, prog.Lines[0].Number)
	assert.Equal(t, mos.OpNOP, prog.Lines[1].Op)
	assert.Equal(t, 4, prog.Lines[1].Number)
}

func Test_CompileOrigin(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		prog := Compile("NOP")
		assert.EqualValues(t, 0x0200, prog.Origin)
	})

	t.Run("directive", func(t *testing.T) {
		prog := Compile("* = $8000\nLDA #1")
		assert.EqualValues(t, 0x8000, prog.Origin)
		assert.Equal(t, []uint8{0xa9, 0x01}, prog.ByteCode)
	})

	t.Run("origin is the first emitted instruction", func(t *testing.T) {
		prog := Compile("COUNT = 5\n* = $0300\nNOP")
		assert.EqualValues(t, 0x0300, prog.Origin)
	})
}

func Test_CompileSymbols(t *testing.T) {
	t.Run("assignment", func(t *testing.T) {
		prog := Compile("COUNT = 5\nLDA #COUNT")
		assert.Equal(t, []uint8{0xa9, 0x05}, prog.ByteCode)
	})

	t.Run("space-separated binding", func(t *testing.T) {
		prog := Compile("VALUE $44\nLDA VALUE")
		assert.Equal(t, []uint8{0xa5, 0x44}, prog.ByteCode)
	})

	t.Run("star evaluates to the current pc", func(t *testing.T) {
		prog := Compile("HERE = *\nJMP HERE")
		assert.Equal(t, []uint8{0x4c, 0x00, 0x02}, prog.ByteCode)
	})

	t.Run("longest name substituted first", func(t *testing.T) {
		prog := Compile("AB = 1\nABC = 2\nLDA #ABC")
		assert.Equal(t, []uint8{0xa9, 0x02}, prog.ByteCode)
	})
}

func Test_CompileLabelsAndBranches(t *testing.T) {
	t.Run("backward branch", func(t *testing.T) {
		prog := Compile("LDX #2\nLOOP: DEX\nBNE LOOP")
		// LOOP is $0202; BNE sits at $0203, so the offset is -3.
		assert.Equal(t, []uint8{0xa2, 0x02, 0xca, 0xd0, 0xfd}, prog.ByteCode)
	})

	t.Run("label on its own line", func(t *testing.T) {
		prog := Compile("LOOP:\nDEX\nBNE LOOP")
		assert.Equal(t, []uint8{0xca, 0xd0, 0xfd}, prog.ByteCode)
	})

	t.Run("bare identifier binds as a label", func(t *testing.T) {
		prog := Compile("START\nJMP START")
		assert.Equal(t, []uint8{0x4c, 0x00, 0x02}, prog.ByteCode)
	})

	t.Run("branch to self", func(t *testing.T) {
		prog := Compile("SPIN: BNE SPIN")
		assert.Equal(t, []uint8{0xd0, 0xfe}, prog.ByteCode)
	})

	t.Run("out of range branch keeps the parsed mode and drops", func(t *testing.T) {
		prog := Compile("FAR = $0400\nBNE FAR")
		// $0400 is 510 bytes ahead: stays ABS, and BNE has no ABS form.
		assert.Empty(t, prog.ByteCode)
	})
}

func Test_CompileZeroPagePromotion(t *testing.T) {
	// JMP has no zero-page form, so a low target widens to absolute.
	prog := Compile("TARGET = $0010\nJMP TARGET")
	assert.Equal(t, []uint8{0x4c, 0x10, 0x00}, prog.ByteCode)
}

func Test_CompileBadLinesAreDropped(t *testing.T) {
	t.Run("malformed expression", func(t *testing.T) {
		prog := Compile("LDA #$GG\nNOP")
		assert.Equal(t, []uint8{0xea}, prog.ByteCode, "compilation continues")
	})

	t.Run("unterminated indirect", func(t *testing.T) {
		prog := Compile("JMP ($0300\nNOP")
		assert.Equal(t, []uint8{0xea}, prog.ByteCode)
	})

	t.Run("impossible encoding", func(t *testing.T) {
		prog := Compile("LDA\nNOP")
		assert.Equal(t, []uint8{0xea}, prog.ByteCode, "LDA has no implied form")
	})

	t.Run("bad assignment", func(t *testing.T) {
		prog := Compile("COUNT = $ZZ\nLDA #1")
		assert.Equal(t, []uint8{0xa9, 0x01}, prog.ByteCode)
	})
}

func Test_CompileFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := CompileFile(filepath.Join(t.TempDir(), "nope.asm"))
		assert.Error(t, err)
	})

	t.Run("compiles from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prog.asm")
		require.NoError(t, os.WriteFile(path, []byte("LDA #$42\n"), 0o644))

		prog, err := CompileFile(path)
		require.NoError(t, err)
		assert.Equal(t, []uint8{0xa9, 0x42}, prog.ByteCode)
	})
}

// Assemble a countdown loop and run it on the CPU.
func Test_CompileAndExecute(t *testing.T) {
	prog := Compile(`
COUNT = 3
        * = $0200
        LDX #COUNT
LOOP:   DEX
        BNE LOOP
        STX $10
`)
	require.NotEmpty(t, prog.ByteCode)
	require.EqualValues(t, 0x0200, prog.Origin)

	mem := mos.NewMemory()
	mem.WriteBytes(prog.Origin, prog.ByteCode)
	mem.Write16(0xfffc, prog.Origin)

	cpu := mos.NewCPU(mos.NewBus(mem))
	cpu.Reset()

	// LDX, then DEX/BNE three times around, then STX.
	for i := 0; i < 8; i++ {
		for cpu.Tick() {
		}
	}

	assert.EqualValues(t, 0, cpu.X(), "X register counted down")
	assert.EqualValues(t, 0, mem.Read8(0x0010), "result stored")
	assert.EqualValues(t, 0x0207, cpu.PC(), "PC past the stored instruction")
}
