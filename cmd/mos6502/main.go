package main

import (
	"bufio"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/profile"
	"golang.org/x/term"

	"github.com/tobyv/mos6502/internal/asm"
	"github.com/tobyv/mos6502/internal/mos"
)

//go:embed program.asm
var defaultProgram string

func main() {
	programPath := flag.String("program", "", "6502 assembly source file (default: bundled sample)")
	profileCPU := flag.Bool("profile", false, "write a CPU profile on exit")
	flag.Parse()

	if *profileCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*programPath); err != nil {
		log.Fatalf("mos6502: %s", err)
	}
}

func run(path string) error {
	var prog *asm.Program
	if path != "" {
		p, err := asm.CompileFile(path)
		if err != nil {
			return err
		}
		prog = p
	} else {
		prog = asm.Compile(defaultProgram)
	}
	if len(prog.ByteCode) == 0 {
		return fmt.Errorf("program compiled to no byte code")
	}

	mem := mos.NewMemory()
	mem.WriteBytes(prog.Origin, prog.ByteCode)
	mem.Write16(0xfffc, prog.Origin)

	cpu := mos.NewCPU(mos.NewBus(mem))
	cpu.Reset()

	fmt.Println("MOS-6502 Processor Emulation")
	fmt.Println("============================")
	fmt.Printf("loaded %d bytes at $%04X\n\n", len(prog.ByteCode), prog.Origin)
	printHelp()

	repl(cpu, mem, newKeyReader())
	return nil
}

func printHelp() {
	fmt.Println("R reset  I irq  N nmi  E run instruction  X exit")
	fmt.Println("P dump pc page  S stack page  Z zero page  V vector page  M all memory")
	fmt.Println("any other key: one tick")
	fmt.Println()
}

func repl(cpu *mos.CPU, mem *mos.Memory, keys keyReader) {
	for {
		fmt.Printf("%s > ", cpu)

		key, err := keys.read()
		if err != nil {
			fmt.Println()
			if err != io.EOF {
				log.Printf("stdin: %s", err)
			}
			return
		}
		fmt.Printf("%c\n", key)

		switch key {
		case 'R', 'r':
			cpu.Reset()
		case 'I', 'i':
			cpu.IRQ()
		case 'N', 'n':
			cpu.NMI()
		case 'E', 'e':
			for cpu.Tick() {
			}
		case 'P', 'p':
			page := uint8(cpu.PC() >> 8)
			mem.DumpPages(os.Stdout, page, page)
		case 'S', 's':
			mem.DumpPages(os.Stdout, 0x01, 0x01)
		case 'Z', 'z':
			mem.DumpPages(os.Stdout, 0x00, 0x00)
		case 'V', 'v':
			mem.DumpPages(os.Stdout, 0xff, 0xff)
		case 'M', 'm':
			mem.DumpPages(os.Stdout, 0x00, 0xff)
		case 'X', 'x', 0x03: // Ctrl-C when stdin is raw
			return
		default:
			cpu.Tick()
		}
	}
}

type keyReader interface {
	read() (byte, error)
}

// newKeyReader returns a single-keypress reader when stdin is a terminal and
// a line-based fallback otherwise, so the driver stays scriptable via pipes.
func newKeyReader() keyReader {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		return rawKeyReader{fd: fd}
	}
	return lineKeyReader{r: bufio.NewReader(os.Stdin)}
}

// rawKeyReader takes stdin into raw mode for the duration of one read, so
// dumps and prompts still render with normal line discipline.
type rawKeyReader struct {
	fd int
}

func (r rawKeyReader) read() (byte, error) {
	old, err := term.MakeRaw(r.fd)
	if err != nil {
		return 0, err
	}
	defer term.Restore(r.fd, old)

	var buf [1]byte
	if _, err := os.Stdin.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

type lineKeyReader struct {
	r *bufio.Reader
}

func (l lineKeyReader) read() (byte, error) {
	for {
		line, err := l.r.ReadString('\n')
		for _, c := range []byte(line) {
			if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
				return c, nil
			}
		}
		if err != nil {
			return 0, err
		}
	}
}
