// Package monitor provides an interactive terminal debugger for stepping
// a CPU instruction by instruction and inspecting registers and memory.
package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/8bitlab/z8080/arch/cpu/z80"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

const bytesPerPage = 16

// model is the bubbletea model driving the monitor's single-stepping loop.
type model struct {
	cpu     *z80.CPU
	machine *z80.PlainMachine

	offset uint16 // offset given to New; the page table follows PC
	prevPC uint16
	disasm string
	err    error
	quit   bool
}

// New returns a monitor model bound to cpu and machine. The page table shows
// the 16-byte pages around the current PC; offset is stored on the model.
func New(cpu *z80.CPU, machine *z80.PlainMachine, offset uint16) tea.Model {
	m := model{cpu: cpu, machine: machine, offset: offset}
	m.disasm = m.disassembleNext()
	return m
}

// disassembleNext previews the mnemonic at the current PC without
// disturbing it: DisasmInstruction advances PC as it decodes, so the value
// is saved and restored around the call.
func (m model) disassembleNext() string {
	pc := m.cpu.Registers().PC()
	text := m.cpu.DisasmInstruction(m.machine)
	m.cpu.Registers().SetPC(pc)
	return text
}

// Run starts the interactive monitor loop. Space or 'j' steps one
// instruction, 'q' exits.
func Run(cpu *z80.CPU, machine *z80.PlainMachine, offset uint16) error {
	m, err := tea.NewProgram(New(cpu, machine, offset)).Run()
	if err != nil {
		return err
	}
	if fm, ok := m.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case " ", "j":
		m.prevPC = m.cpu.Registers().PC()
		m.cpu.Execute(m.machine)
		m.disasm = m.disassembleNext()
		if m.cpu.IsHalted() {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	pc := m.cpu.Registers().PC()
	for i := 0; i < bytesPerPage; i++ {
		addr := start + uint16(i)
		b := m.machine.Peek(addr)
		if addr == pc {
			s += currentStyle.Render(fmt.Sprintf("[%02X]", b)) + " "
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	lines := []string{headerStyle.Render("addr | " + strings.Repeat(" 0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F ", 1))}
	pc := m.cpu.Registers().PC()
	pageStart := pc - (pc % bytesPerPage)
	for i := -2; i <= 2; i++ {
		start := uint16(int(pageStart) + i*bytesPerPage)
		lines = append(lines, m.renderPage(start))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	r := m.cpu.Registers()
	flagNames := "S Z _ H _ P N C"
	var flags strings.Builder
	for _, f := range []z80.Flag{z80.FlagS, z80.FlagZ, z80.Flag5, z80.FlagH, z80.Flag3, z80.FlagP, z80.FlagN, z80.FlagC} {
		if r.GetFlag(f) {
			flags.WriteString("1 ")
		} else {
			flags.WriteString("0 ")
		}
	}
	return headerStyle.Render("registers") + fmt.Sprintf(`
PC: %04X  (prev %04X)
AF: %04X  BC: %04X
DE: %04X  HL: %04X
IX: %04X  IY: %04X
SP: %04X  cycles: %d
%s
%s
`,
		r.PC(), m.prevPC,
		r.Get16(z80.RegAF), r.Get16(z80.RegBC),
		r.Get16(z80.RegDE), r.Get16(z80.RegHL16),
		r.Get16(z80.RegIX), r.Get16(z80.RegIY),
		r.Get16(z80.RegSP), m.cpu.CycleCount(),
		flagNames, flags.String(),
	)
}

func (m model) View() string {
	if m.quit {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), "   ", m.status())

	var footer string
	if m.err != nil {
		footer = errorStyle.Render("error: " + m.err.Error())
	} else {
		footer = "space/j: step   q: quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.disasm, "", footer)
}
