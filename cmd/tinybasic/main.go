// Command tinybasic is an example host binary binding a Z80/8080 core to a
// flat console I/O convention (port 0 status, port 1 data), suitable for
// running Li-Chen Wang's public-domain Tiny-BASIC ROM image or any other
// flat binary that expects the same port layout.
package main

import (
	"fmt"
	"os"

	"github.com/8bitlab/z8080/app"
	"github.com/8bitlab/z8080/arch"
	"github.com/8bitlab/z8080/arch/cpu/z80"
	"github.com/8bitlab/z8080/buildinfo"
	"github.com/8bitlab/z8080/cli"
	"github.com/8bitlab/z8080/log"
	"github.com/8bitlab/z8080/monitor"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := cli.NewCommand("tinybasic", "Z80/8080 emulator example host")
	root.SetVersion(buildinfo.Version(version, commit, date))
	root.AddSubcommand("run", "load an image and execute until HALT or a step limit", runCommand)
	root.AddSubcommand("disasm", "print a disassembly listing of an image", disasmCommand)
	root.AddSubcommand("monitor", "launch the interactive single-step monitor", monitorCommand)
	return root.Execute(args)
}

// newCPU builds a CPU for the configured variant, exiting via the caller's
// exit code on an unrecognized value rather than panicking — user input,
// not a programmer-contract violation.
func newCPU(logger *log.Logger, variant string) (*z80.CPU, bool) {
	switch arch.Architecture(variant) {
	case arch.Z80:
		return z80.NewZ80(), true
	case arch.I8080:
		return z80.New8080(), true
	default:
		logger.Error("unsupported CPU variant", log.String("variant", variant))
		return nil, false
	}
}

func parseRunConfig(name string, args []string) (*RunConfig, *cli.FlagSet, error) {
	cfg := &RunConfig{}
	// Registering the flags writes their defaults into cfg, so the file is
	// loaded after that and before the command line is parsed.
	fs := cli.NewFlagSet(name)
	fs.AddSection("machine", cfg)
	if err := loadRunConfig("tinybasic.ini", cfg); err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	if _, err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return cfg, fs, nil
}

func loadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image %q: %w", path, err)
	}
	return data, nil
}

func runCommand(args []string) int {
	logger := log.New()
	cfg, _, err := parseRunConfig("run", args)
	if err != nil {
		logger.Error("parsing flags", log.Err(err))
		return 1
	}

	image, err := loadImage(cfg.Image)
	if err != nil {
		logger.Error("loading image", log.Err(err))
		return 1
	}

	cpu, ok := newCPU(logger, cfg.Variant)
	if !ok {
		return 1
	}

	m := newConsoleMachine(os.Stdin, os.Stdout)
	m.LoadMemory(image)

	ctx := app.Context()
	runner := z80.NewTimedRunner(cpu, m, cfg.MHz, 4000)
	logger.Info("running", log.String("image", cfg.Image), log.String("variant", cfg.Variant))

	runner.Run(func() bool {
		if cfg.Trace {
			logger.Trace("step", log.String("disasm", cpu.DisasmInstruction(m)))
		}
		select {
		case <-ctx.Done():
			return true
		default:
		}
		return cpu.IsHalted()
	})

	logger.Info("halted", log.String("cycles", fmt.Sprint(cpu.CycleCount())))
	return 0
}

func disasmCommand(args []string) int {
	logger := log.New()
	cfg, _, err := parseRunConfig("disasm", args)
	if err != nil {
		logger.Error("parsing flags", log.Err(err))
		return 1
	}

	image, err := loadImage(cfg.Image)
	if err != nil {
		logger.Error("loading image", log.Err(err))
		return 1
	}

	cpu, ok := newCPU(logger, cfg.Variant)
	if !ok {
		return 1
	}

	m := z80.NewPlainMachine()
	m.LoadMemory(image)

	for cpu.Registers().PC() < uint16(len(image)) {
		pc := cpu.Registers().PC()
		text := cpu.DisasmInstruction(m)
		fmt.Printf("%04X  %s\n", pc, text)
	}
	return 0
}

func monitorCommand(args []string) int {
	logger := log.New()
	cfg, _, err := parseRunConfig("monitor", args)
	if err != nil {
		logger.Error("parsing flags", log.Err(err))
		return 1
	}

	image, err := loadImage(cfg.Image)
	if err != nil {
		logger.Error("loading image", log.Err(err))
		return 1
	}

	cpu, ok := newCPU(logger, cfg.Variant)
	if !ok {
		return 1
	}

	m := z80.NewPlainMachine()
	m.LoadMemory(image)

	if err := monitor.Run(cpu, m, 0); err != nil {
		logger.Error("monitor exited with error", log.Err(err))
		return 1
	}
	return 0
}
