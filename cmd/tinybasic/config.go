package main

import (
	"os"

	"github.com/8bitlab/z8080/config"
)

// RunConfig holds the settings shared by the run, disasm and monitor
// subcommands, loadable from an optional INI-style file and overridable by
// flags.
type RunConfig struct {
	Image   string  `config:"machine.image" flag:"image" usage:"path to the ROM/binary image to load at address 0" default:"tinybasic.bin"`
	MHz     float64 `config:"machine.mhz" flag:"mhz" usage:"emulated clock speed in MHz" default:"2"`
	Trace   bool    `config:"machine.trace" flag:"trace" usage:"log every decoded instruction"`
	Variant string  `config:"machine.variant" flag:"variant" usage:"CPU variant: z80 or 8080" default:"z80"`
}

// loadRunConfig reads path (if it exists) into cfg, leaving cfg's current
// values (the flag defaults) in place for keys the file lacks and when the
// file is absent — the file is optional, flags layered on top always win
// since they are parsed into the same struct after this call.
func loadRunConfig(path string, cfg *RunConfig) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return config.Load(path, cfg)
}
