package arch

import (
	"strings"

	"github.com/8bitlab/z8080/set"
)

// System represents a complete retro computing system.
// This is separate from CPU architecture and handles system-specific
// concerns like executable format, system calls, and runtime constraints.
type System string

// Supported systems.
const (
	// CPM represents the CP/M operating system and its BDOS calling
	// convention, the common host for 8080 and early Z80 software.
	CPM System = "cpm"

	// Altair8800 represents the MITS Altair 8800, the original Intel 8080
	// reference platform.
	Altair8800 System = "altair-8800"

	// GameBoy represents the Nintendo Game Boy handheld system, whose CPU
	// is a Z80 derivative with a reduced and altered instruction set.
	GameBoy System = "gameboy"

	// Generic represents a generic system without specific hardware quirks.
	// Can be used for any CPU architecture when no system-specific behavior is needed.
	Generic System = "generic"

	// ZXSpectrum represents the Sinclair ZX Spectrum home computer series.
	ZXSpectrum System = "zx-spectrum"
)

// allSupportedSystems defines the single source of truth for supported systems.
// Adding a new system requires updating only this slice.
var allSupportedSystems = []System{
	Altair8800,
	CPM,
	GameBoy,
	Generic,
	ZXSpectrum,
}

// supportedSystemsSet provides O(1) lookup performance for system validation.
var supportedSystemsSet = set.NewFromSlice(allSupportedSystems)

// String returns the string representation of the system.
func (s System) String() string {
	return string(s)
}

// IsValid returns true if the system is supported.
func (s System) IsValid() bool {
	return supportedSystemsSet.Contains(s)
}

// SystemFromString creates a System from a string.
// Returns the system and true if valid, or empty System and false if invalid.
// The comparison is case-insensitive.
func SystemFromString(s string) (System, bool) {
	sys := System(strings.ToLower(s))
	if sys.IsValid() {
		return sys, true
	}
	return "", false
}

// SupportedSystems returns a slice of all supported systems.
func SupportedSystems() []System {
	// Return a copy to prevent external mutation
	result := make([]System, len(allSupportedSystems))
	copy(result, allSupportedSystems)
	return result
}
