package z80

import (
	"time"
)

// TimedRunner paces repeated Execute calls against a target clock
// frequency by comparing elapsed cycle count to elapsed wall time between
// quanta and sleeping the difference. It depends only on CPU's public
// surface, so it is an optional second entry point rather than part of
// the core step function (§6, §9).
type TimedRunner struct {
	cpu      *CPU
	machine  Machine
	hz       float64
	quantum  uint64
	start    time.Time
	baseline uint64
}

// NewTimedRunner returns a TimedRunner driving cpu against machine at the
// given clock frequency in MHz, pacing every quantum cycles.
func NewTimedRunner(cpu *CPU, machine Machine, mhz float64, quantum uint64) *TimedRunner {
	return &TimedRunner{
		cpu:     cpu,
		machine: machine,
		hz:      mhz * 1_000_000,
		quantum: quantum,
	}
}

// Run drives the CPU until stop returns true, sleeping between quanta to
// match the configured frequency.
func (tr *TimedRunner) Run(stop func() bool) {
	tr.start = time.Now()
	tr.baseline = tr.cpu.CycleCount()

	for !stop() {
		quantumStart := tr.cpu.CycleCount()
		for tr.cpu.CycleCount()-quantumStart < tr.quantum && !stop() {
			tr.cpu.Execute(tr.machine)
		}
		tr.pace()
	}
}

func (tr *TimedRunner) pace() {
	elapsedCycles := tr.cpu.CycleCount() - tr.baseline
	wantElapsed := time.Duration(float64(elapsedCycles) / tr.hz * float64(time.Second))
	actualElapsed := time.Since(tr.start)
	if wantElapsed > actualElapsed {
		time.Sleep(wantElapsed - actualElapsed)
	}
}
