// Package kenbak implements the fetch/decode/execute core of a
// KENBAK-1 instruction-set emulator: the 256-byte memory-mapped
// register/IO model and the operation classes (twelve, plus halt) that
// operate on it.
//
// The front panel, GPIO/timing glue and any loader or debugger
// tooling are deliberately outside this package. They are external
// collaborators that this package only ever talks to through the
// Host interface and the Poke/Peek/RequestStop methods below.
package kenbak

import "sync/atomic"

// Host is the contract the core consumes from whatever drives it — a
// front panel, a headless CLI runner, a test harness. StopRequested
// is polled once between instructions; Throttle is called once per
// instruction and is expected to sleep approximately one millisecond
// to approximate the reference machine's ~1000 instructions/second.
// Neither is called from within a single instruction's execution.
type Host interface {
	StopRequested() bool
	Throttle()
}

// nullHost never asks to stop and never throttles. It's the default
// host for Step-driven use (tests, single-stepping) where no run loop
// is active.
type nullHost struct{}

func (nullHost) StopRequested() bool { return false }
func (nullHost) Throttle()           {}

// Machine is one KENBAK-1: its entire state is the 256-byte memory
// image. A and B general registers, X index register and P program
// counter all live inside that image (§3) — Machine never caches
// them in separate fields, so a program that overwrites address 3
// mid-run is observed on the very next fetch.
type Machine struct {
	mem  memory
	host Host

	// stopRequested is set by RequestStop and is distinct from the
	// host's own StopRequested predicate: either one halts the run
	// loop. It may be set from a goroutine other than the one
	// running Run, hence atomic.
	stopRequested atomic.Bool
}

// New returns a Machine with zeroed memory, driven by host. A nil
// host is equivalent to nullHost{} and is useful for Step-only
// testing.
func New(host Host) *Machine {
	if host == nil {
		host = nullHost{}
	}
	return &Machine{host: host}
}

// Reset zeroes memory and sets P to 0 (§6).
func (m *Machine) Reset() {
	m.mem = memory{}
	m.mem.write(RegP, 0)
	m.stopRequested.Store(false)
}

// Peek reads the memory cell at addr, including register and I/O
// cells — there is no distinction at this level (§3).
func (m *Machine) Peek(addr uint8) uint8 {
	return m.mem.read(addr)
}

// Poke writes val to the memory cell at addr. Hosts use this to
// deliver INPUT bytes, load programs, or inspect/modify state between
// instructions.
func (m *Machine) Poke(addr uint8, val uint8) {
	m.mem.write(addr, val)
}

// RequestStop asynchronously asks the run loop to halt at the next
// instruction boundary. Safe to call concurrently with Run.
func (m *Machine) RequestStop() {
	m.stopRequested.Store(true)
}

// Run sets P to 4 (the reset vector — program code begins at address
// 4 by convention) and executes instructions until a halt opcode, a
// stop request (from either RequestStop or the host's
// StopRequested), or an unrecognized opcode, which is treated as a
// halt (§4.12, §7).
func (m *Machine) Run() {
	m.mem.write(RegP, 4)
	m.stopRequested.Store(false)

	for {
		if m.stopRequested.Load() || m.host.StopRequested() {
			return
		}
		if !m.Step() {
			return
		}
		m.host.Throttle()
	}
}

// Step executes exactly one instruction starting at the current P and
// reports whether execution should continue (false on halt). It does
// not consult the host's stop signal or throttle — that's Run's job —
// which makes it useful for single-stepping from a debugger or a
// test.
func (m *Machine) Step() bool {
	pc := m.mem.read(RegP)
	op := m.mem.read(pc)
	m.mem.write(RegP, pc+1)

	ins := decode(op)
	if ins.class == classHalt {
		return false
	}

	m.execute(ins)
	return true
}

// execute dispatches a decoded instruction to its handler. Each
// handler is responsible for consuming any operand byte (advancing P)
// and for whatever side effects its class documents.
func (m *Machine) execute(ins instruction) {
	switch ins.class {
	case classNop:
		m.opNop()
	case classShiftRotate:
		m.opShiftRotate(ins)
	case classSetBit:
		m.opSetBit(ins)
	case classSkip:
		m.opSkip(ins)
	case classOr:
		m.opOr(ins)
	case classAnd:
		m.opAnd(ins)
	case classLoadComplement:
		m.opLoadComplement(ins)
	case classStore:
		m.opStore(ins)
	case classLoad:
		m.opLoad(ins)
	case classSub:
		m.opSub(ins)
	case classAdd:
		m.opAdd(ins)
	case classJump:
		m.opJump(ins)
	}
}

// fetchOperand reads the byte following the opcode and advances P
// past it, per the universal invariant that P advances by exactly
// (1 + operand-bytes-consumed) unless the instruction itself writes P
// (§3, §4.12).
func (m *Machine) fetchOperand() uint8 {
	pc := m.mem.read(RegP)
	o := m.mem.read(pc)
	m.mem.write(RegP, pc+1)
	return o
}
