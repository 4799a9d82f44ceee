package kenbak

// opAdd and opSub share the KENBAK-1's documented flag anomaly: both
// compute their carry/overflow from reg+v rather than sub computing
// it from reg-v. The reference firmware does this (almost certainly a
// bug, per the programmer's notes), and it is preserved here verbatim
// rather than silently corrected, so historical binaries that depend
// on the observed behavior still run correctly.
func (m *Machine) opAdd(ins instruction) {
	o := m.fetchOperand()
	v := m.effectiveValue(ins.mode, o)
	reg := m.mem.read(ins.reg)

	sum := uint16(reg) + uint16(v)
	m.mem.write(ins.reg, uint8(sum))
	m.setArithmeticFlags(ins.reg, sum)
}

func (m *Machine) opSub(ins instruction) {
	o := m.fetchOperand()
	v := m.effectiveValue(ins.mode, o)
	reg := m.mem.read(ins.reg)

	sum := uint16(reg) + uint16(v) // anomaly: same expression as add
	m.mem.write(ins.reg, reg-v)
	m.setArithmeticFlags(ins.reg, sum)
}

// setArithmeticFlags writes the carry (bit 1) and overflow (bit 0)
// bits of reg's flag cell from the 9-bit sum s, leaving the rest of
// the flag cell untouched (§4.5, §9).
func (m *Machine) setArithmeticFlags(reg uint8, s uint16) {
	addr := flagAddr(reg)
	flags := m.mem.read(addr)
	flags = setBit(flags, flagCarryBit, boolBit(s > 0xFF))
	flags = setBit(flags, flagOverflowBit, boolBit(s > 0x7F))
	m.mem.write(addr, flags)
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) opLoad(ins instruction) {
	o := m.fetchOperand()
	m.mem.write(ins.reg, m.effectiveValue(ins.mode, o))
}

func (m *Machine) opStore(ins instruction) {
	o := m.fetchOperand()
	addr := m.effectiveAddress(ins.mode, o)
	m.mem.write(addr, m.mem.read(ins.reg))
}

func (m *Machine) opAnd(ins instruction) {
	o := m.fetchOperand()
	a := m.mem.read(RegA)
	m.mem.write(RegA, a&m.effectiveValue(ins.mode, o))
}

func (m *Machine) opOr(ins instruction) {
	o := m.fetchOperand()
	a := m.mem.read(RegA)
	m.mem.write(RegA, a|m.effectiveValue(ins.mode, o))
}

func (m *Machine) opLoadComplement(ins instruction) {
	o := m.fetchOperand()
	v := m.effectiveValue(ins.mode, o)
	m.mem.write(RegA, -v) // two's-complement negation, wrapping mod 256
}

// opJump reads the operand byte, resolves the (possibly indirect)
// target, and, if mark-and-link, writes the pre-operand-read P into
// the target before advancing it by one — providing a primitive
// subroutine call. P only transfers to target when the tested
// condition holds; otherwise it's left just past the operand, i.e. no
// transfer (§4.7).
func (m *Machine) opJump(ins instruction) {
	pBeforeOperand := m.mem.read(RegP)
	o := m.fetchOperand()

	if ins.jumpCond == condInvalid {
		return
	}

	target := o
	if ins.indirect {
		target = m.mem.read(o)
	}

	if !m.jumpConditionHolds(ins) {
		return
	}

	if ins.mark {
		m.mem.write(target, pBeforeOperand)
		target++
	}

	m.mem.write(RegP, target)
}

func (m *Machine) jumpConditionHolds(ins instruction) bool {
	if ins.jumpCond == condUnconditional {
		return true
	}

	v := int8(m.mem.read(ins.jumpReg))
	switch ins.jumpCond {
	case condNonZero:
		return v != 0
	case condZero:
		return v == 0
	case condNegative:
		return v < 0
	case condNonNegative:
		return v >= 0
	case condPositive:
		return v > 0
	default:
		return false
	}
}

// opSkip tests bit bitIndex of memory[operand]; on a match it skips
// the two-byte instruction that follows by advancing P an extra 2
// bytes (§4.8).
func (m *Machine) opSkip(ins instruction) {
	o := m.fetchOperand()
	bit := getBit(m.mem.read(o), ins.bitIndex)

	matched := bit == 0
	if ins.setOne {
		matched = bit == 1
	}
	if matched {
		m.mem.write(RegP, m.mem.read(RegP)+2)
	}
}

// opSetBit sets or clears bit bitIndex of memory[operand] — the
// instruction's sole memory mutation (§4.9).
func (m *Machine) opSetBit(ins instruction) {
	o := m.fetchOperand()
	v := uint8(0)
	if ins.setOne {
		v = 1
	}
	m.mem.write(o, setBit(m.mem.read(o), ins.bitIndex, v))
}

// opShiftRotate operates directly on the selected register's cell.
// It is a one-byte instruction — no operand is read — and never
// touches flags (§4.10).
func (m *Machine) opShiftRotate(ins instruction) {
	v := m.mem.read(ins.srReg)

	var nv uint8
	switch {
	case !ins.srRotate && ins.srLeft:
		nv = v << ins.srPlaces
	case !ins.srRotate && !ins.srLeft:
		nv = v >> ins.srPlaces
	case ins.srRotate && ins.srLeft:
		nv = rotateLeft(v, ins.srPlaces)
	default:
		nv = rotateRight(v, ins.srPlaces)
	}

	m.mem.write(ins.srReg, nv)
}

// opNop consumes the second, ignored byte of the two-byte no-op
// instruction (§4.11).
func (m *Machine) opNop() {
	m.fetchOperand()
}
