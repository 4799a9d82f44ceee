package kenbak

// effectiveValue resolves mode against operand byte o to the 8-bit
// value a read instruction (add, sub, load, and, or, load-complement)
// operates on (§4.4).
func (m *Machine) effectiveValue(mode addressingMode, o uint8) uint8 {
	switch mode {
	case modeImmediate:
		return o
	case modeMemoryDirect:
		return m.mem.read(o)
	case modeIndirect:
		return m.mem.read(m.mem.read(o))
	case modeIndexed:
		return m.mem.read(o + m.mem.read(RegX))
	case modeIndirectIndexed:
		return m.mem.read(m.mem.read(o) + m.mem.read(RegX))
	default:
		// Unreachable by well-formed KENBAK-1 programs (§4.3); fall
		// back to treating the operand as an immediate rather than
		// panicking.
		return o
	}
}

// effectiveAddress resolves mode against operand byte o to the
// address a write instruction (store) writes to, identically to
// effectiveValue up to the final dereference (§4.4). Jumps do not use
// it: opJump resolves its own direct or indirect target.
func (m *Machine) effectiveAddress(mode addressingMode, o uint8) uint8 {
	switch mode {
	case modeImmediate:
		return o
	case modeMemoryDirect:
		return o
	case modeIndirect:
		return m.mem.read(o)
	case modeIndexed:
		return o + m.mem.read(RegX)
	case modeIndirectIndexed:
		return m.mem.read(o) + m.mem.read(RegX)
	default:
		return o
	}
}
