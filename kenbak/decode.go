package kenbak

// class identifies which operation handler an opcode dispatches to.
// The KENBAK-1 opcode format is irregular: the bit fields that carry
// the operands overlap between classes, so the class has to be
// determined before any field can be safely extracted.
type class uint8

const (
	classHalt class = iota
	classNop
	classShiftRotate
	classSetBit
	classSkip
	classOr
	classAnd
	classLoadComplement
	classStore
	classLoad
	classSub
	classAdd
	classJump
)

// addressingMode is the operand-bearing classes' bits 2-0.
type addressingMode uint8

const (
	modeImmediate       addressingMode = 3
	modeMemoryDirect    addressingMode = 4
	modeIndirect        addressingMode = 5
	modeIndexed         addressingMode = 6
	modeIndirectIndexed addressingMode = 7
)

// jumpCondition is the jump class's bits 2-0.
type jumpCondition uint8

const (
	condUnconditional jumpCondition = iota
	condNonZero
	condZero
	condNegative
	condNonNegative
	condPositive
	condInvalid
)

// instruction is the decoded form of one opcode byte. It is a tagged
// variant: only the fields relevant to its class are meaningful. Its
// lifetime is a single instruction step.
type instruction struct {
	class class

	// add/sub/load/store
	reg  uint8 // RegA, RegB or RegX
	mode addressingMode

	// jump
	jumpReg  uint8 // register tested; ignored when cond == condUnconditional
	jumpCond jumpCondition
	mark     bool
	indirect bool

	// skip / set-bit
	bitIndex uint8
	setOne   bool // polarity: skip/set on one vs zero

	// shift/rotate
	srLeft   bool
	srRotate bool
	srReg    uint8
	srPlaces uint8
}

// decode classifies opcode b and extracts its fields. Classification
// follows the KENBAK-1's priority order (§4.2): the first matching
// class wins, which is what lets classes reuse the same bit positions
// for different purposes. An opcode matching nothing falls through to
// classHalt, the documented conservative choice for undefined
// encodings.
func decode(b uint8) instruction {
	switch {
	case b == 0x00:
		return instruction{class: classHalt}

	case b&0x07 == 0 && getBit(b, 7) == 1:
		return instruction{class: classNop}

	case b&0x07 == 1:
		return decodeShiftRotate(b)

	case b&0x07 == 2 && getBit(b, 7) == 1:
		return decodeSetSkip(b, true)

	case b&0x07 == 2 && getBit(b, 7) == 0:
		return decodeSetSkip(b, false)

	case b&0xF8 == 0xC0: // bits 7-3 == 0b11000
		return instruction{class: classOr, mode: addressingMode(b & 0x07)}

	case b&0xF8 == 0xD0: // bits 7-3 == 0b11010
		return instruction{class: classAnd, mode: addressingMode(b & 0x07)}

	case b&0xF8 == 0xD8: // bits 7-3 == 0b11011
		return instruction{class: classLoadComplement, mode: addressingMode(b & 0x07)}

	case b&0x38 == 0x18: // bits 5-3 == 0b011
		return instruction{class: classStore, reg: registerSelect(b), mode: addressingMode(b & 0x07)}

	case b&0x38 == 0x10: // bits 5-3 == 0b010
		return instruction{class: classLoad, reg: registerSelect(b), mode: addressingMode(b & 0x07)}

	case b&0x38 == 0x08: // bits 5-3 == 0b001
		return instruction{class: classSub, reg: registerSelect(b), mode: addressingMode(b & 0x07)}

	case b&0x38 == 0x00: // bits 5-3 == 0b000 (bits 7-6 == 11 already claimed by OR above)
		return instruction{class: classAdd, reg: registerSelect(b), mode: addressingMode(b & 0x07)}

	case getBit(b, 5) == 1:
		return decodeJump(b)

	default:
		return instruction{class: classHalt}
	}
}

// registerSelect maps bits 7-6 to a register address for the
// arithmetic/load/store classes. The encoding 0b10 is undocumented;
// the reference implementation folds it into A rather than rejecting
// it (§9).
func registerSelect(b uint8) uint8 {
	switch b & 0xC0 {
	case 0x00:
		return RegA
	case 0x40:
		return RegB
	case 0xC0:
		return RegX
	default: // 0x80, i.e. bits 7-6 == 0b10
		return RegA
	}
}

// decodeShiftRotate extracts the shift/rotate fields (§4.3). Places
// 0 is an alias for 4, per the KENBAK-1 programmer's manual.
func decodeShiftRotate(b uint8) instruction {
	places := (b & 0x18) >> 3
	if places == 0 {
		places = 4
	}
	return instruction{
		class:    classShiftRotate,
		srLeft:   getBit(b, 7) == 1,
		srRotate: getBit(b, 6) == 1,
		srReg:    (b & 0x20) >> 5, // 0 -> RegA, 1 -> RegB
		srPlaces: places,
	}
}

// decodeSetSkip extracts the shared skip/set-bit fields: a bit index
// (bits 5-3) and a polarity (bit 6). isSet chooses between the
// set-bit class (bit 2-0 == 0b010, bit 7 == 1) and the skip class
// (bit 2-0 == 0b010, bit 7 == 0).
func decodeSetSkip(b uint8, isSet bool) instruction {
	ins := instruction{
		bitIndex: (b & 0x38) >> 3,
		setOne:   getBit(b, 6) == 1,
	}
	if isSet {
		ins.class = classSetBit
	} else {
		ins.class = classSkip
	}
	return ins
}

// decodeJump extracts the jump fields. Jump uses its own register
// selection distinct from registerSelect: 0b00 means unconditional
// (no register is tested at all), 0b01 -> B, 0b10 -> X, 0b11 -> A.
func decodeJump(b uint8) instruction {
	cond := jumpConditionFromBits(b & 0x07)

	var reg uint8
	switch {
	case getBit(b, 7) == 1 && getBit(b, 6) == 1:
		reg = RegA
	case getBit(b, 6) == 1:
		reg = RegB
	case getBit(b, 7) == 1:
		reg = RegX
	default:
		cond = condUnconditional
	}

	return instruction{
		class:    classJump,
		jumpReg:  reg,
		jumpCond: cond,
		mark:     getBit(b, 4) == 1,
		indirect: getBit(b, 3) == 1,
	}
}

func jumpConditionFromBits(bits uint8) jumpCondition {
	switch bits {
	case 3:
		return condNonZero
	case 4:
		return condZero
	case 5:
		return condNegative
	case 6:
		return condNonNegative
	case 7:
		return condPositive
	default:
		return condInvalid
	}
}
