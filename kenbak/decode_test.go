package kenbak

import "testing"

func TestDecodeClass(t *testing.T) {
	cases := []struct {
		name string
		op   uint8
		want class
	}{
		{"halt", 0x00, classHalt},
		{"nop", 0x80, classNop},
		{"shift/rotate", 0xC1, classShiftRotate},
		{"set-bit", 0xD2, classSetBit}, // bits2-0==010, bit7==1
		{"skip", 0x52, classSkip},      // bits2-0==010, bit7==0
		{"or", 0xC3, classOr},          // bits7-3==0b11000
		{"and", 0xD3, classAnd},        // bits7-3==0b11010
		{"load-complement", 0xDB, classLoadComplement},
		{"store", 0x1D, classStore}, // bits5-3==0b011
		{"load", 0x13, classLoad},   // bits5-3==0b010
		{"sub", 0x0B, classSub},     // bits5-3==0b001
		{"add", 0x03, classAdd},     // bits5-3==0b000
		{"jump", 0x23, classJump}, // bit5==1, unclaimed otherwise
		// Every other byte value is claimed by one of the rules above:
		// bit5==0 always leaves S (bits 5-3) in {0,1,2,3}, which always
		// matches OR/AND/load-complement or one of add/sub/load/store;
		// bit5==1 always matches jump. The classHalt fallthrough exists
		// for defensive completeness (§4.2) but no byte value reaches it.
	}

	for _, tc := range cases {
		if got := decode(tc.op).class; got != tc.want {
			t.Errorf("%s: decode(%#02x).class = %v, wanted %v", tc.name, tc.op, got, tc.want)
		}
	}
}

func TestRegisterSelect(t *testing.T) {
	cases := []struct {
		bits76 uint8
		want   uint8
	}{
		{0x00, RegA},
		{0x40, RegB},
		{0xC0, RegX},
		{0x80, RegA}, // undocumented 0b10 folds to A
	}
	for _, tc := range cases {
		if got := registerSelect(tc.bits76 | 0x03); got != tc.want {
			t.Errorf("registerSelect(bits7-6=%#02x) = %d, wanted %d", tc.bits76, got, tc.want)
		}
	}
}

func TestDecodeShiftRotateFields(t *testing.T) {
	// rotate left, register A, places 0 (-> 4)
	ins := decode(0xC1)
	if !ins.srLeft || !ins.srRotate || ins.srReg != RegA || ins.srPlaces != 4 {
		t.Errorf("decode(0xC1) = %+v, wanted left=true rotate=true reg=A places=4", ins)
	}

	// shift right, register B, places 3
	ins = decode(0x39)
	if ins.srLeft || ins.srRotate || ins.srReg != RegB || ins.srPlaces != 3 {
		t.Errorf("decode(0x39) = %+v, wanted left=false rotate=false reg=B places=3", ins)
	}
}

func TestDecodeSkipSetBitFields(t *testing.T) {
	ins := decode(0x52) // skip, bit index 2, skip-on-one
	if ins.class != classSkip || ins.bitIndex != 2 || !ins.setOne {
		t.Errorf("decode(0x52) = %+v, wanted skip bitIndex=2 setOne=true", ins)
	}

	ins = decode(0xD2) // set-bit, bit index 2, set-to-one
	if ins.class != classSetBit || ins.bitIndex != 2 || !ins.setOne {
		t.Errorf("decode(0xD2) = %+v, wanted setBit bitIndex=2 setOne=true", ins)
	}
}

func TestDecodeJumpRegisterSelection(t *testing.T) {
	cases := []struct {
		op       uint8
		wantReg  uint8
		wantCond jumpCondition
	}{
		{0x23, 0, condUnconditional},        // bits7-6 == 00
		{0x63, RegB, condNonZero},           // bits7-6 == 01
		{0xA3, RegX, condNonZero},           // bits7-6 == 10
		{0xE3, RegA, condNonZero},           // bits7-6 == 11
		{0x60, RegB, condInvalid},           // bits2-0 == 0, not in 3..7
	}
	for _, tc := range cases {
		ins := decode(tc.op)
		if ins.class != classJump {
			t.Fatalf("decode(%#02x).class = %v, wanted classJump", tc.op, ins.class)
		}
		if ins.jumpCond != tc.wantCond {
			t.Errorf("decode(%#02x).jumpCond = %v, wanted %v", tc.op, ins.jumpCond, tc.wantCond)
		}
		if tc.wantCond != condUnconditional && ins.jumpReg != tc.wantReg {
			t.Errorf("decode(%#02x).jumpReg = %d, wanted %d", tc.op, ins.jumpReg, tc.wantReg)
		}
	}
}

func TestDecodeJumpMarkIndirect(t *testing.T) {
	ins := decode(0x30) // unconditional, mark set, indirect clear
	if !ins.mark || ins.indirect {
		t.Errorf("decode(0x30) = %+v, wanted mark=true indirect=false", ins)
	}

	ins = decode(0x38) // unconditional, mark set, indirect set
	if !ins.mark || !ins.indirect {
		t.Errorf("decode(0x38) = %+v, wanted mark=true indirect=true", ins)
	}
}
