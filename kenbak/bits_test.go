package kenbak

import "testing"

func TestGetSetBit(t *testing.T) {
	var b uint8
	for i := uint8(0); i < 8; i++ {
		if got := getBit(b, i); got != 0 {
			t.Errorf("getBit(0, %d) = %d, wanted 0", i, got)
		}
	}

	for i := uint8(0); i < 8; i++ {
		b = setBit(0, i, 1)
		if got := getBit(b, i); got != 1 {
			t.Errorf("bit %d: getBit(setBit(0,%d,1)) = %d, wanted 1", i, i, got)
		}
		b = setBit(b, i, 0)
		if got := getBit(b, i); got != 0 {
			t.Errorf("bit %d: getBit(setBit(b,%d,0)) = %d, wanted 0", i, i, got)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	for n := uint8(1); n < 8; n++ {
		for v := 0; v < 256; v++ {
			got := rotateRight(rotateLeft(uint8(v), n), n)
			if got != uint8(v) {
				t.Errorf("rotateRight(rotateLeft(%#02x, %d), %d) = %#02x, wanted %#02x", v, n, n, got, v)
			}
		}
	}
}

func TestRotateZero(t *testing.T) {
	for v := 0; v < 256; v++ {
		if got := rotateLeft(uint8(v), 0); got != uint8(v) {
			t.Errorf("rotateLeft(%#02x, 0) = %#02x, wanted %#02x", v, got, v)
		}
		if got := rotateRight(uint8(v), 0); got != uint8(v) {
			t.Errorf("rotateRight(%#02x, 0) = %#02x, wanted %#02x", v, got, v)
		}
	}
}
