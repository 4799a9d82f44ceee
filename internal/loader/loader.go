// Package loader reads a raw KENBAK-1 memory image from disk and pokes
// it into a kenbak.Machine. It is deliberately minimal: no assembler,
// no disassembler, no symbol table — the core's Non-goals exclude all
// three. A "program" here is just up to 256 bytes, loaded starting at
// a chosen origin address.
package loader

import (
	"fmt"
	"os"

	"github.com/mkessler/kenbak1/kenbak"
)

// MaxSize is the number of addressable bytes in a KENBAK-1 memory
// image; a load that doesn't fit is rejected rather than silently
// truncated.
const MaxSize = 256

// Poker is the subset of kenbak.Machine that Load needs, so tests can
// substitute a fake without spinning up a real Machine.
type Poker interface {
	Poke(addr, val uint8)
}

// Load reads the file at path and pokes its bytes into m starting at
// org. It returns an error if the file can't be read or its contents
// don't fit in the 256-byte address space from org onward.
func Load(m Poker, path string, org uint8) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read program %q: %w", path, err)
	}
	if int(org)+len(data) > MaxSize {
		return fmt.Errorf("program %q (%d bytes at origin %#02x) doesn't fit in %d-byte memory", path, len(data), org, MaxSize)
	}

	for i, b := range data {
		m.Poke(org+uint8(i), b)
	}
	return nil
}

// compile-time assertion that *kenbak.Machine satisfies Poker.
var _ Poker = (*kenbak.Machine)(nil)
