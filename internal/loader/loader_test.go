package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoker struct {
	mem [256]uint8
}

func (f *fakePoker) Poke(addr, val uint8) { f.mem[addr] = val }

func TestLoadAtOrigin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x03, 0x01, 0x00}, 0644))

	p := &fakePoker{}
	require.NoError(t, Load(p, path, 4))

	assert.Equal(t, uint8(0x03), p.mem[4])
	assert.Equal(t, uint8(0x01), p.mem[5])
	assert.Equal(t, uint8(0x00), p.mem[6])
}

func TestLoadTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bin")
	data := make([]byte, 200)
	require.NoError(t, os.WriteFile(path, data, 0644))

	p := &fakePoker{}
	err := Load(p, path, 100) // 100+200 > 256
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	p := &fakePoker{}
	err := Load(p, "/nonexistent/path/to/nothing.bin", 4)
	assert.Error(t, err)
}
