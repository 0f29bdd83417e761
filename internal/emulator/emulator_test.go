package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beebgo/internal/video"
)

type blankGlyphs struct{}

func (blankGlyphs) Glyph(code byte) [8]byte { return [8]byte{} }

func TestStepOrderingMatchesCpuViaCrtcIrqClear(t *testing.T) {
	e := New(blankGlyphs{}, 320)
	e.Mem.Write(0xFFFC, 0x00)
	e.Mem.Write(0xFFFD, 0x80)
	e.Initialize()

	e.Mem.Write(0x8000, 0xEA) // NOP
	fb := video.NewFrameBuffer(320, 256)

	result, cycles, err := e.Step(fb)
	assert.NoError(t, err)
	assert.Equal(t, Progressed, result)
	assert.Equal(t, 2, cycles)

	_, ok := e.Mem.LastHWRead()
	assert.False(t, ok, "last-hw-access markers must be cleared after Step")
}

func TestPlaceROMAtCopiesBytes(t *testing.T) {
	e := New(blankGlyphs{}, 320)
	e.PlaceROMAt(0xC000, []byte{0xDE, 0xAD, 0xBE, 0xEF})

	assert.Equal(t, byte(0xDE), e.Mem.Read(0xC000))
	assert.Equal(t, byte(0xEF), e.Mem.Read(0xC003))
}

func TestPagedROMSwitchViaRegister(t *testing.T) {
	e := New(blankGlyphs{}, 320)

	rom0 := make([]byte, 0x4000)
	rom0[0] = 0x11
	rom1 := make([]byte, 0x4000)
	rom1[0] = 0x22
	e.AddPagedROM(rom0)
	e.AddPagedROM(rom1)

	e.Mem.Write(0xFE30, 0)
	assert.Equal(t, byte(0x11), e.Mem.Read(0x8000))

	e.Mem.Write(0xFE30, 1)
	assert.Equal(t, byte(0x22), e.Mem.Read(0x8000))
}

func TestKeyDownAndClearKeyboardBuffer(t *testing.T) {
	e := New(blankGlyphs{}, 320)
	e.KeyDown(10)
	assert.Equal(t, 1, e.Via.Len())
	e.ClearKeyboardBuffer()
	assert.Equal(t, 0, e.Via.Len())
}
