package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beebgo/internal/memory"
)

type fakeGlyphs struct{}

func (fakeGlyphs) Glyph(code byte) [8]byte {
	return [8]byte{0xFF, 0, 0, 0, 0, 0, 0, 0}
}

func newTestCrtc() (*Crtc6845, *memory.Map) {
	mem := memory.New()
	v := New(fakeGlyphs{}, 320)
	v.AddHWWindow(mem)
	return v, mem
}

// selectAndWrite performs the register-select write and lets the CRTC
// observe it before the data write replaces the one-slot marker; the
// caller then lets the CRTC observe the data write.
func selectAndWrite(v *Crtc6845, mem *memory.Map, reg, val byte) {
	mem.Write(RegSelect, reg)
	v.processAccess(mem)
	mem.Write(RegData, val)
}

func TestNotInitializedUntilRegistersProgrammed(t *testing.T) {
	v, mem := newTestCrtc()
	v.processAccess(mem)
	v.tick(mem, nil)
	assert.IsType(t, NotInitialized{}, v.state)

	selectAndWrite(v, mem, regHorizontalDisplayed, 40)
	v.processAccess(mem)
	selectAndWrite(v, mem, regVerticalDisplayed, 25)
	v.processAccess(mem)
	selectAndWrite(v, mem, regStartAddrHi, 0x30)
	v.processAccess(mem)
	selectAndWrite(v, mem, regStartAddrLo, 0x00)
	v.processAccess(mem)

	// NotInitialized -> NewFrame -> DisplayingLine and that line's first
	// cell render are all free within this one cycle; only the render
	// spends it.
	fb := NewFrameBuffer(320, 256)
	v.tick(mem, fb)
	assert.IsType(t, DisplayingLine{}, v.state)
}

func TestTeletextVideoControlBitTogglesMode(t *testing.T) {
	v, mem := newTestCrtc()
	mem.Write(VideoControl, 0x02)
	v.processAccess(mem)
	assert.True(t, v.teletext)

	mem.Write(VideoControl, 0x00)
	v.processAccess(mem)
	assert.False(t, v.teletext)
}

func TestScanoutAdvancesColumnThenScanlineThenRow(t *testing.T) {
	v, mem := newTestCrtc()
	v.teletext = true
	v.registers[regHorizontalDisplayed] = 2
	v.registers[regVerticalDisplayed] = 1
	v.registers[regScanlinesPerChar] = 0

	v.state = NewFrame{Start: 0x7C00}
	fb := NewFrameBuffer(16, 19)

	// NewFrame -> DisplayingLine is free; tick spends its cycle on the
	// line's first cell render.
	v.tick(mem, fb)
	assert.Equal(t, DisplayingLine{LineAddr: 0x7C00, Row: 0, Col: 1, Scanline: 0}, v.state)

	// render col 1, advance to col 2
	v.tick(mem, fb)
	assert.Equal(t, DisplayingLine{LineAddr: 0x7C00, Row: 0, Col: 2, Scanline: 0}, v.state)

	// col (2) >= horizontalDisplayed (2): scanline 0->1 >= scanlinesPerChar+1
	// (1), so this line is done -> EndOfLine -> (rows done) NewFrame ->
	// DisplayingLine -> the next frame's first cell render, all within
	// this one cycle. None of those housekeeping transitions may cost a
	// cycle of their own.
	v.tick(mem, fb)
	dl, ok := v.state.(DisplayingLine)
	assert.True(t, ok, "housekeeping transitions must not stop short of rendering a cell")
	assert.Equal(t, 1, dl.Col)
}

func TestEndOfLineWrapsToNewFrameAfterLastRow(t *testing.T) {
	v, mem := newTestCrtc()
	v.registers[regHorizontalDisplayed] = 2
	v.registers[regVerticalDisplayed] = 1
	v.state = EndOfLine{NextAddr: 0x8000, Rows: 1}

	// EndOfLine -> NewFrame -> DisplayingLine -> first-cell render of the
	// next frame all happen within this one cycle.
	fb := NewFrameBuffer(16, 19)
	v.tick(mem, fb)
	assert.IsType(t, DisplayingLine{}, v.state)
}
