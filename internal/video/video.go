// Package video implements the 6845-style CRTC: its 18 programmable
// registers, the select/data register-write protocol, and the scanout
// state machine that renders teletext or bitmap-mode character cells into
// a framebuffer one cycle at a time.
package video

import (
	"image"
	"image/color"

	"beebgo/internal/memory"
)

const (
	RegSelect = 0xFE00
	RegData   = 0xFE01

	VideoControl = 0xFE20
	Palette      = 0xFE21

	// register indices within the 18-entry bank
	regHorizontalDisplayed = 1
	regVerticalDisplayed   = 6
	regScanlinesPerChar    = 9
	regStartAddrHi         = 12
	regStartAddrLo         = 13
)

const (
	cellWidth    = 8
	cellHeight   = 19 // 8 visible rows padded to the BBC's 19-scanline teletext cell
	pixelPerByte = 8
)

// GlyphProvider supplies one 8-row bitmap per character code; each row's
// most-significant bit is the leftmost pixel.
type GlyphProvider interface {
	Glyph(code byte) [8]byte
}

// FrameBuffer is the RGBA pixel target the CRTC renders into.
type FrameBuffer struct {
	*image.RGBA
}

// NewFrameBuffer allocates a framebuffer of the given pixel dimensions.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (fb *FrameBuffer) setPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= fb.Rect.Dx() || y >= fb.Rect.Dy() {
		return
	}
	c := color.RGBA{0, 0, 0, 0xFF}
	if on {
		c = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	}
	fb.Set(x, y, c)
}

// ScanState is the CRTC's scanout phase. It's modeled as an interface
// with four implementing structs, one per phase, each carrying only the
// fields that phase needs.
type ScanState interface {
	isScanState()
}

type NotInitialized struct{}

type NewFrame struct {
	Start uint16
}

type DisplayingLine struct {
	LineAddr uint16
	Row      int
	Col      int
	Scanline int
}

type EndOfLine struct {
	NextAddr uint16
	Rows     int
}

func (NotInitialized) isScanState() {}
func (NewFrame) isScanState()       {}
func (DisplayingLine) isScanState() {}
func (EndOfLine) isScanState()      {}

// Crtc6845 is the CRTC core.
type Crtc6845 struct {
	registers   [18]byte
	selectedReg byte
	hasSelected bool

	teletext bool

	state ScanState

	glyphs GlyphProvider
	width  int
}

// New returns a CRTC with no registers programmed and scanout
// uninitialized.
func New(glyphs GlyphProvider, frameWidth int) *Crtc6845 {
	return &Crtc6845{state: NotInitialized{}, glyphs: glyphs, width: frameWidth}
}

// AddHWWindow declares this CRTC's register addresses as hardware windows.
func (v *Crtc6845) AddHWWindow(mem *memory.Map) {
	mem.AddHWWindow(memory.AddressRange{Start: RegSelect, End: RegData + 1})
	mem.AddHWWindow(memory.AddressRange{Start: VideoControl, End: Palette + 1})
}

func (v *Crtc6845) horizontalDisplayed() int { return int(v.registers[regHorizontalDisplayed]) }
func (v *Crtc6845) verticalDisplayed() int   { return int(v.registers[regVerticalDisplayed]) }
func (v *Crtc6845) scanlinesPerChar() int    { return int(v.registers[regScanlinesPerChar]) }

func (v *Crtc6845) startAddress() uint16 {
	hi := v.registers[regStartAddrHi]
	lo := v.registers[regStartAddrLo]
	if v.teletext {
		return uint16((hi^0x20)+0x74)<<8 | uint16(lo)
	}
	return (uint16(hi)<<8 | uint16(lo)) << 3
}

func (v *Crtc6845) processAccess(mem *memory.Map) {
	if addr, val, ok := mem.LastHWWrite(); ok {
		switch addr {
		case RegSelect:
			v.selectedReg = val
			v.hasSelected = true
		case RegData:
			if v.hasSelected && int(v.selectedReg) < len(v.registers) {
				v.registers[v.selectedReg] = val
			}
		case VideoControl:
			v.teletext = val&0x02 != 0
		}
	}
}

// Step advances the scanout state machine by cycles CPU cycles, reacting
// to whatever CRTC-relevant hardware access just occurred and rendering
// into fb.
func (v *Crtc6845) Step(cycles int, mem *memory.Map, fb *FrameBuffer) {
	v.processAccess(mem)

	for i := 0; i < cycles; i++ {
		v.tick(mem, fb)
	}
}

// tick spends one cycle. Housekeeping transitions between ScanState
// values (NewFrame -> DisplayingLine, the scanline/row advance inside
// DisplayingLine, EndOfLine -> DisplayingLine/NewFrame) are free and loop
// within the same cycle; the loop only stops once a character cell has
// actually been rendered, or the machine is idle (NotInitialized with
// registers not yet programmed).
func (v *Crtc6845) tick(mem *memory.Map, fb *FrameBuffer) {
	for {
		switch s := v.state.(type) {
		case NotInitialized:
			if v.horizontalDisplayed() == 0 || v.verticalDisplayed() == 0 || v.startAddress() == 0 {
				return
			}
			v.state = NewFrame{Start: v.startAddress()}

		case NewFrame:
			v.state = DisplayingLine{LineAddr: s.Start, Row: 0, Col: 0, Scanline: 0}

		case DisplayingLine:
			if s.Col >= v.horizontalDisplayed() {
				scanline := s.Scanline + 1
				lineAddr := s.LineAddr
				if !v.teletext {
					lineAddr++
				}
				if scanline >= v.scanlinesPerChar()+1 {
					var nextAddr uint16
					if v.teletext {
						nextAddr = s.LineAddr + uint16(v.horizontalDisplayed())
					} else {
						nextAddr = s.LineAddr + uint16((v.horizontalDisplayed()-1)*8)
					}
					v.state = EndOfLine{NextAddr: nextAddr, Rows: s.Row + 1}
				} else {
					v.state = DisplayingLine{LineAddr: lineAddr, Row: s.Row, Col: 0, Scanline: scanline}
				}
				continue
			}

			v.renderCell(mem, fb, s)
			v.state = DisplayingLine{LineAddr: s.LineAddr, Row: s.Row, Col: s.Col + 1, Scanline: s.Scanline}
			return

		case EndOfLine:
			if s.Rows >= v.verticalDisplayed() {
				v.state = NewFrame{Start: v.startAddress()}
			} else {
				v.state = DisplayingLine{LineAddr: s.NextAddr, Row: s.Rows, Col: 0, Scanline: 0}
			}
		}
	}
}

func (v *Crtc6845) renderCell(mem *memory.Map, fb *FrameBuffer, s DisplayingLine) {
	if v.teletext {
		v.renderTeletextCell(mem, fb, s)
		return
	}
	v.renderBitmapCell(mem, fb, s)
}

func (v *Crtc6845) renderTeletextCell(mem *memory.Map, fb *FrameBuffer, s DisplayingLine) {
	addr := s.LineAddr + uint16(s.Col)
	code := mem.Read(addr) - 0x20
	if v.glyphs == nil {
		return
	}
	glyph := v.glyphs.Glyph(code)
	if s.Scanline >= len(glyph) {
		return
	}
	row := glyph[s.Scanline]
	baseX := s.Col * cellWidth
	baseY := s.Row*cellHeight + s.Scanline
	for bit := 0; bit < 8; bit++ {
		on := row&(0x80>>uint(bit)) != 0
		fb.setPixel(baseX+bit, baseY, on)
	}
}

func (v *Crtc6845) renderBitmapCell(mem *memory.Map, fb *FrameBuffer, s DisplayingLine) {
	addr := s.LineAddr + uint16(s.Col*8)
	b := mem.Read(addr)
	baseX := s.Col * cellWidth
	baseY := s.Row*v.scanlinesPerChar() + s.Scanline
	for bit := 0; bit < pixelPerByte; bit++ {
		on := b&(0x80>>uint(bit)) != 0
		fb.setPixel(baseX+bit, baseY, on)
	}
}
