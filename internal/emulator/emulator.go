// Package emulator wires the CPU, system VIA and CRTC into the
// cycle-scheduled orchestration loop: CPU, then VIA, then CRTC, then any
// pending interrupt request, then clear the hardware-access markers.
package emulator

import (
	"beebgo/internal/cpu"
	"beebgo/internal/memory"
	"beebgo/internal/via"
	"beebgo/internal/video"
)

// StepResult reports what happened during one Step call.
type StepResult int

const (
	Progressed StepResult = iota
	Paused
	Exit
)

// Emulator owns the whole machine: memory, CPU, system VIA and CRTC.
type Emulator struct {
	Cpu   *cpu.Cpu
	Mem   *memory.Map
	Video *video.Crtc6845
	Via   *via.System
}

// New wires up an Emulator. glyphs and frameWidth configure the CRTC;
// pagedROMReg and the hardware windows for the VIA/CRTC register banks
// are installed here so the memory map and peripherals agree on which
// addresses trigger reactive behavior.
func New(glyphs video.GlyphProvider, frameWidth int) *Emulator {
	mem := memory.New()
	mem.SetPagedROMRegister(0xFE30)

	v := via.New()
	v.AddHWWindow(mem)

	crtc := video.New(glyphs, frameWidth)
	crtc.AddHWWindow(mem)

	return &Emulator{
		Cpu:   cpu.New(mem),
		Mem:   mem,
		Video: crtc,
		Via:   v,
	}
}

// PlaceROMAt copies rom into memory starting at addr, clamped to the end
// of the address space.
func (e *Emulator) PlaceROMAt(addr uint16, rom []byte) {
	e.Mem.Blit(addr, rom)
}

// AddPagedROM registers a 16 KiB sideways-ROM image for later selection
// via the 0xFE30 paged-ROM register.
func (e *Emulator) AddPagedROM(rom []byte) int {
	return e.Mem.AddPagedROM(rom)
}

// Initialize loads the CPU's reset vector and zeroes its low-memory
// scratch region.
func (e *Emulator) Initialize() {
	e.Cpu.Initialize()
}

// Step executes exactly one CPU instruction and lets every peripheral
// react to it, in this fixed order:
//
//  1. CPU executes one instruction, yielding a cycle count.
//  2. The system VIA consumes those cycles, reacting to whatever
//     hardware-window access the CPU just made, and may request an IRQ.
//  3. The CRTC consumes those cycles, advancing the scanout state
//     machine and rendering into fb.
//  4. If the VIA requested an IRQ, the CPU services it.
//  5. The memory map's last-HW-access markers are cleared.
func (e *Emulator) Step(fb *video.FrameBuffer) (StepResult, int, error) {
	cycles, err := e.Cpu.Step()
	if err != nil {
		return Exit, 0, err
	}

	irq := false
	e.Via.Step(cycles, e.Mem, func() { irq = true })
	e.Video.Step(cycles, e.Mem, fb)

	if irq {
		e.Cpu.InterruptRequest()
	}

	e.Mem.ClearLastHWAccess()
	return Progressed, cycles, nil
}

// KeyDown forwards a host key press into the VIA's keyboard ring.
func (e *Emulator) KeyDown(key uint32) {
	e.Via.KeyDown(key)
}

// ClearKeyboardBuffer empties the VIA's keyboard ring.
func (e *Emulator) ClearKeyboardBuffer() {
	e.Via.ClearKeyboardBuffer()
}
