package debugger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"beebgo/internal/emulator"
)

type blankGlyphs struct{}

func (blankGlyphs) Glyph(code byte) [8]byte { return [8]byte{} }

func TestBackendStepCommandEmitsInstructionResponse(t *testing.T) {
	emu := emulator.New(blankGlyphs{}, 320)
	emu.Mem.Write(0xFFFC, 0x00)
	emu.Mem.Write(0xFFFD, 0x80)
	emu.Initialize()
	emu.Mem.Write(0x8000, 0xEA) // NOP

	var out bytes.Buffer
	b := NewBackend(emu, &out)

	b.Send(Cmd{Kind: cmdStep, Count: 1})
	b.drain()

	r := <-b.Responses()
	assert.Equal(t, byte(respInstruction), r.Kind)
	assert.Contains(t, r.Text, "NOP")
}

func TestBackendRestartReinitializesCpu(t *testing.T) {
	emu := emulator.New(blankGlyphs{}, 320)
	emu.Mem.Write(0xFFFC, 0x00)
	emu.Mem.Write(0xFFFD, 0x90)
	emu.Initialize()
	emu.Cpu.PC = 0x1234

	var out bytes.Buffer
	b := NewBackend(emu, &out)
	b.Send(Cmd{Kind: cmdRestart})
	b.drain()

	assert.Equal(t, uint16(0x9000), emu.Cpu.PC)
}

func TestBackendRequestPageReturnsPageData(t *testing.T) {
	emu := emulator.New(blankGlyphs{}, 320)
	emu.Mem.Write(0x2000, 0xAB)

	var out bytes.Buffer
	b := NewBackend(emu, &out)
	b.Send(Cmd{Kind: cmdRequestPage, Page: 0x20})
	b.drain()

	r := <-b.Responses()
	assert.Equal(t, byte(respPage), r.Kind)
	assert.Equal(t, uint16(0x2000), r.Address)
	assert.Equal(t, byte(0xAB), r.PageData[0])
}

func TestBackendBreakpointIsRecordedAndContinueSetsRunning(t *testing.T) {
	emu := emulator.New(blankGlyphs{}, 320)

	var out bytes.Buffer
	b := NewBackend(emu, &out)
	b.Send(Cmd{Kind: cmdBreakPoint, Address: 0x8001})
	b.Send(Cmd{Kind: cmdContinue})
	b.drain()

	assert.True(t, b.breakpoints[0x8001])
	assert.True(t, b.running)
}

func TestBackendRunStopsAtBreakpoint(t *testing.T) {
	emu := emulator.New(blankGlyphs{}, 320)
	emu.Mem.Write(0xFFFC, 0x00)
	emu.Mem.Write(0xFFFD, 0x80)
	emu.Initialize()
	emu.Mem.Write(0x8000, 0xEA) // NOP
	emu.Mem.Write(0x8001, 0xEA) // NOP

	var out bytes.Buffer
	b := NewBackend(emu, &out)
	b.breakpoints[0x8001] = true
	b.running = true

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		b.Run(stop)
		close(done)
	}()

	deadline := make(chan struct{})
	go func() {
		for {
			b.mu.Lock()
			stillRunning := b.running
			b.mu.Unlock()
			if !stillRunning {
				close(deadline)
				return
			}
		}
	}()
	<-deadline
	close(stop)
	<-done

	assert.Equal(t, uint16(0x8001), emu.Cpu.PC)
}
