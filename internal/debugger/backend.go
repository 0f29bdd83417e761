package debugger

import (
	"fmt"
	"io"
	"sync"

	"beebgo/internal/cpu"
	"beebgo/internal/emulator"
	"beebgo/internal/logging"
	"beebgo/internal/video"
)

// commandQueueDepth bounds how many commands can be queued ahead of the
// backend's step loop before Send blocks.
const commandQueueDepth = 16

// Backend wraps an Emulator and drains a bounded command channel before
// each Step, emitting framed responses to out.
type Backend struct {
	emu *emulator.Emulator
	out io.Writer

	commands    chan Cmd
	notify      chan Response
	breakpoints map[uint16]bool

	mu      sync.Mutex
	running bool
}

// NewBackend returns a Backend driving emu. Responses are both framed
// onto out (the wire protocol an external debugger speaks) and published
// on the channel returned by Responses, which an in-process bubbletea
// frontend reads directly without round-tripping through the wire format.
func NewBackend(emu *emulator.Emulator, out io.Writer) *Backend {
	return &Backend{
		emu:         emu,
		out:         out,
		commands:    make(chan Cmd, commandQueueDepth),
		notify:      make(chan Response, commandQueueDepth),
		breakpoints: make(map[uint16]bool),
	}
}

// Responses returns the channel a frontend should read decoded responses
// from.
func (b *Backend) Responses() <-chan Response {
	return b.notify
}

// Send enqueues a command for the backend to act on before its next step.
// It blocks if the queue is full.
func (b *Backend) Send(c Cmd) {
	b.commands <- c
}

// drain processes every command currently queued, without blocking.
func (b *Backend) drain() {
	for {
		select {
		case c := <-b.commands:
			b.handle(c)
		default:
			return
		}
	}
}

func (b *Backend) handle(c Cmd) {
	switch c.Kind {
	case cmdStep:
		b.runSteps(int(c.Count))
	case cmdContinue:
		b.mu.Lock()
		b.running = true
		b.mu.Unlock()
	case cmdRestart:
		b.emu.Initialize()
		b.send(Response{Kind: respMessage, Text: "restarted"})
	case cmdRequestPage:
		b.sendPage(c.Page)
	case cmdBreakPoint:
		b.breakpoints[c.Address] = true
		b.send(Response{Kind: respMessage, Text: fmt.Sprintf("breakpoint set at %#04x", c.Address)})
	default:
		logging.Debugger.Printf("unknown command id %#02x", c.Kind)
	}
}

func (b *Backend) send(r Response) {
	if err := WriteResponse(b.out, r); err != nil {
		logging.Debugger.Printf("write response: %v", err)
	}
	select {
	case b.notify <- r:
	default:
		// Frontend isn't keeping up; drop rather than block the step loop.
	}
}

func (b *Backend) sendPage(page byte) {
	addr := uint16(page) << 8
	view := b.emu.Mem.Page(page)
	b.send(Response{Kind: respPage, Address: addr, PageData: view})
}

func (b *Backend) runSteps(n int) {
	fb := video.NewFrameBuffer(1, 1)
	for i := 0; i < n; i++ {
		pc := b.emu.Cpu.PC
		opcode := b.emu.Mem.Read(pc)
		name := opcodeName(opcode)
		b.send(Response{Kind: respInstruction, Address: pc, Text: name})

		if _, _, err := b.emu.Step(fb); err != nil {
			b.send(Response{Kind: respMessage, Text: err.Error()})
			return
		}
	}
}

// Run drives the emulator forward, honoring queued commands and
// breakpoints, until stop is closed. While paused (the initial state,
// and the state entered on every breakpoint hit) it blocks on the
// command queue instead of spinning: there is nothing to do until the
// host sends a command, mirroring how original_source's Backend has no
// loop of its own and costs nothing between calls from the host's own
// paced loop.
func (b *Backend) Run(stop <-chan struct{}) {
	fb := video.NewFrameBuffer(1, 1)
	b.send(Response{Kind: respStreamStart})
	defer b.send(Response{Kind: respStreamEnd})

	for {
		b.mu.Lock()
		running := b.running
		b.mu.Unlock()

		if !running {
			select {
			case <-stop:
				return
			case c := <-b.commands:
				b.handle(c)
			}
			continue
		}

		select {
		case <-stop:
			return
		default:
		}

		b.drain()

		b.mu.Lock()
		running = b.running
		b.mu.Unlock()
		if !running {
			continue
		}

		if b.breakpoints[b.emu.Cpu.PC] {
			b.mu.Lock()
			b.running = false
			b.mu.Unlock()
			b.send(Response{Kind: respMessage, Text: fmt.Sprintf("hit breakpoint at %#04x", b.emu.Cpu.PC)})
			continue
		}

		if _, _, err := b.emu.Step(fb); err != nil {
			b.send(Response{Kind: respMessage, Text: err.Error()})
			b.mu.Lock()
			b.running = false
			b.mu.Unlock()
		}
	}
}

func opcodeName(opcode byte) string {
	return cpu.OpcodeName(opcode)
}
