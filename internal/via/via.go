// Package via implements the system 6522-style VIA: dual ports with
// independent data-direction registers, the three-mask (flags/enabled/
// signalled) interrupt model, the 8-latch IC-select decode on Port B
// writes, the 16-slot keyboard ring buffer, and the 20ms virtual timer
// that drives both Timer1 and the vertical-sync interrupt.
package via

import (
	"beebgo/internal/logging"
	"beebgo/internal/mask"
	"beebgo/internal/memory"
)

const (
	// RegisterBase is the first address of the system VIA's 16-byte
	// register window.
	RegisterBase = 0xFE40
	RegisterEnd  = 0xFE50

	regPBIO  = RegisterBase + 0x00
	regPA1IO = RegisterBase + 0x01
	regPBDDR = RegisterBase + 0x02
	regPADDR = RegisterBase + 0x03
	regIFR   = RegisterBase + 0x0D
	regIER   = RegisterBase + 0x0E
	regPA2IO = RegisterBase + 0x0F
)

const (
	// MHz is the system clock rate the timer constants are derived from.
	MHz         = 2_000_000
	cyclesPerMs = MHz / 1000
	// timerFreq is the 20ms virtual timer period in cycles. The
	// reference implementation's own constant reads 200ms; that
	// contradicts its own doc comments and every prose description of
	// this timer, so the literal 20ms value wins here.
	timerFreq = cyclesPerMs * 20
)

// IC-select latch indices, decoded from a Port B write's low 3 bits.
const (
	SoundLatch = iota
	SpeechReadLatch
	SpeechWriteLatch
	KeyboardWriteEnableLatch
	ScrollLoLatch
	ScrollHiLatch
	CapsLEDLatch
	ShiftLEDLatch
	numLatches
)

// Port models one 8-bit I/O port with its data-direction register. Read
// returns only the input bits (DDR bit clear means input) and reads output
// bits as zero; Write keeps only the bits DDR declares as output.
type Port struct {
	io  byte
	ddr byte
}

func (p *Port) Read() byte      { return p.io &^ p.ddr }
func (p *Port) Write(v byte)    { p.io = v & p.ddr }
func (p *Port) SetDDR(v byte)   { p.ddr = v }
func (p *Port) setRawIO(v byte) { p.io = v }

// System is the 6522-style system VIA.
type System struct {
	cyclesElapsed uint64
	timerCount    uint64

	pa1 Port // keyboard/misc handshake port
	pa2 Port // keyboard row/column probe port (no handshake)
	pb  Port // IC-latch select port

	flags, enabled, signalled byte
	latches                   [numLatches]bool

	keyboard KeyboardBuffer
}

// New returns a System VIA with all registers zeroed.
func New() *System {
	return &System{}
}

// AddHWWindow declares this VIA's register range on mem as a hardware
// window so the orchestrator's last-HW-access markers fire for it.
func (s *System) AddHWWindow(mem *memory.Map) {
	mem.AddHWWindow(memory.AddressRange{Start: RegisterBase, End: RegisterEnd})
}

const (
	ifKeyboard     = 1 << 0
	ifVerticalSync = 1 << 1
	ifTimer2       = 1 << 5
	ifTimer1       = 1 << 6
)

func (s *System) signal(mask byte) {
	s.signalled |= mask
	s.flags |= mask
}

func (s *System) clearFlags(mask byte) {
	s.flags &^= mask
}

func (s *System) drainSignalled() byte {
	active := s.signalled & s.enabled
	s.signalled = 0
	return active
}

// IFR returns the interrupt flag register as read by the CPU: bit 7 set
// whenever any of bits 0-6 are set.
func (s *System) IFR() byte {
	active := mask.Range(s.flags, mask.I2, mask.I8)
	if active != 0 {
		return 0x80 | active
	}
	return 0
}

// IER returns the interrupt enable register as read by the CPU.
func (s *System) IER() byte {
	return 0x80 | mask.Range(s.enabled, mask.I2, mask.I8)
}

func (s *System) setIER(v byte) {
	bits := mask.Range(v, mask.I2, mask.I8)
	if mask.IsSet(v, mask.I1) {
		s.enabled |= bits
	} else {
		s.enabled &^= bits
	}
}

// processWrite reacts to a write the CPU just made into this VIA's
// register window, decoding the IC-select latches and clearing interrupt
// flags exactly as the reactive hardware would.
func (s *System) processWrite(addr uint16, val byte) {
	switch addr {
	case regPBIO:
		s.pb.Write(val)
		s.writePortBIO(val)
		s.clearFlags(ifKeyboard | ifVerticalSync)

	case regPA1IO:
		s.pa1.Write(val)
		logging.Via.Printf("port A1 write: %#02x", val)

	case regPA2IO:
		s.clearFlags(ifKeyboard | ifVerticalSync)
		s.writePortA2IO(val)

	case regPBDDR:
		s.pb.SetDDR(val)

	case regPADDR:
		s.pa1.SetDDR(val)
		s.pa2.SetDDR(val)

	case regIFR:
		s.clearFlags(val)

	case regIER:
		s.setIER(val)
	}
}

// writePortBIO decodes the IC-select latch: bits 0-2 select one of 8
// latches, bit 3 is the value written into it. The reference
// implementation only decodes 2 select bits (val&0x03); its own latch
// constant list names 8 distinct latches, so the fuller 3-bit decode is
// the one implemented here.
func (s *System) writePortBIO(val byte) {
	latch := mask.Last(val, mask.I3)
	bit := mask.IsSet(val, mask.I5)
	if int(latch) < numLatches {
		s.latches[latch] = bit
	}
	switch latch {
	case SoundLatch:
		logging.Via.Printf("sound latch = %v", bit)
	case SpeechReadLatch:
		logging.Via.Printf("speech read latch = %v", bit)
	case SpeechWriteLatch:
		logging.Via.Printf("speech write latch = %v", bit)
	case KeyboardWriteEnableLatch:
		s.keyboard.writeEnabled = bit
		logging.Via.Printf("keyboard write enable = %v", bit)
	case ScrollLoLatch:
		logging.Via.Printf("screen start lo latch = %v", bit)
	case ScrollHiLatch:
		logging.Via.Printf("screen start hi latch = %v", bit)
	case CapsLEDLatch:
		logging.Via.Printf("caps lock LED = %v", bit)
	case ShiftLEDLatch:
		logging.Via.Printf("shift lock LED = %v", bit)
	}
}

// writePortA2IO implements the keyboard row/column probe: a write sets
// the probe value, asserts bit 7 (key down) when any buffered key maps to
// the probed (row, col), and signals the Keyboard interrupt whenever the
// buffer is non-empty.
func (s *System) writePortA2IO(val byte) {
	s.pa2.Write(val)

	if s.keyboard.Len() > 0 {
		s.signal(ifKeyboard)
	}

	if !s.keyboard.writeEnabled {
		if s.keyboard.IsDown(val) {
			s.pa2.setRawIO(val | 0x80)
		} else {
			s.pa2.setRawIO(val & 0x7F)
		}
	}
}

// Step advances the VIA by cycles CPU cycles, reacting to whatever
// hardware access happened on mem since the last ClearLastHWAccess, and
// ticking the 20ms timer that drives Timer1 and vertical sync. irqRequest
// is invoked once if any enabled interrupt was signalled this step.
func (s *System) Step(cycles int, mem *memory.Map, irqRequest func()) {
	if addr, val, ok := mem.LastHWWrite(); ok && addr >= RegisterBase && addr < RegisterEnd {
		s.processWrite(addr, val)
	}
	if addr, ok := mem.LastHWRead(); ok && addr == regPA2IO {
		logging.Via.Printf("port A2 probe read at %#04x", addr)
	}

	s.cyclesElapsed += uint64(cycles)
	s.timerCount += uint64(cycles)

	if s.timerCount >= timerFreq {
		s.signal(ifTimer1)
		s.signal(ifVerticalSync)
		s.timerCount -= timerFreq
	}

	if s.drainSignalled() != 0 && irqRequest != nil {
		irqRequest()
	}

	s.writeBack(mem)
}

// writeBack mirrors the VIA's live register state into its 16-byte
// memory-mapped window, as the CPU would read it. It writes through a
// raw region view (the hazard is expected) so the last-HW-access markers
// still hold the CPU's own access for the peripherals stepped after this
// one.
func (s *System) writeBack(mem *memory.Map) {
	regs, _ := mem.RegionMut(memory.AddressRange{Start: RegisterBase, End: RegisterEnd})
	regs[regPBIO-RegisterBase] = s.pb.Read()
	regs[regPA1IO-RegisterBase] = s.pa1.Read()
	regs[regPBDDR-RegisterBase] = s.pb.ddr
	regs[regPADDR-RegisterBase] = s.pa1.ddr
	regs[regIFR-RegisterBase] = s.IFR()
	regs[regIER-RegisterBase] = s.IER()
	regs[regPA2IO-RegisterBase] = s.pa2.Read()
}

// KeyDown enqueues a host key press into the keyboard ring buffer and
// signals the Keyboard interrupt immediately, matching
// original_source's key_down(), which signals on top of the reactive
// signal writePortA2IO raises on the next probe write.
func (s *System) KeyDown(key uint32) {
	s.keyboard.Push(key)
	s.signal(ifKeyboard)
}

// ClearKeyboardBuffer empties the keyboard ring buffer.
func (s *System) ClearKeyboardBuffer() {
	s.keyboard.Clear()
}

// Len reports the keyboard ring's write position: the number of keys
// pushed since the last clear, modulo 16.
func (s *System) Len() int {
	return s.keyboard.Len()
}
