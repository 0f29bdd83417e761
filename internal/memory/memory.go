// Package memory implements the 64 KiB linear address space shared by the
// CPU and its memory-mapped peripherals.
//
// The central design point is the "last hardware access" channel: rather
// than wiring a callback into every peripheral register, the Map simply
// remembers the single most recent read and single most recent write that
// landed in a declared hardware window. Peripherals consult those markers
// once per orchestration step, and the orchestrator clears them afterwards.
// This keeps the CPU entirely decoupled from peripheral wiring.
package memory

import "fmt"

const (
	size = 1 << 16

	// PagedROMStart and PagedROMEnd bound the sideways-ROM window that
	// mirrors whichever paged ROM is currently selected.
	PagedROMStart = 0x8000
	PagedROMEnd   = 0xC000
)

// AddressRange is a half-open range [Start, End) of the 64 KiB address
// space.
type AddressRange struct {
	Start, End uint16
}

func (r AddressRange) contains(addr uint16) bool {
	return addr >= r.Start && addr < r.End
}

func (r AddressRange) overlaps(other AddressRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// hwWrite records the address and value of the most recent hardware-window
// write.
type hwWrite struct {
	Addr  uint16
	Value byte
}

// Hazard wraps a memory view (a byte slice) that was requested over a range
// overlapping a hardware window. It is a warning, not a fatal error: the
// view is always valid and always returned, so callers that don't care
// about side effects (instruction prefetch, for instance) can proceed
// anyway.
type Hazard[T any] struct {
	View T
}

func (h Hazard[T]) Error() string {
	return "raw access to hardware-mapped region"
}

// Map is the 64 KiB address space. It tracks hardware windows (address
// ranges whose reads/writes have side effects beyond storage), a
// paged-ROM bank that mirrors into 0x8000..0xC000, and the last-HW-access
// markers that peripherals react to.
type Map struct {
	bytes [size]byte

	hwWindows []AddressRange

	lastHWRead  *uint16
	lastHWWrite *hwWrite

	pagedROMReg     uint16
	hasPagedROMReg  bool
	pagedROMs       [][PagedROMEnd - PagedROMStart]byte
	currentPagedROM int // -1 = none selected
}

// New returns an empty Map: all bytes zero, no hardware windows declared,
// no paged ROM selected.
func New() *Map {
	return &Map{currentPagedROM: -1}
}

// AddHWWindow declares r as a hardware window: reads and writes inside it
// are recorded on the last-HW-access markers.
func (m *Map) AddHWWindow(r AddressRange) {
	m.hwWindows = append(m.hwWindows, r)
}

// SetPagedROMRegister designates addr as the paged-ROM control register.
// Writing to addr switches the sideways-ROM bank mirrored into
// 0x8000..0xC000.
func (m *Map) SetPagedROMRegister(addr uint16) {
	m.pagedROMReg = addr
	m.hasPagedROMReg = true
}

// AddPagedROM registers a 16 KiB sideways-ROM image and returns its index.
// The image must be exactly PagedROMEnd-PagedROMStart bytes.
func (m *Map) AddPagedROM(rom []byte) int {
	var buf [PagedROMEnd - PagedROMStart]byte
	copy(buf[:], rom)
	m.pagedROMs = append(m.pagedROMs, buf)
	return len(m.pagedROMs) - 1
}

// SwitchPagedROM copies the outgoing bank's current window bytes back into
// its backing image, then installs bank n into 0x8000..0xC000. Out of
// range n is a no-op.
func (m *Map) SwitchPagedROM(n int) {
	if n < 0 || n >= len(m.pagedROMs) {
		return
	}
	if m.currentPagedROM >= 0 {
		copy(m.pagedROMs[m.currentPagedROM][:], m.bytes[PagedROMStart:PagedROMEnd])
	}
	copy(m.bytes[PagedROMStart:PagedROMEnd], m.pagedROMs[n][:])
	m.currentPagedROM = n
}

func (m *Map) hwWindow(addr uint16) bool {
	for _, w := range m.hwWindows {
		if w.contains(addr) {
			return true
		}
	}
	return false
}

// Read returns the byte at addr. If addr lies in a declared hardware
// window, LastHWRead will report addr until the next ClearLastHWAccess or
// the next Read; a Read outside every window clears the read marker.
func (m *Map) Read(addr uint16) byte {
	val := m.bytes[addr]
	if m.hwWindow(addr) {
		a := addr
		m.lastHWRead = &a
	} else {
		m.lastHWRead = nil
	}
	return val
}

// Write stores val at addr. If addr is the paged-ROM control register, the
// sideways-ROM bank is switched first. If addr lies in a declared hardware
// window, LastHWWrite will report (addr, val) until the next
// ClearLastHWAccess or the next Write; a Write outside every window
// clears the write marker.
func (m *Map) Write(addr uint16, val byte) {
	if m.hasPagedROMReg && addr == m.pagedROMReg {
		m.SwitchPagedROM(int(val))
	}

	m.bytes[addr] = val

	if m.hwWindow(addr) {
		m.lastHWWrite = &hwWrite{Addr: addr, Value: val}
	} else {
		m.lastHWWrite = nil
	}
}

// LastHWRead reports the address of the most recent hardware-window read,
// if any has occurred since the last ClearLastHWAccess.
func (m *Map) LastHWRead() (addr uint16, ok bool) {
	if m.lastHWRead == nil {
		return 0, false
	}
	return *m.lastHWRead, true
}

// LastHWWrite reports the address and value of the most recent
// hardware-window write, if any has occurred since the last
// ClearLastHWAccess.
func (m *Map) LastHWWrite() (addr uint16, val byte, ok bool) {
	if m.lastHWWrite == nil {
		return 0, 0, false
	}
	return m.lastHWWrite.Addr, m.lastHWWrite.Value, true
}

// ClearLastHWAccess resets both markers. The orchestrator calls this once
// per step, after every peripheral has had a chance to react.
func (m *Map) ClearLastHWAccess() {
	m.lastHWRead = nil
	m.lastHWWrite = nil
}

// Region returns a read-only view over r. If r overlaps a hardware window,
// the view is still returned, wrapped in a Hazard error: CPU instruction
// fetch accepts the hazard, bulk peripheral readers must not.
func (m *Map) Region(r AddressRange) ([]byte, error) {
	view := m.bytes[r.Start:r.End]
	for _, w := range m.hwWindows {
		if w.overlaps(r) {
			return view, Hazard[[]byte]{View: view}
		}
	}
	return view, nil
}

// RegionMut returns a mutable view over r, with the same hazard contract
// as Region.
func (m *Map) RegionMut(r AddressRange) ([]byte, error) {
	view := m.bytes[r.Start:r.End]
	for _, w := range m.hwWindows {
		if w.overlaps(r) {
			return view, Hazard[[]byte]{View: view}
		}
	}
	return view, nil
}

// Page returns the 256-byte page addressed by page (0x00..0xFF), i.e.
// bytes [page<<8, page<<8+256). Used by the debugger's page-dump command,
// where computing the end address in uint16 would overflow for page 0xFF.
func (m *Map) Page(page byte) []byte {
	start := int(page) << 8
	return m.bytes[start : start+256]
}

// Blit copies data into the address space starting at addr, clamped to the
// end of address space.
func (m *Map) Blit(addr uint16, data []byte) {
	n := copy(m.bytes[addr:], data)
	_ = n
}

// Read16 reads a little-endian word at addr, addr+1. It does not go through
// Read, so it never disturbs the last-HW-access markers; it exists for
// vector lookups (reset/IRQ/NMI) that are not modeled as CPU bus cycles.
func (m *Map) Read16(addr uint16) uint16 {
	lo := m.bytes[addr]
	hi := m.bytes[addr+1]
	return uint16(hi)<<8 | uint16(lo)
}

func (r AddressRange) String() string {
	return fmt.Sprintf("[%#04x, %#04x)", r.Start, r.End)
}
