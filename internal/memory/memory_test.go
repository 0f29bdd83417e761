package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWriteRoundTrip(t *testing.T) {
	m := New()
	m.Write(0x1000, 0x42)
	assert.Equal(t, byte(0x42), m.Read(0x1000))
}

func TestLastHWWriteOnlyRecordedInsideWindow(t *testing.T) {
	m := New()
	m.AddHWWindow(AddressRange{Start: 0xFE00, End: 0xFE10})

	m.Write(0x1000, 0xAA)
	_, _, ok := m.LastHWWrite()
	assert.False(t, ok)

	m.Write(0xFE05, 0xBB)
	addr, val, ok := m.LastHWWrite()
	assert.True(t, ok)
	assert.Equal(t, uint16(0xFE05), addr)
	assert.Equal(t, byte(0xBB), val)
}

func TestLastHWReadOnlyRecordedInsideWindow(t *testing.T) {
	m := New()
	m.AddHWWindow(AddressRange{Start: 0xFE00, End: 0xFE10})

	m.Read(0x1000)
	_, ok := m.LastHWRead()
	assert.False(t, ok)

	m.Read(0xFE05)
	addr, ok := m.LastHWRead()
	assert.True(t, ok)
	assert.Equal(t, uint16(0xFE05), addr)
}

func TestClearLastHWAccessResetsBothMarkers(t *testing.T) {
	m := New()
	m.AddHWWindow(AddressRange{Start: 0xFE00, End: 0xFE10})
	m.Read(0xFE00)
	m.Write(0xFE01, 1)

	m.ClearLastHWAccess()

	_, ok := m.LastHWRead()
	assert.False(t, ok)
	_, _, ok = m.LastHWWrite()
	assert.False(t, ok)
}

func TestRegionReturnsHazardWhenOverlappingHWWindow(t *testing.T) {
	m := New()
	m.AddHWWindow(AddressRange{Start: 0xFE00, End: 0xFE10})

	view, err := m.Region(AddressRange{Start: 0xFD00, End: 0xFE20})
	assert.Error(t, err)
	assert.NotNil(t, view)

	var hz Hazard[[]byte]
	assert.True(t, errors.As(err, &hz))
}

func TestRegionReturnsNoErrorOutsideHWWindow(t *testing.T) {
	m := New()
	m.AddHWWindow(AddressRange{Start: 0xFE00, End: 0xFE10})

	view, err := m.Region(AddressRange{Start: 0x0000, End: 0x0100})
	assert.NoError(t, err)
	assert.Len(t, view, 0x100)
}

func TestPagedROMSwitchCopiesOutgoingBankBack(t *testing.T) {
	m := New()
	m.SetPagedROMRegister(0xFE30)

	bank0 := make([]byte, PagedROMEnd-PagedROMStart)
	bank0[0] = 0x11
	bank1 := make([]byte, PagedROMEnd-PagedROMStart)
	bank1[0] = 0x22
	m.AddPagedROM(bank0)
	m.AddPagedROM(bank1)

	m.SwitchPagedROM(0)
	assert.Equal(t, byte(0x11), m.Read(PagedROMStart))

	m.Write(PagedROMStart, 0x99) // mutate the mirrored window
	m.SwitchPagedROM(1)
	assert.Equal(t, byte(0x22), m.Read(PagedROMStart))

	m.SwitchPagedROM(0)
	assert.Equal(t, byte(0x99), m.Read(PagedROMStart), "outgoing bank's mutation must be preserved")
}

func TestPagedROMSwitchOutOfRangeIsNoOp(t *testing.T) {
	m := New()
	m.SetPagedROMRegister(0xFE30)
	m.AddPagedROM(make([]byte, PagedROMEnd-PagedROMStart))

	m.Write(PagedROMStart, 0x55)
	m.Write(0xFE30, 9) // out of range

	assert.Equal(t, byte(0x55), m.Read(PagedROMStart))
}

func TestBlitClampsToEndOfAddressSpace(t *testing.T) {
	m := New()
	m.Blit(0xFFFE, []byte{1, 2, 3, 4})
	assert.Equal(t, byte(1), m.Read(0xFFFE))
	assert.Equal(t, byte(2), m.Read(0xFFFF))
}
