package debugger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteCmdReadCmdRoundTrip(t *testing.T) {
	cases := []Cmd{
		{Kind: cmdStep, Count: 42},
		{Kind: cmdContinue},
		{Kind: cmdRestart},
		{Kind: cmdRequestPage, Page: 0x12},
		{Kind: cmdBreakPoint, Address: 0xC000},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		assert.NoError(t, WriteCmd(&buf, c))

		got, err := ReadCmd(&buf)
		assert.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestWriteResponseFrameFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteResponse(&buf, Response{Kind: respMessage, Text: "hi"}))

	frame := buf.Bytes()
	assert.Equal(t, byte(0x03), frame[0])
	assert.Equal(t, byte(2), frame[1])
	assert.Equal(t, byte(0), frame[2])
	assert.Equal(t, "hi", string(frame[3:]))
}

func TestReadResponsePageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}
	assert.NoError(t, WriteResponse(&buf, Response{Kind: respPage, Address: 0xFF00, PageData: data}))

	got, err := ReadResponse(&buf)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xFF00), got.Address)
	assert.Equal(t, data, got.PageData)
}

func TestStreamStartEndFrames(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteResponse(&buf, Response{Kind: respStreamStart}))
	assert.NoError(t, WriteResponse(&buf, Response{Kind: respStreamEnd}))

	first, err := ReadResponse(&buf)
	assert.NoError(t, err)
	assert.Equal(t, byte(respStreamStart), first.Kind)

	second, err := ReadResponse(&buf)
	assert.NoError(t, err)
	assert.Equal(t, byte(respStreamEnd), second.Kind)
}
