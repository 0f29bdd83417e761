// Package debugger implements the external debug harness: a
// length-prefixed command/response wire protocol, a backend that drains
// queued commands before each emulator step, and a bubbletea TUI
// frontend that drives the backend instead of the CPU directly.
package debugger

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Command IDs, incoming (host -> emulator).
const (
	cmdStep        = 0x01
	cmdContinue    = 0x02
	cmdRestart     = 0x03
	cmdRequestPage = 0x04
	cmdBreakPoint  = 0x05
)

// Response IDs, outgoing (emulator -> host).
const (
	respInstruction = 0x01
	respPage        = 0x02
	respMessage     = 0x03
	respStreamStart = 0xFD
	respStreamEnd   = 0xFE
)

// Cmd is a decoded incoming debugger command.
type Cmd struct {
	Kind    byte
	Count   uint32 // Step
	Page    byte   // RequestPage
	Address uint16 // BreakPoint
}

// Response is an outgoing debugger frame.
type Response struct {
	Kind        byte
	Address     uint16 // Instruction, Page
	Text        string // Instruction (disassembly text), Message
	PageData    []byte // Page
}

// ReadCmd decodes one [id:1][len_lo:1][len_hi:1][payload] frame from r.
func ReadCmd(r io.Reader) (Cmd, error) {
	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Cmd{}, err
	}
	id := header[0]
	size := uint16(header[1]) | uint16(header[2])<<8

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Cmd{}, err
	}

	switch id {
	case cmdStep:
		if len(payload) < 4 {
			return Cmd{}, fmt.Errorf("debugger: short Step payload")
		}
		return Cmd{Kind: cmdStep, Count: binary.LittleEndian.Uint32(payload)}, nil
	case cmdContinue:
		return Cmd{Kind: cmdContinue}, nil
	case cmdRestart:
		return Cmd{Kind: cmdRestart}, nil
	case cmdRequestPage:
		if len(payload) < 1 {
			return Cmd{}, fmt.Errorf("debugger: short RequestPage payload")
		}
		return Cmd{Kind: cmdRequestPage, Page: payload[0]}, nil
	case cmdBreakPoint:
		if len(payload) < 2 {
			return Cmd{}, fmt.Errorf("debugger: short BreakPoint payload")
		}
		return Cmd{Kind: cmdBreakPoint, Address: binary.LittleEndian.Uint16(payload)}, nil
	default:
		return Cmd{Kind: id}, nil
	}
}

func writeFrame(w io.Writer, id byte, payload []byte) error {
	header := []byte{id, byte(len(payload)), byte(len(payload) >> 8)}
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// WriteCmd encodes a Cmd as a frame in the wire format ReadCmd decodes.
// The in-process frontend does not use it; it calls Backend.Send.
func WriteCmd(w io.Writer, c Cmd) error {
	switch c.Kind {
	case cmdStep:
		payload := make([]byte, 4)
		binary.LittleEndian.PutUint32(payload, c.Count)
		return writeFrame(w, cmdStep, payload)
	case cmdContinue:
		return writeFrame(w, cmdContinue, nil)
	case cmdRestart:
		return writeFrame(w, cmdRestart, nil)
	case cmdRequestPage:
		return writeFrame(w, cmdRequestPage, []byte{c.Page})
	case cmdBreakPoint:
		payload := make([]byte, 2)
		binary.LittleEndian.PutUint16(payload, c.Address)
		return writeFrame(w, cmdBreakPoint, payload)
	default:
		return writeFrame(w, 0xFF, nil)
	}
}

// WriteResponse encodes a Response as an outgoing frame.
func WriteResponse(w io.Writer, r Response) error {
	switch r.Kind {
	case respInstruction:
		text := fmt.Sprintf("%04x %s", r.Address, r.Text)
		return writeFrame(w, respInstruction, []byte(text))
	case respMessage:
		return writeFrame(w, respMessage, []byte(r.Text))
	case respPage:
		payload := make([]byte, 2+len(r.PageData))
		binary.LittleEndian.PutUint16(payload, r.Address)
		copy(payload[2:], r.PageData)
		return writeFrame(w, respPage, payload)
	case respStreamStart:
		return writeFrame(w, respStreamStart, nil)
	case respStreamEnd:
		return writeFrame(w, respStreamEnd, nil)
	default:
		return writeFrame(w, 0xFF, nil)
	}
}

// ReadResponse decodes one outgoing-direction frame as WriteResponse
// encodes it. The in-process frontend does not use it; it reads
// Backend.Responses.
func ReadResponse(r io.Reader) (Response, error) {
	var header [3]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Response{}, err
	}
	id := header[0]
	size := uint16(header[1]) | uint16(header[2])<<8

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Response{}, err
	}

	switch id {
	case respInstruction:
		return Response{Kind: respInstruction, Text: string(payload)}, nil
	case respMessage:
		return Response{Kind: respMessage, Text: string(payload)}, nil
	case respPage:
		if len(payload) < 2 {
			return Response{}, fmt.Errorf("debugger: short Page payload")
		}
		return Response{
			Kind:     respPage,
			Address:  binary.LittleEndian.Uint16(payload),
			PageData: payload[2:],
		}, nil
	case respStreamStart:
		return Response{Kind: respStreamStart}, nil
	case respStreamEnd:
		return Response{Kind: respStreamEnd}, nil
	default:
		return Response{Kind: id}, nil
	}
}
