package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opBinary       byte = 0x2
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA
)

const maxMessageSize = 64 << 10

var (
	ErrConnectionClosed = errors.New("connection closed by peer")
	ErrMessageTooLarge  = errors.New("message too large")
	ErrUnexpectedFrame  = errors.New("unexpected frame")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	mask    []byte // nil for unmasked frames
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	messageBytes, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return messageBytes, nil
}

func writeFrame(w *bufio.Writer, f frame) error {
	header := make([]byte, 2, 14)
	header[0] = f.opCode
	if f.isFin {
		header[0] |= 0x80
	}

	length := uint64(len(f.payload))
	switch {
	case length < 126:
		header[1] = byte(length)
	case length < 1<<16:
		header[1] = 126
		header = binary.BigEndian.AppendUint16(header, uint16(length))
	default:
		header[1] = 127
		header = binary.BigEndian.AppendUint64(header, length)
	}

	payload := f.payload
	if f.mask != nil {
		header[1] |= 0x80
		header = append(header, f.mask...)

		payload = make([]byte, len(f.payload))
		copy(payload, f.payload)
		applyMask(payload, f.mask)
	}

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

func readFrame(r *bufio.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	f := frame{
		isFin:  header[0]&0x80 != 0,
		opCode: header[0] & 0x0f,
	}

	length, err := readPayloadLength(r, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if length > maxMessageSize {
		return frame{}, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, length)
	}

	if header[1]&0x80 != 0 {
		f.mask = make([]byte, 4)
		if _, err = io.ReadFull(r, f.mask); err != nil {
			return frame{}, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	f.payload = make([]byte, length)
	if _, err = io.ReadFull(r, f.payload); err != nil {
		return frame{}, fmt.Errorf("failed to read payload: %w", err)
	}

	if f.mask != nil {
		applyMask(f.payload, f.mask)
	}

	return f, nil
}

func readPayloadLength(r *bufio.Reader, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(r, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}

func applyMask(payload, mask []byte) {
	for i := range payload {
		payload[i] ^= mask[i%4]
	}
}

// readMessage reads frames until a complete data message is assembled. Pings
// are answered through pong as they arrive; a close frame ends the stream.
func readMessage(r *bufio.Reader, pong func(payload []byte) error) ([]byte, error) {
	var message []byte
	fragmented := false

	for {
		f, err := readFrame(r)
		if err != nil {
			return nil, err
		}

		switch f.opCode {
		case opClose:
			return nil, ErrConnectionClosed
		case opPing:
			if err = pong(f.payload); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		case opText, opBinary:
			if fragmented {
				return nil, fmt.Errorf("%w: new message inside a fragmented one", ErrUnexpectedFrame)
			}
			message = f.payload
		case opContinuation:
			if !fragmented {
				return nil, fmt.Errorf("%w: continuation without a start", ErrUnexpectedFrame)
			}
			message = append(message, f.payload...)
		default:
			return nil, fmt.Errorf("%w: opcode %d", ErrUnexpectedFrame, f.opCode)
		}

		if len(message) > maxMessageSize {
			return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(message))
		}

		if f.isFin {
			return message, nil
		}
		fragmented = true
	}
}
