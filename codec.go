package main

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// TCP framing: 4-byte big-endian unsigned length, then that many bytes of
// UTF-8 JSON. No sync markers — a corrupted stream is unrecoverable and the
// connection is dropped.

// MaxFrameSize bounds a single frame. Snapshots are a few KB; anything
// larger is a broken or hostile peer.
const MaxFrameSize = 1 << 20

// WriteFrame writes one length-prefixed frame.
func WriteFrame(w io.Writer, payload []byte) error {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads exactly one frame, blocking until the header and full
// payload arrive. A peer close mid-frame surfaces as an error; the caller
// treats any error as disconnect.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(header[:])
	if length > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit", length)
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// EncodeMessage marshals msg for the wire.
func EncodeMessage(msg interface{}) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeClientMessage parses one client frame.
func DecodeClientMessage(payload []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	return msg, nil
}
