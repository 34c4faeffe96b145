package main

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte(`{"type":"start_game"}`),
		[]byte(`{}`),
		[]byte{},
		bytes.Repeat([]byte("x"), 100000),
	}
	for _, want := range payloads {
		var buf bytes.Buffer
		if err := WriteFrame(&buf, want); err != nil {
			t.Fatalf("write frame: %v", err)
		}
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(want))
		}
	}
}

func TestClientMessageRoundTrip(t *testing.T) {
	msgs := []ClientMessage{
		{Type: MsgMove, PlayerID: 2, Direction: DirLeft},
		{Type: MsgStartGame},
		{Type: MsgClickTarget, PlayerID: 4},
	}
	for _, want := range msgs {
		payload, err := EncodeMessage(want)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		var buf bytes.Buffer
		if err := WriteFrame(&buf, payload); err != nil {
			t.Fatalf("write frame: %v", err)
		}
		raw, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		got, err := DecodeClientMessage(raw)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestReadFrameShortHeader(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0})
	if _, err := ReadFrame(buf); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestReadFrameShortPayload(t *testing.T) {
	var buf bytes.Buffer
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], 10)
	buf.Write(header[:])
	buf.Write([]byte("abc"))
	if _, err := ReadFrame(&buf); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestReadFrameRejectsOversized(t *testing.T) {
	var buf bytes.Buffer
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], MaxFrameSize+1)
	buf.Write(header[:])
	if _, err := ReadFrame(&buf); err == nil {
		t.Fatal("expected error for oversized frame")
	}
}

func TestDecodeClientMessageRejectsGarbage(t *testing.T) {
	if _, err := DecodeClientMessage([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
