// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type sampleRecord struct {
	Nanos int64  `cbor:"t"`
	PID   uint32 `cbor:"pid,omitempty"`
	Text  string `cbor:"text"`
}

func TestMarshalDeterministic(t *testing.T) {
	record := sampleRecord{Nanos: 1700000000, PID: 42, Text: "WM_CLOSE"}

	first, err := Marshal(record)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(record)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	records := []sampleRecord{
		{Nanos: 1, Text: "explorer.exe: mouse msg (WM_MOUSEMOVE: 512): x/y = 1/2"},
		{Nanos: 2, PID: 7, Text: ""},
		{Nanos: 3, Text: "WM_MOVING of hWnd(10): wParam/lParam = 0/0"},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for index, want := range records {
		var got sampleRecord
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode record %d: %v", index, err)
		}
		if got != want {
			t.Errorf("record %d = %+v, want %+v", index, got, want)
		}
	}

	var extra sampleRecord
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		t.Errorf("Decode past end: got %v, want io.EOF", err)
	}
}

func TestUnmarshalIntoAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"text": "hello"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := decoded.(map[string]any); !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	// {"text": "a", "text": "b"}
	data := []byte{0xa2, 0x64, 't', 'e', 'x', 't', 0x61, 'a', 0x64, 't', 'e', 'x', 't', 0x61, 'b'}
	var record sampleRecord
	if err := Unmarshal(data, &record); err == nil {
		t.Fatalf("Unmarshal accepted duplicate keys: %+v", record)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{"t": int64(5), "text": "hi", "host": "box"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var record sampleRecord
	if err := Unmarshal(data, &record); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if record.Nanos != 5 || record.Text != "hi" {
		t.Errorf("record = %+v, want t=5 text=hi", record)
	}
}
