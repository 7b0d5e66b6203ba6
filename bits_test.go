package dawg

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
)

func TestBitWriter(t *testing.T) {
	// Writes fill bytes from the low bit up. This sequence packs
	// exactly 32 bits; read back as a little-endian word it must be
	// 0x8FAA00FF.
	writes := []struct {
		data  uint64
		width int
	}{
		{0xFF, 2},
		{0xFF, 6},
		{0xFF, 0},
		{0x00, 9},
		{0x15, 5},
		{0x06, 3},
		{0x47, 7},
	}

	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	for _, w := range writes {
		if err := bw.WriteBits(w.data, w.width); err != nil {
			t.Fatalf("WriteBits(%x, %d): %v", w.data, w.width, err)
		}
	}
	bw.Close()

	b := buffer.Bytes()
	if len(b) != 4 {
		t.Fatalf("wrote %d bytes, want 4", len(b))
	}
	if got := binary.LittleEndian.Uint32(b); got != 0x8FAA00FF {
		t.Errorf("packed word = %08x, want 8FAA00FF", got)
	}
}

func TestBitReader(t *testing.T) {
	data := []byte{0xFF, 0x00, 0xAA, 0x8F}
	br := newBitReader(data)

	reads := []struct {
		width int
		want  uint64
	}{
		{2, 0x03},
		{6, 0x3F},
		{0, 0x00},
		{9, 0x00},
		{5, 0x15},
		{3, 0x06},
		{7, 0x47},
	}
	for _, r := range reads {
		got, err := br.ReadBits(r.width)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", r.width, err)
		}
		if got != r.want {
			t.Errorf("ReadBits(%d) = %x, want %x", r.width, got, r.want)
		}
	}

	if br.Tell() != 32 {
		t.Errorf("Tell() = %d, want 32", br.Tell())
	}
	if _, err := br.ReadBits(1); err == nil {
		t.Errorf("expected error reading past the end")
	}
}

func TestBitWriterFlushPadding(t *testing.T) {
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)
	bw.WriteBits(0x05, 3)
	bw.Flush()

	b := buffer.Bytes()
	if len(b) != 1 || b[0] != 0x05 {
		t.Errorf("wrote %v, want [0x05]", b)
	}
}

func TestBitReaderWriter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	type write struct {
		data  uint64
		width int
	}
	var writes []write
	var buffer bytes.Buffer
	bw := newBitWriter(&buffer)

	for i := 0; i < 100000; i++ {
		width := 1 + rng.Intn(32)
		data := rng.Uint64() & ((1 << width) - 1)
		writes = append(writes, write{data, width})
		if err := bw.WriteBits(data, width); err != nil {
			t.Fatal(err)
		}
	}
	bw.Flush()

	br := newBitReader(buffer.Bytes())
	for i, w := range writes {
		got, err := br.ReadBits(w.width)
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got != w.data {
			t.Fatalf("read %d: width %d got %x, want %x", i, w.width, got, w.data)
		}
	}
}
