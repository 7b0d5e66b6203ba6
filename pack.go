package dawg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
)

// Per-node field widths of the packed format, in pack order.
const (
	wordFlagBits = 1
	endFlagBits  = 1
	letterBits   = 8
)

// bitsForIndex is the index field width of the packed format:
// ceil(log2(nodeCount)). Writers and readers must agree on this
// definition exactly; the packed header carries only the node count,
// never the width.
func bitsForIndex(nodeCount int) int {
	if nodeCount <= 1 {
		return 0
	}
	return bits.Len(uint(nodeCount - 1))
}

// packedSize returns the total byte size of the packed format for a
// given node count (header plus zero-padded bit stream).
func packedSize(nodeCount int) int {
	perNode := wordFlagBits + endFlagBits + letterBits + bitsForIndex(nodeCount)
	return 4 + (perNode*(nodeCount-1)+7)/8
}

// packNodes writes the packed format: the 4-byte node count header
// followed by the real nodes (sentinel excluded) bit-packed with the
// narrowed index field.
func packNodes(w io.Writer, nodes []nodeWord) (int64, error) {
	var buf bytes.Buffer

	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(nodes)))
	buf.Write(header[:])

	indexBits := bitsForIndex(len(nodes))
	bw := newBitWriter(&buf)
	for _, n := range nodes[1:] {
		writePackedNode(bw, n, indexBits)
	}
	bw.Flush()

	written, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(written), fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}
	return int64(written), nil
}

func writePackedNode(bw *bitWriter, n nodeWord, indexBits int) {
	bw.WriteBits(boolBit(n.endOfWord()), wordFlagBits)
	bw.WriteBits(boolBit(n.endOfList()), endFlagBits)
	bw.WriteBits(uint64(n.value()), letterBits)
	bw.WriteBits(uint64(n.childIndex()), indexBits)
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// unpackNodes is the exact inverse of packNodes: it reads the header,
// recomputes the index width from the node count, and re-emits every
// node as a 4-byte word with the sentinel restored at position 0.
func unpackNodes(data []byte) ([]nodeWord, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: packed binary too short (%d bytes)", ErrMalformedState, len(data))
	}
	count := int(binary.LittleEndian.Uint32(data))
	if count < 1 || len(data) != packedSize(count) {
		return nil, fmt.Errorf("%w: node count %d does not match %d byte packed binary",
			ErrMalformedState, count, len(data))
	}
	// the 4-byte words this unpacks into cannot address more
	if count-1 > maxChildIndex {
		return nil, fmt.Errorf("%w: packed binary holds %d nodes", ErrCapacityExceeded, count-1)
	}

	indexBits := bitsForIndex(count)
	br := newBitReader(data[4:])

	nodes := make([]nodeWord, count)
	for i := 1; i < count; i++ {
		n, err := readPackedNode(br, indexBits)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated packed stream at node %d", ErrMalformedState, i)
		}
		nodes[i] = n
	}
	return nodes, nil
}

func readPackedNode(br *bitReader, indexBits int) (nodeWord, error) {
	eow, err := br.ReadBits(wordFlagBits)
	if err != nil {
		return 0, err
	}
	eol, err := br.ReadBits(endFlagBits)
	if err != nil {
		return 0, err
	}
	letter, err := br.ReadBits(letterBits)
	if err != nil {
		return 0, err
	}
	index := uint64(0)
	if indexBits > 0 {
		if index, err = br.ReadBits(indexBits); err != nil {
			return 0, err
		}
	}

	n := nodeWord(index)<<childBitShift | nodeWord(letter)
	if eow != 0 {
		n |= endOfWordFlag
	}
	if eol != 0 {
		n |= endOfListFlag
	}
	return n, nil
}
