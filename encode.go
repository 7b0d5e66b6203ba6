package dawg

import (
	"encoding/binary"
	"fmt"
	"io"
)

/* FILE FORMATS

4-byte format (primary):
- 4 bytes: node count, little-endian (indexed nodes + 1 for the
  reserved zero slot)
- 4 bytes: zero word, the null sentinel at index 0
- node count - 1 node words, little-endian, in index order:

   bits 31-30  unused
   bit  29     end-of-word flag
   bit  28     end-of-list flag (last sibling in its run)
   bits 27-8   first-child index, 0 if the node has no children
   bits 7-0    edge character

Packed format:
- 4 bytes: node count, little-endian, same value as above
- node count - 1 nodes bit-packed LSB-first, per node:
   1 bit end-of-word, 1 bit end-of-list, 8 bits character,
   ceil(log2(node count)) bits first-child index
  The sentinel word is not stored; readers resynthesize it. The final
  byte is zero-padded.
*/

const (
	letterMask     = 0x000000FF
	childIndexMask = 0x0FFFFF00
	childBitShift  = 8
	endOfWordFlag  = 0x20000000
	endOfListFlag  = 0x10000000
)

// nodeWord is one encoded node of the 4-byte format.
type nodeWord uint32

func (w nodeWord) value() byte     { return byte(w & letterMask) }
func (w nodeWord) childIndex() int { return int(w&childIndexMask) >> childBitShift }
func (w nodeWord) endOfWord() bool { return w&endOfWordFlag != 0 }
func (w nodeWord) endOfList() bool { return w&endOfListFlag != 0 }

func encodeNode(n *node) (nodeWord, error) {
	if n.dawgIndex == 0 {
		return 0, fmt.Errorf("%w: encoding unindexed node %q", ErrMalformedState, n.value)
	}
	var w nodeWord
	if len(n.children) > 0 {
		first := n.children[0].dawgIndex
		if first == 0 {
			return 0, fmt.Errorf("%w: node %q has unindexed first child", ErrMalformedState, n.value)
		}
		w = nodeWord(first) << childBitShift
	}
	w |= nodeWord(n.value)
	if n.endOfWord {
		w |= endOfWordFlag
	}
	if n.endOfList {
		w |= endOfListFlag
	}
	return w, nil
}

// encodeNodes produces the in-memory node array: the zero sentinel at
// position 0 followed by every indexed node.
func encodeNodes(indexed []*node) ([]nodeWord, error) {
	nodes := make([]nodeWord, 1, len(indexed)+1)
	for _, n := range indexed {
		w, err := encodeNode(n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, w)
	}
	return nodes, nil
}

// writeNodes serializes the node array in the 4-byte format.
func writeNodes(w io.Writer, nodes []nodeWord) (int64, error) {
	buf := make([]byte, 4*(len(nodes)+1))
	binary.LittleEndian.PutUint32(buf, uint32(len(nodes)))
	for i, n := range nodes {
		binary.LittleEndian.PutUint32(buf[4*(i+1):], uint32(n))
	}
	written, err := w.Write(buf)
	if err != nil {
		return int64(written), fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}
	return int64(written), nil
}

// parseNodes decodes a 4-byte format stream back into the node array.
func parseNodes(data []byte) ([]nodeWord, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: binary too short (%d bytes)", ErrMalformedState, len(data))
	}
	count := int(binary.LittleEndian.Uint32(data))
	if count < 1 || len(data) != 4+4*count {
		return nil, fmt.Errorf("%w: node count %d does not match %d byte binary",
			ErrMalformedState, count, len(data))
	}

	nodes := make([]nodeWord, count)
	for i := range nodes {
		nodes[i] = nodeWord(binary.LittleEndian.Uint32(data[4*(i+1):]))
	}
	if nodes[0] != 0 {
		return nil, fmt.Errorf("%w: sentinel slot is not zero", ErrMalformedState)
	}
	return nodes, nil
}
