package dawg

import "fmt"

// maxChildIndex is the largest node index the 4-byte format can
// address with its 20-bit first-child field.
const maxChildIndex = childIndexMask >> childBitShift

// indexNodes assigns linear positions to the surviving nodes. A
// sibling list is numbered as one contiguous run the first time it is
// reached through its head; spliced parents that enter a list mid-run
// find it already numbered (or about to be, through the owning head),
// so the walk stops there. Index 0 stays reserved for the null
// sentinel, real indices start at 1.
func (d *Dawg) indexNodes() ([]*node, error) {
	var indexed []*node
	indexFrom(d.root, &indexed)

	if err := checkCapacity(len(indexed)); err != nil {
		return nil, err
	}
	return indexed, nil
}

// checkCapacity rejects graphs whose highest index would not fit the
// 20-bit first-child field.
func checkCapacity(indexed int) error {
	if indexed > maxChildIndex {
		return fmt.Errorf("%w: %d nodes indexed, limit %d",
			ErrCapacityExceeded, indexed, maxChildIndex)
	}
	return nil
}

func indexFrom(n *node, indexed *[]*node) {
	if len(n.children) == 0 {
		return
	}
	first := n.children[0]
	if !first.isFirstChild || first.dawgIndex != 0 {
		return
	}

	for _, c := range n.children {
		c.dawgIndex = len(*indexed) + 1
		*indexed = append(*indexed, c)
	}
	for _, c := range n.children {
		indexFrom(c, indexed)
	}
}
