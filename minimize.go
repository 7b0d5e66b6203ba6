package dawg

import (
	"bytes"
	"fmt"
	"sort"
)

// reduce converts the trie into a DAWG by merging nodes with equal
// fingerprints, one depth group at a time from the deepest down to the
// leaves. Fingerprints cover a node's whole subtree and its sibling
// tail, so a merge at a high depth collapses entire subgraphs at once;
// later depth groups are collected from the already-reduced graph.
func (d *Dawg) reduce(maxDepth int) error {
	for depth := maxDepth; depth >= 0; depth-- {
		group := d.nodesAtDepth(depth)
		d.log.Debug("Reducing depth group", "depth", depth, "nodes", len(group))

		if len(group) < 2 {
			continue
		}
		if err := d.mergeGroup(group); err != nil {
			return err
		}
	}
	return nil
}

// nodesAtDepth returns the nodes with the given depth group, ordered
// by fingerprint, then non-first-children before first-children, then
// allocation order. The ordering is what makes survivor selection
// deterministic.
func (d *Dawg) nodesAtDepth(depth int) []*node {
	var group []*node
	visited := make(map[*node]struct{})
	d.root.collectAtDepth(depth, visited, &group)

	sort.Slice(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if c := bytes.Compare(a.fingerprint[:], b.fingerprint[:]); c != 0 {
			return c < 0
		}
		if a.isFirstChild != b.isFirstChild {
			return !a.isFirstChild
		}
		return a.id < b.id
	})
	return group
}

// mergeGroup walks one ordered depth group and collapses every run of
// equal fingerprints onto a single survivor.
//
// A non-first-child survivor skips past equal-fingerprint
// non-first-children: those sit mid-list in some sibling run and can
// only be retired together with their list head, which happens
// implicitly when that head is merged. Everything else with the same
// fingerprint is replaced by the survivor, first children included
// (two equal first children mean two identical sibling lists, and the
// second list's parents are simply re-pointed at the first).
func (d *Dawg) mergeGroup(group []*node) error {
	removed := make(map[*node]bool)

	// next returns the first live index after i.
	next := func(i int) int {
		i++
		for i < len(group) && removed[group[i]] {
			i++
		}
		return i
	}

	for i := 0; i < len(group); {
		if removed[group[i]] {
			i++
			continue
		}
		survivor := group[i]

		j := next(i)
		if !survivor.isFirstChild {
			for j < len(group) && group[j].fingerprint == survivor.fingerprint && !group[j].isFirstChild {
				j = next(j)
			}
		}

		for j < len(group) && group[j].fingerprint == survivor.fingerprint {
			if err := replaceTail(group[j], survivor, removed); err != nil {
				return err
			}
			removed[group[j]] = true
			j = next(j)
		}

		i = j
	}
	return nil
}

// replaceTail retires old in favor of survivor. Because equal
// fingerprints imply equal sibling tails, the whole run from old to
// the end of its list is replaced pairwise by the survivor's run:
// every parent of a displaced node becomes a parent of its
// counterpart, and any parent whose list starts at the displaced node
// has the list spliced to the counterpart's tail. Displaced right
// siblings are marked removed so the group walk skips them.
func replaceTail(old, survivor *node, removed map[*node]bool) error {
	oldTail, err := old.tail()
	if err != nil {
		return err
	}
	newTail, err := survivor.tail()
	if err != nil {
		return err
	}
	if len(oldTail) != len(newTail) {
		return errTailMismatch(old, survivor, len(oldTail), len(newTail))
	}

	// Rightmost first: a parent holding a displaced node mid-list has
	// its own list head further left in the tail, and that head's turn
	// comes later.
	for k := len(oldTail) - 1; k >= 0; k-- {
		oldChild, newChild := oldTail[k], newTail[k]
		for _, parent := range oldChild.parents {
			newChild.parents = append(newChild.parents, parent)
			if len(parent.children) > 0 && parent.children[0] == oldChild {
				parent.children = newTail[k:]
			}
		}
	}

	for k := 1; k < len(oldTail); k++ {
		removed[oldTail[k]] = true
	}
	return nil
}

func errTailMismatch(old, survivor *node, oldLen, newLen int) error {
	return fmt.Errorf("%w: sibling tails of %q and %q differ in length (%d vs %d)",
		ErrMalformedState, old.value, survivor.value, oldLen, newLen)
}
