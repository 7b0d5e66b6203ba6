package dawg

import (
	"fmt"
	"io"
)

// EnumFn receives each word during enumeration. The word slice is
// reused between calls; copy it if it needs to outlive the callback.
type EnumFn = func(word []byte) EnumerationResult

// EnumerationResult tells Enumerate whether to keep going.
type EnumerationResult = int

const (
	// Continue enumerating.
	Continue EnumerationResult = iota

	// Stop enumerating immediately.
	Stop
)

// enumerateNodes walks the node array starting at position 1 and
// reports every accepted word. Words come out in graph traversal
// order: children before right siblings.
func enumerateNodes(nodes []nodeWord, fn EnumFn) error {
	if len(nodes) <= 1 {
		return nil
	}
	_, err := enumerateFrom(nodes, 1, nil, fn)
	return err
}

func enumerateFrom(nodes []nodeWord, position int, prefix []byte, fn EnumFn) (EnumerationResult, error) {
	if position <= 0 || position >= len(nodes) {
		return Stop, fmt.Errorf("%w: node index %d out of range", ErrMalformedState, position)
	}
	n := nodes[position]
	word := append(prefix, n.value())

	if n.endOfWord() {
		if fn(word) == Stop {
			return Stop, nil
		}
	}
	if child := n.childIndex(); child != 0 {
		result, err := enumerateFrom(nodes, child, word, fn)
		if err != nil || result == Stop {
			return Stop, err
		}
	}
	if !n.endOfList() {
		return enumerateFrom(nodes, position+1, prefix, fn)
	}
	return Continue, nil
}

// wordsFromNodes reconstructs the full lexicon from a node array.
func wordsFromNodes(nodes []nodeWord) ([]string, error) {
	var words []string
	err := enumerateNodes(nodes, func(word []byte) EnumerationResult {
		words = append(words, string(word))
		return Continue
	})
	return words, err
}

// containsWord walks sibling runs character by character. Empty words
// are never accepted: the root has no slot in the array.
func containsWord(nodes []nodeWord, word string) bool {
	if len(word) == 0 || len(nodes) <= 1 {
		return false
	}

	position := 1
	for i := 0; ; {
		n := nodes[position]
		if n.value() != word[i] {
			if n.endOfList() {
				return false
			}
			position++
			continue
		}

		i++
		if i == len(word) {
			return n.endOfWord()
		}
		position = n.childIndex()
		if position == 0 || position >= len(nodes) {
			return false
		}
	}
}

// DumpNodes writes a line per node of a serialized DAWG (either
// format), for debugging encoded files.
func DumpNodes(w io.Writer, data []byte) error {
	nodes, err := parseAnyFormat(data)
	if err != nil {
		return err
	}
	for i, n := range nodes[1:] {
		_, err := fmt.Fprintf(w, "%d: letter %q, word %v, end %v, child %d\n",
			i+1, n.value(), n.endOfWord(), n.endOfList(), n.childIndex())
		if err != nil {
			return err
		}
	}
	return nil
}
