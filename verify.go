package dawg

import (
	"encoding/binary"
	"fmt"
)

// verifyNodes reconstructs the lexicon from a node array, re-sorts it
// into canonical order, and checks its checksum against the one taken
// from the input. The binary is only trusted once this passes.
func verifyNodes(nodes []nodeWord, expected Checksum) error {
	words, err := wordsFromNodes(nodes)
	if err != nil {
		return err
	}
	SortWordList(words)

	if actual := WordListChecksum(words); actual != expected {
		return fmt.Errorf("%w: reconstructed %d words, checksum %x, want %x",
			ErrIntegrityFailure, len(words), actual, expected)
	}
	return nil
}

// VerifyBinary checks a written binary (either format) against the
// checksum of the word list it was generated from.
func VerifyBinary(data []byte, expected Checksum) error {
	nodes, err := parseAnyFormat(data)
	if err != nil {
		return err
	}
	return verifyNodes(nodes, expected)
}

// parseAnyFormat sniffs which of the two formats data holds by its
// exact length and decodes it to the node array.
func parseAnyFormat(data []byte) ([]nodeWord, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: binary too short (%d bytes)", ErrMalformedState, len(data))
	}
	count := int(binary.LittleEndian.Uint32(data))
	if count >= 1 && len(data) == 4+4*count {
		return parseNodes(data)
	}
	if count >= 1 && len(data) == packedSize(count) {
		return unpackNodes(data)
	}
	return nil, fmt.Errorf("%w: %d bytes match neither format for node count %d",
		ErrMalformedState, len(data), count)
}
