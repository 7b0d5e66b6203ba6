package dawg

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"sort"

	"golang.org/x/exp/mmap"
)

// Checksum is the merkle-style digest of a sorted word list.
type Checksum [sha1.Size]byte

// ReadWords reads whitespace-separated words from r.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	return words, nil
}

// ReadWordsFile reads a word list through a memory map.
func ReadWordsFile(path string) ([]string, error) {
	data, err := readFileMapped(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	return ReadWords(bytes.NewReader(data))
}

func readFileMapped(path string) ([]byte, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if len(data) == 0 {
		return data, nil
	}
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, err
	}
	return data, nil
}

// SortWordList sorts words by length first, then lexicographically on
// raw bytes. This is the canonical order: the trie builder, the
// checksum and the verifier all assume it.
func SortWordList(words []string) {
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) < len(words[j])
		}
		return words[i] < words[j]
	})
}

// WordListChecksum computes the recursive checksum of a sorted word
// list: a single word hashes directly, a longer range hashes the
// byte-wise sorted merge of its two halves' digests. The empty list
// gets the zero digest.
func WordListChecksum(words []string) Checksum {
	if len(words) == 0 {
		return Checksum{}
	}
	return wordListChecksum(words)
}

func wordListChecksum(words []string) Checksum {
	if len(words) == 1 {
		return sha1.Sum([]byte(words[0]))
	}

	mid := len(words) / 2
	left := wordListChecksum(words[:mid])
	right := wordListChecksum(words[mid:])

	return sha1.Sum(mergeDigests(left, right))
}

// mergeDigests interleaves two digests into one 40-byte buffer with a
// two-pointer merge, taking from the left digest on equal bytes.
func mergeDigests(left, right Checksum) []byte {
	merged := make([]byte, 0, 2*sha1.Size)
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			merged = append(merged, left[i])
			i++
		} else {
			merged = append(merged, right[j])
			j++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}
