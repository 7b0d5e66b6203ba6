package dawg

import (
	"crypto/sha1"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("cat\n dog\t\tbird\r\nemu "))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "bird", "emu"}, words)

	words, err = ReadWords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestSortWordList(t *testing.T) {
	words := []string{"bb", "a", "ab", "c", "aa", "b"}
	SortWordList(words)
	assert.Equal(t, []string{"a", "b", "c", "aa", "ab", "bb"}, words)
}

func TestWordListChecksumSingle(t *testing.T) {
	want := Checksum(sha1.Sum([]byte("HELLO")))
	assert.Equal(t, want, WordListChecksum([]string{"HELLO"}))
}

func TestWordListChecksumEmpty(t *testing.T) {
	assert.Equal(t, Checksum{}, WordListChecksum(nil))
}

// referenceMerge is the textbook two-pointer merge the checksum is
// defined over, kept separate from the production code on purpose.
func referenceMerge(left, right Checksum) []byte {
	var out []byte
	i, j := 0, 0
	for i < len(left) || j < len(right) {
		switch {
		case i == len(left):
			out = append(out, right[j])
			j++
		case j == len(right):
			out = append(out, left[i])
			i++
		case left[i] <= right[j]:
			out = append(out, left[i])
			i++
		default:
			out = append(out, right[j])
			j++
		}
	}
	return out
}

func TestWordListChecksumPair(t *testing.T) {
	left := Checksum(sha1.Sum([]byte("AB")))
	right := Checksum(sha1.Sum([]byte("AR")))
	want := Checksum(sha1.Sum(referenceMerge(left, right)))

	assert.Equal(t, want, WordListChecksum([]string{"AB", "AR"}))
}

func TestWordListChecksumSplitsAtMidpoint(t *testing.T) {
	words := []string{"A", "B", "C"}

	left := WordListChecksum(words[:1])
	right := WordListChecksum(words[1:])
	want := Checksum(sha1.Sum(referenceMerge(left, right)))

	assert.Equal(t, want, WordListChecksum(words))
}

func TestWordListChecksumSensitivity(t *testing.T) {
	a := WordListChecksum([]string{"CAT", "DOG"})
	b := WordListChecksum([]string{"CAT", "DOT"})
	c := WordListChecksum([]string{"CAT"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}
