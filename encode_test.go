package dawg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeWordFields(t *testing.T) {
	n := nodeWord(0x30000241)
	assert.Equal(t, byte('A'), n.value())
	assert.Equal(t, 2, n.childIndex())
	assert.True(t, n.endOfWord())
	assert.True(t, n.endOfList())

	n = nodeWord(0x0FFFFF52)
	assert.Equal(t, byte('R'), n.value())
	assert.Equal(t, maxChildIndex, n.childIndex())
	assert.False(t, n.endOfWord())
	assert.False(t, n.endOfList())
}

func TestWriteParseRoundTrip(t *testing.T) {
	nodes := []nodeWord{
		0,
		nodeWord(2)<<childBitShift | 'A' | endOfListFlag,
		'R' | endOfWordFlag,
		'B' | endOfWordFlag | endOfListFlag,
	}

	var buf bytes.Buffer
	written, err := writeNodes(&buf, nodes)
	require.NoError(t, err)
	assert.Equal(t, int64(4+4*len(nodes)), written)

	parsed, err := parseNodes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, nodes, parsed)
}

func TestParseNodesRejectsGarbage(t *testing.T) {
	_, err := parseNodes([]byte{1, 0, 0})
	assert.ErrorIs(t, err, ErrMalformedState)

	// count says 2 nodes, but only the sentinel follows
	_, err = parseNodes([]byte{2, 0, 0, 0, 0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrMalformedState)

	// sentinel slot must be zero
	_, err = parseNodes([]byte{1, 0, 0, 0, 1, 0, 0, 0})
	assert.ErrorIs(t, err, ErrMalformedState)
}

// runTerminates scans forward from a run entry point and reports the
// position of its end-of-list node, failing if the scan leaves the
// array.
func runTerminates(t *testing.T, nodes []nodeWord, start int) int {
	t.Helper()
	for q := start; q < len(nodes); q++ {
		if nodes[q].endOfList() {
			return q
		}
	}
	t.Fatalf("sibling run starting at %d does not terminate", start)
	return -1
}

// Every child pointer must land on a run that terminates with exactly
// one end-of-list flag before the array ends, and every encoded node
// must be reachable from the root run. Lexicons below include the
// mid-list survivor case, where child pointers target suffixes of
// other runs.
func TestEncodedRunInvariants(t *testing.T) {
	lexicons := [][]string{
		{"A"},
		{"AB", "AR"},
		{"CAR", "CARS"},
		{"CITIES", "PITIES"},
		{"AT", "CAT", "SAT"},
		{"TAP", "TAPS", "TOP", "TOPS", "STOP", "STOPS"},
	}

	for _, words := range lexicons {
		d := buildFinished(t, words...)
		nodes := d.nodes

		reached := make(map[int]bool)
		starts := []int{1}
		for len(starts) > 0 {
			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]
			if reached[start] {
				continue
			}

			end := runTerminates(t, nodes, start)
			for q := start; q <= end; q++ {
				if q > start {
					// exactly one end-of-list inside the run
					assert.Equal(t, q == end, nodes[q].endOfList(), "run %d..%d position %d", start, end, q)
				}
				if reached[q] {
					continue
				}
				reached[q] = true
				if child := nodes[q].childIndex(); child != 0 {
					require.Less(t, child, len(nodes), "child index out of range")
					starts = append(starts, child)
				}
			}
		}

		for i := 1; i < len(nodes); i++ {
			assert.True(t, reached[i], "node %d unreachable in %v", i, words)
		}
	}
}
