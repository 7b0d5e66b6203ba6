package dawg

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
)

// Builder is the interface for creating a new DAWG. Words may be added
// in any order; the builder sorts into canonical (length, lexicographic)
// order before constructing anything.
type Builder interface {
	Add(word string)
	Finish() (Finder, error)
}

// Finder is the interface for querying and serializing a finished
// DAWG, whether just built or loaded from disk.
type Finder interface {
	Contains(word string) bool
	Enumerate(fn EnumFn) error
	Words() ([]string, error)
	NumWords() int
	NumNodes() int
	Stats() Stats
	Checksum() Checksum
	Verify(expected Checksum) error
	Write(w io.Writer) (int64, error)
	WritePacked(w io.Writer) (int64, error)
	Save(path string) (int64, error)
	SavePacked(path string) (int64, error)
}

// Stats describes the size of a finished DAWG in both formats.
type Stats struct {
	Words         int
	Nodes         int // surviving nodes, sentinel excluded
	NodeCount     int // header value: Nodes + 1
	IndexBits     int
	BitsPerNode   int
	UnpackedBytes int
	PackedBytes   int
	Saving        float64 // packed size reduction over unpacked, 0..1
}

// Option configures a Builder.
type Option func(*Dawg)

// WithFingerprintHash substitutes the hash used for subtree
// fingerprints during minimization. The hash must produce at least 20
// bytes; see Blake2bFingerprint. The input checksum always uses SHA-1
// regardless of this option.
func WithFingerprintHash(newHash func() hash.Hash) Option {
	return func(d *Dawg) { d.newHash = newHash }
}

// WithLogger routes stage progress to l instead of the root logger.
func WithLogger(l log.Logger) Option {
	return func(d *Dawg) { d.log = l }
}

// Dawg implements Builder and Finder.
type Dawg struct {
	// these are used during building and erased after Finish
	words  []string
	root   *node
	nextID int

	newHash func() hash.Hash
	log     log.Logger

	// these are kept
	finished bool
	numWords int
	sum      Checksum
	nodes    []nodeWord
}

// New creates a new DAWG builder.
func New(opts ...Option) Builder {
	d := &Dawg{
		newHash: sha1Fingerprint,
		log:     log.Root(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add adds a word. Adding to a finished DAWG panics; empty words are
// ignored (the root cannot be an accepting state in the encoded form).
func (d *Dawg) Add(word string) {
	if d.finished {
		panic(errors.New("Dawg.Add(): tried to add to a finished Dawg"))
	}
	if word == "" {
		return
	}
	d.words = append(d.words, word)
}

// Finish sorts the words, builds the trie, fingerprints and minimizes
// it, and linearizes the survivors into the encoded node array. The
// builder must not be used again afterwards.
func (d *Dawg) Finish() (Finder, error) {
	if d.finished {
		return d, nil
	}

	SortWordList(d.words)
	d.words = dedupeSorted(d.words)
	d.numWords = len(d.words)

	d.log.Info("Calculating input checksum", "words", d.numWords)
	d.sum = WordListChecksum(d.words)

	d.log.Info("Creating trie")
	d.root = &node{}
	d.buildTrie()
	d.root.markListBounds()

	d.log.Info("Calculating node fingerprints")
	d.fingerprintAll()

	d.log.Info("Removing redundant nodes")
	maxDepth := -1
	if d.numWords > 0 {
		maxDepth = len(d.words[d.numWords-1]) - 1
	}
	if err := d.reduce(maxDepth); err != nil {
		return nil, err
	}

	d.log.Info("Preparing final node list")
	indexed, err := d.indexNodes()
	if err != nil {
		return nil, err
	}

	d.nodes, err = encodeNodes(indexed)
	if err != nil {
		return nil, err
	}
	d.log.Info("Encoded graph", "nodes", len(indexed))

	// the trie is no longer needed
	d.root = nil
	d.words = nil
	d.finished = true

	return d, nil
}

func dedupeSorted(words []string) []string {
	deduped := words[:0]
	for i, w := range words {
		if i == 0 || w != words[i-1] {
			deduped = append(deduped, w)
		}
	}
	return deduped
}

func (d *Dawg) checkFinished() {
	if !d.finished {
		panic(errors.New("DAWG was not Finished()"))
	}
}

// Contains reports whether word is in the lexicon.
func (d *Dawg) Contains(word string) bool {
	d.checkFinished()
	return containsWord(d.nodes, word)
}

// Enumerate calls fn for every word, in graph traversal order.
func (d *Dawg) Enumerate(fn EnumFn) error {
	d.checkFinished()
	return enumerateNodes(d.nodes, fn)
}

// Words returns the full lexicon in graph traversal order.
func (d *Dawg) Words() ([]string, error) {
	d.checkFinished()
	return wordsFromNodes(d.nodes)
}

// NumWords returns the number of words in the lexicon.
func (d *Dawg) NumWords() int {
	return d.numWords
}

// NumNodes returns the number of surviving nodes, the sentinel
// excluded.
func (d *Dawg) NumNodes() int {
	d.checkFinished()
	return len(d.nodes) - 1
}

// Stats reports the size of the DAWG in both formats.
func (d *Dawg) Stats() Stats {
	d.checkFinished()
	count := len(d.nodes)
	indexBits := bitsForIndex(count)
	unpacked := 4 + 4*count
	packed := packedSize(count)
	return Stats{
		Words:         d.numWords,
		Nodes:         count - 1,
		NodeCount:     count,
		IndexBits:     indexBits,
		BitsPerNode:   wordFlagBits + endFlagBits + letterBits + indexBits,
		UnpackedBytes: unpacked,
		PackedBytes:   packed,
		Saving:        1 - float64(packed)/float64(unpacked),
	}
}

// Checksum returns the checksum of this DAWG's lexicon: for a built
// DAWG the checksum of the sorted input, for a loaded one the checksum
// recomputed from the decoded words.
func (d *Dawg) Checksum() Checksum {
	d.checkFinished()
	return d.sum
}

// Verify reconstructs the lexicon from the encoded nodes and checks it
// against the expected checksum.
func (d *Dawg) Verify(expected Checksum) error {
	d.checkFinished()
	return verifyNodes(d.nodes, expected)
}

// Write serializes the DAWG in the 4-byte format. Returns the number
// of bytes written.
func (d *Dawg) Write(w io.Writer) (int64, error) {
	d.checkFinished()
	return writeNodes(w, d.nodes)
}

// WritePacked serializes the DAWG in the packed format. Returns the
// number of bytes written.
func (d *Dawg) WritePacked(w io.Writer) (int64, error) {
	d.checkFinished()
	return packNodes(w, d.nodes)
}

// Save writes the 4-byte format to a file. The file is only created
// once encoding has fully succeeded, so a failing run never leaves a
// truncated binary behind.
func (d *Dawg) Save(path string) (int64, error) {
	return d.save(path, d.Write)
}

// SavePacked writes the packed format to a file, with the same
// no-partial-output discipline as Save.
func (d *Dawg) SavePacked(path string) (int64, error) {
	return d.save(path, d.WritePacked)
}

func (d *Dawg) save(path string, write func(io.Writer) (int64, error)) (int64, error) {
	d.checkFinished()

	var buf bytes.Buffer
	n, err := write(&buf)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrOutputUnavailable, err)
	}
	return n, nil
}

// Read opens a serialized DAWG from memory, detecting which format it
// holds. The decoded lexicon is enumerated once up front so that a
// structurally broken binary is rejected here rather than during
// queries.
func Read(data []byte) (Finder, error) {
	nodes, err := parseAnyFormat(data)
	if err != nil {
		return nil, err
	}

	words, err := wordsFromNodes(nodes)
	if err != nil {
		return nil, err
	}
	SortWordList(words)

	return &Dawg{
		finished: true,
		numWords: len(words),
		sum:      WordListChecksum(words),
		nodes:    nodes,
		newHash:  sha1Fingerprint,
		log:      log.Root(),
	}, nil
}

// Load reads a serialized DAWG from a file through a memory map.
func Load(path string) (Finder, error) {
	data, err := readFileMapped(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	return Read(data)
}
