/*
Package dawg builds a Directed Acyclic Word Graph from a word list and
serializes it to a compact binary index.

The graph is the minimal deterministic automaton accepting exactly the
input lexicon. Construction is offline: all words are added first, then
Finish runs the whole pipeline. A trie is built from the sorted word
list, every node is fingerprinted with a hash covering its subtree and
its right siblings, and nodes with equal fingerprints are merged depth
by depth. The surviving nodes are laid out in a linear array in which
the children of any node occupy a contiguous run, so a single
first-child index per node is enough to traverse the graph.

Two binary formats are produced. The primary format spends four bytes
per node: a little-endian word holding the edge character, two flags
and a 20-bit first-child index. The packed format re-encodes the same
nodes with the index field narrowed to the minimum number of bits the
node count requires, typically shaving another quarter off the file.
A summary of both formats is found at the top of encode.go.

In general, to use it you first create a builder using dawg.New() and
add words to it. Order does not matter and duplicates are ignored; the
builder sorts before constructing anything. After all the words are
added, call Finish() which returns a dawg.Finder interface. The Finder
can enumerate or look up words, report size statistics, and write
either format with Save or SavePacked. A written file can be opened
again later using the Load() function, which detects the format.

A merkle-style checksum of the sorted input is computed up front, and
Verify re-derives the lexicon from the encoded nodes and checks it
against that checksum, so a corrupted or miswritten index is detected
before it ships.
*/
package dawg
