package dawg

import (
	"crypto/sha1"
	"hash"

	"golang.org/x/crypto/blake2b"
)

const fingerprintSize = 20

// fingerprint summarizes the subtree below a node together with the
// remainder of the node's sibling list. Two nodes with equal
// fingerprints accept the same continuations and have identical
// right-sibling tails, which is exactly the condition under which the
// minimizer may merge them.
type fingerprint [fingerprintSize]byte

// Blake2bFingerprint is a drop-in fingerprint hash for
// WithFingerprintHash, producing a 160-bit BLAKE2b digest. The
// fingerprint never reaches the wire, so the choice only affects
// bucketing during minimization; SHA-1 remains the default.
func Blake2bFingerprint() hash.Hash {
	h, err := blake2b.New(fingerprintSize, nil)
	if err != nil {
		panic(err)
	}
	return h
}

func sha1Fingerprint() hash.Hash {
	return sha1.New()
}

// fingerprintAll computes the fingerprint of every node in post-order.
func (d *Dawg) fingerprintAll() {
	d.hashNode(d.root, nil)
}

// hashNode fills in the fingerprint of n. brothers holds the
// concatenated fingerprints of n's already-hashed right siblings,
// rightmost first. While iterating the children backwards, the
// intermediate hash input doubles as the brothers buffer of each
// successive child.
func (d *Dawg) hashNode(n *node, brothers []byte) {
	var input []byte
	for i := len(n.children) - 1; i >= 0; i-- {
		child := n.children[i]
		d.hashNode(child, input)
		input = append(input, child.fingerprint[:]...)
	}

	input = append(input, n.value)
	if n.endOfWord {
		input = append(input, 1)
	} else {
		input = append(input, 0)
	}
	input = append(input, brothers...)

	h := d.newHash()
	h.Write(input)
	copy(n.fingerprint[:], h.Sum(nil))
}
