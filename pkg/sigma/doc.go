// Package sigma implements non-interactive Sigma-protocol proofs over
// discrete logarithm statements composed with AND and OR.
//
// A proposition is a SigmaBoolean tree. A proof is the compact byte string
// produced by SerializeSig: challenges and responses only, with no tags or
// lengths. The verifier recovers the tree shape from the proposition and
// ParseSigComputeChallenges rebuilds an UncheckedTree from the bytes.
//
// # Proof layout
//
// The root challenge is always present. Below it:
//
//	proveDlog         [e]? [z]
//	allOf(a, b, ...)  [e]? proof(a) proof(b) ...   children share e
//	anyOf(a, ..., k)  [e]? [e_a] proof(a) ... proof(k)
//
// Challenges are SoundnessBytes (24) wide, responses are 32-byte big-endian
// scalars. The last child of an OR node carries no challenge: its value is
// the XOR of the node challenge with the challenges of its siblings.
//
// # Verification
//
// After parsing, ComputeCommitments recomputes every Schnorr commitment as
// g^z * h^-e and FiatShamirTreeToBytes serializes the tree for hashing.
// The proof is accepted when FiatShamirHash of that encoding followed by the
// signed message equals the root challenge. The verifier package wires
// these steps together.
//
// # Propositions as text
//
// String renders a proposition in the script notation (allOf, anyOf,
// proveDlog, sigmaProp) and ParseSigmaBooleanExpr reads it back. This is
// the only way to spell conjectures outside of Go code, because they have no
// binary encoding.
package sigma
