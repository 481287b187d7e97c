// Package ranking orders candidate content for a user across the three
// mural surfaces: the social feed, the marketplace, and reels.
//
// Each surface has its own scorer implementing a weighted additive formula
// over a shared per-invocation Context; all three delegate to the same
// stable descending sort so tie-break semantics are identical everywhere.
// Scoring is a pure function of its inputs for a single call: nothing is
// cached or persisted between invocations.
//
// The reels scorer is the only blocking one — it may consult an external
// affinity oracle for up to the first ten reels, with a bounded concurrent
// fan-out and a per-call fallback to a neutral score on any failure. A
// ranking call never fails because of a single item or oracle error.
package ranking
