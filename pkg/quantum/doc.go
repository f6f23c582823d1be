// Package quantum resolves orbital quantum numbers and the degeneracy of the orbital
// state they select.
//
// The package is pure: lookups never fail loudly, they report an absent result with a
// false second return value. Validation problems are reported by Check as errors wrapping
// diagnostics sentinels, for the caller to log.
//
// Lookup tables:
//
//	l:  0 s, 1 p, 2 d, 3 f
//	ml: with l = 1 only: -1 x, 0 z, 1 y
//	ms: -0.5 down, 0.5 up
//
// Degeneracy follows the populated numbers (see Selection), with an optional j-coupled
// override supplied by a JCouplingRule.
package quantum
