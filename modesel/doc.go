// Package modesel classifies and selects candidate unstable eigenmodes from a
// raw eigenvalue spectrum.
//
// Two selection policies are provided:
//
//   - SelectDualBranch — partition eligible entries (growth rate rr > eps) by
//     the sign of the imaginary part ri: positive → ion-like, non-positive →
//     electron-like; return the growth-rate maximum of each partition. Ties
//     resolve to the first occurrence in index order.
//
//   - SelectTopN — heap-based partial descending selection of the n largest
//     growth rates among eligible entries, comparison-only, O(R log R).
//     Equal growth rates resolve to the lower original index, so the order is
//     deterministic under permutation of equal values.
//
// Both policies are pure and side-effect free: they read the spectrum slices
// and return index lists, with -1 marking unfilled slots.
package modesel
