// Package fuzztests houses Go fuzz harnesses for the radix codec and the
// calculator. They guard against panics and round-trip drift on arbitrary
// input.
//
// Seeds come from the batch programs under testdata/programs plus a small
// built-in list.
package fuzztests
