// Package xor reduces a byte slice to one byte with exclusive-or, with one
// kernel per hwy.Tier. It exists to exercise the dispatch strategies of
// package hwy under load.
//
// # Entry points
//
//   - Branching(b) - kernel chosen by switching over the cached tier
//   - Indirect(b) - kernel looked up in the Kernels table
//   - Standard(b) - kernel reached through a lazily patched pointer
//   - FancyBranching(b), FancyIndirect(b) - Reference run as a closure
//     through an hwy.Dispatcher
//   - Reference(b) - no dispatch at all
//
// All of them return the same byte for the same input.
//
// # Kernels
//
// The baseline kernel folds one byte at a time. The AVX kernel folds 8
// bytes per step in a 64-bit word, and the AVX2 kernel keeps four such
// words in flight. Words are collapsed to a byte at the end, then the tail
// bytes are folded in.
package xor
