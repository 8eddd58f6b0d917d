// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xor

import "encoding/binary"

// Reference folds b with exclusive-or, one byte at a time. It is the
// unspecialized result every tier must reproduce.
func Reference(b []byte) byte {
	var acc byte
	for _, x := range b {
		acc ^= x
	}
	return acc
}

// baseXor is the TierBaseline kernel.
func baseXor(b []byte) byte {
	return Reference(b)
}

// avxXor is the TierAVX kernel: it folds 8 bytes per step in a 64-bit
// word and collapses the word at the end.
func avxXor(b []byte) byte {
	var acc uint64
	i := 0
	for ; i+8 <= len(b); i += 8 {
		acc ^= binary.LittleEndian.Uint64(b[i:])
	}
	r := foldWord(acc)
	for ; i < len(b); i++ {
		r ^= b[i]
	}
	return r
}

// avx2Xor is the TierAVX2 kernel: four independent 64-bit accumulators,
// 32 bytes per step.
func avx2Xor(b []byte) byte {
	var a0, a1, a2, a3 uint64
	i := 0
	for ; i+32 <= len(b); i += 32 {
		a0 ^= binary.LittleEndian.Uint64(b[i:])
		a1 ^= binary.LittleEndian.Uint64(b[i+8:])
		a2 ^= binary.LittleEndian.Uint64(b[i+16:])
		a3 ^= binary.LittleEndian.Uint64(b[i+24:])
	}
	acc := a0 ^ a1 ^ a2 ^ a3
	for ; i+8 <= len(b); i += 8 {
		acc ^= binary.LittleEndian.Uint64(b[i:])
	}
	r := foldWord(acc)
	for ; i < len(b); i++ {
		r ^= b[i]
	}
	return r
}

// foldWord xors the 8 bytes of w together.
func foldWord(w uint64) byte {
	w ^= w >> 32
	w ^= w >> 16
	w ^= w >> 8
	return byte(w)
}
