// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mem

import (
	"errors"
	"math"
	"math/bits"
)

// ErrUnsupported is returned by Map on platforms without anonymous mappings.
var ErrUnsupported = errors.New("mem: page mapping not supported on this platform")

// Mul returns a*b and reports whether the product fits in an int.
// Negative operands never fit.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Copy copies exactly len(dst) bytes from src.
// src must be at least as long as dst.
func Copy(dst, src []byte) {
	copy(dst, src[:len(dst)])
}

// Fill sets every byte of dst to v.
func Fill(dst []byte, v byte) {
	if v == 0 {
		clear(dst)
		return
	}
	if len(dst) == 0 {
		return
	}
	// Doubling copy: O(log n) calls into memmove.
	dst[0] = v
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}
