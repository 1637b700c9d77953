// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package mem

// Map is a stub for platforms without anonymous mappings.
func Map(size int) ([]byte, error) {
	return nil, ErrUnsupported
}

// Unmap is a stub for platforms without anonymous mappings.
func Unmap(b []byte) error {
	return ErrUnsupported
}
