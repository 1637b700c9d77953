// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !linux

package main

import "errors"

func pinCPU(int) (func(), error) {
	return nil, errors.New("cpu pinning is only supported on linux")
}
