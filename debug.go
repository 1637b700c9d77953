// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !ringq_nodebug

package ringq

// DebugChecks is true unless built with the ringq_nodebug tag.
// Contract violations panic while it is set.
const DebugChecks = true
