// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mem provides the raw block primitives consumed by the queue core.
//
// Contract:
// Copy and Fill are the only operations that touch item bytes. Size
// arithmetic goes through Mul so that itemSize*capacity never wraps.
// Map and Unmap hand out anonymous private pages where the platform
// supports them.
package mem
