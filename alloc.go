// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"fmt"

	"code.hybscloud.com/ringq/internal/mem"
)

// DefaultLimit is the largest storage block the built-in allocators hand
// out when their Limit field is zero.
const DefaultLimit = 1 << 30

// Allocator is the raw memory source for queues that own their storage.
//
// Alloc returns a block of exactly size bytes or an error. Free releases a
// block previously returned by Alloc on the same allocator. The queue
// zero-fills the block itself, so Alloc need not.
//
// Example (fixed arena):
//
//	type arena struct {
//	    buf  []byte
//	    used int
//	}
//
//	func (a *arena) Alloc(size int) ([]byte, error) {
//	    if len(a.buf)-a.used < size {
//	        return nil, ringq.ErrOutOfMemory
//	    }
//	    b := a.buf[a.used : a.used+size : a.used+size]
//	    a.used += size
//	    return b, nil
//	}
//
//	func (a *arena) Free([]byte) error { return nil }
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(b []byte) error
}

// DefaultAllocator backs Create and any Builder without an explicit allocator.
var DefaultAllocator Allocator = HeapAllocator{}

// HeapAllocator allocates storage on the Go heap.
//
// Requests above Limit fail with ErrOutOfMemory rather than letting the
// runtime abort the process. A zero Limit means DefaultLimit.
// Free is a no-op; the garbage collector reclaims the block.
type HeapAllocator struct {
	Limit int
}

// Alloc returns a zeroed heap block of size bytes.
func (a HeapAllocator) Alloc(size int) ([]byte, error) {
	if err := checkLimit(size, a.Limit); err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// Free drops the block.
func (HeapAllocator) Free([]byte) error {
	return nil
}

// MmapAllocator allocates storage as anonymous private page mappings,
// keeping large queues out of the garbage-collected heap.
//
// Requests above Limit fail with ErrOutOfMemory. A zero Limit means
// DefaultLimit. On platforms without mmap, Alloc always fails.
type MmapAllocator struct {
	Limit int
}

// Alloc maps size bytes of zeroed memory.
func (a MmapAllocator) Alloc(size int) ([]byte, error) {
	if err := checkLimit(size, a.Limit); err != nil {
		return nil, err
	}
	b, err := mem.Map(size)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %d bytes: %w", ErrOutOfMemory, size, err)
	}
	return b, nil
}

// Free unmaps a block returned by Alloc.
func (MmapAllocator) Free(b []byte) error {
	return mem.Unmap(b)
}

func checkLimit(size, limit int) error {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if size < 0 || size > limit {
		return fmt.Errorf("%w: %d bytes exceeds limit %d", ErrOutOfMemory, size, limit)
	}
	return nil
}
