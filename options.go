// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Options configures queue creation.
type Options struct {
	// Geometry (fixed for the queue's lifetime)
	itemSize int
	capacity int

	// Storage source for owned queues
	alloc Allocator
	mmap  bool
	limit int // Max storage bytes for built-in allocators, 0 = DefaultLimit
}

// Builder creates queues with fluent configuration.
//
// Builder selects the storage source for owned queues and produces either
// an owned queue, an in-place queue over caller memory, or a Locked
// wrapper.
//
// Example:
//
//	// Heap-backed queue (same as ringq.Create)
//	q, err := ringq.New(12, 10).Build()
//
//	// Page-mapped storage, capped at 64 MiB
//	q, err := ringq.New(64, 1<<20).Mmap().Limit(64 << 20).Build()
//
//	// Static storage, no allocation
//	var rec ringq.Queue
//	var items [12 * 10]byte
//	q := ringq.New(12, 10).BuildInPlace(&rec, items[:])
type Builder struct {
	opts Options
}

// New creates a queue builder for capacity items of itemSize bytes each.
//
// Panics if itemSize or capacity is not positive (see DebugChecks).
//
// Example:
//
//	b := ringq.New(16, 256)
//	q, err := b.Build()
func New(itemSize, capacity int) *Builder {
	checkSizes(itemSize, capacity)
	return &Builder{opts: Options{itemSize: itemSize, capacity: capacity}}
}

// Allocator sets the raw allocator for owned storage.
// Overrides Mmap and Limit.
func (b *Builder) Allocator(a Allocator) *Builder {
	b.opts.alloc = a
	return b
}

// Mmap selects MmapAllocator for owned storage.
func (b *Builder) Mmap() *Builder {
	b.opts.mmap = true
	return b
}

// Limit caps the storage size accepted by the built-in allocators.
// Ignored when a custom Allocator is set.
func (b *Builder) Limit(n int) *Builder {
	b.opts.limit = n
	return b
}

// StorageSize returns the item storage size in bytes, for sizing the
// block passed to BuildInPlace. Returns 0 if it overflows int.
func (b *Builder) StorageSize() int {
	return StorageSize(b.opts.itemSize, b.opts.capacity)
}

// Build creates a queue that owns its storage.
//
// Allocator selection:
//
//	Allocator(a) set → a
//	Mmap()           → MmapAllocator{Limit}
//	Limit(n) only    → HeapAllocator{Limit}
//	Neither          → DefaultAllocator
//
// Returns (nil, err) with err matching ErrOutOfMemory if storage cannot
// be allocated.
func (b *Builder) Build() (*Queue, error) {
	return create(b.allocator(), b.opts.itemSize, b.opts.capacity)
}

// BuildInPlace initializes rec over the caller-supplied items block.
// Same contract as CreateInPlace.
func (b *Builder) BuildInPlace(rec *Queue, items []byte) *Queue {
	return CreateInPlace(rec, b.opts.itemSize, b.opts.capacity, items)
}

// BuildLocked creates an owned queue wrapped in a Locked.
func (b *Builder) BuildLocked() (*Locked, error) {
	q, err := b.Build()
	if err != nil {
		return nil, err
	}
	return NewLocked(q), nil
}

func (b *Builder) allocator() Allocator {
	switch {
	case b.opts.alloc != nil:
		return b.opts.alloc
	case b.opts.mmap:
		return MmapAllocator{Limit: b.opts.limit}
	case b.opts.limit != 0:
		return HeapAllocator{Limit: b.opts.limit}
	default:
		return DefaultAllocator
	}
}
