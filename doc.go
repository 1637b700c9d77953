// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides a fixed-capacity ring queue of fixed-size items.
//
// A queue holds up to Cap items of exactly ItemSize bytes each, stored by
// value in one contiguous block partitioned into slots. It is meant for
// embedded and resource-constrained code paths where the same queue type
// must work on heap storage and on static or stack memory supplied by the
// caller.
//
// # Quick Start
//
// Owned storage (allocated, must be destroyed):
//
//	q, err := ringq.Create(12, 10)
//	if err != nil {
//	    return err // ErrOutOfMemory
//	}
//	defer q.Destroy()
//
// Caller-supplied storage (no allocation, never destroyed):
//
//	var (
//	    rec   ringq.Queue
//	    items [12 * 10]byte
//	)
//	q := ringq.CreateInPlace(&rec, 12, 10, items[:])
//
// Builder API for allocator selection:
//
//	q, err := ringq.New(12, 10).Build()                   // DefaultAllocator
//	q, err := ringq.New(12, 10).Mmap().Build()            // MmapAllocator
//	q, err := ringq.New(12, 10).Allocator(myArena).Build() // custom
//
// # Basic Usage
//
//	item := make([]byte, q.ItemSize())
//	binary.LittleEndian.PutUint32(item, 42)
//
//	// Push (non-blocking)
//	if !q.Push(item) {
//	    // Queue is full - drop or retry later
//	}
//
//	// Pop (non-blocking)
//	buf := make([]byte, q.ItemSize())
//	if !q.Pop(buf) {
//	    // Queue is empty
//	}
//
// Push copies the item in and Pop copies it out; the queue never keeps a
// reference to caller memory. The slice passed to either must be exactly
// ItemSize bytes long.
//
// # Ownership
//
// Create and Builder.Build return queues that own their storage. Destroy
// releases it through the allocator the queue was created with.
//
// CreateInPlace and Builder.BuildInPlace initialize a caller-owned Queue
// record over a caller-owned item block. The caller keeps both alive for
// as long as the queue is used, never modifies them directly, and never
// calls Destroy. Flush resets such a queue for reuse.
//
// The zero Queue is an uninitialized record. Its layout is private; its
// size is QueueSize, which is checked against the real record size at
// compile time. StorageSize gives the item block size.
//
// # Lifecycle
//
//	Uninitialized ──Create/CreateInPlace──▶ Ready
//	Ready ──Push/Pop/Flush──▶ Ready
//	Ready ──Destroy──▶ Destroyed      (owned only)
//	Ready ──(dropped)──▶ abandoned    (caller-supplied)
//
// No operation is valid on a destroyed queue.
//
// # Error Handling
//
// Full and empty conditions are expected control flow. Push and Pop report
// them as false; Enqueue and Dequeue report them as [ErrWouldBlock], which
// is sourced from [code.hybscloud.com/iox]:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := q.Enqueue(item)
//	    if err == nil {
//	        break
//	    }
//	    if !ringq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
//
// Allocation failure is reported by Create and Build as a nil queue and an
// error matching [ErrOutOfMemory]. No partially built queue is returned.
//
// Contract violations (nil or destroyed queue, non-positive sizes, a slice
// whose length is not ItemSize, Destroy on caller-supplied storage) are
// programming errors. They panic while [DebugChecks] is true, which is the
// default. Building with the ringq_nodebug tag removes the checks; the
// behavior of a violation is then undefined.
//
// # Allocators
//
// Owned storage comes from an [Allocator]:
//
//	HeapAllocator{Limit} - Go heap, refuses blocks above Limit
//	MmapAllocator{Limit} - anonymous private mappings outside the GC heap
//
// Both default Limit to [DefaultLimit]. A request above the limit fails
// with ErrOutOfMemory instead of aborting the process.
//
// # Thread Safety
//
// Queue has no internal synchronization and is not safe for concurrent
// use. Concurrent calls on one queue cause undefined behavior including
// data corruption. Guard it with a lock, or wrap it:
//
//	lq := ringq.NewLocked(q)
//
// [Locked] serializes each call behind a spin lock built on
// [code.hybscloud.com/atomix] and [code.hybscloud.com/spin]. Push and Pop
// still fail immediately rather than wait for space or data.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] and [code.hybscloud.com/spin] for the Locked
// spin lock, and [golang.org/x/sys] for page mapping and cache line
// padding.
package ringq
