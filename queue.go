// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/ringq/internal/mem"
)

// Queue is a fixed-capacity FIFO ring of fixed-size byte items.
//
// Items are stored by value: Push copies exactly ItemSize bytes into the
// next free slot and Pop copies them back out. The ring never grows; a
// Push on a full queue and a Pop on an empty queue fail immediately
// without touching any state.
//
// A Queue either owns its storage (Create, Builder.Build) or runs over
// caller-supplied memory (CreateInPlace, Builder.BuildInPlace). Both modes
// share every operation except Destroy, which is valid for owned queues
// only. The zero Queue is an uninitialized record, suitable as the
// container argument of CreateInPlace.
//
// Queue is not safe for concurrent use. Guard it externally or wrap it
// with [NewLocked].
//
// Memory: QueueSize bytes of record plus ItemSize*Cap bytes of storage
type Queue struct {
	storage  []byte
	alloc    Allocator
	capacity int
	itemSize int
	count    int
	read     int // Slot of the next Pop
	write    int // Slot of the next Push
	owned    bool
}

// QueueSize is the size in bytes of a Queue record on the target platform.
// Use it to budget static memory for records passed to CreateInPlace.
const QueueSize = 11 * unsafe.Sizeof(uintptr(0))

// QueueSize must equal the real record size.
var (
	_ [QueueSize - unsafe.Sizeof(Queue{})]struct{}
	_ [unsafe.Sizeof(Queue{}) - QueueSize]struct{}
)

// StorageSize returns the byte size of the item storage for a queue of
// capacity items of itemSize bytes. Returns 0 if the product overflows int.
func StorageSize(itemSize, capacity int) int {
	n, ok := mem.Mul(itemSize, capacity)
	if !ok {
		return 0
	}
	return n
}

// Create creates a queue that owns its storage, allocated from
// DefaultAllocator and zero-filled.
//
// Returns (nil, err) with err matching ErrOutOfMemory when the storage
// cannot be allocated; nothing is retained in that case.
//
// Panics if itemSize or capacity is not positive (see DebugChecks).
//
// Example:
//
//	q, err := ringq.Create(12, 10)
//	if err != nil {
//	    return err
//	}
//	defer q.Destroy()
func Create(itemSize, capacity int) (*Queue, error) {
	return create(DefaultAllocator, itemSize, capacity)
}

func create(alloc Allocator, itemSize, capacity int) (*Queue, error) {
	checkSizes(itemSize, capacity)
	size, ok := mem.Mul(itemSize, capacity)
	if !ok {
		return nil, fmt.Errorf("%w: %d items of %d bytes overflows int", ErrOutOfMemory, capacity, itemSize)
	}

	storage, err := alloc.Alloc(size)
	if err != nil {
		if IsOutOfMemory(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	}
	if len(storage) != size {
		_ = alloc.Free(storage)
		return nil, fmt.Errorf("%w: allocator returned %d bytes, want %d", ErrOutOfMemory, len(storage), size)
	}

	q := &Queue{}
	q.init(storage[:size:size], itemSize, capacity)
	q.alloc = alloc
	q.owned = true
	return q, nil
}

// CreateInPlace initializes rec as a queue over the caller-supplied items
// block and returns rec.
//
// items must be exactly StorageSize(itemSize, capacity) bytes. It is
// zero-filled here. Both rec and items stay owned by the caller and must
// outlive every use of the queue; the caller must not modify them while
// the queue is in use and must never call Destroy on the result. Use
// Flush to reset the queue for reuse.
//
// Panics if rec is nil, if itemSize or capacity is not positive, or if
// items has the wrong length (see DebugChecks).
//
// Example:
//
//	var (
//	    rec   ringq.Queue
//	    items [12 * 10]byte
//	)
//	q := ringq.CreateInPlace(&rec, 12, 10, items[:])
func CreateInPlace(rec *Queue, itemSize, capacity int, items []byte) *Queue {
	if DebugChecks && rec == nil {
		panic("ringq: nil queue record")
	}
	checkSizes(itemSize, capacity)
	size, ok := mem.Mul(itemSize, capacity)
	if DebugChecks && (!ok || len(items) != size) {
		panic(fmt.Sprintf("ringq: item storage is %d bytes, want %d*%d", len(items), itemSize, capacity))
	}

	rec.init(items[:size:size], itemSize, capacity)
	return rec
}

func (q *Queue) init(storage []byte, itemSize, capacity int) {
	*q = Queue{
		storage:  storage,
		capacity: capacity,
		itemSize: itemSize,
	}
	mem.Fill(storage, 0)
}

// Push copies item into the queue.
// Returns false, leaving the queue unchanged, if the queue is full.
//
// len(item) must equal ItemSize.
func (q *Queue) Push(item []byte) bool {
	q.checkItem(len(item))
	if q.count == q.capacity {
		return false
	}

	off := q.write * q.itemSize
	mem.Copy(q.storage[off:off+q.itemSize], item)
	q.write++
	if q.write == q.capacity {
		q.write = 0
	}
	q.count++
	return true
}

// Pop copies the oldest item into buf and removes it from the queue.
// Returns false, leaving buf and the queue unchanged, if the queue is empty.
//
// len(buf) must equal ItemSize. The vacated slot is not cleared.
func (q *Queue) Pop(buf []byte) bool {
	q.checkItem(len(buf))
	if q.count == 0 {
		return false
	}

	off := q.read * q.itemSize
	mem.Copy(buf, q.storage[off:off+q.itemSize])
	q.read++
	if q.read == q.capacity {
		q.read = 0
	}
	q.count--
	return true
}

// Enqueue is Push reporting a full queue as ErrWouldBlock.
func (q *Queue) Enqueue(item []byte) error {
	if !q.Push(item) {
		return ErrWouldBlock
	}
	return nil
}

// Dequeue is Pop reporting an empty queue as ErrWouldBlock.
func (q *Queue) Dequeue(buf []byte) error {
	if !q.Pop(buf) {
		return ErrWouldBlock
	}
	return nil
}

// ItemsNum returns the number of items currently stored.
func (q *Queue) ItemsNum() int {
	q.checkLive()
	return q.count
}

// IsEmpty reports whether the queue holds no items.
func (q *Queue) IsEmpty() bool {
	q.checkLive()
	return q.count == 0
}

// IsFull reports whether a Push would fail.
func (q *Queue) IsFull() bool {
	q.checkLive()
	return q.count == q.capacity
}

// Cap returns the maximum number of items.
func (q *Queue) Cap() int {
	q.checkLive()
	return q.capacity
}

// ItemSize returns the byte size of one item.
func (q *Queue) ItemSize() int {
	q.checkLive()
	return q.itemSize
}

// Owned reports whether the queue owns its storage and must be destroyed.
func (q *Queue) Owned() bool {
	q.checkLive()
	return q.owned
}

// Flush discards all items and rewinds both cursors to the first slot.
// No memory is released; stale bytes stay until overwritten.
func (q *Queue) Flush() {
	q.checkLive()
	q.count = 0
	q.read = 0
	q.write = 0
}

// Destroy releases the storage of an owned queue through the allocator it
// was created with and clears the record. The queue must not be used
// afterwards.
//
// Panics if the queue runs over caller-supplied storage (see DebugChecks).
func (q *Queue) Destroy() error {
	q.checkLive()
	if DebugChecks && !q.owned {
		panic("ringq: Destroy on caller-supplied storage")
	}

	alloc, storage := q.alloc, q.storage
	*q = Queue{}
	if alloc == nil {
		return nil
	}
	return alloc.Free(storage)
}

func checkSizes(itemSize, capacity int) {
	if !DebugChecks {
		return
	}
	if itemSize <= 0 {
		panic("ringq: item size must be > 0")
	}
	if capacity <= 0 {
		panic("ringq: capacity must be > 0")
	}
}

func (q *Queue) checkLive() {
	if !DebugChecks {
		return
	}
	if q == nil {
		panic("ringq: nil queue")
	}
	if q.capacity == 0 {
		panic("ringq: queue is not initialized or was destroyed")
	}
}

func (q *Queue) checkItem(n int) {
	q.checkLive()
	if DebugChecks && n != q.itemSize {
		panic(fmt.Sprintf("ringq: buffer is %d bytes, queue holds %d-byte items", n, q.itemSize))
	}
}
