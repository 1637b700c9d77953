// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Ring is the combined producer-consumer interface shared by *Queue and
// *Locked.
//
// Ring provides non-blocking Push and Pop operations over fixed-size byte
// items. Both fail immediately when they cannot proceed (queue full or
// empty) and leave the ring unchanged.
//
// Example:
//
//	func drain(r ringq.Ring, handle func([]byte)) {
//	    buf := make([]byte, r.ItemSize())
//	    for r.Pop(buf) {
//	        handle(buf)
//	    }
//	}
type Ring interface {
	Producer
	Consumer
	ItemsNum() int
	IsEmpty() bool
	Flush()
	Cap() int
	ItemSize() int
}

// Producer is the interface for pushing items.
//
// The item bytes are copied into the ring, so the caller may reuse the
// slice as soon as Push returns.
type Producer interface {
	// Push copies item into the ring (non-blocking).
	// len(item) must equal the ring's item size.
	// Returns false if the ring is full.
	Push(item []byte) bool

	// Enqueue is Push with an error result.
	// Returns nil on success, ErrWouldBlock if the ring is full.
	Enqueue(item []byte) error
}

// Consumer is the interface for popping items.
//
// The oldest item is copied into a caller-owned buffer.
type Consumer interface {
	// Pop copies the oldest item into buf and removes it (non-blocking).
	// len(buf) must equal the ring's item size.
	// Returns false if the ring is empty.
	Pop(buf []byte) bool

	// Dequeue is Pop with an error result.
	// Returns nil on success, ErrWouldBlock if the ring is empty.
	Dequeue(buf []byte) error
}

var (
	_ Ring = (*Queue)(nil)
	_ Ring = (*Locked)(nil)
)
