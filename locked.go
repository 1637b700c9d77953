// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// Locked serializes every operation on a Queue behind a spin lock, so one
// queue can be shared by several goroutines.
//
// Each call holds the lock for at most one copy of ItemSize bytes. Push
// and Pop still never wait for space or data: they fail immediately on a
// full or empty queue.
//
// Locked adds no ordering beyond the lock itself. Items pushed by one
// goroutine are popped in push order; interleaving across goroutines
// follows lock acquisition order.
//
// Example:
//
//	q, _ := ringq.Create(8, 1024)
//	lq := ringq.NewLocked(q)
//
//	go func() { // producer
//	    backoff := iox.Backoff{}
//	    for _, msg := range msgs {
//	        for !lq.Push(msg) {
//	            backoff.Wait()
//	        }
//	        backoff.Reset()
//	    }
//	}()
type Locked struct {
	_  cpu.CacheLinePad
	mu spinLock
	_  cpu.CacheLinePad
	q  *Queue
}

// NewLocked wraps q. The caller must not use q directly while the wrapper
// is shared.
func NewLocked(q *Queue) *Locked {
	q.checkLive()
	return &Locked{q: q}
}

// Push copies item into the queue under the lock.
func (l *Locked) Push(item []byte) bool {
	l.mu.Lock()
	ok := l.q.Push(item)
	l.mu.Unlock()
	return ok
}

// Pop copies the oldest item into buf under the lock.
func (l *Locked) Pop(buf []byte) bool {
	l.mu.Lock()
	ok := l.q.Pop(buf)
	l.mu.Unlock()
	return ok
}

// Enqueue is Push reporting a full queue as ErrWouldBlock.
func (l *Locked) Enqueue(item []byte) error {
	if !l.Push(item) {
		return ErrWouldBlock
	}
	return nil
}

// Dequeue is Pop reporting an empty queue as ErrWouldBlock.
func (l *Locked) Dequeue(buf []byte) error {
	if !l.Pop(buf) {
		return ErrWouldBlock
	}
	return nil
}

// ItemsNum returns the number of stored items at the time of the call.
func (l *Locked) ItemsNum() int {
	l.mu.Lock()
	n := l.q.ItemsNum()
	l.mu.Unlock()
	return n
}

// IsEmpty reports whether the queue was empty at the time of the call.
func (l *Locked) IsEmpty() bool {
	return l.ItemsNum() == 0
}

// Flush discards all items under the lock.
func (l *Locked) Flush() {
	l.mu.Lock()
	l.q.Flush()
	l.mu.Unlock()
}

// Cap returns the queue capacity.
func (l *Locked) Cap() int {
	return l.q.Cap()
}

// ItemSize returns the byte size of one item.
func (l *Locked) ItemSize() int {
	return l.q.ItemSize()
}

// Destroy destroys the wrapped queue under the lock.
// Same contract as Queue.Destroy.
func (l *Locked) Destroy() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.Destroy()
}

// Unwrap returns the wrapped queue.
func (l *Locked) Unwrap() *Queue {
	return l.q
}

// spinLock is a test-and-test-and-set lock.
type spinLock struct {
	state atomix.Uint64 // 0 unlocked, 1 locked
}

func (l *spinLock) Lock() {
	sw := spin.Wait{}
	for {
		if l.state.LoadRelaxed() == 0 && l.state.CompareAndSwapAcqRel(0, 1) {
			return
		}
		sw.Once()
	}
}

func (l *spinLock) Unlock() {
	l.state.StoreRelease(0)
}
