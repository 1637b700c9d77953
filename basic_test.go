// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"testing"

	"code.hybscloud.com/ringq"
)

// =============================================================================
// Test Helpers
// =============================================================================

// testItem is three packed 32-bit integers.
type testItem struct {
	First, Second, Third int32
}

const testItemSize = 12

func (it testItem) bytes() []byte {
	b := make([]byte, testItemSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(it.First))
	binary.LittleEndian.PutUint32(b[4:], uint32(it.Second))
	binary.LittleEndian.PutUint32(b[8:], uint32(it.Third))
	return b
}

func decodeItem(b []byte) testItem {
	return testItem{
		First:  int32(binary.LittleEndian.Uint32(b[0:])),
		Second: int32(binary.LittleEndian.Uint32(b[4:])),
		Third:  int32(binary.LittleEndian.Uint32(b[8:])),
	}
}

func randomItem(r *rand.Rand) testItem {
	return testItem{First: r.Int32(), Second: r.Int32(), Third: r.Int32()}
}

// seqItem returns an item of size bytes filled from seed.
func seqItem(size int, seed int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(seed*31 + i)
	}
	return b
}

func mustCreate(t testing.TB, itemSize, capacity int) *ringq.Queue {
	t.Helper()
	q, err := ringq.Create(itemSize, capacity)
	if err != nil {
		t.Fatalf("Create(%d, %d): %v", itemSize, capacity, err)
	}
	t.Cleanup(func() {
		if q.Owned() {
			if err := q.Destroy(); err != nil {
				t.Errorf("Destroy: %v", err)
			}
		}
	})
	return q
}

func createInPlace(itemSize, capacity int) *ringq.Queue {
	rec := new(ringq.Queue)
	items := make([]byte, ringq.StorageSize(itemSize, capacity))
	return ringq.CreateInPlace(rec, itemSize, capacity, items)
}

// =============================================================================
// Basic Operations
// =============================================================================

// TestQueueScenario reproduces the reference procedure: capacity 10,
// items of three packed int32 values.
func TestQueueScenario(t *testing.T) {
	const capacity = 10
	r := rand.New(rand.NewPCG(1, 2))

	q := mustCreate(t, testItemSize, capacity)

	if !q.IsEmpty() {
		t.Fatal("IsEmpty: got false on new queue")
	}
	if q.ItemsNum() != 0 {
		t.Fatalf("ItemsNum: got %d, want 0", q.ItemsNum())
	}

	pushed := make([]testItem, capacity)
	for i := range capacity {
		pushed[i] = randomItem(r)
		if !q.Push(pushed[i].bytes()) {
			t.Fatalf("Push(%d): got false", i)
		}
	}

	if q.Push(randomItem(r).bytes()) {
		t.Fatal("Push on full: got true")
	}
	if q.IsEmpty() {
		t.Fatal("IsEmpty: got true on full queue")
	}
	if q.ItemsNum() != capacity {
		t.Fatalf("ItemsNum: got %d, want %d", q.ItemsNum(), capacity)
	}

	buf := make([]byte, testItemSize)
	for i := range capacity {
		if !q.Pop(buf) {
			t.Fatalf("Pop(%d): got false", i)
		}
		if got := decodeItem(buf); got != pushed[i] {
			t.Fatalf("Pop(%d): got %+v, want %+v", i, got, pushed[i])
		}
	}

	if q.Pop(buf) {
		t.Fatal("Pop on empty: got true")
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty: got false after draining")
	}
	if q.ItemsNum() != 0 {
		t.Fatalf("ItemsNum: got %d, want 0", q.ItemsNum())
	}

	q.Push(randomItem(r).bytes())
	q.Flush()
	if !q.IsEmpty() {
		t.Fatal("IsEmpty: got false after Flush")
	}
}

// TestCreateInPlaceBasic checks the caller-supplied storage variant.
func TestCreateInPlaceBasic(t *testing.T) {
	var (
		rec   ringq.Queue
		items [4 * 3]byte
	)
	for i := range items {
		items[i] = 0xEE
	}

	q := ringq.CreateInPlace(&rec, 4, 3, items[:])
	if q != &rec {
		t.Fatal("CreateInPlace: result does not alias the record")
	}
	if q.Owned() {
		t.Fatal("Owned: got true for caller-supplied storage")
	}
	if q.Cap() != 3 || q.ItemSize() != 4 {
		t.Fatalf("geometry: got cap=%d size=%d, want cap=3 size=4", q.Cap(), q.ItemSize())
	}
	for i, b := range items {
		if b != 0 {
			t.Fatalf("items[%d] = %#x after CreateInPlace, want 0", i, b)
		}
	}

	for i := range 3 {
		if !q.Push(seqItem(4, i)) {
			t.Fatalf("Push(%d): got false", i)
		}
	}
	if !bytes.Equal(items[4:8], seqItem(4, 1)) {
		t.Fatalf("slot 1: got %v, want %v", items[4:8], seqItem(4, 1))
	}

	buf := make([]byte, 4)
	for i := range 3 {
		if !q.Pop(buf) || !bytes.Equal(buf, seqItem(4, i)) {
			t.Fatalf("Pop(%d): got %v, want %v", i, buf, seqItem(4, i))
		}
	}
}

// TestCreateZeroesStorage checks that a fresh owned queue exposes zeroed slots.
func TestCreateZeroesStorage(t *testing.T) {
	a := &recordingAllocator{fill: 0x7F}
	q, err := ringq.New(8, 4).Allocator(a).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer q.Destroy()

	for i, b := range a.last {
		if b != 0 {
			t.Fatalf("storage[%d] = %#x, want 0", i, b)
		}
	}
}

func TestEnqueueDequeue(t *testing.T) {
	q := mustCreate(t, 2, 2)

	for i := range 2 {
		if err := q.Enqueue(seqItem(2, i)); err != nil {
			t.Fatalf("Enqueue(%d): %v", i, err)
		}
	}
	if err := q.Enqueue(seqItem(2, 9)); !errors.Is(err, ringq.ErrWouldBlock) {
		t.Fatalf("Enqueue on full: got %v, want ErrWouldBlock", err)
	}

	buf := make([]byte, 2)
	for i := range 2 {
		if err := q.Dequeue(buf); err != nil {
			t.Fatalf("Dequeue(%d): %v", i, err)
		}
		if !bytes.Equal(buf, seqItem(2, i)) {
			t.Fatalf("Dequeue(%d): got %v, want %v", i, buf, seqItem(2, i))
		}
	}
	if err := q.Dequeue(buf); !ringq.IsWouldBlock(err) {
		t.Fatalf("Dequeue on empty: got %v, want ErrWouldBlock", err)
	}
}

func TestFullRejectionPreservesState(t *testing.T) {
	const capacity = 5
	q := mustCreate(t, 3, capacity)

	// Offset the cursors so the full ring wraps.
	buf := make([]byte, 3)
	for i := range 3 {
		q.Push(seqItem(3, 100+i))
		q.Pop(buf)
	}
	for i := range capacity {
		if !q.Push(seqItem(3, i)) {
			t.Fatalf("Push(%d): got false", i)
		}
	}
	if !q.IsFull() {
		t.Fatal("IsFull: got false")
	}

	for range 3 {
		if q.Push(seqItem(3, 999)) {
			t.Fatal("Push on full: got true")
		}
		if q.ItemsNum() != capacity {
			t.Fatalf("ItemsNum after rejected Push: got %d, want %d", q.ItemsNum(), capacity)
		}
	}

	for i := range capacity {
		if !q.Pop(buf) {
			t.Fatalf("Pop(%d): got false", i)
		}
		if !bytes.Equal(buf, seqItem(3, i)) {
			t.Fatalf("Pop(%d): got %v, want %v (corrupted by rejected push)", i, buf, seqItem(3, i))
		}
	}
}

func TestEmptyRejectionPreservesState(t *testing.T) {
	q := mustCreate(t, 4, 3)

	buf := []byte{1, 2, 3, 4}
	if q.Pop(buf) {
		t.Fatal("Pop on new queue: got true")
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Fatalf("Pop on empty modified buf: %v", buf)
	}

	// Cursors must not have moved: the next item lands first in line.
	q.Push(seqItem(4, 7))
	q.Pop(buf)
	if q.Pop(buf) {
		t.Fatal("Pop on drained queue: got true")
	}
	q.Push(seqItem(4, 8))
	if !q.Pop(buf) || !bytes.Equal(buf, seqItem(4, 8)) {
		t.Fatalf("Pop: got %v, want %v", buf, seqItem(4, 8))
	}
}

func TestFlushIdempotent(t *testing.T) {
	const capacity = 4
	fills := []struct {
		name string
		n    int
	}{
		{"Empty", 0},
		{"Partial", 2},
		{"Full", capacity},
	}

	for _, f := range fills {
		t.Run(f.name, func(t *testing.T) {
			q := mustCreate(t, 2, capacity)
			for i := range f.n {
				q.Push(seqItem(2, i))
			}

			q.Flush()
			if !q.IsEmpty() || q.ItemsNum() != 0 {
				t.Fatalf("after Flush: IsEmpty=%v ItemsNum=%d", q.IsEmpty(), q.ItemsNum())
			}
			q.Flush()
			if !q.IsEmpty() || q.ItemsNum() != 0 {
				t.Fatalf("after second Flush: IsEmpty=%v ItemsNum=%d", q.IsEmpty(), q.ItemsNum())
			}

			// A flushed queue behaves like a new one.
			for i := range capacity {
				if !q.Push(seqItem(2, 50+i)) {
					t.Fatalf("Push(%d) after Flush: got false", i)
				}
			}
			buf := make([]byte, 2)
			for i := range capacity {
				if !q.Pop(buf) || !bytes.Equal(buf, seqItem(2, 50+i)) {
					t.Fatalf("Pop(%d) after Flush: got %v, want %v", i, buf, seqItem(2, 50+i))
				}
			}
		})
	}
}

func TestCapacityOne(t *testing.T) {
	q := mustCreate(t, 1, 1)
	buf := make([]byte, 1)

	for i := range 10 {
		if !q.Push([]byte{byte(i)}) {
			t.Fatalf("Push(%d): got false", i)
		}
		if q.Push([]byte{0xFF}) {
			t.Fatalf("Push(%d) on full: got true", i)
		}
		if !q.Pop(buf) || buf[0] != byte(i) {
			t.Fatalf("Pop(%d): got %v", i, buf)
		}
		if q.Pop(buf) {
			t.Fatalf("Pop(%d) on empty: got true", i)
		}
	}
}

func TestPushCopiesItem(t *testing.T) {
	q := mustCreate(t, 4, 2)

	item := []byte{1, 2, 3, 4}
	q.Push(item)
	item[0] = 99

	buf := make([]byte, 4)
	q.Pop(buf)
	if buf[0] != 1 {
		t.Fatalf("Pop: got %v, queue kept a reference to the pushed slice", buf)
	}
}
