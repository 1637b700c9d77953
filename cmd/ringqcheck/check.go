// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"code.hybscloud.com/ringq"
)

const itemSize = 12

type config struct {
	capacity int
	static   bool
	bench    bool
	cycles   int
	cpu      int
	color    bool
	seed     uint64
}

// item is three packed 32-bit integers.
type item struct {
	First, Second, Third int32
}

func (it item) put(b []byte) {
	binary.LittleEndian.PutUint32(b[0:], uint32(it.First))
	binary.LittleEndian.PutUint32(b[4:], uint32(it.Second))
	binary.LittleEndian.PutUint32(b[8:], uint32(it.Third))
}

func getItem(b []byte) item {
	return item{
		First:  int32(binary.LittleEndian.Uint32(b[0:])),
		Second: int32(binary.LittleEndian.Uint32(b[4:])),
		Third:  int32(binary.LittleEndian.Uint32(b[8:])),
	}
}

type styles struct {
	sys, ok, fail lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		sys:  r.NewStyle().Foreground(lipgloss.Color("6")),
		ok:   r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// checker prints one styled line per step and counts failures.
type checker struct {
	w      io.Writer
	st     styles
	failed int
}

func (c *checker) section(msg string) {
	fmt.Fprintln(c.w, c.st.sys.Render(msg))
}

func (c *checker) rule() {
	c.section("--------------------------------------------------")
}

func (c *checker) step(name string, ok bool) bool {
	res := c.st.ok.Render("SUCCESS")
	if !ok {
		res = c.st.fail.Render("FAILED")
		c.failed++
	}
	fmt.Fprintf(c.w, "\t%s %s\n", name, res)
	return ok
}

// run executes the unit procedure and, if configured, the benchmark.
// Returns the number of failed steps.
func run(w io.Writer, cfg config) int {
	c := &checker{w: w, st: newStyles(w, cfg.color)}
	seed := cfg.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed>>1|1))

	mode := "owned"
	if cfg.static {
		mode = "caller-supplied"
	}
	c.section(fmt.Sprintf("Starting ringq testing procedure (%s storage, seed %d)...", mode, seed))
	c.rule()

	q, release := unit(c, cfg, r)
	if q != nil && cfg.bench {
		c.rule()
		bench(c, q, cfg, r)
	}
	if release != nil {
		c.step("Release", release() == nil)
	}

	c.rule()
	if c.failed > 0 {
		fmt.Fprintln(w, c.st.fail.Render(fmt.Sprintf("ringq testing procedure finished with %d failed step(s)", c.failed)))
	} else {
		c.section("ringq testing procedure completed!")
	}
	return c.failed
}

// unit runs the step-by-step procedure. It returns the queue for the
// benchmark and a release func for owned storage.
func unit(c *checker, cfg config, r *rand.Rand) (*ringq.Queue, func() error) {
	c.section("Unit testing:")

	var (
		q       *ringq.Queue
		release func() error
	)
	if cfg.static {
		rec := new(ringq.Queue)
		items := make([]byte, ringq.StorageSize(itemSize, cfg.capacity))
		q = ringq.CreateInPlace(rec, itemSize, cfg.capacity, items)
		c.step("TEST 2: Create in place", q == rec && !q.Owned())
	} else {
		tooBig, err := ringq.Create(itemSize, math.MaxInt32)
		c.step("TEST 1: Create too big", tooBig == nil && ringq.IsOutOfMemory(err))

		q, err = ringq.Create(itemSize, cfg.capacity)
		if !c.step("TEST 2: Create normal", err == nil && q != nil) {
			return nil, nil
		}
		release = q.Destroy
	}

	c.step("TEST 3: Is empty", q.IsEmpty())
	c.step("TEST 4: No items", q.ItemsNum() == 0)

	fmt.Fprintln(c.w, "\tTEST 5: Pushing items")
	pushed := make([]item, cfg.capacity)
	buf := make([]byte, itemSize)
	for i := range pushed {
		pushed[i] = item{First: r.Int32(), Second: r.Int32(), Third: r.Int32()}
		pushed[i].put(buf)
		c.step(fmt.Sprintf("\tPush item [%d]: First: %d\tSecond: %d\tThird: %d\t",
			i, pushed[i].First, pushed[i].Second, pushed[i].Third), q.Push(buf))
	}

	item{First: r.Int32(), Second: r.Int32(), Third: r.Int32()}.put(buf)
	c.step("TEST 6: Push too much", !q.Push(buf))
	c.step("TEST 7: Isn't empty", !q.IsEmpty())
	c.step("TEST 8: Full of items", q.ItemsNum() == cfg.capacity)

	fmt.Fprintln(c.w, "\tTEST 9: Popping items")
	for i := range pushed {
		clear(buf)
		ok := q.Pop(buf)
		got := getItem(buf)
		c.step(fmt.Sprintf("\tPopped item [%d]: First: %d\tSecond: %d\tThird: %d\t",
			i, got.First, got.Second, got.Third), ok)
		c.step("\tIs equal:", got == pushed[i])
	}

	c.step("TEST 10: Pop too much", !q.Pop(buf))
	c.step("TEST 11: Is empty", q.IsEmpty())
	c.step("TEST 12: No items", q.ItemsNum() == 0)

	item{First: r.Int32(), Second: r.Int32(), Third: r.Int32()}.put(buf)
	q.Push(buf)
	q.Flush()
	c.step("TEST 13: Flush", q.IsEmpty())

	return q, release
}

// bench runs fill/drain cycles and checks the popped stream against the
// pushed stream by digest.
func bench(c *checker, q *ringq.Queue, cfg config, r *rand.Rand) {
	c.section("Benchmark testing:")
	fmt.Fprintf(c.w, "\tTEST 1: Up-down operations [%d]\n", cfg.cycles)

	q.Flush()
	items := make([]byte, ringq.StorageSize(itemSize, cfg.capacity))
	for i := range cfg.capacity {
		item{First: r.Int32(), Second: r.Int32(), Third: r.Int32()}.put(items[i*itemSize:])
	}

	in, out := xxhash.New(), xxhash.New()
	buf := make([]byte, itemSize)
	start := time.Now()
	for range cfg.cycles {
		for cnt := 0; q.ItemsNum() < cfg.capacity; cnt++ {
			q.Push(items[cnt*itemSize : (cnt+1)*itemSize])
		}
		for !q.IsEmpty() {
			q.Pop(buf)
			buf[0]++
		}
	}
	elapsed := time.Since(start)

	// The stream repeats every cycle; digest one more, untimed.
	for cnt := range cfg.capacity {
		slot := items[cnt*itemSize : (cnt+1)*itemSize]
		in.Write(slot)
		q.Push(slot)
	}
	for q.Pop(buf) {
		out.Write(buf)
	}

	perCycle := float64(elapsed.Nanoseconds()) / float64(cfg.cycles)
	fmt.Fprintf(c.w, "\t\tPerformance: %.2f ns per cycle, %.2f ns per item\n",
		perCycle, perCycle/float64(2*cfg.capacity))
	c.step("\tDigest match:", in.Sum64() == out.Sum64() && bytes.Equal(buf, items[len(items)-itemSize:]))
}
