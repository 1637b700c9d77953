// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command ringqcheck runs the ringq self-test procedure and an optional
// up-down benchmark against the public queue API.
//
// Usage:
//
//	ringqcheck [-static] [-bench] [-cycles N] [-capacity N] [-cpu N] [-color=false]
package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	var cfg config

	flag.IntVar(&cfg.capacity, "capacity", 10, "Queue capacity in items")
	flag.BoolVar(&cfg.static, "static", false, "Run on caller-supplied storage instead of owned storage")
	flag.BoolVar(&cfg.bench, "bench", false, "Run the up-down benchmark after the unit procedure")
	flag.IntVar(&cfg.cycles, "cycles", 1000000, "Up-down benchmark cycles")
	flag.IntVar(&cfg.cpu, "cpu", -1, "Pin the driver thread to this CPU (-1 to disable)")
	flag.BoolVar(&cfg.color, "color", true, "Colorize output")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Item generator seed (0 picks one from the clock)")
	flag.Parse()

	if cfg.capacity <= 0 {
		log.Fatalf("capacity must be > 0, got %d", cfg.capacity)
	}
	if cfg.cycles <= 0 {
		log.Fatalf("cycles must be > 0, got %d", cfg.cycles)
	}

	unpin := func() {}
	if cfg.cpu >= 0 {
		var err error
		unpin, err = pinCPU(cfg.cpu)
		if err != nil {
			log.Fatalf("pin cpu %d: %v", cfg.cpu, err)
		}
	}

	failed := run(os.Stdout, cfg)
	unpin()
	if failed > 0 {
		os.Exit(1)
	}
}
