// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

/* ------------ tiny UI helpers for single-line progress ------------ */

// BatchProgress renders "items settled / total" on a single line.
// Update is safe for concurrent use and matches transfer.ProgressFunc.
type BatchProgress struct {
	mu       sync.Mutex
	out      io.Writer
	settled  int
	total    int
	spinIdx  int
	lastTick time.Time
	interval time.Duration
}

var spinner = []rune{'|', '/', '-', '\\'}

// NewBatchProgress writes to out, or stderr when out is nil.
func NewBatchProgress(out io.Writer) *BatchProgress {
	if out == nil {
		out = os.Stderr
	}
	return &BatchProgress{out: out, interval: 100 * time.Millisecond}
}

func (bp *BatchProgress) Update(settled, total int) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.settled = settled
	bp.total = total
	bp.render(settled == total)
}

// Settled returns the last reported counters.
func (bp *BatchProgress) Settled() (int, int) {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.settled, bp.total
}

func (bp *BatchProgress) render(force bool) {
	// throttling: update ~10 times each seconds to avoid “spamming”
	if !force && time.Since(bp.lastTick) < bp.interval {
		return
	}
	bp.lastTick = time.Now()

	if bp.total > 0 {
		pct := float64(bp.settled) / float64(bp.total) * 100
		_, _ = fmt.Fprintf(bp.out, "\rProgress: %6.2f%% (%d / %d items)   ", pct, bp.settled, bp.total)
		return
	}
	ch := spinner[bp.spinIdx%len(spinner)]
	bp.spinIdx++
	_, _ = fmt.Fprintf(bp.out, "\rProgress: [%c] %d items   ", ch, bp.settled)
}

// Done renders the final state and terminates the line.
func (bp *BatchProgress) Done() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.render(true)
	_, _ = fmt.Fprintln(bp.out)
}

// HumanBytes formats a byte count for log lines.
func HumanBytes(n int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
