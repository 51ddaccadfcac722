package orbit

import (
	"fmt"
	"os"
	"time"
)

// tickStats holds per-tick phase timing and update counts.
// Only populated when Engine debug mode is on.
type tickStats struct {
	advance time.Duration
	project time.Duration
	index   time.Duration
	visual  time.Duration
	texts   int
	skipped int
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick
// phase timing and label-update counts are logged to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugLog prints the current tick's phase timing to stderr.
func (e *Engine) debugLog() {
	total := e.stats.advance + e.stats.project + e.stats.index + e.stats.visual
	_, _ = fmt.Fprintf(os.Stderr,
		"[orbit] advance: %v | project: %v | index: %v | visual: %v | total: %v\n",
		e.stats.advance, e.stats.project, e.stats.index, e.stats.visual, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[orbit] points: %d | labels: %d | skipped frames: %d\n",
		e.store.Count(), e.stats.texts, e.stats.skipped)
}
