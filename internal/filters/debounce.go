package filters

import (
	"sync"
	"time"
)

// DefaultQuietPeriod is how long search input must be quiet before the value
// commits.
const DefaultQuietPeriod = 400 * time.Millisecond

// Debouncer delays committing a rapidly changing value until input quiesces.
// Trailing edge only: each Schedule call discards the pending value and
// re-arms the timer.
type Debouncer struct {
	mu     sync.Mutex
	timer  *time.Timer
	commit func(string)
}

func NewDebouncer(commit func(string)) *Debouncer {
	return &Debouncer{commit: commit}
}

// Schedule arms the timer with value, replacing any pending commit.
func (d *Debouncer) Schedule(value string, delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, func() {
		d.commit(value)
	})
}

// Cancel drops any pending commit.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
