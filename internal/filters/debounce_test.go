package filters

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commitRecorder struct {
	m      sync.Mutex
	values []string
	signal chan string
}

func newCommitRecorder() *commitRecorder {
	return &commitRecorder{signal: make(chan string, 16)}
}

func (r *commitRecorder) commit(v string) {
	r.m.Lock()
	r.values = append(r.values, v)
	r.m.Unlock()
	r.signal <- v
}

func (r *commitRecorder) committed() []string {
	r.m.Lock()
	defer r.m.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func waitFor(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounce commit")
		return ""
	}
}

func TestDebouncer_TrailingEdgeOnly(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(rec.commit)

	// Rapid keystrokes: only the last value may commit.
	d.Schedule("l", 50*time.Millisecond)
	d.Schedule("la", 50*time.Millisecond)
	d.Schedule("lam", 50*time.Millisecond)
	d.Schedule("lamp", 50*time.Millisecond)

	assert.Equal(t, "lamp", waitFor(t, rec.signal))

	// No leading edge, no intermediate emissions.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"lamp"}, rec.committed())
}

func TestDebouncer_Cancel(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(rec.commit)

	d.Schedule("lamp", 30*time.Millisecond)
	d.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.committed())
}

func TestDebouncer_ScheduleAfterCancel(t *testing.T) {
	rec := newCommitRecorder()
	d := NewDebouncer(rec.commit)

	d.Schedule("old", 30*time.Millisecond)
	d.Cancel()
	d.Schedule("new", 30*time.Millisecond)

	require.Equal(t, "new", waitFor(t, rec.signal))
	assert.Equal(t, []string{"new"}, rec.committed())
}
