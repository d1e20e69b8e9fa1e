// Package clock provides the wall clock that drives the widget's local
// time display. A Clock is a scoped timer resource: Start acquires the
// ticker goroutine and returns the single function that releases it.
package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the refresh period of the displayed time
const DefaultInterval = time.Second

// Clock keeps a "now" value that is refreshed on every tick
type Clock struct {
	interval time.Duration
	source   func() time.Time

	mu      sync.RWMutex
	now     time.Time
	ticks   int
	running bool
	stop    func()
}

// New creates a clock refreshed every interval. A non-positive interval
// selects DefaultInterval.
func New(interval time.Duration) *Clock {
	return NewWithSource(interval, time.Now)
}

// NewWithSource creates a clock that reads the time from source
func NewWithSource(interval time.Duration, source func() time.Time) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{
		interval: interval,
		source:   source,
		now:      source(),
	}
}

// Now returns the time recorded at the last tick
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Ticks returns how many ticks have been observed since creation
func (c *Clock) Ticks() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ticks
}

// Running reports whether the tick goroutine is active
func (c *Clock) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// Start begins refreshing the clock until ctx is done or the returned
// function is called. The returned function waits for the goroutine to
// exit and is safe to call more than once. Calling Start on a running
// clock returns the existing stop function.
func (c *Clock) Start(ctx context.Context) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.stop
	}

	tickCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	var once sync.Once

	c.now = c.source()
	c.running = true

	wg.Add(1)
	go c.run(tickCtx, &wg)

	c.stop = func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	return c.stop
}

func (c *Clock) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-ticker.C:
			now := c.source()
			c.mu.Lock()
			c.now = now
			c.ticks++
			c.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
