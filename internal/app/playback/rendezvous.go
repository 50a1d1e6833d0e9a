package playback

import "sync"

// Latch is a one-shot signal. Closing it more than once is a no-op.
type Latch struct {
	once sync.Once
	ch   chan struct{}
}

// NewLatch creates an open latch.
func NewLatch() *Latch {
	return &Latch{ch: make(chan struct{})}
}

// Close releases every current and future waiter.
func (l *Latch) Close() {
	l.once.Do(func() { close(l.ch) })
}

// Done returns a channel closed by Close.
func (l *Latch) Done() <-chan struct{} {
	return l.ch
}

// IsClosed reports whether Close has been called.
func (l *Latch) IsClosed() bool {
	select {
	case <-l.ch:
		return true
	default:
		return false
	}
}

// Beacon is a repeatable broadcast. A waiter takes the channel from Next
// before triggering the event it waits for, so a broadcast between the two
// steps is never missed.
type Beacon struct {
	mu    sync.Mutex
	ch    chan struct{}
	count uint64
}

// NewBeacon creates a beacon.
func NewBeacon() *Beacon {
	return &Beacon{ch: make(chan struct{})}
}

// Next returns the channel closed by the next Broadcast.
func (b *Beacon) Next() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ch
}

// Broadcast wakes everyone waiting on the current channel.
func (b *Beacon) Broadcast() {
	b.mu.Lock()
	defer b.mu.Unlock()
	close(b.ch)
	b.ch = make(chan struct{})
	b.count++
}

// Count returns the number of broadcasts so far.
func (b *Beacon) Count() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
