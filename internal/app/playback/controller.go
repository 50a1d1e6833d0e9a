package playback

import (
	"errors"
	"sync"

	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/infra/player"
)

// Errors
var (
	ErrNoTrack    = errors.New("no track playing")
	ErrNotPlaying = errors.New("not playing")
	ErrNotPaused  = errors.New("not paused")
	ErrShutdown   = errors.New("playback shut down")
)

// Process is a running player process.
type Process interface {
	Pid() int
	Pause() error
	Resume() error
	Terminate() error
	Wait() (player.Exit, error)
}

// Spawner starts a player process for a track name.
type Spawner interface {
	Spawn(name string) (Process, error)
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(name string) (Process, error)

// Spawn calls f(name).
func (f SpawnerFunc) Spawn(name string) (Process, error) {
	return f(name)
}

// Result describes how a track ended.
type Result struct {
	Exit   player.Exit
	Intent Intent // What to play next
	State  State  // StateEnded or StateFinished
}

// Controller owns the playback state shared by the driver and the listener.
type Controller struct {
	mu sync.Mutex

	spawner Spawner

	// Current track state
	process   Process
	state     State
	index     int
	current   string
	intent    Intent
	commanded bool
	closed    bool

	// Rendezvous
	listenerReady *Latch
	announced     *Beacon
	finished      *Latch

	// Events
	eventCh chan Event
}

// NewController creates a new playback controller.
func NewController(spawner Spawner) *Controller {
	return &Controller{
		spawner:       spawner,
		state:         StateIdle,
		intent:        IntentAdvance,
		listenerReady: NewLatch(),
		announced:     NewBeacon(),
		finished:      NewLatch(),
		eventCh:       make(chan Event, 16),
	}
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Play spawns the player for name and blocks until it exits. announce runs
// once the process is started, before listeners waiting on the next
// announcement are released.
func (c *Controller) Play(name string, announce func()) (Result, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return Result{}, ErrShutdown
	}

	proc, err := c.spawner.Spawn(name)
	if err != nil {
		return Result{}, err
	}

	if announce != nil {
		announce()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = proc.Terminate()
		_, _ = proc.Wait()
		return Result{}, ErrShutdown
	}
	c.process = proc
	c.current = name
	c.state = StatePlaying
	c.announced.Broadcast()
	c.sendEventLocked(Event{Type: EventTrackStarted, Index: c.index, Name: name, State: c.state})
	c.mu.Unlock()

	zlog.Debug().Msgf("playback: started: index=%d name=%q pid=%d", c.TrackIndex(), name, proc.Pid())

	exit, waitErr := proc.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.process = nil
	if c.commanded {
		c.state = StateEnded
	} else {
		c.state = StateFinished
	}
	result := Result{Exit: exit, Intent: c.intent, State: c.state}
	c.intent = IntentAdvance
	c.commanded = false
	c.sendEventLocked(Event{Type: EventTrackEnded, Index: c.index, Name: name, State: c.state, Intent: result.Intent})

	zlog.Debug().Msgf("playback: ended: index=%d state=%s intent=%s exit=%s", c.index, result.State, result.Intent, exit)

	if waitErr != nil {
		return result, waitErr
	}
	if c.closed {
		return result, ErrShutdown
	}
	return result, nil
}

// Pause suspends the current track.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pauseLocked()
}

func (c *Controller) pauseLocked() error {
	if c.process == nil {
		return ErrNoTrack
	}

	if c.state != StatePlaying {
		return ErrNotPlaying
	}

	if err := c.process.Pause(); err != nil {
		if errors.Is(err, player.ErrExited) {
			return ErrNoTrack
		}
		return err
	}

	c.state = StatePaused
	c.sendEventLocked(Event{Type: EventStateChanged, Index: c.index, Name: c.current, State: c.state})
	return nil
}

// Resume continues a suspended track.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeLocked()
}

func (c *Controller) resumeLocked() error {
	if c.process == nil {
		return ErrNoTrack
	}

	if c.state != StatePaused {
		return ErrNotPaused
	}

	if err := c.process.Resume(); err != nil {
		if errors.Is(err, player.ErrExited) {
			return ErrNoTrack
		}
		return err
	}

	c.state = StatePlaying
	c.sendEventLocked(Event{Type: EventStateChanged, Index: c.index, Name: c.current, State: c.state})
	return nil
}

// Toggle pauses a playing track or resumes a paused one and returns the
// new state.
func (c *Controller) Toggle() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.state == StatePaused {
		err = c.resumeLocked()
	} else {
		err = c.pauseLocked()
	}
	return c.state, err
}

// Skip ends the current track and advances.
func (c *Controller) Skip() error {
	return c.Navigate(IntentAdvance)
}

// Restart ends the current track and plays it again.
func (c *Controller) Restart() error {
	return c.Navigate(IntentReplay)
}

// Back ends the current track and plays the previous one.
func (c *Controller) Back() error {
	return c.Navigate(IntentPrevious)
}

// Navigate records intent, terminates the current track and blocks until
// the driver announces the next track or finishes.
func (c *Controller) Navigate(intent Intent) error {
	c.mu.Lock()
	if c.process == nil {
		c.mu.Unlock()
		return ErrNoTrack
	}

	next := c.announced.Next()
	c.intent = intent
	c.commanded = true
	err := c.process.Terminate()
	c.mu.Unlock()

	// An already exited track still ends with the recorded intent.
	if err != nil && !errors.Is(err, player.ErrExited) {
		return err
	}

	zlog.Debug().Msgf("playback: navigate: intent=%s", intent)

	select {
	case <-next:
	case <-c.finished.Done():
	}
	return nil
}

// Shutdown terminates the current track and makes further Play calls fail
// with ErrShutdown.
func (c *Controller) Shutdown() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.process == nil {
		return nil
	}
	if err := c.process.Terminate(); err != nil && !errors.Is(err, player.ErrExited) {
		return err
	}
	return nil
}

// ListenerStarted signals that the listener is ready for commands.
func (c *Controller) ListenerStarted() {
	c.listenerReady.Close()
}

// ListenerReady returns a channel closed once the listener is ready.
func (c *Controller) ListenerReady() <-chan struct{} {
	return c.listenerReady.Done()
}

// NextAnnouncement returns a channel closed when the next track is announced.
func (c *Controller) NextAnnouncement() <-chan struct{} {
	return c.announced.Next()
}

// Finish signals that the driver has stopped. Idempotent.
func (c *Controller) Finish() {
	c.finished.Close()
}

// Done returns a channel closed by Finish.
func (c *Controller) Done() <-chan struct{} {
	return c.finished.Done()
}

// TrackIndex returns the playlist index of the current track.
func (c *Controller) TrackIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// SetIndex sets the playlist index of the track about to play.
func (c *Controller) SetIndex(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = index
}

// GetState returns the current playback state.
func (c *Controller) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GetCurrentTrack returns the name of the track playing or paused.
func (c *Controller) GetCurrentTrack() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.process == nil {
		return "", false
	}
	return c.current, true
}

// sendEventLocked sends an event without blocking.
// Must be called with lock held.
func (c *Controller) sendEventLocked(e Event) {
	select {
	case c.eventCh <- e:
	default:
		// Channel full, drop event
	}
}
