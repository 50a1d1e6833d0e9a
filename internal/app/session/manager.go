// Package session provides the session manager that drives playback of a
// playlist while the listener handles commands.
package session

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/app/listener"
	"github.com/stoned-ape/shuffleplay/internal/app/playback"
	"github.com/stoned-ape/shuffleplay/internal/domain/playlist"
	"github.com/stoned-ape/shuffleplay/internal/infra/terminal"
)

// Manager plays one playlist from start to end.
type Manager struct {
	sessionID string

	// Components
	playlist *playlist.Playlist
	playback *playback.Controller
	listener *listener.Listener
	console  *terminal.Console
}

// NewManager creates a new session manager.
func NewManager(
	pl *playlist.Playlist,
	spawner playback.Spawner,
	console *terminal.Console,
	in listener.LineReader,
) *Manager {
	pb := playback.NewController(spawner)
	return &Manager{
		sessionID: uuid.New().String(),
		playlist:  pl,
		playback:  pb,
		listener:  listener.New(pb, console, in),
		console:   console,
	}
}

// SessionID returns the session identifier used in logs.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Playback returns the playback controller.
func (m *Manager) Playback() *playback.Controller {
	return m.playback
}

// Run plays the playlist and returns when the last track ends, a fatal
// error occurs or ctx is cancelled. Cancellation is not an error.
func (m *Manager) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	zlog.Info().Str("session_id", m.sessionID).Msgf("session: starting: dir=%s tracks=%d", m.playlist.Dir, m.playlist.Len())

	go m.playbackLoop(ctx)

	listenerErrCh := make(chan error, 1)
	go func() {
		listenerErrCh <- m.listener.Run()
	}()

	// Wait for the listener before the first track is announced
	select {
	case <-m.playback.ListenerReady():
	case err := <-listenerErrCh:
		if err != nil {
			return err
		}
		listenerErrCh = nil
	case <-ctx.Done():
		return nil
	}

	driverErrCh := make(chan error, 1)
	go func() {
		driverErrCh <- m.drive(ctx)
	}()

	for {
		select {
		case err := <-driverErrCh:
			zlog.Info().Str("session_id", m.sessionID).Msg("session: ended")
			return err

		case err := <-listenerErrCh:
			if err == nil {
				// Input closed, keep playing
				listenerErrCh = nil
				continue
			}
			zlog.Error().Str("session_id", m.sessionID).Msgf("session: listener failed: %v", err)
			if shutdownErr := m.playback.Shutdown(); shutdownErr != nil {
				err = errors.CombineErrors(err, shutdownErr)
			}
			<-driverErrCh
			return err

		case <-ctx.Done():
			zlog.Info().Str("session_id", m.sessionID).Msg("session: interrupted")
			if err := m.playback.Shutdown(); err != nil {
				return err
			}
			return <-driverErrCh
		}
	}
}

// drive plays tracks in order, following the intent each track ended with.
func (m *Manager) drive(ctx context.Context) error {
	defer m.playback.Finish()

	promptAfter := false
	for index := 0; index < m.playlist.Len(); {
		if ctx.Err() != nil {
			return nil
		}

		t, _ := m.playlist.At(index)
		m.playback.SetIndex(index)

		withPrompt := promptAfter
		result, err := m.playback.Play(t.Name, func() {
			m.console.Announce(t.Name, withPrompt)
		})
		if err != nil {
			if errors.Is(err, playback.ErrShutdown) {
				return nil
			}
			return err
		}

		// The listener is still blocked on a read after a natural finish
		promptAfter = result.State == playback.StateFinished
		index = result.Intent.Next(index)
	}

	m.console.Println("done")
	return nil
}

// playbackLoop logs playback events.
func (m *Manager) playbackLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-m.playback.Events():
			m.handlePlaybackEvent(event)
		}
	}
}

// handlePlaybackEvent handles playback events.
func (m *Manager) handlePlaybackEvent(event playback.Event) {
	switch event.Type {
	case playback.EventTrackStarted:
		zlog.Info().Str("session_id", m.sessionID).Msgf("track started: index=%d name=%q", event.Index, event.Name)

	case playback.EventTrackEnded:
		zlog.Info().Str("session_id", m.sessionID).Msgf("track ended: index=%d name=%q state=%s next=%s", event.Index, event.Name, event.State, event.Intent)

	case playback.EventStateChanged:
		zlog.Info().Str("session_id", m.sessionID).Msgf("playback %s: index=%d name=%q", event.State, event.Index, event.Name)
	}
}
