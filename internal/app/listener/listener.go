// Package listener reads single-letter commands from the terminal and
// applies them to playback.
package listener

import (
	"io"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/app/playback"
	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
)

// Command letters.
const (
	CmdToggle   = 'p'
	CmdNext     = 'n'
	CmdRestart  = 'r'
	CmdPrevious = 'b'
)

// Controller is the playback surface the listener drives.
type Controller interface {
	Toggle() (playback.State, error)
	Skip() error
	Restart() error
	Back() error
	ListenerStarted()
	NextAnnouncement() <-chan struct{}
	Done() <-chan struct{}
}

// Output is where command feedback goes.
type Output interface {
	Println(s string)
	Prompt()
}

// LineReader supplies command lines.
type LineReader interface {
	ReadLine() (string, error)
}

// Listener is the command loop.
type Listener struct {
	ctrl Controller
	out  Output
	in   LineReader
}

// New creates a listener.
func New(ctrl Controller, out Output, in LineReader) *Listener {
	return &Listener{ctrl: ctrl, out: out, in: in}
}

// Run signals readiness, waits for the first track and then handles
// commands until input ends or playback is done.
func (l *Listener) Run() error {
	first := l.ctrl.NextAnnouncement()
	l.ctrl.ListenerStarted()

	select {
	case <-first:
	case <-l.ctrl.Done():
		return nil
	}

	for {
		select {
		case <-l.ctrl.Done():
			return nil
		default:
		}

		l.out.Prompt()
		line, err := l.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				zlog.Info().Msg("listener: input closed")
				return nil
			}
			return oserr.Wrap("read", err)
		}

		if err := l.Dispatch(line); err != nil {
			return err
		}
	}
}

// Dispatch handles one command line. Only the first character counts.
// Commands with no track playing are reported and ignored; other failures
// are returned.
func (l *Listener) Dispatch(line string) error {
	if line == "" {
		l.out.Println("")
		return nil
	}

	zlog.Debug().Msgf("listener: command: line=%q", line)

	var err error
	switch line[0] {
	case CmdToggle:
		var state playback.State
		state, err = l.ctrl.Toggle()
		if err == nil {
			if state == playback.StatePaused {
				l.out.Println("song paused")
			} else {
				l.out.Println("song playing")
			}
		}
	case CmdNext:
		l.out.Println("skipping")
		err = l.ctrl.Skip()
	case CmdRestart:
		l.out.Println("replaying")
		err = l.ctrl.Restart()
	case CmdPrevious:
		l.out.Println("playing previous song")
		err = l.ctrl.Back()
	default:
		l.out.Println("invalid command")
		return nil
	}

	if isIdle(err) {
		l.out.Println("nothing is playing")
		return nil
	}
	return err
}

func isIdle(err error) bool {
	return errors.Is(err, playback.ErrNoTrack) ||
		errors.Is(err, playback.ErrNotPlaying) ||
		errors.Is(err, playback.ErrNotPaused)
}
