//go:build unix

package player

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Argv(t *testing.T) {
	r := &Runner{Path: "mpv", Args: []string{"--no-video"}}
	assert.Equal(t, []string{"mpv", "--no-video", "song.mp3"}, r.Argv("song.mp3"))
	assert.Equal(t, []string{"--no-video"}, r.Args, "Argv must not modify Args")
}

func TestProcess_NaturalExit(t *testing.T) {
	tests := []struct {
		name     string
		runner   *Runner
		wantCode int
		wantOK   bool
	}{
		{
			name:     "success",
			runner:   &Runner{Path: "true"},
			wantCode: 0,
			wantOK:   true,
		},
		{
			name:     "non-zero status is not an error",
			runner:   &Runner{Path: "sh", Args: []string{"-c", "exit 3"}},
			wantCode: 3,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.runner.Spawn("track.mp3")
			require.NoError(t, err)
			assert.Positive(t, p.Pid())
			assert.Equal(t, "track.mp3", p.Name())

			exit, err := p.Wait()
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, exit.Code)
			assert.Equal(t, tt.wantOK, exit.Success())
			assert.False(t, exit.Signaled())
		})
	}
}

func TestProcess_PauseResumeTerminate(t *testing.T) {
	r := &Runner{Path: "sleep"}
	p, err := r.Spawn("30")
	require.NoError(t, err)

	require.NoError(t, p.Pause())
	require.NoError(t, p.Resume())
	require.NoError(t, p.Terminate())

	exit, err := p.Wait()
	require.NoError(t, err)
	assert.True(t, exit.Signaled())
	assert.Equal(t, "interrupt", exit.Signal)
	assert.Equal(t, "signal: interrupt", exit.String())
}

func TestProcess_TerminateWhilePaused(t *testing.T) {
	r := &Runner{Path: "sleep"}
	p, err := r.Spawn("30")
	require.NoError(t, err)

	require.NoError(t, p.Pause())
	require.NoError(t, p.Terminate())

	done := make(chan Exit, 1)
	go func() {
		exit, _ := p.Wait()
		done <- exit
	}()

	select {
	case exit := <-done:
		assert.Equal(t, "interrupt", exit.Signal)
	case <-time.After(5 * time.Second):
		t.Fatal("paused process did not exit after Terminate")
	}
}

func TestProcess_SignalAfterExit(t *testing.T) {
	r := &Runner{Path: "true"}
	p, err := r.Spawn("x")
	require.NoError(t, err)
	_, err = p.Wait()
	require.NoError(t, err)

	assert.ErrorIs(t, p.Pause(), ErrExited)
	assert.ErrorIs(t, p.Resume(), ErrExited)
	assert.ErrorIs(t, p.Terminate(), ErrExited)
}

func TestRunner_SpawnMissingBinary(t *testing.T) {
	r := &Runner{Path: "/nonexistent/shuffleplay-player"}
	p, err := r.Spawn("song.mp3")
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrSpawn))
}
