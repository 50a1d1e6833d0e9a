// Package player runs the external audio player, one process per track, and
// controls it with OS signals.
package player

import (
	"io"
	"os/exec"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
)

// Errors
var (
	ErrSpawn  = errors.New("failed to spawn player")
	ErrExited = errors.New("player process already exited")
)

// Exit describes how a player process ended.
type Exit struct {
	Code   int    // Exit code, -1 when terminated by a signal
	Signal string // Terminating signal name, empty on a normal exit
}

// Signaled reports whether the process was terminated by a signal.
func (e Exit) Signaled() bool {
	return e.Signal != ""
}

// Success reports whether the process exited normally with status 0.
func (e Exit) Success() bool {
	return !e.Signaled() && e.Code == 0
}

func (e Exit) String() string {
	if e.Signaled() {
		return "signal: " + e.Signal
	}
	return "exit status " + strconv.Itoa(e.Code)
}

// Runner spawns the player program with the track name as its last argument.
type Runner struct {
	Path   string    // Player program
	Args   []string  // Arguments placed before the track name
	Stdout io.Writer // nil discards player output
	Stderr io.Writer // nil discards player output
}

// Argv returns the full command line used to play name.
func (r *Runner) Argv(name string) []string {
	argv := make([]string, 0, len(r.Args)+2)
	argv = append(argv, r.Path)
	argv = append(argv, r.Args...)
	return append(argv, name)
}

// Spawn starts the player for the track name.
// The player never gets the terminal's stdin, which belongs to the command listener.
func (r *Runner) Spawn(name string) (*Process, error) {
	args := append(slices.Clone(r.Args), name)
	cmd := exec.Command(r.Path, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		return nil, errors.Mark(oserr.Wrap("spawn", err), ErrSpawn)
	}

	zlog.Debug().Msgf("player: spawned: pid=%d argv=%q", cmd.Process.Pid, r.Argv(name))
	return &Process{cmd: cmd, name: name}, nil
}

// Process is a running player process.
type Process struct {
	cmd  *exec.Cmd
	name string
}

// Pid returns the OS process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Name returns the track name the process is playing.
func (p *Process) Name() string {
	return p.name
}

// Pause suspends the process.
func (p *Process) Pause() error {
	return p.signal("kill(SIGSTOP)", sigStop)
}

// Resume continues a suspended process.
func (p *Process) Resume() error {
	return p.signal("kill(SIGCONT)", sigCont)
}

// Terminate interrupts the process to end the track early. The process is
// continued afterwards because a stopped process only acts on the pending
// interrupt once it runs again.
func (p *Process) Terminate() error {
	if err := p.signal("kill(SIGINT)", sigInt); err != nil {
		return err
	}
	if err := p.signal("kill(SIGCONT)", sigCont); err != nil && !errors.Is(err, ErrExited) {
		return err
	}
	return nil
}

// Wait blocks until the process exits and reports how it ended.
// A non-zero exit status is not an error.
func (p *Process) Wait() (Exit, error) {
	err := p.cmd.Wait()
	state := p.cmd.ProcessState
	if state == nil {
		return Exit{}, oserr.Wrap("waitpid", err)
	}

	exit := exitFromState(state)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return exit, oserr.Wrap("waitpid", err)
	}

	zlog.Debug().Msgf("player: exited: pid=%d status=%s", state.Pid(), exit)
	return exit, nil
}
