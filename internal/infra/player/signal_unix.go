//go:build unix

package player

import (
	"os"
	"syscall"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"

	"github.com/stoned-ape/shuffleplay/internal/infra/oserr"
)

var (
	sigStop os.Signal = unix.SIGSTOP
	sigCont os.Signal = unix.SIGCONT
	sigInt  os.Signal = unix.SIGINT
)

// signal delivers sig to the process. Signalling a reaped process
// reports ErrExited.
func (p *Process) signal(op string, sig os.Signal) error {
	if err := p.cmd.Process.Signal(sig); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			return ErrExited
		}
		return oserr.Wrap(op, err)
	}
	return nil
}

func exitFromState(state *os.ProcessState) Exit {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Exit{Code: -1, Signal: ws.Signal().String()}
	}
	return Exit{Code: state.ExitCode()}
}
