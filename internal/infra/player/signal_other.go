//go:build !unix

package player

import (
	"errors"
	"fmt"
	"os"
)

var (
	sigStop os.Signal
	sigCont os.Signal
	sigInt  os.Signal = os.Interrupt
)

// signal is unsupported: job-control signals do not exist on this platform.
func (p *Process) signal(op string, sig os.Signal) error {
	return fmt.Errorf("%s: %w", op, errors.ErrUnsupported)
}

func exitFromState(state *os.ProcessState) Exit {
	return Exit{Code: state.ExitCode()}
}
