package playback

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/stoned-ape/shuffleplay/internal/infra/player"
)

// fakeProcess is an in-memory player process. It exits when finished by the
// test or when terminated.
type fakeProcess struct {
	mu      sync.Mutex
	pid     int
	exited  bool
	paused  bool
	signals []string
	exitCh  chan player.Exit
}

func newFakeProcess(pid int) *fakeProcess {
	return &fakeProcess{pid: pid, exitCh: make(chan player.Exit, 1)}
}

func (p *fakeProcess) Pid() int { return p.pid }

func (p *fakeProcess) Pause() error {
	return p.signal("stop", func() { p.paused = true })
}

func (p *fakeProcess) Resume() error {
	return p.signal("cont", func() { p.paused = false })
}

func (p *fakeProcess) Terminate() error {
	return p.signal("int", func() {
		p.exited = true
		p.exitCh <- player.Exit{Code: -1, Signal: "interrupt"}
	})
}

func (p *fakeProcess) signal(name string, apply func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exited {
		return player.ErrExited
	}
	p.signals = append(p.signals, name)
	apply()
	return nil
}

// finish makes the process exit on its own.
func (p *fakeProcess) finish(exit player.Exit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exited {
		return
	}
	p.exited = true
	p.exitCh <- exit
}

func (p *fakeProcess) Wait() (player.Exit, error) {
	return <-p.exitCh, nil
}

func (p *fakeProcess) Signals() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.signals...)
}

// fakeSpawner hands out fakeProcesses and publishes each one on spawned.
type fakeSpawner struct {
	mu      sync.Mutex
	names   []string
	err     error
	spawned chan *fakeProcess
}

func newFakeSpawner() *fakeSpawner {
	return &fakeSpawner{spawned: make(chan *fakeProcess, 16)}
}

func (s *fakeSpawner) Spawn(name string) (Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.names = append(s.names, name)
	p := newFakeProcess(1000 + len(s.names))
	s.spawned <- p
	return p, nil
}

func (s *fakeSpawner) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

var errBoom = errors.New("boom")
