// Package proc runs helper processes (the spawned backend server) in their
// own process group and tears them down together.
package proc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Child struct {
	Cmd  *exec.Cmd
	Name string
	done chan error
}

// Done is closed once the child exits; the exit error is delivered first.
func (c *Child) Done() <-chan error { return c.done }

type Supervisor struct {
	mu     sync.Mutex
	childs map[string]*Child
	log    zerolog.Logger
	grace  time.Duration
}

func NewSupervisor(log zerolog.Logger) *Supervisor {
	return &Supervisor{
		childs: map[string]*Child{},
		log:    log.With().Str("component", "proc").Logger(),
		grace:  3 * time.Second,
	}
}

// Start launches cmd under name in a new process group and forwards its
// output lines to the log.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.childs[name]; ok {
		return nil, fmt.Errorf("%s already started", name)
	}
	cmd.SysProcAttr = newSysProcAttrForGroup()
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%s stderr: %w", name, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%s stdout: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	ch := &Child{Cmd: cmd, Name: name, done: make(chan error, 1)}
	s.childs[name] = ch

	var pipes sync.WaitGroup
	pipes.Add(2)
	go s.pipeLogs(name, stdout, &pipes)
	go s.pipeLogs(name, stderr, &pipes)
	go func() {
		pipes.Wait()
		ch.done <- cmd.Wait()
		close(ch.done)
	}()
	s.log.Debug().Str("child", name).Int("pid", cmd.Process.Pid).Msg("started")
	return ch, nil
}

func (s *Supervisor) pipeLogs(name string, r io.Reader, wg *sync.WaitGroup) {
	defer wg.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.log.Info().Str("child", name).Msg(line)
	}
}

// PID returns the process id of a running child, or 0.
func (s *Supervisor) PID(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.childs[name]; ok && ch.Cmd != nil && ch.Cmd.Process != nil {
		return ch.Cmd.Process.Pid
	}
	return 0
}

// StopAll terminates every child's process group, waiting up to the grace
// period (bounded by ctx) before killing.
func (s *Supervisor) StopAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var errs []error
	for name, ch := range s.childs {
		if ch.Cmd.Process == nil {
			delete(s.childs, name)
			continue
		}
		pid := ch.Cmd.Process.Pid
		s.log.Debug().Str("child", name).Int("pid", pid).Msg("stopping")
		if err := terminateGroup(pid); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		waitCtx, cancel := context.WithTimeout(ctx, s.grace)
		select {
		case <-ch.done:
		case <-waitCtx.Done():
			_ = killGroup(pid)
			<-ch.done
		}
		cancel()
		delete(s.childs, name)
		s.log.Debug().Str("child", name).Msg("stopped")
	}
	return errors.Join(errs...)
}
