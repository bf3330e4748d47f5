package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"proofdiff/internal/httpx"
	"proofdiff/internal/ports"
	"proofdiff/internal/proc"
)

const spawnedName = "proofdiff-serve"

// SpawnOptions describe how to launch a private backend server.
type SpawnOptions struct {
	// Executable defaults to the running binary.
	Executable string
	// Args are appended after "serve --addr <addr>".
	Args         []string
	StartTimeout time.Duration
	CallTimeout  time.Duration
}

// Spawned is an HTTP backend backed by a child server process.
type Spawned struct {
	*HTTP
	sup *proc.Supervisor
}

// Spawn starts "<exe> serve" on a free loopback port, waits for its health
// endpoint and returns a client bound to it.
func Spawn(ctx context.Context, opts SpawnOptions, log zerolog.Logger) (*Spawned, error) {
	exe := opts.Executable
	if exe == "" {
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
		exe = self
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = 10 * time.Second
	}
	addr, err := ports.Loopback()
	if err != nil {
		return nil, err
	}
	args := append([]string{"serve", "--addr", addr}, opts.Args...)
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Env = os.Environ()

	sup := proc.NewSupervisor(log)
	if _, err := sup.Start(spawnedName, cmd); err != nil {
		return nil, err
	}
	base := "http://" + addr
	if err := httpx.WaitHTTPUp(ctx, base+HealthPath, opts.StartTimeout); err != nil {
		_ = sup.StopAll(context.Background())
		return nil, fmt.Errorf("spawned backend: %w", err)
	}
	log.Info().Str("url", base).Int("pid", sup.PID(spawnedName)).Msg("spawned backend ready")
	return &Spawned{HTTP: NewHTTP(base, opts.CallTimeout), sup: sup}, nil
}

// Close stops the child server.
func (s *Spawned) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.sup.StopAll(ctx)
}
