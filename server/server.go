// ABOUTME: Launches or discovers an `isabelle server` process
// ABOUTME: Parses the startup banner into an (address, port, password) triple

package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harper/isaclient/client"
	"github.com/harper/isaclient/internal/logger"
	"github.com/harper/isaclient/internal/registry"
)

// bannerRE matches the single line the server command prints on startup:
//
//	server "NAME" = HOST:PORT (password "UUID")
//
// The same banner is printed when the named instance was already running.
var bannerRE = regexp.MustCompile(`server "([^"]+)" = ([^:\s]+):(\d+) \(password "([^"]+)"\)`)

// Instance is a running server: its name, connection triple, and the child
// process handle when this launcher spawned it.
type Instance struct {
	Name     string
	Address  string
	Port     int
	Password string

	cmd *exec.Cmd // nil when the instance was already running or found via the registry
}

// Addr returns the instance's dialable address.
func (i *Instance) Addr() string {
	return net.JoinHostPort(i.Address, strconv.Itoa(i.Port))
}

// Client returns a protocol client for this instance.
func (i *Instance) Client() *client.Client {
	return client.NewClient(i.Address, i.Port, i.Password)
}

// Stop asks the named instance to exit and reaps the child process if this
// launcher spawned it.
func (i *Instance) Stop() error {
	err := exec.Command("isabelle", "server", "-n", i.Name, "-x").Run()
	if i.cmd != nil && i.cmd.Process != nil {
		_ = i.cmd.Process.Kill()
		i.cmd = nil
	}
	if err != nil {
		return fmt.Errorf("failed to stop server %q: %w", i.Name, err)
	}
	return nil
}

// Run starts `isabelle server -n <name>` and parses its banner. If an
// instance with that name is already running, the command prints the same
// banner for it and exits, so Run doubles as discovery. An empty name gets a
// generated one; the server keeps running after this process ends, so callers
// own the eventual Stop or shutdown.
func Run(ctx context.Context, name string) (*Instance, error) {
	if name == "" {
		name = "isaclient-" + uuid.NewString()
	}

	cmd := exec.CommandContext(ctx, "isabelle", "server", "-n", name)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to pipe server stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start isabelle server: %w", err)
	}

	banner, err := bufio.NewReader(stdout).ReadString('\n')
	if err != nil {
		_ = cmd.Process.Kill()
		go func() { _ = cmd.Wait() }()
		return nil, fmt.Errorf("failed to read server banner: %w", err)
	}
	logger.Debug("server banner: %s", strings.TrimSpace(banner))

	// Reap the child whenever it exits; Stop kills it if it is still around.
	go func() { _ = cmd.Wait() }()

	inst, err := ParseBanner(banner)
	if err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}
	inst.cmd = cmd
	return inst, nil
}

// ParseBanner extracts the instance triple from a server startup banner.
func ParseBanner(banner string) (*Instance, error) {
	// The banner may arrive with shell-escaped quotes.
	banner = strings.ReplaceAll(strings.TrimSpace(banner), `\`, "")

	m := bannerRE.FindStringSubmatch(banner)
	if m == nil {
		return nil, fmt.Errorf("unrecognized server banner: %q", banner)
	}
	port, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, fmt.Errorf("invalid port in server banner %q: %w", banner, err)
	}
	return &Instance{
		Name:     m[1],
		Address:  m[2],
		Port:     port,
		Password: m[4],
	}, nil
}

// Find looks the named instance up in the registry and verifies it is still
// accepting connections. Stale rows are dropped.
func Find(reg *registry.Registry, name string) (*Instance, error) {
	rec, err := reg.Get(name)
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(rec.Address, strconv.Itoa(rec.Port))
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		logger.Debug("dropping stale registry entry for %q: %v", name, err)
		if derr := reg.Delete(name); derr != nil {
			return nil, derr
		}
		return nil, registry.ErrNotFound
	}
	conn.Close()

	return &Instance{
		Name:     rec.Name,
		Address:  rec.Address,
		Port:     rec.Port,
		Password: rec.Password,
	}, nil
}

// Ensure returns a live instance with the given name, reusing a registered
// one when possible and launching (and registering) one otherwise.
func Ensure(ctx context.Context, reg *registry.Registry, name string) (*Instance, error) {
	if inst, err := Find(reg, name); err == nil {
		logger.Debug("reusing server %q at %s", inst.Name, inst.Addr())
		return inst, nil
	} else if !errors.Is(err, registry.ErrNotFound) {
		return nil, err
	}

	inst, err := Run(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := reg.Put(registry.Record{
		Name:     inst.Name,
		Address:  inst.Address,
		Port:     inst.Port,
		Password: inst.Password,
	}); err != nil {
		return nil, err
	}
	logger.Info("server %q listening at %s", inst.Name, inst.Addr())
	return inst, nil
}
