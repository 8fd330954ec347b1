// ABOUTME: Command-line entry point for the Isabelle server client
// ABOUTME: Loads configuration, finds or starts a server, and runs one command

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/harper/isaclient/client"
	"github.com/harper/isaclient/internal/config"
	"github.com/harper/isaclient/internal/logger"
	"github.com/harper/isaclient/internal/registry"
	"github.com/harper/isaclient/server"
)

const usage = `usage: isactl [flags] <command> [args]

commands:
  echo <text>        round-trip text through the server
  build <session>    build a session image, streaming progress
  cancel <task-id>   ask the server to cancel a task
  shutdown           stop the server process

flags:`

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file")
	verbose := flag.Bool("verbose", false, "enable debug and wire logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.SetVerbose(*verbose || cfg.Verbose)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), cfg, args[0], args[1:]); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	cl, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	switch command {
	case "echo":
		if len(args) != 1 {
			return fmt.Errorf("echo takes exactly one argument")
		}
		res, err := cl.Echo(ctx, args[0])
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("server rejected echo: %s", res.Err)
		}
		fmt.Println(res.Value)
		return nil

	case "build":
		if len(args) != 1 {
			return fmt.Errorf("build takes exactly one session name")
		}
		res, err := cl.SessionBuild(ctx, client.NewSessionBuildArgs(args[0]),
			client.WithNotes(func(note client.Message) {
				fmt.Fprintf(os.Stderr, "%s\n", note.Text)
			}))
		if err != nil {
			return err
		}
		switch res.State {
		case client.AsyncFinished:
			fmt.Printf("built %s in %.1fs\n", args[0], totalElapsed(res.Value))
			return nil
		case client.AsyncFailed:
			return fmt.Errorf("build failed: %s", res.Failure.Message.Text)
		default:
			return fmt.Errorf("build rejected: %s", res.Rejected.Text)
		}

	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("cancel takes exactly one task id")
		}
		res, err := cl.Cancel(ctx, args[0])
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("server rejected cancel of %s", args[0])
		}
		return nil

	case "shutdown":
		res, err := cl.Shutdown(ctx)
		if err != nil {
			return err
		}
		if !res.OK {
			return fmt.Errorf("server rejected shutdown: %s", res.Err)
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// connect builds a client from explicit config when the connection triple is
// complete, and goes through the launcher/registry otherwise.
func connect(ctx context.Context, cfg *config.Config) (*client.Client, error) {
	if cfg.Server.Direct() {
		return client.NewClient(cfg.Server.Address, cfg.Server.Port, cfg.Server.Password), nil
	}

	reg, err := registry.Open(cfg.Registry.Path)
	if err != nil {
		return nil, err
	}
	defer reg.Close()

	inst, err := server.Ensure(ctx, reg, cfg.Server.Name)
	if err != nil {
		return nil, err
	}
	return inst.Client(), nil
}

func totalElapsed(results client.SessionBuildResults) float64 {
	var total float64
	for _, s := range results.Sessions {
		total += s.Timing.Elapsed
	}
	return total
}
