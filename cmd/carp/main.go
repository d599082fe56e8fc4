package main

import (
	"carp-solver/internal/adapters/instancefile"
	"carp-solver/internal/config"
	"carp-solver/internal/platform/obs"
	"carp-solver/internal/services"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Exit statuses besides 0 and 1.
const (
	exitUsage   = 2
	exitPartial = 3
)

// Local-search attempts per round when -t alone turns on the timed search.
const timedSearchAttempts = 5000

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run solves one instance file and writes the answer to stdout.
// Flags may come before or after the instance path, as in `carp egl-e1-A.dat -t 60 -s 7`.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := flag.NewFlagSet("carp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: carp [flags] <instance.dat>\n")
		fs.PrintDefaults()
	}
	termination := fs.Float64("t", cfg.Solver.TimeLimit.Seconds(), "time budget in seconds for the improvement and restart phases")
	seed := fs.Int64("s", cfg.Solver.Seed, "random seed for the improvement and restart phases")
	strategy := fs.String("strategy", cfg.Solver.Strategy, "route builder: nearest-feasible or knapsack-partition")
	improve := fs.Int("improve", cfg.Solver.ImproveAttempts, "local-search attempts per build (0 disables)")
	restarts := fs.Int("restarts", cfg.Solver.Restarts, "shuffled rebuilds after the first build (0 disables, -1 runs until -t)")
	strict := fs.Bool("strict", cfg.Solver.Strict, "reject instances with an edge heavier than vehicle capacity")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	var path string
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		path, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if path == "" && fs.NArg() == 1 {
		path = fs.Arg(0)
	}
	if path == "" || fs.NArg() > 1 || (fs.NArg() == 1 && fs.Arg(0) != path) {
		fs.Usage()
		return exitUsage
	}

	// A bare -t asks for the timed search: restart and improve until the budget runs out.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["t"] && !set["restarts"] && !set["improve"] && *restarts == 0 && *improve == 0 {
		*restarts = -1
		*improve = timedSearchAttempts
	}

	if err := obs.SetupLogging(obs.LogOptions{Level: *logLevel, File: cfg.LogFile, Output: stderr}); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	in, err := instancefile.ParseFile(path)
	if err != nil {
		log.Error(err)
		return 1
	}

	ctx := context.Background()
	if *termination > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*termination*float64(time.Second)))
		defer cancel()
	}

	sol, err := services.Solve(ctx, in, services.SolveRequest{
		Strategy: *strategy,
		Strict:   *strict,
		Improve:  services.ImproveOptions{Attempts: *improve, Seed: *seed},
		Restart:  services.RestartOptions{Rounds: *restarts, Seed: *seed},
	}, services.DefaultBuilders())
	if err != nil {
		log.Error(err)
		if errors.Is(err, services.ErrUnknownStrategy) {
			return exitUsage
		}
		return 1
	}

	if err := instancefile.WriteSolution(stdout, sol); err != nil {
		log.Error(err)
		return 1
	}

	if perr := services.PartialError(in, sol); perr != nil {
		for _, e := range sol.Unassigned {
			log.WithField("edge", e.String()).Warn("unassigned required edge")
		}
		log.Warn(perr)
		return exitPartial
	}
	return 0
}
