// Command ihtp runs the tabu search driver over one IHTP instance.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ihtp/scheduler/internal/pflagx"
	"github.com/ihtp/scheduler/pkg/ihtpengine"
	"github.com/ihtp/scheduler/pkg/ihtplog"
	"github.com/ihtp/scheduler/pkg/ihtpmodel"
	"github.com/spf13/pflag"
)

var (
	EnvPrefix        = "IHTP_"
	Instance         = pflag.StringP("instance", "i", "", "path to the instance JSON file (required)")
	Output           = pflag.StringP("output", "o", "", "path to write the solution JSON (default: stdout)")
	ActionLog        = pflag.String("action-log", "", "path to write the CSV action log (default: none)")
	MaxIter          = pflag.IntP("max-iter", "n", 10000, "maximum tabu search iterations")
	TabuSize         = pflag.Int("tabu-size", 20, "tabu memory size")
	AspirationFactor = pflag.Float64("aspiration-factor", 1.0, "aspiration threshold multiplier")
	LogLevel         = pflagx.LevelP("log-level", "L", slog.LevelInfo, "log level")
	LogJSON          = pflag.Bool("log-json", false, "use json logs")
	Help             = pflag.BoolP("help", "h", false, "show this help text")
)

func main() {
	pflagx.ParseEnv(EnvPrefix)
	pflag.Parse()

	if *Help || pflag.NArg() != 0 {
		fmt.Printf("usage: %s [options]\n%s", os.Args[0], pflag.CommandLine.FlagUsages())
		if *Help {
			return
		}
		os.Exit(2)
	}

	if *Instance == "" {
		fmt.Fprintf(os.Stderr, "error: no instance path specified\n")
		os.Exit(2)
	}

	slog.SetDefault(ihtplog.NewLogger(os.Stdout, LogLevel, *LogJSON))
	slog.SetLogLoggerLevel(LogLevel.Level())

	if err := run(); err != nil {
		slog.Error("failed to run solver", "error", err)
		os.Exit(1)
	}
}

func run() error {
	f, err := os.Open(*Instance)
	if err != nil {
		return fmt.Errorf("open instance: %w", err)
	}
	defer f.Close()

	slog.Info("loading instance", "path", *Instance)
	inst, err := ihtpmodel.LoadInstance(f)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	slog.Info("instance loaded",
		"days", inst.Days,
		"rooms", len(inst.Rooms),
		"occupants", inst.NumOccupants(),
		"patients", len(inst.Patients),
		"nurses", len(inst.Nurses),
	)

	st, err := ihtpengine.NewEngineState(inst)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	var sink ihtpengine.ActionSink
	if *ActionLog != "" {
		out, err := os.Create(*ActionLog)
		if err != nil {
			return fmt.Errorf("create action log: %w", err)
		}
		defer out.Close()
		sink = ihtplog.NewCSVSink(out)
	}

	driver := ihtpengine.NewTabuDriver(st, ihtpengine.TabuConfig{
		TabuSize:         *TabuSize,
		AspirationFactor: *AspirationFactor,
		MaxIter:          *MaxIter,
	})

	slog.Info("starting tabu search", "max_iter", *MaxIter, "tabu_size", *TabuSize, "aspiration_factor", *AspirationFactor)
	result, err := driver.Run(context.Background(), sink)
	if err != nil {
		return fmt.Errorf("tabu search: %w", err)
	}
	slog.Info("tabu search finished",
		"iterations", result.Iterations,
		"incumbent", result.Incumbent,
		"no_more_moves", result.Budget.NoMoreMoves,
	)

	out := os.Stdout
	if *Output != "" {
		f, err := os.Create(*Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return ihtpmodel.WriteSolution(out, inst, st)
}
