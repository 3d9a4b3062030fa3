package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/wildfunctions/libcalculus/pkg/engine"
	"github.com/wildfunctions/libcalculus/pkg/job"
	"github.com/wildfunctions/libcalculus/pkg/pool"
	"github.com/wildfunctions/libcalculus/pkg/store"
)

func main() {
	cfg := engine.DefaultConfig()
	mode := "check"
	jobPath := ""
	dbPath := ""
	outdir := "."

	flag.StringVar(&mode, "mode", mode, "what to do (check, run)")
	flag.StringVar(&jobPath, "job", jobPath, "job file to execute in run mode")
	flag.StringVar(&dbPath, "db", dbPath, "SQLite database for run results (empty = in memory)")
	flag.StringVar(&cfg.Pool, "pool", cfg.Pool, "function pool ("+strings.Join(pool.Names(), ", ")+")")
	flag.IntVar(&cfg.Functions, "functions", cfg.Functions, "number of random functions to check")
	flag.IntVar(&cfg.Values, "values", cfg.Values, "number of points to check each function at")
	flag.IntVar(&cfg.MaxOps, "maxops", cfg.MaxOps, "max operations per function")
	flag.Float64Var(&cfg.Bound, "bound", cfg.Bound, "bound on sample points and constants")
	flag.IntVar(&cfg.MaxTries, "maxtries", cfg.MaxTries, "non-finite samples tolerated before redrawing a function")
	flag.IntVar(&cfg.MaxErrors, "maxerrors", cfg.MaxErrors, "mismatches that fail a function")
	flag.Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "relative tolerance for agreement")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (auto, text, json, latex)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "report every function")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of parallel workers")
	flag.StringVar(&outdir, "outdir", outdir, "output directory for generated files")
	flag.Parse()

	format := resolveFormat(cfg.Format, os.Stdout)

	var err error
	switch mode {
	case "check":
		err = check(cfg, outdir, format)
	case "run":
		err = run(jobPath, dbPath, format)
	default:
		err = fmt.Errorf("unknown mode: %s", mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveFormat turns "auto" into text on a terminal and JSON otherwise.
func resolveFormat(format string, out *os.File) string {
	if format != "auto" {
		return format
	}
	if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
		return "text"
	}
	return "json"
}

func check(cfg engine.Config, outdir, format string) error {
	// Create output directory and wire it into config so the engine can write during the run
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	cfg.OutDir = outdir

	e, err := engine.New(cfg)
	if err != nil {
		return err
	}

	report := e.Run()

	switch format {
	case "json":
		if err := engine.WriteJSONFinal(os.Stdout, report); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	case "latex":
		engine.WriteLatexReport(os.Stdout, report)
	default:
		engine.WriteTextFinal(os.Stdout, report)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d functions failed", report.Failed, cfg.Functions)
	}
	return nil
}

func run(jobPath, dbPath, format string) error {
	if jobPath == "" {
		return fmt.Errorf("run mode needs -job")
	}
	j, err := job.Load(jobPath)
	if err != nil {
		return err
	}

	var st store.Store = store.NewMemory()
	if dbPath != "" {
		if st, err = store.NewSQLite(dbPath); err != nil {
			return fmt.Errorf("opening %s: %w", dbPath, err)
		}
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Running job %s: %d tasks\n", j.Name, len(j.Tasks))
	runID, err := job.Run(ctx, j, st)
	if err != nil {
		return err
	}
	results, err := st.Results(runID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Run %s finished\n", runID)

	return writeResults(os.Stdout, results, format)
}

func writeResults(w io.Writer, results []store.Result, format string) error {
	switch format {
	case "json":
		return writeResultsJSON(w, results)
	case "latex":
		writeResultsLatex(w, results)
	default:
		for _, r := range results {
			fmt.Fprintf(w, "%-16s %-10s %s\n", r.Task, r.Kind, r.Formula)
			switch {
			case r.Err != "":
				fmt.Fprintf(w, "%16s error: %s\n", "", r.Err)
			case r.Kind != job.KindLatex:
				fmt.Fprintf(w, "%16s = %v\n", "", r.Value())
			}
		}
	}
	return nil
}
