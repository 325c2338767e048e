// Command mapf solves a YAML scenario with CBS or ECBS and prints the
// resulting paths.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/edaniels/golog"

	"github.com/joonyeolsim/multi-agent-path-finding/cbs"
	"github.com/joonyeolsim/multi-agent-path-finding/core"
	"github.com/joonyeolsim/multi-agent-path-finding/scenario"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to a YAML scenario file")
		algo         = flag.String("algo", "cbs", "solver: cbs or ecbs")
		weight       = flag.Float64("w", 1.5, "ECBS suboptimality factor (>= 1)")
		outPath      = flag.String("out", "", "optional path for a JSON solution dump")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := golog.NewDevelopmentLogger("mapf")
	if !*verbose {
		logger = golog.NewLogger("mapf")
	}

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: mapf -scenario <file.yaml> [-algo cbs|ecbs] [-w 1.5] [-out solution.json]")
		os.Exit(2)
	}

	scen, err := scenario.Load(*scenarioPath)
	if err != nil {
		logger.Fatal(err)
	}
	world, starts, goals, err := scen.Build()
	if err != nil {
		logger.Fatal(err)
	}

	var solver cbs.Solver
	switch *algo {
	case "cbs":
		solver, err = cbs.New(starts, goals, world, logger)
	case "ecbs":
		solver, err = cbs.NewECBS(starts, goals, world, *weight, logger)
	default:
		logger.Fatalf("unknown solver %q", *algo)
	}
	if err != nil {
		logger.Fatal(err)
	}

	begin := time.Now()
	solution := solver.Plan()
	elapsed := time.Since(begin)

	if solution == nil {
		logger.Infow("no solution", "solver", solver.Name(), "elapsed", elapsed)
		os.Exit(1)
	}
	logger.Infow("solved", "solver", solver.Name(), "cost", solution.Cost(), "agents", len(solution), "elapsed", elapsed)

	for i, path := range solution {
		fmt.Printf("agent %d (cost %d):", i, path.Cost())
		for _, step := range path {
			fmt.Printf(" %s", step.Cell)
		}
		fmt.Println()
	}

	if *outPath != "" {
		if err := writeSolution(*outPath, solution); err != nil {
			logger.Fatal(err)
		}
		logger.Infow("solution written", "path", *outPath)
	}
}

// solutionStep mirrors core.TimedPoint with JSON field names.
type solutionStep struct {
	Cell []int `json:"cell"`
	Time int   `json:"time"`
}

func writeSolution(path string, solution core.Solution) error {
	out := make([][]solutionStep, len(solution))
	for i, p := range solution {
		out[i] = make([]solutionStep, len(p))
		for j, step := range p {
			out[i][j] = solutionStep{Cell: step.Cell, Time: step.Time}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
