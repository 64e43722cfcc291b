package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/ringfx/config"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	duration := flag.Float64("duration", 120, "Simulated seconds per run")
	spawnInterval := flag.Float64("spawn-interval", 0, "Seconds between single spawns (0 = headless.spawn_interval)")
	assemblyInterval := flag.Float64("assembly-interval", 0, "Seconds between assemblies (0 = headless.assembly_interval)")
	volumeShare := flag.Float64("volume-share", 0.3, "Fraction of single spawns that are volume effects")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		fmt.Fprintln(os.Stderr, "--output is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fatal("failed to create output directory", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to load config", err)
	}

	scenario := ScenarioFromConfig(baseCfg, *duration)
	if *spawnInterval > 0 {
		scenario.SpawnInterval = *spawnInterval
	}
	if *assemblyInterval > 0 {
		scenario.AssemblyInterval = *assemblyInterval
	}
	scenario.VolumeShare = *volumeShare

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, scenario, evalSeeds, baseCfg)

	dim := params.Dim()
	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation; seeds run in parallel inside Evaluate
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		fatal("failed to create log file", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "cost", "evicted", "dropped", "growth"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestCost := 1e18
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			cost := evaluator.Evaluate(raw)
			evalCount++

			// Log the rounded values actually applied
			clamped := params.Clamp(raw)
			if cost < bestCost {
				bestCost = cost
				bestParams = clamped
			}

			b := evaluator.LastBreakdown()
			row := []string{
				strconv.Itoa(evalCount),
				fmt.Sprintf("%.6f", cost),
				strconv.Itoa(b.Evicted),
				strconv.Itoa(b.Dropped),
				strconv.Itoa(b.Growth),
			}
			for _, v := range clamped {
				row = append(row, strconv.Itoa(int(v)))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(*maxEvals-evalCount) * avgPerEval
			fmt.Printf("Eval %d/%d: cost=%.3f evicted=%d dropped=%d growth=%d (best=%.3f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, cost, b.Evicted, b.Dropped, b.Growth, bestCost,
				formatDuration(elapsed), formatDuration(remaining))

			return cost
		},
	}

	fmt.Printf("Starting CMA-ES with %d parameters, population=%d, max_evals=%d\n", dim, popSize, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, %.0fs per run, spawn every %.2fs, assembly every %.2fs\n",
		*seeds, scenario.Duration, scenario.SpawnInterval, scenario.AssemblyInterval)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		fmt.Println("no evaluations completed")
		return
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best cost: %.3f\n", bestCost)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %d\n", spec.Path, int(bestParams[i]))
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("failed to reload config", err)
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		slog.Error("failed to write best config", "error", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
