package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/report"
	"cpu-scheduler/internal/schedulers"
	"cpu-scheduler/internal/workload"
)

// printReport runs the selected algorithms once and writes their schedules to w.
func printReport(w io.Writer, cfg *config.SchedulerConfig, input string, random int, seed uint64, algorithm string) error {
	specs, err := loadSpecs(input, random, seed)
	if err != nil {
		return err
	}

	algorithms := schedulers.Algorithms
	if !strings.EqualFold(algorithm, "all") {
		a, err := schedulers.ParseAlgorithm(algorithm)
		if err != nil {
			return err
		}
		algorithms = []schedulers.Algorithm{a}
	}

	options := schedulers.Options{
		Quantum:       cfg.RoundRobinTimeQuantum,
		LevelsQuantum: cfg.MultilevelFeedbackQueueLevelsTimeQuantum,
	}
	for _, a := range algorithms {
		result, err := schedulers.Simulate(a, specs, options)
		if err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
		report.Write(w, result)
	}
	return nil
}

func loadSpecs(input string, random int, seed uint64) ([]core.Spec, error) {
	if input == "" {
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return workload.Random(rand.New(rand.NewSource(seed)), random), nil
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("%w: opening processes", err)
	}
	defer f.Close()
	return workload.LoadCSV(f)
}
