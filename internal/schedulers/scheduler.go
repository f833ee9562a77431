package schedulers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"k8s.io/klog/v2"

	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/util"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// MultilevelFeedbackQueueLevels is the number of queues used by the mlfq scheduler.
const MultilevelFeedbackQueueLevels = 4

// MaxTimeHorizon bounds the clock of any run. A workload is rejected when its
// latest arrival plus its total burst time exceeds the horizon, which is an
// upper bound on the final clock of every algorithm.
const MaxTimeHorizon = math.MaxInt32

type Algorithm int

const (
	FirstComeFirstServe Algorithm = iota
	ShortestJobFirst
	ShortestRemainingTimeFirst
	RoundRobin
	MultilevelFeedbackQueue
)

// Algorithms lists every supported algorithm in presentation order.
var Algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	ShortestRemainingTimeFirst,
	RoundRobin,
	MultilevelFeedbackQueue,
}

func (a Algorithm) String() string {
	switch a {
	case FirstComeFirstServe:
		return "fcfs"
	case ShortestJobFirst:
		return "sjf"
	case ShortestRemainingTimeFirst:
		return "srtf"
	case RoundRobin:
		return "rr"
	case MultilevelFeedbackQueue:
		return "mlfq"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Title is the human readable name of the algorithm.
func (a Algorithm) Title() string {
	switch a {
	case FirstComeFirstServe:
		return "First-come, first-serve"
	case ShortestJobFirst:
		return "Shortest-job-first"
	case ShortestRemainingTimeFirst:
		return "Shortest-remaining-time-first"
	case RoundRobin:
		return "Round-robin"
	case MultilevelFeedbackQueue:
		return "Multilevel feedback queue"
	}
	return a.String()
}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fcfs", "fifo":
		return FirstComeFirstServe, nil
	case "sjf":
		return ShortestJobFirst, nil
	case "srtf":
		return ShortestRemainingTimeFirst, nil
	case "rr", "round-robin", "roundrobin":
		return RoundRobin, nil
	case "mlfq":
		return MultilevelFeedbackQueue, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Options carries the algorithm specific parameters. Quantum is only read by
// round-robin and LevelsQuantum only by the multilevel feedback queue.
type Options struct {
	Quantum       int
	LevelsQuantum []int
	// Horizon lowers MaxTimeHorizon for this run. Zero keeps the default.
	Horizon int
}

func (o Options) horizon() int {
	if o.Horizon > 0 && o.Horizon < MaxTimeHorizon {
		return o.Horizon
	}
	return MaxTimeHorizon
}

type Result struct {
	Algorithm Algorithm
	Timeline  []core.Interval
	Completed []core.Proccess
	Metrics   util.Metrics
}

// Simulate runs algorithm over fresh copies of specs.
func Simulate(algorithm Algorithm, specs []core.Spec, options Options) (*Result, error) {
	schedule, err := stepFunc(algorithm, options)
	if err != nil {
		return nil, err
	}
	if err := validateSpecs(specs, options.horizon()); err != nil {
		return nil, err
	}

	cpu := core.NewCPU(specs)
	schedule(cpu)
	if !cpu.Done() {
		panic(fmt.Sprintf("schedulers: %s finished with %d of %d proccesses completed",
			algorithm, len(cpu.Completed()), len(specs)))
	}

	completed := cpu.Completed()
	timeline := cpu.Timeline()
	metrics, err := util.CalculateMetrics(completed, timeline, cpu.Clock)
	if err != nil {
		return nil, err
	}

	klog.V(2).InfoS("simulation finished", "algorithm", algorithm, "proccesses", len(specs),
		"totalTime", metrics.TotalTime, "averageWaitingTime", metrics.AverageWaitingTime)
	return &Result{
		Algorithm: algorithm,
		Timeline:  timeline,
		Completed: completed,
		Metrics:   metrics,
	}, nil
}

func stepFunc(algorithm Algorithm, options Options) (func(*core.CPU), error) {
	switch algorithm {
	case FirstComeFirstServe:
		return scheduleFirstComeFirstServe, nil
	case ShortestJobFirst:
		return scheduleShortestJobFirst, nil
	case ShortestRemainingTimeFirst:
		return scheduleShortestRemainingTimeFirst, nil
	case RoundRobin:
		if options.Quantum <= 0 {
			return nil, fmt.Errorf("%w: round-robin time quantum must be positive, got %d", ErrInvalidInput, options.Quantum)
		}
		quantum := options.Quantum
		return func(cpu *core.CPU) { scheduleRoundRobin(cpu, quantum) }, nil
	case MultilevelFeedbackQueue:
		if len(options.LevelsQuantum) != MultilevelFeedbackQueueLevels {
			return nil, fmt.Errorf("%w: multilevel feedback queue needs %d time quanta, got %d",
				ErrInvalidInput, MultilevelFeedbackQueueLevels, len(options.LevelsQuantum))
		}
		var quanta [MultilevelFeedbackQueueLevels]int
		for level, q := range options.LevelsQuantum {
			if q <= 0 {
				return nil, fmt.Errorf("%w: time quantum of level %d must be positive, got %d", ErrInvalidInput, level, q)
			}
			quanta[level] = q
		}
		return func(cpu *core.CPU) { scheduleMultilevelFeedbackQueue(cpu, quanta) }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
}

func validateSpecs(specs []core.Spec, horizon int) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: no processes to schedule", ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(specs))
	latestArrival, totalBurst := 0, 0
	for i, spec := range specs {
		switch {
		case spec.ID == "":
			return fmt.Errorf("%w: process #%d has no id", ErrInvalidInput, i+1)
		case spec.ArrivalTime < 0:
			return fmt.Errorf("%w: process %s has negative arrival time %d", ErrInvalidInput, spec.ID, spec.ArrivalTime)
		case spec.BurstTime <= 0:
			return fmt.Errorf("%w: process %s has non-positive burst time %d", ErrInvalidInput, spec.ID, spec.BurstTime)
		case spec.Priority <= 0:
			return fmt.Errorf("%w: process %s has non-positive priority %d", ErrInvalidInput, spec.ID, spec.Priority)
		}
		if _, ok := seen[spec.ID]; ok {
			return fmt.Errorf("%w: duplicate process id %s", ErrInvalidInput, spec.ID)
		}
		seen[spec.ID] = struct{}{}

		// both terms stay within horizon, so neither sum can overflow
		if spec.ArrivalTime > horizon || spec.BurstTime > horizon-totalBurst {
			return fmt.Errorf("%w: processes do not fit in the time horizon %d", ErrInvalidInput, horizon)
		}
		totalBurst += spec.BurstTime
		latestArrival = max(latestArrival, spec.ArrivalTime)
	}
	if latestArrival > horizon-totalBurst {
		return fmt.Errorf("%w: processes do not fit in the time horizon %d", ErrInvalidInput, horizon)
	}
	return nil
}

func ScheduleFirstComeFirstServe(specs []core.Spec) (*Result, error) {
	return Simulate(FirstComeFirstServe, specs, Options{})
}

func ScheduleShortestJobFirst(specs []core.Spec) (*Result, error) {
	return Simulate(ShortestJobFirst, specs, Options{})
}

func ScheduleShortestRemainingTimeFirst(specs []core.Spec) (*Result, error) {
	return Simulate(ShortestRemainingTimeFirst, specs, Options{})
}

func ScheduleRoundRobin(specs []core.Spec, timeQuantum int) (*Result, error) {
	return Simulate(RoundRobin, specs, Options{Quantum: timeQuantum})
}

func ScheduleMultilevelFeedbackQueue(specs []core.Spec, timeQuantumList []int) (*Result, error) {
	return Simulate(MultilevelFeedbackQueue, specs, Options{LevelsQuantum: timeQuantumList})
}

// ScheduleAll runs every algorithm, each over its own copy of specs. It stops at
// the first error.
func ScheduleAll(specs []core.Spec, options Options) ([]*Result, error) {
	results := make([]*Result, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		result, err := Simulate(algorithm, specs, options)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", algorithm, err)
		}
		results = append(results, result)
	}
	return results, nil
}
