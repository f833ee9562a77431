package util

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"cpu-scheduler/internal/core"
)

var ErrNoProcesses = errors.New("no completed processes")

type Metrics struct {
	AverageTurnaroundTime float64
	AverageWaitingTime    float64
	AverageResponseTime   float64
	TotalTime             int
	IdleTime              int
	CpuUtilization        float64
	CpuThroughput         float64
	ContextSwitches       int
}

// CalculateMetrics summarises a finished run. clock is the final value of the
// simulation clock.
func CalculateMetrics(completed []core.Proccess, timeline []core.Interval, clock int) (Metrics, error) {
	if len(completed) == 0 {
		return Metrics{}, ErrNoProcesses
	}

	turnaround := make([]float64, len(completed))
	waiting := make([]float64, len(completed))
	response := make([]float64, len(completed))
	for i, proccess := range completed {
		responseTime, err := proccess.ResponseTime.Get()
		if err != nil {
			panic(fmt.Sprintf("util: completed pid %s never ran", proccess.ID))
		}
		turnaroundTime := proccess.CompletionTime - proccess.ArrivalTime
		turnaround[i] = float64(turnaroundTime)
		waiting[i] = float64(turnaroundTime - proccess.BurstTime)
		response[i] = float64(responseTime)
	}

	metrics := Metrics{
		AverageTurnaroundTime: stat.Mean(turnaround, nil),
		AverageWaitingTime:    stat.Mean(waiting, nil),
		AverageResponseTime:   stat.Mean(response, nil),
		TotalTime:             clock,
	}

	// a switch is a change of running process; idle gaps between slices of the
	// same process do not count
	last := ""
	for _, interval := range timeline {
		if interval.Idle {
			metrics.IdleTime += interval.Duration()
			continue
		}
		if last != "" && last != interval.ProcessId {
			metrics.ContextSwitches++
		}
		last = interval.ProcessId
	}

	if clock > 0 {
		metrics.CpuUtilization = float64(clock-metrics.IdleTime) / float64(clock)
		metrics.CpuThroughput = float64(len(completed)) / float64(clock)
	}
	return metrics, nil
}
