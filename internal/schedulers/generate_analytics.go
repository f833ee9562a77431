package schedulers

import (
	"github.com/markphelps/optional"

	"cpu-scheduler/internal/responses"
)

func GenerateResponse(result *Result) responses.ScheduleResponse {
	timeline := make([]responses.IntervalResponse, len(result.Timeline))
	for i, interval := range result.Timeline {
		timeline[i] = responses.IntervalResponse{
			Process:    interval.Label(),
			Start:      interval.Start,
			End:        interval.End,
			QueueLevel: interval.QueueLevel,
		}
	}

	details := make([]responses.ProcessResponse, len(result.Completed))
	for i, proccess := range result.Completed {
		details[i] = responses.ProcessResponse{
			ProcessId:      proccess.ID,
			ArrivalTime:    proccess.ArrivalTime,
			BurstTime:      proccess.BurstTime,
			Priority:       proccess.Priority,
			CompletionTime: proccess.CompletionTime,
			TurnAroundTime: proccess.TurnaroundTime,
			WaitingTime:    proccess.WaitingTime,
			ResponseTime:   proccess.ResponseTime.OrElse(0),
		}
		if result.Algorithm == MultilevelFeedbackQueue {
			details[i].QueueLevel = optional.NewInt(proccess.QueueLevel)
		}
	}

	metrics := result.Metrics
	return responses.ScheduleResponse{
		Algorithm:             result.Algorithm.String(),
		TotalTime:             metrics.TotalTime,
		IdleTime:              metrics.IdleTime,
		AverageWaitingTime:    metrics.AverageWaitingTime,
		AverageResponseTime:   metrics.AverageResponseTime,
		AverageTurnAroundTime: metrics.AverageTurnaroundTime,
		CpuUtilization:        metrics.CpuUtilization,
		CpuThroughput:         metrics.CpuThroughput,
		ContextSwitches:       metrics.ContextSwitches,
		Timeline:              timeline,
		Details:               details,
	}
}
