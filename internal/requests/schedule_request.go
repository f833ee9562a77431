package requests

import (
	"github.com/markphelps/optional"

	"cpu-scheduler/internal/core"
)

// DefaultPriority is used for processes that do not carry a priority.
const DefaultPriority = 1

type Process struct {
	ProcessId   string       `json:"process_id"`
	ArrivalTime int          `json:"arrival_time"`
	BurstTime   int          `json:"burst_time"`
	Priority    optional.Int `json:"priority"`
}

type ScheduleRequest struct {
	Processes     []Process    `json:"processes"`
	Quantum       optional.Int `json:"quantum"`
	LevelsQuantum []int        `json:"levels_quantum,omitempty"`
}

func (r *ScheduleRequest) Specs() []core.Spec {
	specs := make([]core.Spec, len(r.Processes))
	for i, p := range r.Processes {
		specs[i] = core.Spec{
			ID:          p.ProcessId,
			ArrivalTime: p.ArrivalTime,
			BurstTime:   p.BurstTime,
			Priority:    p.Priority.OrElse(DefaultPriority),
		}
	}
	return specs
}

// FromSpecs is the inverse of Specs.
func FromSpecs(specs []core.Spec) ScheduleRequest {
	processes := make([]Process, len(specs))
	for i, spec := range specs {
		processes[i] = Process{
			ProcessId:   spec.ID,
			ArrivalTime: spec.ArrivalTime,
			BurstTime:   spec.BurstTime,
			Priority:    optional.NewInt(spec.Priority),
		}
	}
	return ScheduleRequest{Processes: processes}
}
