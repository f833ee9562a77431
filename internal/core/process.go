package core

import "github.com/markphelps/optional"

// Spec describes a process as supplied by the caller. It is never mutated by a run.
type Spec struct {
	ID          string
	ArrivalTime int
	BurstTime   int
	Priority    int
}

// Proccess is the per-run copy of a Spec that the schedulers mutate.
type Proccess struct {
	Spec
	RemainingTime  int
	CompletionTime int
	TurnaroundTime int
	WaitingTime    int
	// ResponseTime is empty until the process first gets the cpu.
	ResponseTime optional.Int
	// QueueLevel is the current mlfq level, and the final one once completed.
	// Other algorithms leave it at 0.
	QueueLevel int
}

func newProccess(spec Spec) Proccess {
	return Proccess{
		Spec:          spec,
		RemainingTime: spec.BurstTime,
	}
}

func (p *Proccess) Completed() bool {
	return p.RemainingTime == 0
}

// Arrived reports whether the process is eligible at the given clock value.
func (p *Proccess) Arrived(clock int) bool {
	return p.ArrivalTime <= clock
}
