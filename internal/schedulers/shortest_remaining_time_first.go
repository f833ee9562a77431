package schedulers

import (
	"github.com/markphelps/optional"

	"cpu-scheduler/internal/core"
)

func remainingTime(p *core.Proccess) int { return p.RemainingTime }

// scheduleShortestRemainingTimeFirst re-evaluates every time unit, so a new
// arrival with less work left preempts the running proccess at the next tick.
func scheduleShortestRemainingTimeFirst(cpu *core.CPU) {
	for !cpu.Done() {
		i := shortestReady(cpu, remainingTime)
		if i < 0 {
			cpu.Idle(1)
			continue
		}
		cpu.Execute(i, 1, optional.Int{})
	}
}
