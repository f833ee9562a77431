package schedulers

import (
	"github.com/markphelps/optional"

	"cpu-scheduler/internal/core"
)

// shortestReady returns the index of the arrived, unfinished proccess with the
// smallest key, or -1 if nothing is ready. Ties go to the lowest index.
func shortestReady(cpu *core.CPU, key func(*core.Proccess) int) int {
	shortest := -1
	for i := range cpu.Proccesses {
		proccess := &cpu.Proccesses[i]
		if proccess.Completed() || !proccess.Arrived(cpu.Clock) {
			continue
		}
		if shortest < 0 || key(proccess) < key(&cpu.Proccesses[shortest]) {
			shortest = i
		}
	}
	return shortest
}

func burstTime(p *core.Proccess) int { return p.BurstTime }

// scheduleShortestJobFirst is non-preemptive: once picked, a proccess runs its
// whole burst.
func scheduleShortestJobFirst(cpu *core.CPU) {
	for !cpu.Done() {
		i := shortestReady(cpu, burstTime)
		if i < 0 {
			cpu.Idle(1)
			continue
		}
		cpu.Execute(i, cpu.Proccesses[i].RemainingTime, optional.Int{})
	}
}
