package schedulers

import (
	"github.com/markphelps/optional"
	"k8s.io/klog/v2"

	"cpu-scheduler/internal/core"
)

func scheduleRoundRobin(cpu *core.CPU, timeQuantum int) {
	queued := make([]bool, len(cpu.Proccesses))
	readyQueue := NewProcessQueue(queued)
	for i := range cpu.Proccesses {
		if cpu.Proccesses[i].Arrived(cpu.Clock) {
			readyQueue.AddToEnd(i)
		}
	}

	for !cpu.Done() {
		i, ok := readyQueue.RemoveFromTop()
		if !ok {
			cpu.Idle(1)
			for _, j := range arrivedBetween(cpu, queued, cpu.Clock-1, cpu.Clock) {
				readyQueue.AddToEnd(j)
			}
			continue
		}

		start := cpu.Clock
		completed := cpu.Execute(i, min(timeQuantum, cpu.Proccesses[i].RemainingTime), optional.Int{})

		// arrivals during the slice queue up ahead of the preempted proccess
		for _, j := range arrivedBetween(cpu, queued, start, cpu.Clock) {
			readyQueue.AddToEnd(j)
		}
		if !completed {
			klog.V(4).InfoS("context switch", "pid", cpu.Proccesses[i].ID, "remaining", cpu.Proccesses[i].RemainingTime)
			readyQueue.AddToEnd(i)
		}
	}
}
