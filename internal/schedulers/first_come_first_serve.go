package schedulers

import (
	"sort"

	"github.com/markphelps/optional"

	"cpu-scheduler/internal/core"
)

// scheduleFirstComeFirstServe runs proccesses to completion in order of arrival.
// Proccesses arriving at the same time keep their input order.
func scheduleFirstComeFirstServe(cpu *core.CPU) {
	order := make([]int, len(cpu.Proccesses))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cpu.Proccesses[order[a]].ArrivalTime < cpu.Proccesses[order[b]].ArrivalTime
	})

	for _, i := range order {
		proccess := &cpu.Proccesses[i]
		if cpu.Clock < proccess.ArrivalTime {
			cpu.Idle(proccess.ArrivalTime - cpu.Clock)
		}
		cpu.Execute(i, proccess.RemainingTime, optional.Int{})
	}
}
