package schedulers

import (
	"github.com/markphelps/optional"
	"k8s.io/klog/v2"

	"cpu-scheduler/internal/core"
)

// scheduleMultilevelFeedbackQueue serves the highest non-empty level first and
// fifo within a level. A proccess that uses up its quantum moves one level
// down; at the lowest level it goes back to the tail of that queue.
func scheduleMultilevelFeedbackQueue(cpu *core.CPU, timeQuantumList [MultilevelFeedbackQueueLevels]int) {
	queued := make([]bool, len(cpu.Proccesses))
	var levels [MultilevelFeedbackQueueLevels]*ProcessQueue
	for level := range levels {
		levels[level] = NewProcessQueue(queued)
	}

	admit := func(arrived []int) {
		for _, i := range arrived {
			cpu.Proccesses[i].QueueLevel = 0
			levels[0].AddToEnd(i)
		}
	}
	for i := range cpu.Proccesses {
		cpu.Proccesses[i].QueueLevel = 0
		if cpu.Proccesses[i].Arrived(cpu.Clock) {
			levels[0].AddToEnd(i)
		}
	}

	for !cpu.Done() {
		level, i, ok := nextProccess(levels)
		if !ok {
			cpu.Idle(1)
			admit(arrivedBetween(cpu, queued, cpu.Clock-1, cpu.Clock))
			continue
		}

		start := cpu.Clock
		proccess := &cpu.Proccesses[i]
		completed := cpu.Execute(i, min(timeQuantumList[level], proccess.RemainingTime), optional.NewInt(level))
		levels[level].RemoveFromTop()

		if !completed {
			next := min(level+1, MultilevelFeedbackQueueLevels-1)
			klog.V(4).InfoS("context switch", "pid", proccess.ID, "from", level, "to", next)
			proccess.QueueLevel = next
			levels[next].AddToEnd(i)
		}
		admit(arrivedBetween(cpu, queued, start, cpu.Clock))
	}
}

func nextProccess(levels [MultilevelFeedbackQueueLevels]*ProcessQueue) (int, int, bool) {
	for level, queue := range levels {
		if i, ok := queue.Top(); ok {
			return level, i, true
		}
	}
	return 0, 0, false
}
