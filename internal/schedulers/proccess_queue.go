package schedulers

import (
	"sort"

	"k8s.io/klog/v2"

	"cpu-scheduler/internal/core"
)

// ProcessQueue is a fifo of proccess indices. Queues built from the same
// membership slice share it, so a proccess can be in at most one of them.
type ProcessQueue struct {
	queue  []int
	queued []bool
}

func NewProcessQueue(queued []bool) *ProcessQueue {
	return &ProcessQueue{queue: make([]int, 0), queued: queued}
}

func (p *ProcessQueue) AddToEnd(i int) {
	p.queue = append(p.queue, i)
	p.queued[i] = true
}

func (p *ProcessQueue) RemoveFromTop() (int, bool) {
	if len(p.queue) == 0 {
		return 0, false
	}
	i := p.queue[0]
	p.queue = p.queue[1:]
	p.queued[i] = false
	return i, true
}

func (p *ProcessQueue) Top() (int, bool) {
	if len(p.queue) == 0 {
		return 0, false
	}
	return p.queue[0], true
}

// arrivedBetween returns the unfinished, unqueued proccesses whose arrival time
// lies in (from, to], ordered by arrival time and then by input order.
func arrivedBetween(cpu *core.CPU, queued []bool, from, to int) []int {
	arrived := make([]int, 0)
	for i := range cpu.Proccesses {
		proccess := &cpu.Proccesses[i]
		if proccess.Completed() || queued[i] {
			continue
		}
		if proccess.ArrivalTime > from && proccess.ArrivalTime <= to {
			arrived = append(arrived, i)
		}
	}
	sort.SliceStable(arrived, func(a, b int) bool {
		return cpu.Proccesses[arrived[a]].ArrivalTime < cpu.Proccesses[arrived[b]].ArrivalTime
	})
	for _, i := range arrived {
		klog.V(4).InfoS("proccess arrived", "pid", cpu.Proccesses[i].ID, "arrival", cpu.Proccesses[i].ArrivalTime)
	}
	return arrived
}
