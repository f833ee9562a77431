package core

import (
	"fmt"

	"github.com/markphelps/optional"
	"k8s.io/klog/v2"
)

// IdleProcessId is the label used for idle intervals when a timeline is rendered.
const IdleProcessId = "IDLE"

// Interval is one entry of the gantt chart: [Start, End) on the logical clock.
type Interval struct {
	ProcessId  string
	Idle       bool
	Start      int
	End        int
	QueueLevel optional.Int
}

func (i Interval) Duration() int {
	return i.End - i.Start
}

func (i Interval) Label() string {
	if i.Idle {
		return IdleProcessId
	}
	return i.ProcessId
}

// CPU holds the state of a single simulation run: the logical clock, the gantt
// chart and the processes it owns. Processes are addressed by their index in
// Proccesses, which never changes during a run.
type CPU struct {
	Proccesses []Proccess
	Clock      int

	timeline  []Interval
	completed []int
}

// NewCPU builds a run over fresh copies of specs.
func NewCPU(specs []Spec) *CPU {
	proccesses := make([]Proccess, len(specs))
	for i, spec := range specs {
		proccesses[i] = newProccess(spec)
	}
	return &CPU{
		Proccesses: proccesses,
		timeline:   make([]Interval, 0, len(specs)),
		completed:  make([]int, 0, len(specs)),
	}
}

// Execute runs proccess i for duration time units starting at the current clock
// and reports whether it completed. level is recorded on the interval as-is.
func (c *CPU) Execute(i int, duration int, level optional.Int) bool {
	proccess := &c.Proccesses[i]
	if duration <= 0 || duration > proccess.RemainingTime {
		panic(fmt.Sprintf("core: cannot execute pid %s for %d units with %d remaining",
			proccess.ID, duration, proccess.RemainingTime))
	}

	if !proccess.ResponseTime.Present() {
		proccess.ResponseTime = optional.NewInt(c.Clock - proccess.ArrivalTime)
	}

	c.timeline = append(c.timeline, Interval{
		ProcessId:  proccess.ID,
		Start:      c.Clock,
		End:        c.Clock + duration,
		QueueLevel: level,
	})
	klog.V(4).InfoS("execute", "pid", proccess.ID, "start", c.Clock, "duration", duration)

	c.Clock += duration
	proccess.RemainingTime -= duration
	if proccess.RemainingTime > 0 {
		return false
	}

	proccess.CompletionTime = c.Clock
	proccess.TurnaroundTime = proccess.CompletionTime - proccess.ArrivalTime
	proccess.WaitingTime = proccess.TurnaroundTime - proccess.BurstTime
	c.completed = append(c.completed, i)
	klog.V(4).InfoS("proccess completed", "pid", proccess.ID, "completion", proccess.CompletionTime)
	return true
}

// Idle advances the clock by duration with nothing running.
func (c *CPU) Idle(duration int) {
	if duration <= 0 {
		panic(fmt.Sprintf("core: cannot idle for %d units", duration))
	}
	c.timeline = append(c.timeline, Interval{
		Idle:  true,
		Start: c.Clock,
		End:   c.Clock + duration,
	})
	c.Clock += duration
}

// Done reports whether every proccess has completed.
func (c *CPU) Done() bool {
	return len(c.completed) == len(c.Proccesses)
}

func (c *CPU) Timeline() []Interval {
	out := make([]Interval, len(c.timeline))
	copy(out, c.timeline)
	return out
}

// Completed returns copies of the completed proccesses in completion order.
func (c *CPU) Completed() []Proccess {
	out := make([]Proccess, len(c.completed))
	for n, i := range c.completed {
		out[n] = c.Proccesses[i]
	}
	return out
}
