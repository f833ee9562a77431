package responses

import "github.com/markphelps/optional"

type ProcessResponse struct {
	ProcessId      string `json:"process_id"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	Priority       int    `json:"priority"`
	CompletionTime int    `json:"completion_time"`
	TurnAroundTime int    `json:"turn_around_time"`
	WaitingTime    int    `json:"waiting_time"`
	ResponseTime   int    `json:"response_time"`
	// QueueLevel is the level the process finished on, mlfq only.
	QueueLevel optional.Int `json:"queue_level"`
}

type IntervalResponse struct {
	Process    string       `json:"process"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	QueueLevel optional.Int `json:"queue_level"`
}

type ScheduleResponse struct {
	Algorithm             string             `json:"algorithm"`
	TotalTime             int                `json:"total_time"`
	IdleTime              int                `json:"idle_time"`
	AverageWaitingTime    float64            `json:"average_waiting_time"`
	AverageResponseTime   float64            `json:"average_response_time"`
	AverageTurnAroundTime float64            `json:"average_turn_around_time"`
	CpuUtilization        float64            `json:"cpu_utilization"`
	CpuThroughput         float64            `json:"cpu_throughput"`
	ContextSwitches       int                `json:"context_switches"`
	Timeline              []IntervalResponse `json:"timeline"`
	Details               []ProcessResponse  `json:"details"`
}
