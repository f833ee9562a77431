package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/schedulers"
	"cpu-scheduler/internal/util"
)

// Compact merges back-to-back intervals of the same proccess at the same queue
// level, so a per-tick schedule reads like a conventional gantt chart. The
// input is not modified.
func Compact(timeline []core.Interval) []core.Interval {
	out := make([]core.Interval, 0, len(timeline))
	for _, interval := range timeline {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Label() == interval.Label() && last.End == interval.Start &&
				last.QueueLevel.OrElse(-1) == interval.QueueLevel.OrElse(-1) {
				last.End = interval.End
				continue
			}
		}
		out = append(out, interval)
	}
	return out
}

// Write outputs the title, a gantt chart and the schedule table of result.
func Write(w io.Writer, result *schedulers.Result) {
	outputTitle(w, result.Algorithm.Title())
	outputGantt(w, Compact(result.Timeline))

	levels := result.Algorithm == schedulers.MultilevelFeedbackQueue
	rows := make([][]string, len(result.Completed))
	for i, p := range result.Completed {
		rows[i] = []string{
			p.ID,
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.BurstTime),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(p.WaitingTime),
			fmt.Sprint(p.TurnaroundTime),
			fmt.Sprint(p.ResponseTime.OrElse(0)),
			fmt.Sprint(p.CompletionTime),
		}
		if levels {
			rows[i] = append(rows[i], fmt.Sprintf("Q%d", p.QueueLevel))
		}
	}
	outputSchedule(w, rows, result.Metrics, levels)
}

func outputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func outputGantt(w io.Writer, gantt []core.Interval) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, interval := range gantt {
		label := interval.Label()
		if level, err := interval.QueueLevel.Get(); err == nil {
			label = fmt.Sprintf("%s/Q%d", label, level)
		}
		padding := strings.Repeat(" ", max(0, 8-len(label))/2)
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, interval := range gantt {
		_, _ = fmt.Fprint(w, interval.Start, "\t")
		if i == len(gantt)-1 {
			_, _ = fmt.Fprint(w, interval.End)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func outputSchedule(w io.Writer, rows [][]string, metrics util.Metrics, levels bool) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	header := []string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Response", "Exit"}
	footer := []string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", metrics.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageTurnaroundTime),
		fmt.Sprintf("Average\n%.2f", metrics.AverageResponseTime),
		fmt.Sprintf("Total\n%d", metrics.TotalTime)}
	if levels {
		header = append(header, "Queue")
		footer = append(footer, "")
	}
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.SetFooter(footer)
	table.Render()
	_, _ = fmt.Fprintf(w, "CPU utilization %.2f%%, throughput %.2f/t, context switches %d\n\n",
		metrics.CpuUtilization*100, metrics.CpuThroughput, metrics.ContextSwitches)
}
