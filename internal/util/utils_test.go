package util

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/markphelps/optional"

	"cpu-scheduler/internal/core"
)

func TestCalculateMetrics(t *testing.T) {
	completed := []core.Proccess{
		{Spec: core.Spec{ID: "A", ArrivalTime: 0, BurstTime: 4}, CompletionTime: 4, ResponseTime: optional.NewInt(0)},
		{Spec: core.Spec{ID: "B", ArrivalTime: 1, BurstTime: 2}, CompletionTime: 8, ResponseTime: optional.NewInt(5)},
	}
	timeline := []core.Interval{
		{ProcessId: "A", Start: 0, End: 4},
		{Idle: true, Start: 4, End: 6},
		{ProcessId: "B", Start: 6, End: 8},
	}

	got, err := CalculateMetrics(completed, timeline, 8)
	if err != nil {
		t.Fatalf("CalculateMetrics: %v", err)
	}
	want := Metrics{
		AverageTurnaroundTime: 5.5,
		AverageWaitingTime:    2.5,
		AverageResponseTime:   2.5,
		TotalTime:             8,
		IdleTime:              2,
		CpuUtilization:        0.75,
		CpuThroughput:         0.25,
		ContextSwitches:       1,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateMetricsEmpty(t *testing.T) {
	if _, err := CalculateMetrics(nil, nil, 0); !errors.Is(err, ErrNoProcesses) {
		t.Errorf("err = %v, want %v", err, ErrNoProcesses)
	}
}

func TestContextSwitchesIgnoreRepeatedSlices(t *testing.T) {
	a := core.Proccess{Spec: core.Spec{ID: "A", BurstTime: 2}, CompletionTime: 3, ResponseTime: optional.NewInt(0)}
	b := core.Proccess{Spec: core.Spec{ID: "B", BurstTime: 1}, CompletionTime: 2, ResponseTime: optional.NewInt(1)}
	tests := []struct {
		name      string
		completed []core.Proccess
		timeline  []core.Interval
		want      int
	}{
		{
			name:      "back to back",
			completed: []core.Proccess{a},
			timeline: []core.Interval{
				{ProcessId: "A", Start: 0, End: 1},
				{ProcessId: "A", Start: 1, End: 2},
			},
			want: 0,
		},
		{
			name:      "idle gap",
			completed: []core.Proccess{a},
			timeline: []core.Interval{
				{ProcessId: "A", Start: 0, End: 1},
				{Idle: true, Start: 1, End: 2},
				{ProcessId: "A", Start: 2, End: 3},
			},
			want: 0,
		},
		{
			name:      "idle gap between processes",
			completed: []core.Proccess{b, a},
			timeline: []core.Interval{
				{ProcessId: "A", Start: 0, End: 1},
				{Idle: true, Start: 1, End: 2},
				{ProcessId: "B", Start: 2, End: 3},
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateMetrics(tt.completed, tt.timeline, 3)
			if err != nil {
				t.Fatalf("CalculateMetrics: %v", err)
			}
			if got.ContextSwitches != tt.want {
				t.Errorf("context switches = %d, want %d", got.ContextSwitches, tt.want)
			}
		})
	}
}
