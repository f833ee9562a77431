package telemetry

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/schedulers"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	result, err := schedulers.ScheduleFirstComeFirstServe([]core.Spec{{ID: "A", BurstTime: 3, Priority: 1}})
	if err != nil {
		t.Fatalf("ScheduleFirstComeFirstServe: %v", err)
	}
	r.Observe(result)
	r.Observe(result)
	r.Failure("rr", fmt.Errorf("wrapped: %w", schedulers.ErrInvalidInput))

	if got := testutil.ToFloat64(r.simulations.WithLabelValues("fcfs")); got != 2 {
		t.Errorf("simulations{fcfs} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.failures.WithLabelValues("rr", "invalid_input")); got != 1 {
		t.Errorf("failures{rr,invalid_input} = %v, want 1", got)
	}

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if !strings.Contains(buf.String(), `cpu_scheduler_simulations_total{algorithm="fcfs"} 2`) {
		t.Errorf("exposition missing simulations counter:\n%s", buf.String())
	}
}
