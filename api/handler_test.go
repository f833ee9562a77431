package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/markphelps/optional"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/telemetry"
)

func newTestApp() *fiber.App {
	return NewApp(&config.SchedulerConfig{
		Port:                                     9095,
		RoundRobinTimeQuantum:                    2,
		MultilevelFeedbackQueueLevelsTimeQuantum: []int{2, 4, 6, 8},
		MaxProcesses:                             10,
		MaxTimeHorizon:                           1000,
	}, telemetry.NewRecorder())
}

var compareOptional = cmp.Comparer(func(a, b optional.Int) bool {
	return a.Present() == b.Present() && a.OrElse(0) == b.OrElse(0)
})

// manyProcesses builds a request body with n one-unit processes.
func manyProcesses(n int) string {
	processes := make([]string, n)
	for i := range processes {
		processes[i] = fmt.Sprintf(`{"process_id":"P%d","burst_time":1}`, i+1)
	}
	return `{"processes":[` + strings.Join(processes, ",") + `]}`
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp, data
}

func decode(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decoding %s: %v", data, err)
	}
}

func timeline(r responses.ScheduleResponse) []string {
	var out []string
	for _, iv := range r.Timeline {
		out = append(out, iv.Process)
	}
	return out
}

const twoProcesses = `{"processes":[
	{"process_id":"A","arrival_time":0,"burst_time":5},
	{"process_id":"B","arrival_time":1,"burst_time":3,"priority":2}]}`

func TestFirstComeFirstServe(t *testing.T) {
	resp, data := do(t, newTestApp(), http.MethodPost, "/api/v1/fcfs", twoProcesses)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var got responses.ScheduleResponse
	decode(t, data, &got)

	want := []responses.ProcessResponse{
		{ProcessId: "A", ArrivalTime: 0, BurstTime: 5, Priority: 1, CompletionTime: 5, TurnAroundTime: 5, WaitingTime: 0, ResponseTime: 0},
		{ProcessId: "B", ArrivalTime: 1, BurstTime: 3, Priority: 2, CompletionTime: 8, TurnAroundTime: 7, WaitingTime: 4, ResponseTime: 4},
	}
	if diff := cmp.Diff(want, got.Details, compareOptional); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
	if got.Algorithm != "fcfs" || got.TotalTime != 8 || got.AverageWaitingTime != 2 {
		t.Errorf("algorithm/total/avg waiting = %s/%d/%v, want fcfs/8/2", got.Algorithm, got.TotalTime, got.AverageWaitingTime)
	}
}

func TestRoundRobinUsesRequestQuantum(t *testing.T) {
	body := `{"quantum":3,"processes":[
		{"process_id":"A","burst_time":5},
		{"process_id":"B","arrival_time":1,"burst_time":3}]}`
	resp, data := do(t, newTestApp(), http.MethodPost, "/api/v1/rr", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var got responses.ScheduleResponse
	decode(t, data, &got)
	if diff := cmp.Diff([]string{"A", "B", "A"}, timeline(got)); diff != "" {
		t.Errorf("timeline mismatch (-want +got):\n%s", diff)
	}
}

func TestMultilevelFeedbackQueueReportsLevels(t *testing.T) {
	body := `{"levels_quantum":[1,2,3,4],"processes":[{"process_id":"A","burst_time":4}]}`
	resp, data := do(t, newTestApp(), http.MethodPost, "/api/v1/mlfq", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var got struct {
		Timeline []struct {
			Start      int  `json:"start"`
			End        int  `json:"end"`
			QueueLevel *int `json:"queue_level"`
		} `json:"timeline"`
		Details []struct {
			QueueLevel *int `json:"queue_level"`
		} `json:"details"`
	}
	decode(t, data, &got)

	if len(got.Details) != 1 || got.Details[0].QueueLevel == nil || *got.Details[0].QueueLevel != 2 {
		t.Errorf("details should report final queue level 2: %s", data)
	}

	var levels []int
	for _, iv := range got.Timeline {
		if iv.QueueLevel == nil {
			t.Fatalf("interval %d-%d has no queue level", iv.Start, iv.End)
		}
		levels = append(levels, *iv.QueueLevel)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestAllAlgorithms(t *testing.T) {
	resp, data := do(t, newTestApp(), http.MethodPost, "/api/v1/all", twoProcesses)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, data)
	}
	var got map[string]responses.ScheduleResponse
	decode(t, data, &got)
	for _, name := range []string{"fcfs", "sjf", "srtf", "rr", "mlfq"} {
		r, ok := got[name]
		if !ok {
			t.Errorf("missing %s", name)
			continue
		}
		if len(r.Details) != 2 || r.TotalTime != 8 {
			t.Errorf("%s: %d details, total %d; want 2 details, total 8", name, len(r.Details), r.TotalTime)
		}
	}
}

func TestRejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name, path, body, want string
	}{
		{"malformed json", "/api/v1/sjf", `{"processes":`, "invalid request format"},
		{"no processes", "/api/v1/sjf", `{"processes":[]}`, "invalid input"},
		{"zero burst", "/api/v1/fcfs", `{"processes":[{"process_id":"A"}]}`, "burst"},
		{"explicit zero priority", "/api/v1/fcfs", `{"processes":[{"process_id":"A","burst_time":1,"priority":0}]}`, "priority"},
		{"zero quantum", "/api/v1/rr", `{"quantum":0,"processes":[{"process_id":"A","burst_time":1}]}`, "quantum"},
		{"three levels", "/api/v1/mlfq", `{"levels_quantum":[1,2,3],"processes":[{"process_id":"A","burst_time":1}]}`, "time quanta"},
		{"arrival past horizon", "/api/v1/sjf", `{"processes":[{"process_id":"A","arrival_time":1000000000,"burst_time":1}]}`, "time horizon"},
		{"bursts past horizon", "/api/v1/srtf", `{"processes":[{"process_id":"A","burst_time":600},{"process_id":"B","burst_time":600}]}`, "time horizon"},
		{"horizon applies to all", "/api/v1/all", `{"processes":[{"process_id":"A","arrival_time":999,"burst_time":2}]}`, "time horizon"},
		{"too many processes", "/api/v1/fcfs", manyProcesses(11), "at most 10 processes"},
		{"too many processes for all", "/api/v1/all", manyProcesses(11), "at most 10 processes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, data := do(t, newTestApp(), http.MethodPost, tt.path, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", resp.StatusCode, data)
			}
			var got map[string]string
			decode(t, data, &got)
			if !strings.Contains(got["error"], tt.want) {
				t.Errorf("error = %q, want it to mention %q", got["error"], tt.want)
			}
		})
	}
}

func TestRandomProcesses(t *testing.T) {
	app := newTestApp()
	_, first := do(t, app, http.MethodGet, "/api/v1/processes/random?count=4&seed=9", "")
	_, second := do(t, app, http.MethodGet, "/api/v1/processes/random?count=4&seed=9", "")
	if string(first) != string(second) {
		t.Errorf("same seed gave different workloads:\n%s\n%s", first, second)
	}

	var got requests.ScheduleRequest
	decode(t, first, &got)
	if len(got.Processes) != 4 {
		t.Fatalf("got %d processes, want 4", len(got.Processes))
	}

	// the generated body is accepted by the scheduling routes as-is
	resp, data := do(t, app, http.MethodPost, "/api/v1/srtf", string(first))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d: %s", resp.StatusCode, data)
	}

	for _, count := range []string{"0", "11"} {
		resp, _ = do(t, app, http.MethodGet, "/api/v1/processes/random?count="+count, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("count=%s status = %d, want 400", count, resp.StatusCode)
		}
	}
}

func TestAcceptsWorkloadAtTheLimits(t *testing.T) {
	resp, data := do(t, newTestApp(), http.MethodPost, "/api/v1/all", manyProcesses(10))
	if resp.StatusCode != http.StatusOK {
		t.Errorf("10 processes: status = %d: %s", resp.StatusCode, data)
	}
	body := `{"processes":[{"process_id":"A","arrival_time":990,"burst_time":10}]}`
	resp, data = do(t, newTestApp(), http.MethodPost, "/api/v1/srtf", body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("run ending at the horizon: status = %d: %s", resp.StatusCode, data)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp()
	do(t, app, http.MethodPost, "/api/v1/sjf", twoProcesses)
	do(t, app, http.MethodPost, "/api/v1/rr", `{"quantum":0,"processes":[{"process_id":"A","burst_time":1}]}`)

	resp, data := do(t, app, http.MethodGet, "/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{
		`cpu_scheduler_simulations_total{algorithm="sjf"} 1`,
		`cpu_scheduler_simulation_failures_total{algorithm="rr",reason="invalid_input"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}
