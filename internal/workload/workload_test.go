package workload

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"cpu-scheduler/internal/core"
)

func TestRandomIsSeeded(t *testing.T) {
	first := Random(rand.New(rand.NewSource(42)), 10)
	second := Random(rand.New(rand.NewSource(42)), 10)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different workloads (-first +second):\n%s", diff)
	}

	for i, spec := range first {
		if spec.ArrivalTime < 0 || spec.ArrivalTime > MaxArrivalTime {
			t.Errorf("%s arrival %d out of range", spec.ID, spec.ArrivalTime)
		}
		if spec.BurstTime < 1 || spec.BurstTime > MaxBurstTime {
			t.Errorf("%s burst %d out of range", spec.ID, spec.BurstTime)
		}
		if spec.Priority < 1 || spec.Priority > MaxPriority {
			t.Errorf("%s priority %d out of range", spec.ID, spec.Priority)
		}
		if want := fmt.Sprintf("P%d", i+1); spec.ID != want {
			t.Errorf("id = %s, want %s", spec.ID, want)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	input := `# id,burst,arrival,priority
P1, 5, 0, 2
P2,3,1
`
	got, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	want := []core.Spec{
		{ID: "P1", BurstTime: 5, ArrivalTime: 0, Priority: 2},
		{ID: "P2", BurstTime: 3, ArrivalTime: 1, Priority: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadCSV mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCSVRejectsBadRows(t *testing.T) {
	for _, input := range []string{"P1,5\n", "P1,five,0\n", "P1,1,2,3,4\n"} {
		if _, err := LoadCSV(strings.NewReader(input)); !errors.Is(err, ErrInvalidRow) {
			t.Errorf("LoadCSV(%q) err = %v, want %v", input, err, ErrInvalidRow)
		}
	}
}
