package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"

	"cpu-scheduler/internal/core"
)

// Bounds of randomly generated processes.
const (
	MaxArrivalTime = 9
	MaxBurstTime   = 10
	MaxPriority    = 4
)

var ErrInvalidRow = errors.New("invalid process row")

// Random generates count processes named P1..Pn. The same rng seed always
// produces the same workload.
func Random(rng *rand.Rand, count int) []core.Spec {
	specs := make([]core.Spec, count)
	for i := range specs {
		specs[i] = core.Spec{
			ID:          fmt.Sprintf("P%d", i+1),
			ArrivalTime: rng.Intn(MaxArrivalTime + 1),
			BurstTime:   rng.Intn(MaxBurstTime) + 1,
			Priority:    rng.Intn(MaxPriority) + 1,
		}
	}
	return specs
}

// LoadCSV reads processes as "id,burst,arrival[,priority]" rows. A missing
// priority defaults to 1.
func LoadCSV(r io.Reader) ([]core.Spec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	specs := make([]core.Spec, 0, len(rows))
	for n, row := range rows {
		if len(row) < 3 || len(row) > 4 {
			return nil, fmt.Errorf("%w %d: want 3 or 4 columns, got %d", ErrInvalidRow, n+1, len(row))
		}
		spec := core.Spec{ID: strings.TrimSpace(row[0]), Priority: 1}
		fields := []*int{&spec.BurstTime, &spec.ArrivalTime, &spec.Priority}
		for col, field := range fields {
			if col+1 >= len(row) {
				break
			}
			v, err := strconv.Atoi(strings.TrimSpace(row[col+1]))
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrInvalidRow, n+1, err)
			}
			*field = v
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
