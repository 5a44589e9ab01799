package factory

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/gophermachine/ilp"
	"github.com/crillab/gophermachine/machine"
	"github.com/crillab/gophermachine/search"
)

const sample = `[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
[...#.] (0,2,3,4) (2,3) (0,4) (0,1,2) (1,2,3,4) {7,5,12,7,2}
[.###.#] (0,1,2,3,4) (0,3,4) (0,1,2,4,5) (1,2) {10,11,11,5,10,5}`

func sampleMachines(t *testing.T) []*machine.Machine {
	t.Helper()
	machines, err := machine.ParseAll(strings.NewReader(sample))
	require.NoError(t, err)
	return machines
}

func TestSolveAll(t *testing.T) {
	tests := []struct {
		strategy machine.Strategy
		presses  []int
		total    int
	}{
		{machine.LightsStrategy, []int{2, 3, 2}, 7},
		{machine.CountersStrategy, []int{10, 12, 11}, 33},
		{machine.IntegerStrategy, []int{10, 12, 11}, 33},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			s, err := New(tt.strategy, WithWorkers(2))
			require.NoError(t, err)
			report := s.SolveAll(context.Background(), sampleMachines(t))
			require.Len(t, report.Outcomes, 3)
			assert.Equal(t, tt.strategy, report.Strategy)
			for i, o := range report.Outcomes {
				require.NoError(t, o.Err)
				assert.Equal(t, i, o.Index)
				assert.Equal(t, tt.presses[i], o.Presses, "machine %d", i)
			}
			assert.Equal(t, tt.total, report.Total)
			assert.Empty(t, report.Failed())
			assert.NoError(t, report.Err())
		})
	}
}

func TestJointStrategy(t *testing.T) {
	m, err := machine.Parse("[#] (0) {3}")
	require.NoError(t, err)
	s, err := New(machine.JointStrategy)
	require.NoError(t, err)
	presses, err := s.Solve(m)
	require.NoError(t, err)
	assert.Equal(t, 3, presses)

	m, err = machine.Parse("[#] (0) {2}")
	require.NoError(t, err)
	_, err = s.Solve(m)
	assert.ErrorIs(t, err, search.ErrUnreachable)
}

func TestPartialReport(t *testing.T) {
	unreachable, err := machine.Parse("[###] (0) {1,0,0}")
	require.NoError(t, err)
	infeasible, err := machine.Parse("[..] (1) {1,0}")
	require.NoError(t, err)
	ok, err := machine.Parse("[#.] (0,1) (0) {3,2}")
	require.NoError(t, err)
	malformed := &machine.Machine{Lights: machine.Off(2), Buttons: []machine.Button{machine.CounterButton(1)}, Joltage: machine.Counters{1, 1}}

	s, err := New(machine.LightsStrategy, WithWorkers(4))
	require.NoError(t, err)
	report := s.SolveAll(context.Background(), []*machine.Machine{unreachable, ok, malformed, nil})
	assert.Equal(t, 1, report.Total)
	failed := report.Failed()
	require.Len(t, failed, 3)
	assert.ErrorIs(t, failed[0].Err, search.ErrUnreachable)
	assert.ErrorIs(t, failed[1].Err, machine.ErrMalformed)
	assert.ErrorIs(t, failed[2].Err, machine.ErrMalformed)
	assert.Equal(t, []int{0, 2, 3}, []int{failed[0].Index, failed[1].Index, failed[2].Index})
	assert.ErrorIs(t, report.Err(), search.ErrUnreachable)

	s, err = New(machine.IntegerStrategy)
	require.NoError(t, err)
	report = s.SolveAll(context.Background(), []*machine.Machine{infeasible, ok})
	require.Len(t, report.Failed(), 1)
	assert.ErrorIs(t, report.Outcomes[0].Err, ilp.ErrInfeasible)
	assert.Equal(t, 3, report.Total)
}

func TestMaxStates(t *testing.T) {
	machines := sampleMachines(t)
	s, err := New(machine.CountersStrategy, WithMaxStates(10))
	require.NoError(t, err)
	_, err = s.Solve(machines[2])
	assert.ErrorIs(t, err, search.ErrAbandoned)
	assert.Equal(t, "abandoned", Classify(err))
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := New(machine.LightsStrategy)
	require.NoError(t, err)
	report := s.SolveAll(ctx, sampleMachines(t))
	require.Len(t, report.Failed(), 3)
	for _, o := range report.Outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
	assert.Zero(t, report.Total)
}

type failingSolver struct{}

func (failingSolver) Solve(*ilp.Program) (ilp.Solution, error) {
	return ilp.Solution{}, errors.New("solver crashed")
}

func TestInjectedILPSolver(t *testing.T) {
	s, err := New(machine.IntegerStrategy, WithILPSolver(failingSolver{}))
	require.NoError(t, err)
	report := s.SolveAll(context.Background(), sampleMachines(t))
	require.Len(t, report.Failed(), 3)
	assert.Equal(t, "error", Classify(report.Outcomes[0].Err))
}

func TestNewErrors(t *testing.T) {
	_, err := New(machine.Strategy(42))
	assert.Error(t, err)
	_, err = New(machine.LightsStrategy, WithWorkers(0))
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	outcomes := []Outcome{
		{Index: 0, Presses: 4},
		{Index: 1, Presses: 7, Err: search.ErrUnreachable},
		{Index: 2, Presses: 5},
	}
	assert.Equal(t, 9, Sum(outcomes))
	assert.Zero(t, Sum(nil))
}

func TestMetricsAndLogs(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := New(machine.LightsStrategy, WithMetrics(metrics), WithLogger(logger))
	require.NoError(t, err)

	unreachable, err := machine.Parse("[###] (0) {1,0,0}")
	require.NoError(t, err)
	machines := append(sampleMachines(t), unreachable)
	s.SolveAll(context.Background(), machines)

	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.machines.WithLabelValues("lights", "solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.machines.WithLabelValues("lights", "unreachable")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
	assert.Contains(t, buf.String(), "solved machine")
	assert.Contains(t, buf.String(), "could not solve machine")
	assert.Contains(t, buf.String(), "reason=unreachable")
}
