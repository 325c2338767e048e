package cbs

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/require"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
)

func mustWorld(t *testing.T, limits []int, static ...core.Point) *core.World {
	t.Helper()
	w, err := core.NewWorld(len(limits), limits, static, nil)
	require.NoError(t, err)
	return w
}

// requireSolved checks the joint solution is complete, collision-free,
// and that every path is wellformed between its endpoints.
func requireSolved(t *testing.T, solution core.Solution, starts, goals []core.Point) {
	t.Helper()
	require.Len(t, solution, len(starts))
	require.Nil(t, FindFirstConflict(solution))
	for i, path := range solution {
		require.NotEmpty(t, path, "agent %d", i)
		require.Equal(t, starts[i], path[0].Cell, "agent %d start", i)
		require.Equal(t, 0, path[0].Time, "agent %d start time", i)
		require.Equal(t, goals[i], path[len(path)-1].Cell, "agent %d goal", i)
		require.Equal(t, len(path)-1, path[len(path)-1].Time, "agent %d goal time", i)
		for j := 1; j < len(path); j++ {
			require.Equal(t, j, path[j].Time)
			require.LessOrEqual(t, path[j-1].Cell.Manhattan(path[j].Cell), 1)
		}
	}
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{4, 4})

	_, err := New([]core.Point{{0, 0}, {1, 1}}, []core.Point{{3, 3}}, w, logger)
	require.ErrorIs(t, err, core.ErrLengthMismatch)
}

func TestNewRejectsInvalidEndpoints(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{4, 4})

	_, err := New([]core.Point{{0, 0}}, []core.Point{{4, 0}}, w, logger)
	require.ErrorIs(t, err, core.ErrOutOfBounds)
}

func TestSingleAgentMatchesLowLevel(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{5, 5})

	starts := []core.Point{{0, 0}}
	goals := []core.Point{{4, 4}}
	solver, err := New(starts, goals, w, logger)
	require.NoError(t, err)

	solution := solver.Plan()
	requireSolved(t, solution, starts, goals)
	require.Equal(t, 8, solution.Cost())
}

func TestHeadOnSwapResolvesToMinimum(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{4, 4})

	starts := []core.Point{{0, 0}, {3, 0}}
	goals := []core.Point{{3, 0}, {0, 0}}
	solver, err := New(starts, goals, w, logger)
	require.NoError(t, err)

	solution := solver.Plan()
	requireSolved(t, solution, starts, goals)
	// one agent keeps its straight path, the other detours; parity
	// makes 3+5 the cheapest collision-free split
	require.Equal(t, 8, solution.Cost())
}

func TestCrossingAgentsResolve(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{3, 3})

	starts := []core.Point{{0, 1}, {1, 0}}
	goals := []core.Point{{2, 1}, {1, 2}}
	solver, err := New(starts, goals, w, logger)
	require.NoError(t, err)

	solution := solver.Plan()
	requireSolved(t, solution, starts, goals)
	// both want (1,1) at time 1; a single wait is cheaper than any detour
	require.Equal(t, 5, solution.Cost())
}

func TestDwellingAgentForcesDetour(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{4, 2})

	// agent 0 parks on agent 1's straight route; the skip-guard leaves
	// only agent 1 to constrain
	starts := []core.Point{{0, 0}, {3, 0}}
	goals := []core.Point{{1, 0}, {0, 0}}
	solver, err := New(starts, goals, w, logger)
	require.NoError(t, err)

	solution := solver.Plan()
	requireSolved(t, solution, starts, goals)
	require.Equal(t, 1, solution[0].Cost())
	require.Equal(t, 5, solution[1].Cost())
	for _, step := range solution[1] {
		require.False(t, step.Cell.Equal(core.Point{1, 0}))
	}
}

func TestRootInfeasibleReturnsNil(t *testing.T) {
	logger := golog.NewTestLogger(t)
	w := mustWorld(t, []int{3, 3}, core.Point{1, 0}, core.Point{1, 1}, core.Point{1, 2})

	solver, err := New([]core.Point{{0, 0}}, []core.Point{{2, 0}}, w, logger)
	require.NoError(t, err)
	require.Nil(t, solver.Plan())
}

func TestPlanIsDeterministic(t *testing.T) {
	logger := golog.NewTestLogger(t)

	starts := []core.Point{{0, 0}, {4, 0}, {0, 4}}
	goals := []core.Point{{4, 0}, {0, 0}, {4, 4}}

	run := func() core.Solution {
		w := mustWorld(t, []int{5, 5}, core.Point{2, 2})
		solver, err := New(starts, goals, w, logger)
		require.NoError(t, err)
		return solver.Plan()
	}

	first := run()
	require.NotNil(t, first)
	require.Equal(t, first, run())
}

func TestSolversProduceCollisionFreeSolutions(t *testing.T) {
	logger := golog.NewTestLogger(t)

	starts := []core.Point{{0, 0}, {4, 0}, {2, 4}}
	goals := []core.Point{{4, 4}, {0, 4}, {2, 0}}

	build := []struct {
		name string
		make func(w *core.World) (Solver, error)
	}{
		{"CBS", func(w *core.World) (Solver, error) { return New(starts, goals, w, logger) }},
		{"ECBS", func(w *core.World) (Solver, error) { return NewECBS(starts, goals, w, 1.5, logger) }},
	}

	for _, tc := range build {
		t.Run(tc.name, func(t *testing.T) {
			w := mustWorld(t, []int{5, 5}, core.Point{1, 2}, core.Point{3, 2})
			solver, err := tc.make(w)
			require.NoError(t, err)
			require.Equal(t, tc.name, solver.Name())

			solution := solver.Plan()
			requireSolved(t, solution, starts, goals)
		})
	}
}
