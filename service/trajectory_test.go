package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]*trajectory.Trajectory
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{stored: map[uuid.UUID]*trajectory.Trajectory{}}
}

func (r *memoryRepo) Save(_ context.Context, t *trajectory.Trajectory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.stored[t.ID] = t
	return nil
}

func (r *memoryRepo) ByID(_ context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.stored[id]
	if !ok {
		return nil, trajectory.ErrNotFound
	}
	return t, nil
}

func (r *memoryRepo) List(_ context.Context) ([]trajectory.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	summaries := make([]trajectory.Summary, 0, len(r.stored))
	for _, t := range r.stored {
		summaries = append(summaries, t.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.stored[id]
	if !ok {
		return nil, trajectory.ErrNotFound
	}
	delete(r.stored, id)
	return t, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []trajectory.Event
}

func (b *recordingBus) Publish(_ context.Context, event trajectory.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(context.Context) (<-chan trajectory.Event, func(), error) {
	ch := make(chan trajectory.Event)
	close(ch)
	return ch, func() {}, nil
}

type fakeLocker struct {
	mu       sync.Mutex
	busy     bool
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, name string) (func() error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return nil, errors.New("lock held")
	}
	l.acquired = append(l.acquired, name)
	return func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

func newTestPlanner(t *testing.T, repo *memoryRepo, bus *recordingBus, locker *fakeLocker) *Planner {
	t.Helper()
	svc, err := NewPlanner(repo, bus, locker, nopLogger{}, PlannerOptions{
		Resolution: 0.1,
		RobotSpeed: 0.5,
	})
	require.NoError(t, err)
	return svc
}

func TestPlannerPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("plans, stores and announces a trajectory", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		result, err := svc.Plan(ctx, "east wall", planner.WallConfig{Width: 1, Height: 1})
		require.NoError(t, err)

		assert.Equal(t, planner.StatusComplete, result.Status)
		assert.NotEmpty(t, result.PathData)
		assert.InDelta(t, result.PathLength/0.5, result.ExecutionTime, 1e-9)

		stored, err := repo.ByID(ctx, result.ID)
		require.NoError(t, err)
		assert.Equal(t, result, stored)

		require.Len(t, bus.events, 1)
		assert.Equal(t, trajectory.EventCreated, bus.events[0].Kind)
		assert.Equal(t, result.ID, bus.events[0].ID)
		assert.Equal(t, "east wall", bus.events[0].Name)

		assert.Equal(t, []string{"east wall"}, locker.acquired)
		assert.Equal(t, 1, locker.released)
	})

	t.Run("rejects an invalid wall before storing anything", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		_, err := svc.Plan(ctx, "bad wall", planner.WallConfig{Width: 0, Height: 1})
		assert.ErrorIs(t, err, planner.ErrInvalidConfig)
		assert.Empty(t, repo.stored)
		assert.Empty(t, bus.events)
		assert.Equal(t, 1, locker.released, "lock released on failure")
	})

	t.Run("rejects an out-of-bounds obstacle", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		wall := planner.WallConfig{
			Width: 1, Height: 1,
			Obstacles: []planner.Obstacle{{X: 0.9, Y: 0, Width: 0.5, Height: 0.5}},
		}
		_, err := svc.Plan(ctx, "bad obstacle", wall)
		assert.ErrorIs(t, err, planner.ErrInvalidObstacle)
		assert.Empty(t, repo.stored)
	})

	t.Run("fully obstructed wall stores an empty no-coverage trajectory", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		wall := planner.WallConfig{
			Width: 1, Height: 1,
			Obstacles: []planner.Obstacle{{X: 0, Y: 0, Width: 1, Height: 1}},
		}
		result, err := svc.Plan(ctx, "blocked wall", wall)
		require.NoError(t, err)

		assert.Equal(t, planner.StatusNoCoverage, result.Status)
		assert.Empty(t, result.PathData)
		assert.Zero(t, result.ExecutionTime)
		require.Len(t, bus.events, 1)
	})

	t.Run("fails when the name is already being planned", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{busy: true}
		svc := newTestPlanner(t, repo, bus, locker)

		_, err := svc.Plan(ctx, "east wall", planner.WallConfig{Width: 1, Height: 1})
		assert.Error(t, err)
		assert.Empty(t, repo.stored)
		assert.Empty(t, bus.events)
	})
}

func TestPlannerLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("delete announces once and makes the id unknown", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		created, err := svc.Plan(ctx, "south wall", planner.WallConfig{Width: 0.5, Height: 0.5})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, created.ID))

		require.Len(t, bus.events, 2)
		deleted := bus.events[1]
		assert.Equal(t, trajectory.EventDeleted, deleted.Kind)
		assert.Equal(t, created.ID, deleted.ID)
		assert.Equal(t, "south wall", deleted.Name)

		_, err = svc.Inspect(ctx, created.ID)
		assert.ErrorIs(t, err, trajectory.ErrNotFound)
	})

	t.Run("delete of an unknown id is not found and silent", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		err := svc.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, trajectory.ErrNotFound)
		assert.Empty(t, bus.events)
	})

	t.Run("enumerate lists stored summaries", func(t *testing.T) {
		repo, bus, locker := newMemoryRepo(), &recordingBus{}, &fakeLocker{}
		svc := newTestPlanner(t, repo, bus, locker)

		_, err := svc.Plan(ctx, "first", planner.WallConfig{Width: 0.3, Height: 0.3})
		require.NoError(t, err)
		_, err = svc.Plan(ctx, "second", planner.WallConfig{Width: 0.3, Height: 0.3})
		require.NoError(t, err)

		summaries, err := svc.Enumerate(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		names := []string{summaries[0].Name, summaries[1].Name}
		assert.ElementsMatch(t, []string{"first", "second"}, names)
	})
}
