package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/akeshari98/wall-robot-control-system/service/i"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/google/uuid"
)

// PlannerOptions fixes the planning constants a Planner runs with.
type PlannerOptions struct {
	// Resolution is the grid cell size in wall units.
	Resolution float64
	// SafetyMargin is the number of extra blocked cells around obstacles.
	SafetyMargin int
	// MaxExpandedNodes caps node expansion per segment search.
	MaxExpandedNodes int
	// RobotSpeed is the nominal travel speed for execution time estimates.
	RobotSpeed float64
}

// Planner runs the coverage planning pipeline for incoming requests and
// owns the surrounding persistence and notification calls. It holds no
// mutable state across requests; concurrent plans share nothing but the
// injected collaborators.
type Planner struct {
	repo   i.TrajectoryRepo
	bus    i.EventBus
	locker i.PlanLocker
	logger i.Logger
	opts   PlannerOptions
}

// NewPlanner creates a Planner service with the given collaborators.
func NewPlanner(repo i.TrajectoryRepo, bus i.EventBus, locker i.PlanLocker, logger i.Logger, opts PlannerOptions) (*Planner, error) {
	if repo == nil || bus == nil || locker == nil || logger == nil {
		return nil, errors.New("planner service requires repo, bus, locker and logger")
	}
	if opts.Resolution <= 0 {
		return nil, errors.New("planner service requires a positive grid resolution")
	}
	return &Planner{
		repo:   repo,
		bus:    bus,
		locker: locker,
		logger: logger,
		opts:   opts,
	}, nil
}

// Plan runs the one-shot pipeline for a wall: grid, waypoint sequence,
// per-pair segment searches, assembly, persistence, created event.
func (s *Planner) Plan(ctx context.Context, name string, wall planner.WallConfig) (*trajectory.Trajectory, error) {
	release, err := s.locker.Acquire(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("acquiring plan lock for %q: %w", name, err)
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warning(fmt.Sprintf("Releasing plan lock for %q: %v", name, err))
		}
	}()

	grid, err := planner.BuildGrid(wall, s.opts.Resolution, s.opts.SafetyMargin)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("Grid built for %q: %dx%d cells, %d free", name, grid.Rows, grid.Cols, grid.FreeCells()))

	waypoints := planner.Sequence(grid)
	s.logger.Info(fmt.Sprintf("Coverage sequence for %q: %d waypoints", name, len(waypoints)))

	assembleOpts := &planner.AssembleOptions{
		MaxExpandedNodes: s.opts.MaxExpandedNodes,
		RobotSpeed:       s.opts.RobotSpeed,
	}
	if start, ok := grid.FirstFreeCell(); ok {
		assembleOpts.Start = &start
	}
	path, err := planner.Assemble(ctx, grid, waypoints, assembleOpts)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("Assembly for %q: status=%s points=%d gaps=%d length=%.3f",
		name, path.Status, len(path.Points), path.Gaps, path.Length))

	result, err := trajectory.New(trajectory.Config{
		ID:   uuid.New(),
		Name: name,
		Wall: wall,
		Path: path,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("saving trajectory %q: %w", name, err)
	}

	s.publish(ctx, trajectory.Event{Kind: trajectory.EventCreated, ID: result.ID, Name: result.Name})
	return result, nil
}

// Inspect retrieves a stored trajectory by id.
func (s *Planner) Inspect(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	return s.repo.ByID(ctx, id)
}

// Enumerate lists stored trajectory summaries.
func (s *Planner) Enumerate(ctx context.Context) ([]trajectory.Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes a stored trajectory and publishes a deleted event
// carrying its id and name.
func (s *Planner) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, trajectory.Event{Kind: trajectory.EventDeleted, ID: deleted.ID, Name: deleted.Name})
	return nil
}

// publish emits one lifecycle event. A failed publish is logged, not
// propagated: the stored trajectory is already the source of truth.
func (s *Planner) publish(ctx context.Context, event trajectory.Event) {
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Error(fmt.Sprintf("Publishing %s event for %q: %v", event.Kind, event.Name, err))
		return
	}
	s.logger.Info(fmt.Sprintf("Published %s event for %q", event.Kind, event.Name))
}
