package trajectoryapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/akeshari98/wall-robot-control-system/service/i"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrajectoryController serves the planning, inspection and deletion
// operations plus the live event stream.
type TrajectoryController struct {
	plannerService i.CoveragePlanner
	bus            i.EventBus
}

// NewTrajectoryController initializes a TrajectoryController.
func NewTrajectoryController(ps i.CoveragePlanner, bus i.EventBus) (*TrajectoryController, error) {
	if ps == nil || bus == nil {
		return nil, errors.New("trajectory controller requires planner service and event bus")
	}
	return &TrajectoryController{
		plannerService: ps,
		bus:            bus,
	}, nil
}

// RegisterPublic registers public routes.
func (tc *TrajectoryController) RegisterPublic(route *gin.RouterGroup) {
	trajectories := route.Group("/trajectories")
	{
		trajectories.GET("/", tc.list)
		trajectories.GET("/:ID", tc.inspect)
	}
	route.GET("/events", tc.streamEvents)
}

// RegisterProtected registers privileged routes.
func (tc *TrajectoryController) RegisterProtected(route *gin.RouterGroup) {
	trajectories := route.Group("/trajectories")
	{
		trajectories.POST("/", tc.plan)
		trajectories.DELETE("/:ID", tc.remove)
	}
}

// plan handles trajectory creation requests.
func (tc *TrajectoryController) plan(ctx *gin.Context) {
	var request PlanRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := tc.plannerService.Plan(ctx.Request.Context(), request.Name, request.WallConfig.toWallConfig())
	if err != nil {
		status, msg := planFailureStatus(err)
		ctx.JSON(status, gin.H{"error": msg})
		return
	}

	response := &PlanResponse{
		ID:            result.ID.String(),
		Message:       "Trajectory created successfully",
		Status:        string(result.Status),
		PathPoints:    len(result.PathData),
		ExecutionTime: result.ExecutionTime,
	}
	ctx.JSON(http.StatusCreated, response)
}

// inspect retrieves a stored trajectory, path data included.
func (tc *TrajectoryController) inspect(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid trajectory id"})
		return
	}

	result, err := tc.plannerService.Inspect(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, trajectory.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trajectory not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading trajectory"})
		return
	}

	ctx.JSON(http.StatusOK, toTrajectoryResponse(result))
}

// list retrieves summaries of all stored trajectories.
func (tc *TrajectoryController) list(ctx *gin.Context) {
	summaries, err := tc.plannerService.Enumerate(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while listing trajectories"})
		return
	}

	response := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, toSummaryResponse(s))
	}
	ctx.JSON(http.StatusOK, response)
}

// remove deletes a stored trajectory.
func (tc *TrajectoryController) remove(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid trajectory id"})
		return
	}

	if err := tc.plannerService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, trajectory.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Trajectory not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while deleting trajectory"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Trajectory deleted successfully"})
}

// streamEvents forwards trajectory lifecycle events to the client as
// server-sent events until the client disconnects.
func (tc *TrajectoryController) streamEvents(ctx *gin.Context) {
	events, cleanup, err := tc.bus.Subscribe(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream unavailable"})
		return
	}
	defer cleanup()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent("message", event)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}

// planFailureStatus maps the planner failure taxonomy onto HTTP statuses.
func planFailureStatus(err error) (int, string) {
	switch {
	case errors.Is(err, planner.ErrInvalidConfig), errors.Is(err, planner.ErrInvalidObstacle):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, planner.ErrUnreachable):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, planner.ErrSearchTimeout):
		return http.StatusGatewayTimeout, err.Error()
	default:
		return http.StatusInternalServerError, "error while planning trajectory"
	}
}
