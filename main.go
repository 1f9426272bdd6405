package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akeshari98/wall-robot-control-system/api"
	api_i "github.com/akeshari98/wall-robot-control-system/api/i"
	identityapi "github.com/akeshari98/wall-robot-control-system/api/identity"
	trajectoryapi "github.com/akeshari98/wall-robot-control-system/api/trajectory"
	"github.com/akeshari98/wall-robot-control-system/config"
	"github.com/akeshari98/wall-robot-control-system/infrastruture/lock"
	"github.com/akeshari98/wall-robot-control-system/infrastruture/notify"
	"github.com/akeshari98/wall-robot-control-system/infrastruture/repo"
	"github.com/akeshari98/wall-robot-control-system/infrastruture/token"
	"github.com/akeshari98/wall-robot-control-system/logger"
	"github.com/akeshari98/wall-robot-control-system/service"
	"github.com/akeshari98/wall-robot-control-system/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient          *mongo.Client
	redisClient          *redis.Client
	trajectoryRepo       i.TrajectoryRepo
	operatorRepo         i.OperatorRepo
	eventBus             i.EventBus
	planLocker           i.PlanLocker
	plannerService       i.CoveragePlanner
	trajectoryController api_i.Controller
	jwtTokenizer         i.Tokenizer
	authService          i.Authenticator
	authController       api_i.Controller
	router               *api.Router
	appLogger            i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	trajectoryRepo = repo.NewTrajectoryRepo(client, config.Envs.DBName, "trajectories")
	operatorRepo = repo.NewOperatorRepo(client, config.Envs.DBName, "operators")
	appLogger.Info("Repositories initialized")
}

func initEventBus() {
	busLogger, err := logger.New("EVENT-BUS", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating event bus logger: %v", err))
		os.Exit(1)
	}

	eventBus, err = notify.NewRedisBus(redisClient, config.RedisChannel, busLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis event bus: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Event bus initialized")
}

func initPlanLocker() {
	var err error
	planLocker, err = lock.NewRedisLocker(redisClient, config.PlanLockTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating plan locker: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Plan locker initialized")
}

func initPlannerService() {
	plannerLogger, err := logger.New("PLANNER", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating planner logger: %v", err))
		os.Exit(1)
	}

	plannerService, err = service.NewPlanner(trajectoryRepo, eventBus, planLocker, plannerLogger, service.PlannerOptions{
		Resolution:       config.GridResolution,
		SafetyMargin:     config.ObstacleSafetyMargin,
		MaxExpandedNodes: config.MaxExpandedNodes,
		RobotSpeed:       config.RobotSpeed,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating planner service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Planner service initialized")
}

func initTrajectoryController() {
	var err error
	trajectoryController, err = trajectoryapi.NewTrajectoryController(plannerService, eventBus)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating trajectory controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Trajectory controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(operatorRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identityapi.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, trajectoryController},
		AuthorizationMiddleware: identityapi.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initEventBus()
	initPlanLocker()
	initPlannerService()
	initTrajectoryController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
