package bootstrap

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/GoSim-25-26J-441/devboard-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/api/http/respond"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/apperror"
	"github.com/GoSim-25-26J-441/devboard-backend/internal/events"
	projecthttp "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/http"
	projectrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/repository"
	projectsvc "github.com/GoSim-25-26J-441/devboard-backend/internal/projects/service"
	taskhttp "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/http"
	taskrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/repository"
	tasksvc "github.com/GoSim-25-26J-441/devboard-backend/internal/tasks/service"
	userhttp "github.com/GoSim-25-26J-441/devboard-backend/internal/users/http"
	userrepo "github.com/GoSim-25-26J-441/devboard-backend/internal/users/repository"
	usersvc "github.com/GoSim-25-26J-441/devboard-backend/internal/users/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *sqlx.DB
	// Redis is optional. Without it events are dropped and health reports
	// redis as disabled.
	Redis  *redis.Client
	Logger *slog.Logger

	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	logger := dep.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	var publisher events.Publisher = events.NopPublisher{}
	var cachePinger httpapi.Pinger
	if dep.Redis != nil {
		rp := events.NewRedisPublisher(dep.Redis)
		publisher = rp
		cachePinger = rp
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, httpapi.PingFunc(dep.DB.PingContext), cachePinger)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(dep.RateLimitRPS, dep.RateLimitBurst))

	projectRepo := projectrepo.NewProjectRepository(dep.DB)
	taskRepo := taskrepo.NewTaskRepository(dep.DB)
	userRepo := userrepo.NewUserRepository(dep.DB)

	projectHandler := projecthttp.New(projectsvc.NewProjectService(dep.DB, projectRepo, taskRepo, publisher))
	taskHandler := taskhttp.New(tasksvc.NewTaskService(dep.DB, taskRepo, projectRepo, publisher))
	userHandler := userhttp.New(usersvc.NewUserService(userRepo, publisher))

	projectsGroup := api.Group("/projects")
	projectHandler.Register(projectsGroup)
	taskHandler.RegisterProjectSubroutes(projectsGroup)

	taskHandler.Register(api.Group("/tasks"))
	userHandler.Register(api.Group("/users"))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, respond.ErrorBody{
			ErrorCode: apperror.CodeNotFound,
			Message:   "route not found",
		})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
