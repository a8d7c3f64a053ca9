package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"focustime/internal/adapter/http/handler"
	"focustime/internal/adapter/http/middleware"
	"focustime/internal/adapter/ws"
	"focustime/pkg/auth"
	"focustime/pkg/logger"
	"focustime/pkg/metrics"
	"focustime/pkg/ratelimit"
)

type RouterConfig struct {
	AuthHandler         *handler.AuthHandler
	ProjectHandler      *handler.ProjectHandler
	TaskHandler         *handler.TaskHandler
	ToDoHandler         *handler.ToDoHandler
	FocusSessionHandler *handler.FocusSessionHandler

	Hub    *ws.Hub
	Tokens *auth.JWT

	Logger      *logger.LokiLogger
	Metrics     *metrics.AppMetrics
	RateLimiter *ratelimit.RateLimiter
	Registry    *prometheus.Registry
}

// SetupRouter wires the full middleware chain and every route.
func SetupRouter(config RouterConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(otelgin.Middleware("focustime"))

	if config.Logger != nil {
		router.Use(logger.Middleware(config.Logger))
	}

	if config.Metrics != nil {
		router.Use(metrics.Middleware(config.Metrics))
	}

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	if config.RateLimiter != nil {
		router.Use(config.RateLimiter.Middleware())
	}

	registerRoutes(router, config)

	return router
}

// SetupRouterForTests skips telemetry, metrics and rate limiting so handler
// tests exercise routing and handlers only.
func SetupRouterForTests(config RouterConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, config)

	return router
}

func registerRoutes(router *gin.Engine, config RouterConfig) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if config.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{})))
	}

	if config.Hub != nil {
		// The socket carries no session authority, so the upgrade itself
		// is unauthenticated.
		router.GET("/ws", ws.Handler(config.Hub))
	}

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", config.AuthHandler.Register)
		authRoutes.POST("/login", config.AuthHandler.Login)
		authRoutes.POST("/logout", config.AuthHandler.Logout)
	}

	protected := router.Group("/")
	protected.Use(middleware.Auth(config.Tokens))
	{
		protected.GET("/auth/me", config.AuthHandler.Me)

		project := protected.Group("/project")
		{
			project.POST("", config.ProjectHandler.Create)
			project.GET("", config.ProjectHandler.List)
			project.GET("/summary", config.ProjectHandler.Summary)
			project.GET("/heatmap", config.ProjectHandler.Heatmap)
			project.GET("/:project_id", config.ProjectHandler.Get)
			project.PUT("/:project_id", config.ProjectHandler.Update)
			project.DELETE("/:project_id", config.ProjectHandler.Delete)
		}

		task := protected.Group("/task")
		{
			task.POST("/:project_id", config.TaskHandler.Create)
			task.GET("/:project_id", config.TaskHandler.List)
			task.PUT("/:project_id/:task_id/status", config.TaskHandler.ChangeStatus)
			task.DELETE("/:project_id/:task_id", config.TaskHandler.Delete)
		}

		todo := protected.Group("/todo")
		{
			todo.POST("/:task_id", config.ToDoHandler.Create)
			todo.GET("/:task_id", config.ToDoHandler.List)
			todo.PUT("/:task_id/:todo_id/state", config.ToDoHandler.ChangeState)
			todo.DELETE("/:task_id/:todo_id", config.ToDoHandler.Delete)
		}

		protected.POST("/focus_session/save", config.FocusSessionHandler.Save)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
