package router

import (
	"net/http"

	"github.com/buicq/taskcli/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "taskcli-api",
		})
	})

	taskHandler := handler.NewTaskHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		tasks := v1.Group("/tasks")
		{
			// GET /api/v1/tasks - List registered tasks and their signatures
			tasks.GET("", taskHandler.ListTasks)

			// POST /api/v1/tasks/:name/invoke - Submit a task call
			tasks.POST("/:name/invoke", taskHandler.InvokeTask)
		}

		// GET /api/v1/submissions - List recorded submissions
		v1.GET("/submissions", taskHandler.ListSubmissions)
	}

	return r
}
