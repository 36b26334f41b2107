package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/handlers"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/middleware"
	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/store"
)

// Setup wires every route under /api. Signup, signin and seed are public;
// everything else requires a bearer token.
func Setup(r *gin.Engine, s store.Store, jwtSecret string, log *zap.Logger) {
	if log != nil {
		r.Use(middleware.RequestLogger(log))
	}

	eh := handlers.NewEmployeeHandler(s)
	ah := handlers.NewAuthHandler(s, jwtSecret)
	am := middleware.NewAuthMiddleware(jwtSecret)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api")

	api.POST("/seed", eh.Seed)
	api.POST("/auth/signup", ah.Signup)
	api.POST("/auth/signin", ah.Signin)

	protected := api.Group("")
	protected.Use(am.Authenticate())

	protected.GET("/auth/verify", ah.Verify)
	protected.PUT("/auth/update-password", ah.UpdatePassword)

	protected.GET("/employees", eh.ListEmployees)
	protected.POST("/employees", eh.CreateEmployee)
	protected.PUT("/employees/:id", eh.UpdateEmployee)
	protected.DELETE("/employees/:id", eh.DeleteEmployee)
	protected.POST("/employees/:id/tasks", eh.AddTask)
	protected.PATCH("/employees/:employeeId/tasks/:taskId", eh.UpdateTaskStatus)
}
