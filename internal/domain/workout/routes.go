package workout

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/exercises", h.CreateExercise)
	rg.GET("/exercises", h.ListExercises)

	rg.POST("/workouts", h.Assign)
	rg.GET("/workouts/:id", h.Get)
	rg.DELETE("/workouts/:id", h.Delete)
	rg.GET("/students/:id/workouts", h.ListByStudent)
}
