package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sathesh-kumar-v/comply/internal/http/handler"
)

func ActionRouter(router *gin.RouterGroup, handler *handler.ActionHandler) {
	router.GET("/dashboard", handler.Dashboard)
	router.GET("/actions/:actionID", handler.GetAction)
	router.POST("/actions", handler.Create)
	router.POST("/actions/ai/plan", handler.GeneratePlan)
}
