package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sathesh-kumar-v/comply/internal/http/handler"
	"github.com/sathesh-kumar-v/comply/internal/service"
)

type RouterConfig struct {
	TraceHeaderName string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	actionHandler := handler.NewActionHandler(services.Actions(), cfg.TraceHeaderName)
	ActionRouter(router.Group("/api/corrective-actions"), actionHandler)
}
