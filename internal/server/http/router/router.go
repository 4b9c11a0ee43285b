package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/minjae-ko/tableorder/internal/server/http/handlers"
	"github.com/minjae-ko/tableorder/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)

	api := engine.Group("/api")
	orders := api.Group("/orders")
	orders.POST("/prepare", orderHandler.Prepare)
	orders.POST("/confirm", orderHandler.Confirm)
	orders.POST("/accumulate", orderHandler.Accumulate)
	orders.GET("", orderHandler.List)

	return engine
}
