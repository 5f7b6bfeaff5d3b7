package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dineqr-be/internal/category"
	"dineqr-be/internal/config"
	"dineqr-be/internal/customer"
	"dineqr-be/internal/db"
	"dineqr-be/internal/events"
	"dineqr-be/internal/logger"
	"dineqr-be/internal/menu"
	"dineqr-be/internal/middleware"
	"dineqr-be/internal/order"
	"dineqr-be/internal/staff"
	"dineqr-be/internal/table"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func setupRouter(database *sql.DB, hub *events.Hub, pub events.Publisher) *gin.Engine {
	orderHandler := order.NewHandler(order.NewService(order.NewRepository(database), pub))
	tableHandler := table.NewHandler(table.NewService(table.NewRepository(database)))
	menuHandler := menu.NewHandler(menu.NewService(menu.NewRepository(database)))
	categoryHandler := category.NewHandler(category.NewRepository(database))
	customerHandler := customer.NewHandler(customer.NewRepository(database))
	staffHandler := staff.NewHandler(staff.NewService(staff.NewRepository(database)))

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Prometheus(),
		middleware.RateLimit(),
		middleware.Auth(),
	)

	r.GET("/health", func(c *gin.Context) {
		if err := database.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/orders", events.ServeWS(hub))

	api := r.Group("/api")
	{
		api.POST("/auth/login", staffHandler.Login)
		api.POST("/auth/register",
			middleware.RequireRole(staff.RoleAdmin), staffHandler.Register)

		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id/status",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager, staff.RoleWaiter, staff.RoleKitchen),
			orderHandler.UpdateStatus)
		api.POST("/orders/:id/cancel", orderHandler.Cancel)
		api.POST("/orders/:id/items/:itemID/cancel", orderHandler.CancelItem)

		api.GET("/menu", menuHandler.List)
		api.GET("/menu/:id", menuHandler.Get)
		api.POST("/menu",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), menuHandler.Create)
		api.PATCH("/menu/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), menuHandler.Update)
		api.DELETE("/menu/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), menuHandler.Delete)

		api.GET("/categories", categoryHandler.List)
		api.POST("/categories",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), categoryHandler.Create)
		api.PATCH("/categories/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), categoryHandler.Update)
		api.DELETE("/categories/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), categoryHandler.Delete)

		api.GET("/tables", tableHandler.List)
		api.GET("/tables/resolve/:slug", tableHandler.Resolve)
		api.POST("/tables",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), tableHandler.Create)
		api.PATCH("/tables/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), tableHandler.Update)
		api.DELETE("/tables/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager), tableHandler.Deactivate)

		api.POST("/customers", customerHandler.Register)
		api.GET("/customers/:id",
			middleware.RequireRole(staff.RoleAdmin, staff.RoleManager, staff.RoleWaiter),
			customerHandler.Get)
	}

	return r
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database := db.InitDB(cfg)
	defer database.Close()

	hub := events.NewHub()
	publishers := events.Fanout{hub}

	var amqpPub *events.AMQPPublisher
	if cfg.AMQPURL != "" {
		var err error
		amqpPub, err = events.NewAMQPPublisher(cfg.AMQPURL, cfg.EventExchange)
		if err != nil {
			log.Warn("amqp unavailable, continuing with websocket only", zap.Error(err))
		} else {
			defer amqpPub.Close()
			publishers = append(publishers, amqpPub)
		}
	}

	router := setupRouter(database, hub, publishers)
	srv := newServer(":"+cfg.AppPort, router)

	go func() {
		log.Info("server listening", zap.String("port", cfg.AppPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
