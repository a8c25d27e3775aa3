package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/vtcab/internal/config"
	"github.com/danmuck/vtcab/internal/hils"
	"github.com/danmuck/vtcab/internal/mmu"
	"github.com/danmuck/vtcab/internal/observability"
)

const version = "0.1.0"

var startedAt = time.Now()

func newAdminServer(cfg config.DaemonConfig, card *mmu.Card, controller *hils.Controller) *http.Server {
	observability.RegisterMetrics()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware(cfg.Node))
	if len(cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CorsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"uptime":       time.Since(startedAt).String(),
			"service":      "vtcabd",
			"version":      version,
			"node":         cfg.Node,
			"device":       controller.DeviceName(),
			"sdlc_enabled": controller.Enabled(),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/compatibility", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"hex": card.Hex(),
		})
	})

	return &http.Server{Addr: cfg.AdminAddr, Handler: r}
}
