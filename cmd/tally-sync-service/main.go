package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/rneelappa/vyaapari-nexus-sub000/config"
	"github.com/rneelappa/vyaapari-nexus-sub000/models"
	"github.com/rneelappa/vyaapari-nexus-sub000/tallysync"
	"github.com/rneelappa/vyaapari-nexus-sub000/utils"
)

const defaultPort = "8080"

func main() {
	_ = godotenv.Load()

	port := os.Getenv("TALLY_SYNC_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	})
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length")

	r.Use(cors.New(corsConfig))
	r.Use(requestLogger(logger))
	r.Use(gin.Recovery())

	runner := newRunner(logger)
	r.POST("/tally-sync", tallysync.SyncHandler(runner))
	r.GET("/tally-sync/tables", tallysync.TablesHandler())
	r.GET("/tally-sync/runs", tallysync.SyncHistoryHandler())
	r.GET("/tally-sync/runs/:id", tallysync.SyncRunDetailHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	config.ConnectDatabaseWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()

	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		models.MigrateTable()
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	case err := <-serverErrCh:
		if err != nil && err != http.ErrServerClosed {
			logger.WithFields(logrus.Fields{"field": "server"}).Error(err)
		}
	}
}

// newRunner builds the runner lazily against the shared connection; the
// readiness middleware keeps requests out until the database is up.
func newRunner(logger *logrus.Logger) *tallysync.Runner {
	return tallysync.NewRunner(
		tallysync.NewGormSource(config.GetDB),
		tallysync.NewGormWarehouse(config.GetDB),
		tallysync.NewGormRunLog(config.GetDB),
		logger,
	)
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		cid, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		logger.WithFields(logrus.Fields{
			"status":         c.Writer.Status(),
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"latency":        latency.String(),
			"correlation_id": cid,
		}).Info("request")
	}
}
