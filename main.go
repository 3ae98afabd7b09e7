package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	serviceName    = "financial-analytics-service"
	serviceVersion = "1.0.0"
)

var (
	log      = logrus.New()
	cacheTTL = 60 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := newConfig()

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)
	cacheTTL = cfg.CacheTTL

	// Initialize Redis
	if err := initRedis(cfg.RedisURL); err != nil {
		log.Warnf("Failed to initialize Redis: %v", err)
		log.Info("Continuing without Redis cache...")
		redisClient = nil
	}

	r := setupRouter()

	log.Infof("Starting %s v%s on port %s", serviceName, serviceVersion, cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the gin engine with middleware and routes
func setupRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(requestLogger())

	// Routes
	r.GET("/health", healthCheck)
	r.POST("/api/financial/statistics", calculateStatistics)
	r.POST("/api/financial/trends", calculateTrends)
	r.POST("/api/financial/risk-metrics", calculateRiskMetrics)
	r.POST("/api/financial/forecast", forecastBudget)

	return r
}

// requestLogger tags every request with an id and logs its outcome
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("Request completed")
	}
}
