package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ebd/internal/auth"
	"ebd/internal/config"
	"ebd/internal/ebd"
	"ebd/internal/handler"
	"ebd/internal/httpmiddleware"
	"ebd/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	users := auth.NewRepository(db.Client, cfg.BcryptCost)
	repo := ebd.NewRepository(db.Client)
	h := handler.New(users, repo, cfg.JWTIssuer, cfg.JWTSecretKey, cfg.TokenTTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(securityHeaders())

	limiter := httpmiddleware.NewRateLimiter(redisClient.Client, "ebd:ratelimit", cfg.RateLimitPerMin, time.Minute)
	r.Use(limiter.GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db.Client.PingContext(c.Request.Context()) == nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.GET("/", h.Root)
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)

	protected := r.Group("/", auth.RequireAuth(cfg.JWTSecretKey, cfg.JWTIssuer))

	protected.GET("/protected", h.Protected)

	protected.GET("/classes", h.ListClasses)
	protected.POST("/classes", h.CreateClasse)
	protected.PUT("/classes/:id", h.UpdateClasse)
	protected.DELETE("/classes/:id", h.DeleteClasse)

	protected.GET("/alunos", h.ListAlunos)
	protected.POST("/alunos", h.CreateAluno)
	protected.PUT("/alunos/:id", h.UpdateAluno)
	protected.DELETE("/alunos/:id", h.DeleteAluno)
	protected.GET("/alunos/:id/historico", h.HistoricoAluno)

	protected.GET("/frequencias", h.ListFrequencias)
	protected.POST("/frequencias", h.CreateFrequencia)
	protected.PUT("/frequencias/:id", h.UpdateFrequencia)
	protected.DELETE("/frequencias/:id", h.DeleteFrequencia)

	protected.GET("/relatorios/semanal", h.RelatorioSemanal)
	protected.GET("/relatorios/mensal", h.RelatorioMensal)
	protected.GET("/aniversariantes", h.Aniversariantes)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
