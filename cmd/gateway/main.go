package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vrisa/internal/config"
	"vrisa/internal/database"
	"vrisa/internal/middleware"
	"vrisa/internal/modules/airquality"
	"vrisa/internal/modules/approvals"
	"vrisa/internal/modules/auth"
	"vrisa/internal/modules/registration"
	"vrisa/internal/modules/reports"
	"vrisa/internal/modules/stations"
	"vrisa/internal/session"
	"vrisa/internal/upstream"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	cipher, err := session.NewCipher(cfg.SessionSecret)
	if err != nil {
		log.Fatal(err)
	}
	store, closeStore, err := buildStore(cfg, cipher)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	api := upstream.New(cfg.UpstreamBaseURL)
	prodLike := cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release"

	authService := auth.NewService(api, store, cfg.SessionPepper, cfg.SessionTTL)
	authHandler := auth.NewHandler(authService, cfg.SessionCookie, prodLike)

	registrationHandler := registration.NewHandler(registration.NewService(api))
	stationsHandler := stations.NewHandler(stations.NewService(api))

	approvalsService := approvals.NewService(api, api, api, cfg.IntentTTL)
	approvalsHandler := approvals.NewHandler(approvalsService)

	hub := airquality.NewHub()
	defer hub.Close()
	airHandler := airquality.NewHandler(airquality.NewService(api), hub)
	poller := airquality.NewPoller(api, hub, cfg.PollInterval)

	reportsHandler := reports.NewHandler(reports.NewService(api))

	if prodLike {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.SessionGuard(store, cfg.SessionCookie, cfg.SessionPepper))
		{
			authHandler.RegisterProtectedRoutes(protected)
			registrationHandler.RegisterRoutes(protected)
			stationsHandler.RegisterRoutes(protected)
			airHandler.RegisterRoutes(protected)
			reportsHandler.RegisterRoutes(protected)

			approver := protected.Group("/admin")
			approver.Use(middleware.ApproverOnly())
			{
				approvalsHandler.RegisterRoutes(approver)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				airHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go poller.Run(ctx)

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		log.Printf("gateway listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// buildStore prefers Redis when REDIS_URL is set, otherwise sessions live in
// the gateway's own database.
func buildStore(cfg *config.Config, cipher *session.Cipher) (session.Store, func(), error) {
	if cfg.RedisURL != "" {
		rs, err := session.NewRedisStore(cfg.RedisURL, cipher)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	gs := session.NewGormStore(db, cipher)
	if err := gs.Migrate(); err != nil {
		return nil, nil, err
	}
	return gs, func() {}, nil
}
