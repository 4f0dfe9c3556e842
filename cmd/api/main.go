package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/workpulse-hq/hrms-backend-go/internal/config"
	appHTTP "github.com/workpulse-hq/hrms-backend-go/internal/handler/http"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/cron"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/database"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/jwt"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/oauth"
	"github.com/workpulse-hq/hrms-backend-go/internal/pkg/sse"
	"github.com/workpulse-hq/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse-hq/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/workpulse-hq/hrms-backend-go/internal/service/auth"
	leaveService "github.com/workpulse-hq/hrms-backend-go/internal/service/leave"
	policyService "github.com/workpulse-hq/hrms-backend-go/internal/service/policy"
	workhoursService "github.com/workpulse-hq/hrms-backend-go/internal/service/workhours"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	workHoursRepo := postgresql.NewWorkHoursRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	authSvc := serviceAuth.NewAuthService(db, userRepo, employeeRepo, JWTService, JWTRepository, GoogleService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, policyRepo, hub, nil)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, employeeRepo, policyRepo, hub, nil)
	workHoursSvc := workhoursService.NewWorkHoursService(workHoursRepo, policyRepo, nil)
	policySvc := policyService.NewPolicyService(policyRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	workHoursHandler := appHTTP.NewWorkHoursHandler(workHoursSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, JWTService)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, policyRepo, nil).RegisterJobs(scheduler)
	scheduler.Start()

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		JWTService:        JWTService,
		AuthHandler:       authHandler,
		AttendanceHandler: attendanceHandler,
		LeaveHandler:      leaveHandler,
		WorkHoursHandler:  workHoursHandler,
		PolicyHandler:     policyHandler,
		EventsHandler:     eventsHandler,
		AllowedOrigins:    cfg.App.AllowedOrigins,
		Environment:       cfg.App.Env,
	})

	// No WriteTimeout: /api/v1/events holds SSE connections open.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.App.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		slog.Info("Server started", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutdown signal received", "signal", sig.String())

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	} else {
		slog.Info("Server exited gracefully")
	}
}
