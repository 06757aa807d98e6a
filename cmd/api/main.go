package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/campushq/attendance-backend-go/internal/config"
	appHTTP "github.com/campushq/attendance-backend-go/internal/handler/http"
	"github.com/campushq/attendance-backend-go/internal/pkg/cron"
	"github.com/campushq/attendance-backend-go/internal/pkg/database"
	"github.com/campushq/attendance-backend-go/internal/pkg/email"
	"github.com/campushq/attendance-backend-go/internal/pkg/jwt"
	"github.com/campushq/attendance-backend-go/internal/pkg/storage"
	"github.com/campushq/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/campushq/attendance-backend-go/internal/service/attendance"
	serviceAuth "github.com/campushq/attendance-backend-go/internal/service/auth"
	serviceCampus "github.com/campushq/attendance-backend-go/internal/service/campus"
	serviceLeave "github.com/campushq/attendance-backend-go/internal/service/leave"
	serviceProfile "github.com/campushq/attendance-backend-go/internal/service/profile"
	serviceReport "github.com/campushq/attendance-backend-go/internal/service/report"
	serviceUser "github.com/campushq/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	campusRepo := postgresql.NewCampusRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService, emailService, cfg.App.OTPIssuer)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, campusRepo)
	campusSvc := serviceCampus.NewCampusService(db, campusRepo, userRepo)
	leaveSvc := serviceLeave.NewLeaveService(db, leaveRepo, attendanceRepo)
	reportSvc := serviceReport.NewReportService(db, attendanceRepo, campusRepo)
	profileSvc := serviceProfile.NewProfileService(db, userRepo, fileStorage)
	userSvc := serviceUser.NewUserService(db, userRepo, campusRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	campusHandler := appHTTP.NewCampusHandler(campusSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	profileHandler := appHTTP.NewProfileHandler(profileSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, userRepo, campusRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:        cfg.App.Env,
			UploadsDir: cfg.Storage.BasePath,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		campusHandler,
		leaveHandler,
		reportHandler,
		profileHandler,
		userHandler,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
