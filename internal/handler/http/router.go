package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/campushq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/campushq/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Env        string
	UploadsDir string
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	campusHandler CampusHandler,
	leaveHandler LeaveHandler,
	reportHandler ReportHandler,
	profileHandler ProfileHandler,
	userHandler UserHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "campushq-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.SendOTP)
			r.Post("/reset-password", authHandler.ResetPassword)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch-in", attendanceHandler.PunchIn)
				r.Post("/punch-out", attendanceHandler.PunchOut)
				r.Post("/check-location", attendanceHandler.CheckLocation)
				r.Post("/on-duty", attendanceHandler.OnDuty)
				r.Post("/off-duty", attendanceHandler.OffDuty)
				r.Get("/total-duration", attendanceHandler.TotalDuration)
				r.Get("/me", attendanceHandler.GetMyAttendance)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Request)
				r.Get("/me", leaveHandler.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending", leaveHandler.ListPending)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.GetMe)
				r.Put("/", profileHandler.UpdateMe)
				r.Post("/picture", profileHandler.UploadPicture)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/users", func(r chi.Router) {
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
				})

				r.Route("/campuses", func(r chi.Router) {
					r.Get("/", campusHandler.List)
					r.Post("/", campusHandler.Create)
					r.Get("/{id}", campusHandler.Get)
					r.Put("/{id}", campusHandler.Update)
					r.Delete("/{id}", campusHandler.Delete)
				})

				r.Get("/reports/attendance", reportHandler.ExportAttendance)
			})
		})
	})
	return r
}
