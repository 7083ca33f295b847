package main

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/crucial707/fintrack/internal/auth"
	"github.com/crucial707/fintrack/internal/config"
	"github.com/crucial707/fintrack/internal/handlers"
	"github.com/crucial707/fintrack/internal/middleware"
	"github.com/crucial707/fintrack/internal/repo"
	"github.com/crucial707/fintrack/internal/upload"
	"github.com/crucial707/fintrack/internal/validate"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, handlers and middleware onto a chi router.
func newRouter(db *sql.DB, cfg config.Config) (http.Handler, error) {
	store, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	// ========================
	// Repos / services
	// ========================
	userRepo := repo.NewUserRepo(db)
	expenseRepo := repo.NewExpenseRepo(db)
	incomeRepo := repo.NewIncomeRepo(db)
	taskRepo := repo.NewTaskRepo(db)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL())
	guard := &middleware.Guard{Users: userRepo, Tokens: tokens}
	v := validate.New()

	// ========================
	// Handlers
	// ========================
	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: tokens, Hasher: auth.Hasher{}}
	expenseHandler := &handlers.ExpenseHandler{Repo: expenseRepo}
	incomeHandler := &handlers.IncomeHandler{Repo: incomeRepo}
	taskHandler := &handlers.TaskHandler{Repo: taskRepo}
	dashboardHandler := &handlers.DashboardHandler{Incomes: incomeRepo, Expenses: expenseRepo}
	uploadHandler := &handlers.UploadHandler{Store: store}
	authLimiter := middleware.AuthRateLimiter()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	// ========================
	// Operational
	// ========================
	r.Get("/health", handlers.Health)
	r.Get("/ready", handlers.Ready(db))
	r.Handle("/metrics", promhttp.Handler())
	r.With(guard.Optional).Get("/", handlers.Banner)
	r.Handle("/uploads/*", http.StripPrefix(upload.URLPrefix, noListing(http.FileServer(http.Dir(store.Dir)))))

	// ========================
	// Auth
	// ========================
	r.Route("/api/auth", func(r chi.Router) {
		r.With(authLimiter.Middleware, v.Middleware(validate.Registration)).Post("/signup", authHandler.Signup)
		r.With(authLimiter.Middleware, v.Middleware(validate.Login)).Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require)
			r.Get("/me", authHandler.Me)
			r.With(v.Middleware(validate.ProfileUpdate)).Put("/profile", authHandler.UpdateProfile)
			r.With(v.Middleware(validate.ChangePassword)).Put("/change-password", authHandler.ChangePassword)
			r.Post("/profile-image", handlers.ProfileImage)
			r.Get("/bank-accounts", handlers.ListBankAccounts)
			r.Post("/bank-accounts", handlers.AddBankAccount)
			r.Put("/bank-accounts/{id}", handlers.UpdateBankAccount)
			r.Delete("/bank-accounts/{id}", handlers.DeleteBankAccount)
		})
	})

	// ========================
	// Resources (bearer token required)
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(guard.Require)

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.With(v.Middleware(validate.Task)).Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.With(v.Middleware(validate.Task)).Put("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/expense", func(r chi.Router) {
			r.Get("/", expenseHandler.List)
			r.Post("/", expenseHandler.Create)
			r.Get("/export", handlers.ExportEntries)
			r.Delete("/{id}", expenseHandler.Delete)
		})

		r.Route("/income", func(r chi.Router) {
			r.Get("/", incomeHandler.List)
			r.Post("/", incomeHandler.Create)
			r.Get("/export", handlers.ExportEntries)
			r.Delete("/{id}", incomeHandler.Delete)
		})

		r.Get("/dashboard", dashboardHandler.Get)
		r.Post("/api/uploads", uploadHandler.Upload)
	})

	return r, nil
}

// noListing hides directory indexes so only stored files are reachable.
func noListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
