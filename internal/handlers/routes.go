package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	mw "fittrack/internal/middleware"
)

// API bundles the handlers mounted by Routes.
type API struct {
	Auth           *AuthHandler
	Workouts       *WorkoutHandler
	Nutrition      *NutritionHandler
	TimerLogs      *TimerLogHandler
	Feedback       *FeedbackHandler
	Dashboard      *DashboardHandler
	Health         *HealthHandler
	AuthMW         *mw.AuthMiddleware
	AllowedOrigins []string
	Logger         *zap.Logger
}

func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.ZapRequestLogger(a.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", a.Health.Get)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", a.Auth.Register)
		api.Post("/auth/login", a.Auth.Login)
		api.Post("/auth/forgot-password", a.Auth.ForgotPassword)
		api.Post("/auth/reset-password/{token}", a.Auth.ResetPassword)
		api.Post("/feedback", a.Feedback.Submit)

		api.Group(func(pr chi.Router) {
			pr.Use(a.AuthMW.RequireAuth)
			pr.Get("/auth/me", a.Auth.Me)
			pr.Put("/auth/profile", a.Auth.UpdateProfile)

			pr.Post("/workouts", a.Workouts.Create)
			pr.Get("/workouts", a.Workouts.List)
			pr.Get("/workouts/{id}", a.Workouts.Get)
			pr.Put("/workouts/{id}", a.Workouts.Update)
			pr.Delete("/workouts/{id}", a.Workouts.Delete)

			pr.Post("/nutrition", a.Nutrition.Create)
			pr.Get("/nutrition", a.Nutrition.List)
			pr.Get("/nutrition/{id}", a.Nutrition.Get)
			pr.Put("/nutrition/{id}", a.Nutrition.Update)
			pr.Delete("/nutrition/{id}", a.Nutrition.Delete)
			pr.Delete("/nutrition/{mealId}/food/{foodItemId}", a.Nutrition.DeleteFoodItem)

			pr.Post("/timerlogs", a.TimerLogs.Create)
			pr.Get("/timerlogs", a.TimerLogs.List)

			pr.Get("/dashboard", a.Dashboard.Get)
		})
	})
	return r
}
