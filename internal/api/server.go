package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/tempo/internal/service"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	categoryService service.CategoryServiceI
	scheduleService service.ScheduleServiceI
	taskService     service.TaskServiceI
	planService     service.PlanServiceI
	reviewService   service.ReviewServiceI
	statsService    service.StatsServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	CategoryService service.CategoryServiceI
	ScheduleService service.ScheduleServiceI
	TaskService     service.TaskServiceI
	PlanService     service.PlanServiceI
	ReviewService   service.ReviewServiceI
	StatsService    service.StatsServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		categoryService: servicesOptions.CategoryService,
		scheduleService: servicesOptions.ScheduleService,
		taskService:     servicesOptions.TaskService,
		planService:     servicesOptions.PlanService,
		reviewService:   servicesOptions.ReviewService,
		statsService:    servicesOptions.StatsService,
		jwtService:      servicesOptions.JwtService,
	}
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.Handler())
}

// Handler wires the routes and returns the root mux.
func (s *Server) Handler() http.Handler {
	s.registerRoutes()
	return s.mx
}

func (s *Server) registerRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/guest", s.GuestSession)
		r.Post("/auth/logout", s.Logout)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.GetTasks)
				r.Post("/", s.CreateTask)
				r.Put("/{id}", s.UpdateTask)
				r.Patch("/{id}/toggle", s.ToggleTask)
				r.Delete("/{id}", s.DeleteTask)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.GetCategories)
				r.Post("/", s.CreateCategory)
				r.Delete("/{id}", s.DeleteCategory)
			})
			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", s.GetSchedules)
				r.Post("/", s.CreateSchedule)
				r.Put("/{id}", s.UpdateSchedule)
				r.Delete("/{id}", s.DeleteSchedule)
			})
			r.Route("/plans", func(r chi.Router) {
				r.Get("/", s.GetPlans)
				r.Post("/", s.CreatePlan)
				r.Delete("/{id}", s.DeletePlan)
			})
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", s.GetReviews)
				r.Post("/", s.CreateReview)
				r.Delete("/{id}", s.DeleteReview)
			})
			r.Route("/stats", func(r chi.Router) {
				r.Get("/weekly", s.GetWeeklyStats)
				r.Get("/monthly", s.GetMonthlyStats)
				r.Get("/summary", s.GetSummary)
				r.Get("/recent", s.GetRecentActivities)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.AdminOnlyMiddleware)
				r.Get("/users", s.GetUsers)
				r.Patch("/users/{id}/role", s.ChangeUserRole)
				r.Delete("/users/{id}", s.DeleteUser)
			})
		})
	})
}
