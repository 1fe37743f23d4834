package api

import (
	"github.com/St1cky1/taskboard/internal/api/handlers"
	authmw "github.com/St1cky1/taskboard/internal/api/middleware"
	"github.com/St1cky1/taskboard/internal/infrastructure/auth"
	"github.com/St1cky1/taskboard/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(
	taskService *usecase.TaskService,
	authService *usecase.AuthService,
	userService *usecase.UserService,
	jwtManager *auth.JWTManager,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	taskHandler := handlers.NewTaskHandler(taskService)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.With(authmw.Authenticate(jwtManager)).Post("/logout", authHandler.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(authmw.Authenticate(jwtManager))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/assigned/{userId}", taskHandler.ListByAssignee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Patch("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)
					r.Get("/comments", taskHandler.ListComments)
					r.Post("/comments", taskHandler.AddComment)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", userHandler.ListUsers)
				r.Get("/me", userHandler.GetMe)
			})
		})
	})

	return r
}
