package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/mockinterview-lambda/internal/aiinterview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/auth"
	"github.com/saulo-duarte/mockinterview-lambda/internal/config"
	"github.com/saulo-duarte/mockinterview-lambda/internal/interview"
	"github.com/saulo-duarte/mockinterview-lambda/internal/middlewares"
	"github.com/saulo-duarte/mockinterview-lambda/internal/user"
)

type RouterConfig struct {
	UserHandler        *user.Handler
	InterviewHandler   *interview.Handler
	AIInterviewHandler *aiinterview.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/interviews", interview.Routes(cfg.InterviewHandler, cfg.AIInterviewHandler.CompleteAndEvaluate))
	r.Mount("/ai-interview", aiinterview.Routes(cfg.AIInterviewHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
	})
	return r
}
