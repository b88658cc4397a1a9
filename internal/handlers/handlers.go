package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/bankledger/docs"
	accounthandlers "github.com/GlebRadaev/bankledger/internal/handlers/accounts"
	userhandlers "github.com/GlebRadaev/bankledger/internal/handlers/users"
	"github.com/GlebRadaev/bankledger/internal/service"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type UserHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	GetUsers(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	OpenAccount(w http.ResponseWriter, r *http.Request)
	GetAccounts(w http.ResponseWriter, r *http.Request)
	GetAccount(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetStatement(w http.ResponseWriter, r *http.Request)
	GetPolicy(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	UserHandler    UserHandler
	AccountHandler AccountHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		UserHandler:    userhandlers.New(s.UserService),
		AccountHandler: accounthandlers.New(s.LedgerService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/policy", h.AccountHandler.GetPolicy)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.UserHandler.Register)
			r.Get("/", h.UserHandler.GetUsers)
			r.Get("/{taxID}", h.UserHandler.GetUser)
		})
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.AccountHandler.OpenAccount)
			r.Get("/", h.AccountHandler.GetAccounts)
			r.Route("/{number}", func(r chi.Router) {
				r.Get("/", h.AccountHandler.GetAccount)
				r.Post("/deposit", h.AccountHandler.Deposit)
				r.Post("/withdraw", h.AccountHandler.Withdraw)
				r.Get("/statement", h.AccountHandler.GetStatement)
			})
		})
	})

	return r
}
