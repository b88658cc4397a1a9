package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/bankledger/internal/config"
	"github.com/GlebRadaev/bankledger/internal/handlers"
	"github.com/GlebRadaev/bankledger/internal/repo"
	"github.com/GlebRadaev/bankledger/internal/service"
)

const shutdownTimeout = 5 * time.Second

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories

	group *errgroup.Group
	ready bool
}

// New wires the in-memory stores, services and handlers for cfg.
// Nothing is started until Start is called.
func New(cfg *config.Config) *Application {
	a := &Application{cfg: cfg}
	a.repo = repo.New()
	a.srv = service.New(a.repo, cfg.Policy())
	a.api = handlers.New(a.srv)
	return a
}

func (a *Application) Services() *service.Services {
	return a.srv
}

func (a *Application) Router() http.Handler {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	return router
}

func (a *Application) Start(ctx context.Context) error {
	if a.ready {
		return errors.New("application already started")
	}
	if err := a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.ready = true
	zap.L().Info("all systems started successfully")
	return nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	server := &http.Server{
		Addr:              a.cfg.Address,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gCtx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server exited with error: %w", err)
		}
		return nil
	})
	a.group = g

	return nil
}

// Wait blocks until every started system has stopped. A failing system
// cancels the rest through cancel.
func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	if a.group == nil {
		<-ctx.Done()
		return nil
	}
	err := a.group.Wait()
	if err != nil {
		cancel()
		zap.L().Error(err.Error())
	}
	return err
}
