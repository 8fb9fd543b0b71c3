package application

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Controller registers a group of routes under a router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Application aggregates the controllers and middleware that make up the
// HTTP surface. Dependencies are injected explicitly at construction time.
type Application struct {
	pool        *pgxpool.Pool
	logger      *logrus.Logger
	controllers []Controller
	middleware  []mux.MiddlewareFunc
}

type Options struct {
	Pool   *pgxpool.Pool
	Logger *logrus.Logger
}

func New(opts *Options) *Application {
	return &Application{
		pool:   opts.Pool,
		logger: opts.Logger,
	}
}

func (a *Application) Pool() *pgxpool.Pool {
	return a.pool
}

func (a *Application) Logger() *logrus.Logger {
	return a.logger
}

func (a *Application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *Application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *Application) Controllers() []Controller {
	return a.controllers
}

func (a *Application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}
