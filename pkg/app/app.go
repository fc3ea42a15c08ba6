// Package app provides the application builder: attach routes, models, and
// seeders, then hand the result to the CLI for serving.
//
//	app.New().
//	    Routes(routes.RegisterAPI).
//	    AutoMigrate(&models.User{}, &models.Product{}).
//	    Serve()
package app

import (
	"net/http"

	"github.com/shashiranjanraj/ecobazaar/internal/server"
	"github.com/shashiranjanraj/ecobazaar/pkg/router"
)

// Application is the central configuration object for the service.
type Application struct {
	routesFns []func(*router.Router)
	models    []interface{}
}

// New creates a new Application instance with sensible defaults.
func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback that will be called when
// the HTTP kernel is built. You may call Routes() multiple times; all
// callbacks are executed in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// AutoMigrate adds GORM models that will be auto-migrated on server start.
// Pass model pointers: app.New().AutoMigrate(&User{}, &Product{})
func (a *Application) AutoMigrate(models ...interface{}) *Application {
	a.models = append(a.models, models...)
	return a
}

// Serve builds the HTTP handler and runs the server until shutdown.
func (a *Application) Serve() error {
	return server.Start(func() http.Handler { return buildHandler(a) })
}
