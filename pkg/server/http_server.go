package server

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/docesofia/storefront/pkg/application"
)

func NewHTTPServer(app *application.Application, notFoundHandler http.Handler) *HTTPServer {
	return &HTTPServer{
		Controllers:     app.Controllers(),
		Middlewares:     app.Middleware(),
		NotFoundHandler: notFoundHandler,
	}
}

type HTTPServer struct {
	Controllers     []application.Controller
	Middlewares     []mux.MiddlewareFunc
	NotFoundHandler http.Handler
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.Middlewares...)
	for _, controller := range s.Controllers {
		controller.Register(r)
	}

	notFoundHandler := s.NotFoundHandler
	for i := len(s.Middlewares) - 1; i >= 0; i-- {
		notFoundHandler = s.Middlewares[i](notFoundHandler)
	}
	r.NotFoundHandler = notFoundHandler
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	return http.ListenAndServe(socketAddress, s.Handler())
}
