package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// StaticFilesController serves the uploaded image objects written by the
// disk storage backend.
type StaticFilesController struct {
	urlPrefix string
	dir       string
}

func NewStaticFilesController(urlPrefix, dir string) *StaticFilesController {
	return &StaticFilesController{urlPrefix: urlPrefix, dir: dir}
}

func (c *StaticFilesController) Key() string {
	return c.urlPrefix
}

func (c *StaticFilesController) Register(r *mux.Router) {
	r.PathPrefix(c.urlPrefix + "/").Handler(
		http.StripPrefix(c.urlPrefix+"/", http.FileServer(http.Dir(c.dir))),
	)
}
