package midware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/codegangsta/negroni"
	"github.com/kiteco/prettyfast/kite-golib/status"
)

var (
	section     = status.NewSection("Response Codes")
	prettifyAPI = section.Breakdown("Prettify API")
	healthAPI   = section.Breakdown("Health API")
	debugAPI    = section.Breakdown("Debug API")
	panics      = section.Counter("Panics")
)

func init() {
	prettifyAPI.Headline = true
}

// StatusResponseCodes tracks response codes for API's we want to track
type StatusResponseCodes struct{}

// ServeHTTP implements negroni.Handler
func (s *StatusResponseCodes) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	next(w, r)

	path := r.URL.Path
	var breakdown *status.Breakdown

	switch {
	case strings.HasPrefix(path, "/prettify"):
		breakdown = prettifyAPI
	case path == "/health" || path == "/ready":
		breakdown = healthAPI
	case strings.HasPrefix(path, "/debug/"):
		breakdown = debugAPI
	}

	if breakdown == nil {
		return
	}
	if nw, ok := w.(negroni.ResponseWriter); ok {
		breakdown.HitAndAdd(fmt.Sprintf("%d", nw.Status()))
	}
}
