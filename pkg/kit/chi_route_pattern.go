package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RoutePatternOrPath labels metrics by the matched chi pattern so that
// query strings and path params do not explode label cardinality.
func RoutePatternOrPath(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := rc.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}
