package middleware

import (
	"net/http"
	"strings"
	"time"

	"gymbook/pkg/metrics"

	"github.com/julienschmidt/httprouter"
)

// UnmatchedRoute labels every request that no registered route serves.
const UnmatchedRoute = "unmatched"

// RouteMatcher is satisfied by *httprouter.Router.
type RouteMatcher interface {
	Lookup(method, path string) (httprouter.Handle, httprouter.Params, bool)
}

// Metrics records request counts and latencies labelled by the matched route
// pattern, so the path label stays bounded by the route table.
func Metrics(routes RouteMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			metrics.RecordHTTPRequest(r.Method, routeLabel(routes, r.Method, r.URL.Path), wrapped.statusCode, time.Since(start).Seconds())
		})
	}
}

// routeLabel returns the registered pattern for path. A segment is a
// parameter when swapping it for a placeholder still matches the same route
// and the placeholder comes back as that parameter's value.
func routeLabel(routes RouteMatcher, method, path string) string {
	handle, params, _ := routes.Lookup(method, path)
	if handle == nil {
		return UnmatchedRoute
	}
	if len(params) == 0 {
		return path
	}

	const placeholder = "\x00"
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = placeholder
		_, swapped, _ := routes.Lookup(method, strings.Join(segments, "/"))
		segments[i] = s
		for _, p := range swapped {
			if p.Value == placeholder {
				segments[i] = ":" + p.Key
				break
			}
		}
	}
	return strings.Join(segments, "/")
}
