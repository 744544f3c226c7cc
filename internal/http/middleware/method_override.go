package middleware

import (
	"context"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// MethodOverrideParam is the query/form field carrying the tunneled method.
	MethodOverrideParam = "_method"
	// HeaderMethodOverride carries the tunneled method for non-form clients.
	HeaderMethodOverride = "X-HTTP-Method-Override"
)

var overridable = map[string]struct{}{
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

var methodOverrides = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "farmstand_method_overrides_total",
		Help: "POST requests dispatched as another method.",
	},
	[]string{"method"},
)

func init() {
	prometheus.MustRegister(methodOverrides)
}

type overriddenKey struct{}

// OverriddenFrom returns the method a request arrived with when it was
// rewritten by MethodOverride, or "".
func OverriddenFrom(r *http.Request) string {
	s, _ := r.Context().Value(overriddenKey{}).(string)
	return s
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes. A POST naming one of those methods in the X-HTTP-Method-Override
// header, the _method query parameter or the _method field of a urlencoded
// body is dispatched as that method. Anything else passes through unchanged.
//
// It wraps the whole engine because gin matches the route before any gin
// middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := overrideMethod(r); m != "" {
				methodOverrides.WithLabelValues(m).Inc()
				r = r.WithContext(context.WithValue(r.Context(), overriddenKey{}, r.Method))
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}

// overrideMethod returns the accepted tunneled method, or "".
func overrideMethod(r *http.Request) string {
	candidates := []string{
		r.Header.Get(HeaderMethodOverride),
		r.URL.Query().Get(MethodOverrideParam),
	}
	if isURLEncoded(r) {
		// ParseForm keeps the parsed body on the request for the handlers.
		// On failure the form is dropped so the handler's own parse reports
		// the read error (a body over the cap, for instance).
		if err := r.ParseForm(); err == nil {
			candidates = append(candidates, r.PostForm.Get(MethodOverrideParam))
		} else {
			r.Form, r.PostForm = nil, nil
		}
	}
	for _, c := range candidates {
		m := strings.ToUpper(strings.TrimSpace(c))
		if _, ok := overridable[m]; ok {
			return m
		}
	}
	return ""
}

func isURLEncoded(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/x-www-form-urlencoded"
}
