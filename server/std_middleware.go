package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jrsteele09/tracker-web/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-Id"

// ChainMiddleware wraps routeFunction so that mw[0] runs first.
func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// PageMiddleware is the chain for routes that answer with page data or redirects.
func (s *Server) PageMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.RequireSessionMiddleware,
	}
	return append(chainedMiddleWare, mw...)
}

// APIMiddleware is the chain for the JSON data routes used by the views.
func (s *Server) APIMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.NoStoreMiddleware,
		s.RequireAPISessionMiddleware,
	}
	return append(chainedMiddleWare, mw...)
}

// RequestIDMiddleware tags the request with an id and puts a request logger
// carrying it into the context.
func (s *Server) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		logger := log.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := zerolog.DebugLevel
		switch {
		case rec.status >= 500:
			level = zerolog.ErrorLevel
		case s.env == config.EnvDevelopment:
			level = zerolog.InfoLevel
		}
		zerolog.Ctx(r.Context()).WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) FrameSecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Prevent embedding on other sites
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
		next.ServeHTTP(w, r)
	})
}

// CorsMiddleware lets the configured view origins call the data routes with
// their cookies. A "*" entry opens the routes to any origin but never with
// credentials.
func (s *Server) CorsMiddleware() func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedMethods: s.config.GetAllowedMethods(),
		AllowedHeaders: s.config.GetAllowedHeaders(),
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         86400,
	}

	allowedOrigins := s.config.GetAllowedOrigins()
	if allowedOrigins.IsAllowedOrigin("*") {
		log.Warn().Msg("ALLOWED_ORIGINS contains *, cross-origin requests are sent without credentials")
		options.AllowedOrigins = []string{"*"}
		options.AllowCredentials = false
		return cors.Handler(options)
	}

	options.AllowedOrigins = allowedOrigins.List()
	options.AllowCredentials = true
	return cors.Handler(options)
}

// NoStoreMiddleware keeps per-user data out of shared caches.
func (s *Server) NoStoreMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next(w, r)
	}
}
