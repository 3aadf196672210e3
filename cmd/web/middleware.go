package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/justinas/nosurf"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/prometheus/client_golang/prometheus"
)

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; script-src 'self'; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		w.Header().Set("Server", "Go")
		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
			start  = time.Now()
		)

		mw := newMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		app.logger.Info("served request",
			"ip", ip, "proto", proto, "method", method, "uri", uri,
			"status", mw.statusCode, "duration", time.Since(start),
		)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// loadPickedTime puts the time chosen with POST /time into the request
// context. A stored value that no longer parses is dropped.
func (app *application) loadPickedTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		str := app.sessionManager.GetString(r.Context(), pickedTimeSessionKey)
		if len(str) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		hour, minute, second, err := clock.ParseTime(str)
		if err != nil {
			app.logger.Warn("dropping stored time", "value", str, "error", err)
			app.sessionManager.Remove(r.Context(), pickedTimeSessionKey)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), pickedTimeContextKey, pickedTime{Hour: hour, Minute: minute, Second: second})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})

	return csrfHandler
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")
		if origin != "" {
			for i := range app.config.cors.trustedOrigins {
				if origin == app.config.cors.trustedOrigins[i] {
					w.Header().Set("Access-Control-Allow-Origin", origin)

					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)

						return
					}

					break
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

type metricsResponseWriter struct {
	wrapped       http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{
		wrapped:    w,
		statusCode: http.StatusOK,
	}
}

func (mw *metricsResponseWriter) Header() http.Header {
	return mw.wrapped.Header()
}

func (mw *metricsResponseWriter) WriteHeader(statusCode int) {
	mw.wrapped.WriteHeader(statusCode)

	if !mw.headerWritten {
		mw.statusCode = statusCode
		mw.headerWritten = true
	}
}

func (mw *metricsResponseWriter) Write(b []byte) (int, error) {
	mw.headerWritten = true
	return mw.wrapped.Write(b)
}

func (mw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return mw.wrapped
}

// Hijack lets the websocket upgrade reach the connection underneath.
func (mw *metricsResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	mw.statusCode = http.StatusSwitchingProtocols
	mw.headerWritten = true

	return http.NewResponseController(mw.wrapped).Hijack()
}

func (app *application) metrics(next http.Handler) http.Handler {
	var requestsReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "svg_clock_http_requests_total",
			Help: "Total number of http requests received",
		},
	)

	var responsesByStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "svg_clock_http_responses_total",
			Help: "Total http responses sent by status",
		},
		[]string{
			"code",
		},
	)

	var requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "svg_clock_http_request_duration_seconds",
			Help:    "Time spent serving http requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{
			"method",
		},
	)

	app.metricsRegistry.MustRegister(requestsReceived, responsesByStatus, requestDuration)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestsReceived.Inc()

		mw := newMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		responsesByStatus.With(prometheus.Labels{
			"code": strconv.Itoa(mw.statusCode),
		}).Inc()

		requestDuration.With(prometheus.Labels{
			"method": r.Method,
		}).Observe(time.Since(start).Seconds())
	})
}
