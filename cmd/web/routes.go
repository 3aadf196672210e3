package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/michaelgov-ctrl/svg-clock/ui"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	router.Handler(http.MethodGet, "/static/*filepath", http.FileServerFS(ui.Files))

	router.HandlerFunc(http.MethodGet, "/ping", app.ping)

	dynamic := alice.New(app.sessionManager.LoadAndSave, noSurf, app.loadPickedTime)

	router.Handler(http.MethodGet, "/", dynamic.ThenFunc(app.home))
	router.Handler(http.MethodPost, "/time", dynamic.ThenFunc(app.timePost))

	router.HandlerFunc(http.MethodGet, "/ws", app.clockManager.ServeWS)
	router.HandlerFunc(http.MethodGet, "/clocks/:preset/svg", app.clockSVG)
	router.HandlerFunc(http.MethodGet, "/clocks/:preset/png", app.clockPNG)

	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.metricsRegistry, promhttp.HandlerOpts{}))

	standard := alice.New(app.metrics, app.recoverPanic, app.enableCORS, app.logRequest, secureHeaders)

	return standard.Then(router)
}
