package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/michaelgov-ctrl/svg-clock/face"
	"github.com/michaelgov-ctrl/svg-clock/internal/validator"
)

type timeForm struct {
	Hour                int `form:"hour"`
	Minute              int `form:"minute"`
	Second              int `form:"second"`
	validator.Validator `form:"-"`
}

func (app *application) ping(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	picked := app.pickedTime(r)

	data := app.newTemplateData(r)
	data.Form = timeForm{Hour: picked.Hour, Minute: picked.Minute, Second: picked.Second}

	app.render(w, r, http.StatusOK, "home.tmpl.html", data)
}

func (app *application) timePost(w http.ResponseWriter, r *http.Request) {
	var form timeForm

	if err := app.decodePostForm(r, &form); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.CheckField(validator.Between(form.Hour, 0, 23), "hour", "Hour must be between 0 and 23")
	form.CheckField(validator.Between(form.Minute, 0, 59), "minute", "Minute must be between 0 and 59")
	form.CheckField(validator.Between(form.Second, 0, 59), "second", "Second must be between 0 and 59")

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, "home.tmpl.html", data)
		return
	}

	picked := pickedTime{Hour: form.Hour, Minute: form.Minute, Second: form.Second}

	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.sessionManager.Put(r.Context(), pickedTimeSessionKey, picked.String())
	app.sessionManager.Put(r.Context(), flashSessionKey, fmt.Sprintf("Clocks now start at %s.", picked))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// presetFace draws the preset named in the route at the time in the t query
// parameter, midnight when t is absent.
func (app *application) presetFace(w http.ResponseWriter, r *http.Request) (*face.Face, string, bool) {
	name := httprouter.ParamsFromContext(r.Context()).ByName("preset")

	cfg, ok := app.presets.Preset(name)
	if !ok {
		app.notFound(w)
		return nil, "", false
	}

	f := face.New(cfg)
	c := clock.New("clock-"+name, f, clock.WithConfig(cfg), clock.WithLogger(app.logger))

	if t := r.URL.Query().Get("t"); t != "" {
		hour, minute, second, err := clock.ParseTime(t)
		if err != nil {
			app.clientError(w, http.StatusBadRequest)
			return nil, "", false
		}
		c.SetTime(hour, minute, second)
	}

	return f, c.ContainerID(), true
}

func (app *application) clockSVG(w http.ResponseWriter, r *http.Request) {
	f, id, ok := app.presetFace(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")

	if err := f.WriteSVG(w, id); err != nil {
		app.logger.Error("failed to write svg", "error", err)
	}
}

func (app *application) clockPNG(w http.ResponseWriter, r *http.Request) {
	f, _, ok := app.presetFace(w, r)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := f.WritePNG(buf); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")

	buf.WriteTo(w)
}
