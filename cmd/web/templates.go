package main

import (
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/justinas/nosurf"
	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/michaelgov-ctrl/svg-clock/face"
	"github.com/michaelgov-ctrl/svg-clock/ui"
)

// clockView is one preset drawn on the home page.
type clockView struct {
	ID        string
	Preset    string
	Label     string
	Draggable bool
	SVG       template.HTML
}

type templateData struct {
	CSRFToken string
	Flash     string
	Form      any
	Picked    string
	Clocks    []clockView
	Hours     []int
	Minutes   []int
}

func (app *application) newTemplateData(r *http.Request) templateData {
	picked := app.pickedTime(r)

	td := templateData{
		CSRFToken: nosurf.Token(r),
		Flash:     app.sessionManager.PopString(r.Context(), flashSessionKey),
		Picked:    picked.String(),
		Hours:     sequence(0, 23),
		Minutes:   sequence(0, 59),
	}

	for _, p := range app.presets.Config().Presets {
		id := "holder-" + p.Name

		f := face.New(p.Clock)
		c := clock.New(id, f, clock.WithConfig(p.Clock), clock.WithLogger(app.logger))
		c.SetTime(picked.Hour, picked.Minute, picked.Second)

		td.Clocks = append(td.Clocks, clockView{
			ID:        id,
			Preset:    p.Name,
			Label:     p.Label,
			Draggable: c.Draggable(clock.HourHand) || c.Draggable(clock.MinuteHand),
			SVG:       template.HTML(f.SVG(id + "-svg")),
		})
	}

	return td
}

func sequence(from, to int) []int {
	s := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		s = append(s, i)
	}

	return s
}

func newTemplateCache() (map[string]*template.Template, error) {
	var cache = make(map[string]*template.Template)

	pages, err := fs.Glob(ui.Files, "html/pages/*.html")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{
			"html/base.tmpl.html",
			"html/partials/*.html",
			page,
		}

		ts, err := template.New(name).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
