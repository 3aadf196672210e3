// Package slogloki is a slog.Handler shipping records to Grafana Loki. The
// attrs of a record become the stream labels and the message is the line.
package slogloki

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/grafana/loki-client-go/loki"
	"github.com/prometheus/common/model"
)

const (
	SourceKey = "source"
	ErrorKey  = "error"
)

type Converter func(addSource bool, replaceAttr ReplaceAttrFn, loggerAttrs []slog.Attr, groups []string, record *slog.Record) model.LabelSet

// entryHandler is the part of *loki.Client a handler sends through.
type entryHandler interface {
	Handle(labels model.LabelSet, t time.Time, line string) error
}

type Option struct {
	// minimum level, defaults to debug
	Level slog.Leveler

	Client *loki.Client

	// defaults to DefaultConverter
	Converter Converter

	AttrFromContext []func(ctx context.Context) []slog.Attr

	AddSource   bool
	ReplaceAttr ReplaceAttrFn
}

func (o Option) NewLokiHandler() slog.Handler {
	if o.Client == nil {
		panic("missing *loki.Client")
	}

	return o.newHandler(o.Client)
}

func (o Option) newHandler(client entryHandler) *LokiHandler {
	if o.Level == nil {
		o.Level = slog.LevelDebug
	}

	if o.Converter == nil {
		o.Converter = DefaultConverter
	}

	return &LokiHandler{
		option: o,
		client: client,
	}
}

type LokiHandler struct {
	option Option
	client entryHandler
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*LokiHandler)(nil)

func (h *LokiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.option.Level.Level()
}

func (h *LokiHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := slices.Concat(h.attrs, contextAttrs(ctx, h.option.AttrFromContext))
	labels := h.option.Converter(h.option.AddSource, h.option.ReplaceAttr, attrs, h.groups, &record)

	return h.client.Handle(labels, record.Time, record.Message)
}

func (h *LokiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LokiHandler{
		option: h.option,
		client: h.client,
		attrs:  appendToGroup(h.groups, h.attrs, attrs...),
		groups: h.groups,
	}
}

func (h *LokiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &LokiHandler{
		option: h.option,
		client: h.client,
		attrs:  h.attrs,
		groups: append(slices.Clone(h.groups), name),
	}
}
