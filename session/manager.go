// Package session serves clock widgets over websockets. Every connection
// owns one clock.Clock; pointer samples and time updates arrive as events and
// hand rotations go back out as events.
package session

import (
	"log/slog"
	"net/http"

	"github.com/michaelgov-ctrl/svg-clock/clock"
	"github.com/prometheus/client_golang/prometheus"
)

type Manager interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
	addClient(c *Client)
	removeClient(c *Client)
	routeEvent(req Event, c *Client) error
}

// PresetSource resolves the preset named by an init_clock event.
type PresetSource interface {
	Preset(name string) (clock.Config, bool)
}

type defaultPresets struct{}

func (defaultPresets) Preset(name string) (clock.Config, bool) {
	if name != "" && name != "default" {
		return clock.Config{}, false
	}

	return clock.DefaultConfig(), true
}

type ManagerOptions struct {
	logger         *slog.Logger
	registry       *prometheus.Registry
	presets        PresetSource
	allowedOrigins []string
}

type ManagerOption func(*ManagerOptions)

func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *ManagerOptions) {
		m.logger = logger
	}
}

func WithMetricsRegistry(registry *prometheus.Registry) ManagerOption {
	return func(m *ManagerOptions) {
		m.registry = registry
	}
}

func WithPresets(presets PresetSource) ManagerOption {
	return func(m *ManagerOptions) {
		m.presets = presets
	}
}

// WithAllowedOrigins lists origins besides the serving host that may open a
// websocket.
func WithAllowedOrigins(origins ...string) ManagerOption {
	return func(m *ManagerOptions) {
		m.allowedOrigins = append(m.allowedOrigins, origins...)
	}
}
