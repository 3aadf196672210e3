package main

import (
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/form/v4"
	clockconfig "github.com/michaelgov-ctrl/svg-clock/internal/config"
	"github.com/michaelgov-ctrl/svg-clock/internal/slogloki"
	"github.com/michaelgov-ctrl/svg-clock/session"
	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "svg-clock"

type config struct {
	port       int
	logLevel   string
	lokiURL    string
	configPath string
	tls        struct {
		certFile string
		keyFile  string
	}
	cors struct {
		trustedOrigins []string
	}
}

type application struct {
	config          config
	presets         *clockconfig.Watcher
	clockManager    *session.ClockManager
	sessionManager  *scs.SessionManager
	templateCache   map[string]*template.Template
	formDecoder     *form.Decoder
	logger          *slog.Logger
	metricsRegistry *prometheus.Registry
}

func main() {
	var cfg config

	flag.IntVar(&cfg.port, "port", 8080, "API server port")
	flag.StringVar(&cfg.logLevel, "log-level", "error", "Logging level (trace|debug|info|warning|error)")
	flag.StringVar(&cfg.lokiURL, "loki-url", "", "Loki push endpoint, logs go to stdout when empty")
	flag.StringVar(&cfg.configPath, "config", "clock.yaml", "Clock presets file")
	flag.StringVar(&cfg.tls.certFile, "tls-cert", "", "TLS certificate file")
	flag.StringVar(&cfg.tls.keyFile, "tls-key", "", "TLS key file")

	flag.Func("cors-trusted-origins", "Trusted CORS origins (space seperated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	flag.Parse()

	// the file's log_level applies unless the flag was given
	if !flagSet("log-level") {
		fileCfg, err := clockconfig.Load(cfg.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if fileCfg.LogLevel != "" {
			cfg.logLevel = fileCfg.LogLevel
		}
	}

	logger, stopLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error(err.Error())
		stopLogger()
		os.Exit(1)
	}
	defer app.presets.Close()

	if cfg.tls.certFile != "" {
		err = app.serveTLS(cfg.tls.certFile, cfg.tls.keyFile)
	} else {
		err = app.serve()
	}

	if err != nil {
		logger.Error(err.Error())
		stopLogger()
		os.Exit(1)
	}

	stopLogger()
}

func newApplication(cfg config, logger *slog.Logger) (*application, error) {
	templateCache, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	presets, err := clockconfig.NewWatcher(cfg.configPath, logger, func(c *clockconfig.Config) {
		logger.Info("presets reloaded", "presets", c.Names())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = 12 * time.Hour
	sessionManager.Cookie.Secure = true

	registry := prometheus.NewRegistry()

	app := &application{
		config:  cfg,
		presets: presets,
		clockManager: session.NewClockManager(
			session.WithLogger(logger),
			session.WithMetricsRegistry(registry),
			session.WithPresets(presets),
			session.WithAllowedOrigins(cfg.cors.trustedOrigins...),
		),
		sessionManager:  sessionManager,
		templateCache:   templateCache,
		formDecoder:     form.NewDecoder(),
		logger:          logger,
		metricsRegistry: registry,
	}

	return app, nil
}

func newLogger(cfg config) (*slog.Logger, func(), error) {
	level := logLevel(cfg.logLevel)

	if cfg.lokiURL == "" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), func() {}, nil
	}

	return slogloki.NewLokiLogger(serviceName, cfg.lokiURL, level)
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})

	return set
}
