package slogloki

import (
	"fmt"
	"log/slog"

	"github.com/grafana/loki-client-go/loki"
	"github.com/grafana/loki-client-go/pkg/labelutil"
	"github.com/prometheus/common/model"
)

// NewLokiLogger returns a logger pushing to the Loki push endpoint at lokiURL.
// Every stream carries service_name. The returned stop flushes pending
// entries and must be called before exit.
func NewLokiLogger(serviceName string, lokiURL string, logLevel slog.Level) (*slog.Logger, func(), error) {
	config, err := loki.NewDefaultConfig(lokiURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create new loki config: %w", err)
	}

	config.ExternalLabels = labelutil.LabelSet{
		LabelSet: model.LabelSet{
			"service_name": model.LabelValue(serviceName),
		},
	}

	client, err := loki.New(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create new loki client: %w", err)
	}

	return slog.New(Option{Level: logLevel, Client: client}.NewLokiHandler()), client.Stop, nil
}
