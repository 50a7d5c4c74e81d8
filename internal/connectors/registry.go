// internal/connectors/registry.go
package connectors

import (
	"time"

	"knowyourcompany/internal/common/config"
	commonhttp "knowyourcompany/internal/common/http"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/insight"
)

// Build assembles the enabled connectors from configuration. The
// returned slice is what the fan-out runner runs against; disabling a
// source in config removes it from every subsequent fan-out.
func Build(cfg config.ConnectorsConfig, timeout time.Duration, log logger.Logger) []insight.Connector {
	client := commonhttp.NewClient(timeout)

	var conns []insight.Connector
	if cfg.Reddit.Enabled {
		conns = append(conns, NewReddit(cfg.Reddit, client, log))
	}
	if cfg.Glassdoor.Enabled {
		conns = append(conns, NewGlassdoor(cfg.Glassdoor, client, log))
	}
	if cfg.AmbitionBox.Enabled {
		conns = append(conns, NewAmbitionBox(cfg.AmbitionBox, client, log))
	}
	if cfg.X.Enabled {
		conns = append(conns, NewX(cfg.X, client, log))
	}
	if cfg.LinkedIn.Enabled {
		conns = append(conns, NewLinkedIn(cfg.LinkedIn, client, log))
	}
	return conns
}
