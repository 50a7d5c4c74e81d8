// internal/connectors/linkedin.go
package connectors

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"knowyourcompany/internal/common/config"
	commonhttp "knowyourcompany/internal/common/http"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

// LinkedIn probes whether a company page exists. It yields at most one
// presence signal; the scoring engine flags companies without one.
type LinkedIn struct {
	cfg    config.LinkedInConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewLinkedIn(cfg config.LinkedInConfig, client *commonhttp.Client, log logger.Logger) *LinkedIn {
	return &LinkedIn{
		cfg:    cfg,
		client: client,
		logger: log.WithFields(map[string]interface{}{"connector": "linkedin"}),
	}
}

func (l *LinkedIn) Platform() models.Platform {
	return models.PlatformLinkedIn
}

func (l *LinkedIn) Fetch(ctx context.Context, companyName string) ([]models.Signal, error) {
	slug := companySlug(companyName)
	pageURL := fmt.Sprintf("%s/company/%s", l.cfg.BaseURL, slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No company page. Valid empty result; the absence itself is
		// detected downstream by the scoring engine.
		return []models.Signal{}, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("linkedin probe returned %d", resp.StatusCode)
	}

	l.logger.Debug("linkedin page found", map[string]interface{}{
		"company": companyName,
		"slug":    slug,
	})
	return []models.Signal{{
		Platform:  models.PlatformLinkedIn,
		SourceURL: pageURL,
		Title:     companyName + " | LinkedIn",
	}}, nil
}

// companySlug approximates LinkedIn's vanity-name scheme.
func companySlug(companyName string) string {
	slug := strings.ToLower(strings.TrimSpace(companyName))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, slug)
}
