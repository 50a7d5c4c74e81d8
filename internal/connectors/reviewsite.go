// internal/connectors/reviewsite.go
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"knowyourcompany/internal/common/config"
	commonhttp "knowyourcompany/internal/common/http"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

// ReviewSite fetches employer profiles from a review platform lookup
// endpoint. Glassdoor and AmbitionBox share the wire shape, so one
// connector serves both platforms; the extraction details behind the
// endpoint are swappable without touching the pipeline.
type ReviewSite struct {
	platform models.Platform
	cfg      config.ReviewSiteConfig
	client   *commonhttp.Client
	logger   logger.Logger
}

func NewGlassdoor(cfg config.ReviewSiteConfig, client *commonhttp.Client, log logger.Logger) *ReviewSite {
	return newReviewSite(models.PlatformGlassdoor, cfg, client, log)
}

func NewAmbitionBox(cfg config.ReviewSiteConfig, client *commonhttp.Client, log logger.Logger) *ReviewSite {
	return newReviewSite(models.PlatformAmbitionBox, cfg, client, log)
}

func newReviewSite(platform models.Platform, cfg config.ReviewSiteConfig, client *commonhttp.Client, log logger.Logger) *ReviewSite {
	return &ReviewSite{
		platform: platform,
		cfg:      cfg,
		client:   client,
		logger:   log.WithFields(map[string]interface{}{"connector": string(platform)}),
	}
}

func (rs *ReviewSite) Platform() models.Platform {
	return rs.platform
}

func (rs *ReviewSite) Fetch(ctx context.Context, companyName string) ([]models.Signal, error) {
	lookupURL := fmt.Sprintf("%s/api/employers?name=%s", rs.cfg.BaseURL, url.QueryEscape(companyName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := rs.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Not listed on the platform. A valid empty result, not a failure.
		return []models.Signal{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s lookup returned %d", rs.platform, resp.StatusCode)
	}

	var apiResponse struct {
		Employers []struct {
			Name        string   `json:"name"`
			ProfileURL  string   `json:"profileUrl"`
			Rating      *float64 `json:"overallRating"`
			ReviewCount *int     `json:"reviewCount"`
			Highlight   string   `json:"reviewHighlight"`
		} `json:"employers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	signals := make([]models.Signal, 0, len(apiResponse.Employers))
	for _, emp := range apiResponse.Employers {
		if !mentionsCompany(emp.Name, companyName) {
			continue
		}
		signals = append(signals, models.Signal{
			Platform:    rs.platform,
			SourceURL:   emp.ProfileURL,
			Title:       emp.Name,
			Snippet:     truncate(emp.Highlight, 500),
			Rating:      emp.Rating,
			ReviewCount: emp.ReviewCount,
		})
	}

	rs.logger.Debug("review site lookup complete", map[string]interface{}{
		"company": companyName,
		"signals": len(signals),
	})
	return signals, nil
}
