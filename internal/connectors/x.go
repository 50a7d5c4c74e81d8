// internal/connectors/x.go
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

// X fetches recent posts mentioning a company through a configured
// search endpoint (X API v2 recent-search shape).
type X struct {
	cfg    config.XConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewX(cfg config.XConfig, client *commonhttp.Client, log logger.Logger) *X {
	return &X{
		cfg:    cfg,
		client: client,
		logger: log.WithFields(map[string]interface{}{"connector": "x"}),
	}
}

func (x *X) Platform() models.Platform {
	return models.PlatformX
}

func (x *X) Fetch(ctx context.Context, companyName string) ([]models.Signal, error) {
	searchURL := fmt.Sprintf("%s?query=%s&max_results=%d",
		x.cfg.SearchURL,
		url.QueryEscape(fmt.Sprintf("%q -is:retweet", companyName)),
		x.cfg.MaxResults,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	if x.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+x.cfg.APIKey)
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("x search returned %d", resp.StatusCode)
	}

	var apiResponse struct {
		Data []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	signals := make([]models.Signal, 0, len(apiResponse.Data))
	for _, post := range apiResponse.Data {
		signals = append(signals, models.Signal{
			Platform:  models.PlatformX,
			SourceURL: "https://x.com/i/web/status/" + post.ID,
			Snippet:   truncate(post.Text, 500),
		})
	}

	x.logger.Debug("x search complete", map[string]interface{}{
		"company": companyName,
		"signals": len(signals),
	})
	return signals, nil
}
