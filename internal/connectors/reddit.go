// internal/connectors/reddit.go
package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"knowyourcompany/internal/common/config"
	commonhttp "knowyourcompany/internal/common/http"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/models"
)

// Reddit fetches discussion posts mentioning a company from the public
// Reddit search API. Best-effort: any failure surfaces as an error for
// the fan-out runner to absorb.
type Reddit struct {
	cfg    config.RedditConfig
	client *commonhttp.Client
	logger logger.Logger
}

func NewReddit(cfg config.RedditConfig, client *commonhttp.Client, log logger.Logger) *Reddit {
	return &Reddit{
		cfg:    cfg,
		client: client,
		logger: log.WithFields(map[string]interface{}{"connector": "reddit"}),
	}
}

func (r *Reddit) Platform() models.Platform {
	return models.PlatformReddit
}

func (r *Reddit) Fetch(ctx context.Context, companyName string) ([]models.Signal, error) {
	searchURL := fmt.Sprintf("%s/search.json?q=%s&sort=relevance&limit=%d",
		r.cfg.BaseURL,
		url.QueryEscape(fmt.Sprintf("%q", companyName)),
		r.cfg.MaxResults,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit search returned %d", resp.StatusCode)
	}

	var apiResponse struct {
		Data struct {
			Children []struct {
				Data struct {
					Title     string `json:"title"`
					Selftext  string `json:"selftext"`
					Permalink string `json:"permalink"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	signals := make([]models.Signal, 0, len(apiResponse.Data.Children))
	for _, child := range apiResponse.Data.Children {
		post := child.Data
		if !mentionsCompany(post.Title+" "+post.Selftext, companyName) {
			continue
		}
		snippet := post.Selftext
		if snippet == "" {
			snippet = post.Title
		}
		signals = append(signals, models.Signal{
			Platform:  models.PlatformReddit,
			SourceURL: r.cfg.BaseURL + post.Permalink,
			Title:     post.Title,
			Snippet:   truncate(snippet, 500),
		})
	}

	r.logger.Debug("reddit search complete", map[string]interface{}{
		"company": companyName,
		"signals": len(signals),
	})
	return signals, nil
}

// mentionsCompany filters out search noise that does not actually name
// the company.
func mentionsCompany(text, companyName string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(strings.TrimSpace(companyName)))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
