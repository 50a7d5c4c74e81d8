// internal/insight/service.go
package insight

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"knowyourcompany/internal/common/errors"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/common/metrics"
	"knowyourcompany/internal/common/observability"
	"knowyourcompany/internal/models"
)

// Cache is the fast TTL-bounded layer for complete computed insights.
// Get returns (nil, nil) on a miss.
type Cache interface {
	Get(ctx context.Context, canonicalKey string) (*models.Insight, error)
	Set(ctx context.Context, canonicalKey string, insight *models.Insight, ttl time.Duration) error
	Invalidate(ctx context.Context, canonicalKey string) error
}

// Store is the durable layer for complete computed insights. Get
// returns (nil, nil) when no record exists; Put overwrites.
type Store interface {
	Get(ctx context.Context, canonicalKey string) (*models.Insight, error)
	Put(ctx context.Context, insight *models.Insight) error
	Delete(ctx context.Context, canonicalKey string) error
}

// SignalFetcher is the fan-out contract the orchestrator depends on.
type SignalFetcher interface {
	FetchAll(ctx context.Context, companyName string) []models.Signal
}

// Options bound the layered lookup protocol.
type Options struct {
	CacheTTL        time.Duration // default 24h
	FreshnessWindow time.Duration // default 24h
	RequestTimeout  time.Duration // overall deadline for one build, default 30s
}

func (o *Options) applyDefaults() {
	if o.CacheTTL <= 0 {
		o.CacheTTL = 24 * time.Hour
	}
	if o.FreshnessWindow <= 0 {
		o.FreshnessWindow = 24 * time.Hour
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 30 * time.Second
	}
}

// Service composes canonicalization, the layered cache/store lookup,
// the fan-out runner and the scoring engine into the public insight
// operations. All collaborators are injected; the service holds no
// global state.
type Service struct {
	cache   Cache
	store   Store
	fetcher SignalFetcher
	scorer  *Scorer
	opts    Options
	logger  logger.Logger
	obs     *observability.Observability

	// flight collapses concurrent builds for the same canonical key
	// into one shared fan-out.
	flight singleflight.Group

	// now is swappable for tests.
	now func() time.Time
}

func NewService(cache Cache, store Store, fetcher SignalFetcher, scorer *Scorer, opts Options, log logger.Logger, obs *observability.Observability) *Service {
	opts.applyDefaults()
	return &Service{
		cache:   cache,
		store:   store,
		fetcher: fetcher,
		scorer:  scorer,
		opts:    opts,
		logger:  log.WithFields(map[string]interface{}{"component": "insight"}),
		obs:     obs,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetInsight returns the insight for a company, building it when no
// fresh cached or stored copy exists. The only caller-visible failure
// is INVALID_INPUT.
func (s *Service) GetInsight(ctx context.Context, req models.CheckRequest) (*models.Insight, error) {
	key, err := Canonicalize(req.Name)
	if err != nil {
		return nil, err
	}

	if cached := s.cacheGet(ctx, key); cached != nil {
		metrics.CacheLookups.WithLabelValues("cache", "hit").Inc()
		return cached, nil
	}
	metrics.CacheLookups.WithLabelValues("cache", "miss").Inc()

	// Concurrent misses for the same key share one store check + build.
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		return s.lookupOrBuild(ctx, key, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Insight), nil
}

// lookupOrBuild is the store-then-fan-out half of getInsight, executed
// under the per-key flight group.
func (s *Service) lookupOrBuild(ctx context.Context, key string, req models.CheckRequest) (*models.Insight, error) {
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("store", "get").Inc()
		s.logger.Warn("store read failed, treating as absent", map[string]interface{}{
			"canonicalKey": key,
			"error":        err.Error(),
		})
		stored = nil
	}

	if stored != nil {
		age := s.now().Sub(stored.ComputedAt)
		if age < s.opts.FreshnessWindow {
			metrics.CacheLookups.WithLabelValues("store", "fresh").Inc()
			s.cacheSet(ctx, key, stored)
			return stored, nil
		}
		metrics.CacheLookups.WithLabelValues("store", "stale").Inc()
		s.logger.Info("stored insight is stale, rebuilding", map[string]interface{}{
			"canonicalKey": key,
			"age":          age.String(),
		})
	} else {
		metrics.CacheLookups.WithLabelValues("store", "miss").Inc()
	}

	return s.build(ctx, key, req, "get")
}

// build runs fan-out, scoring and write-through persistence. A
// cache/store write failure degrades to logging; the computed insight
// is returned regardless.
func (s *Service) build(ctx context.Context, key string, req models.CheckRequest, trigger string) (*models.Insight, error) {
	start := time.Now()

	buildCtx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	signals := s.fetcher.FetchAll(buildCtx, req.Name)

	if buildCtx.Err() == context.DeadlineExceeded {
		s.logger.WithError(errors.NewRequestTimeoutError(key)).Warn("insight build hit overall deadline, scoring partial results", map[string]interface{}{
			"canonicalKey": key,
			"signals":      len(signals),
		})
	}

	result := s.scorer.Score(signals, req)

	ins := &models.Insight{
		Name:              req.Name,
		CanonicalKey:      key,
		Website:           req.Website,
		AuthenticityScore: result.AuthenticityScore,
		RiskTier:          result.RiskTier,
		CompanyType:       result.CompanyType,
		Flags:             result.Flags,
		Signals:           signals,
		ComputedAt:        s.now(),
	}

	if err := s.store.Put(ctx, ins); err != nil {
		metrics.PersistenceFailures.WithLabelValues("store", "put").Inc()
		s.logger.Error("store write failed, returning unpersisted insight", map[string]interface{}{
			"canonicalKey": key,
			"error":        err.Error(),
		})
	}
	s.cacheSet(ctx, key, ins)

	metrics.PipelineDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())
	metrics.InsightsComputed.WithLabelValues(string(result.RiskTier)).Inc()
	if s.obs != nil {
		s.obs.RecordBuild(ctx, trigger)
		s.obs.RecordBuildDuration(ctx, time.Since(start), trigger)
	}

	s.logger.Info("insight computed", map[string]interface{}{
		"canonicalKey": key,
		"score":        ins.AuthenticityScore,
		"riskTier":     ins.RiskTier,
		"companyType":  ins.CompanyType,
		"flags":        ins.Flags,
		"signals":      len(signals),
	})

	return ins, nil
}

// GetByKey looks up a previously computed insight without triggering a
// build. Returns COMPANY_NOT_FOUND when neither layer has it.
func (s *Service) GetByKey(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	if cached := s.cacheGet(ctx, canonicalKey); cached != nil {
		return cached, nil
	}

	stored, err := s.store.Get(ctx, canonicalKey)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("store", "get").Inc()
		return nil, errors.NewPersistenceDegradedError("store", err)
	}
	if stored == nil {
		return nil, errors.NewNotFoundError(canonicalKey)
	}
	return stored, nil
}

// RefreshInsight rebuilds the insight for a known canonical key,
// bypassing both the cache hit and the freshness check. Unknown keys
// report COMPANY_NOT_FOUND; nothing is fabricated.
func (s *Service) RefreshInsight(ctx context.Context, canonicalKey string) (*models.Insight, error) {
	stored, err := s.store.Get(ctx, canonicalKey)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("store", "get").Inc()
		return nil, errors.NewPersistenceDegradedError("store", err)
	}
	if stored == nil {
		return nil, errors.NewNotFoundError(canonicalKey)
	}

	if err := s.cache.Invalidate(ctx, canonicalKey); err != nil {
		metrics.PersistenceFailures.WithLabelValues("cache", "invalidate").Inc()
		s.logger.Warn("cache invalidate failed", map[string]interface{}{
			"canonicalKey": canonicalKey,
			"error":        err.Error(),
		})
	}

	req := models.CheckRequest{
		Name:    stored.Name,
		Website: stored.Website,
	}

	// Refreshes coalesce only with other refreshes. Joining a lookup
	// flight could hand back a fresh stored record without fanning out.
	v, err, _ := s.flight.Do("refresh:"+canonicalKey, func() (interface{}, error) {
		return s.build(ctx, canonicalKey, req, "refresh")
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Insight), nil
}

func (s *Service) cacheGet(ctx context.Context, key string) *models.Insight {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues("cache", "get").Inc()
		s.logger.Warn("cache read failed, treating as miss", map[string]interface{}{
			"canonicalKey": key,
			"error":        err.Error(),
		})
		return nil
	}
	return cached
}

func (s *Service) cacheSet(ctx context.Context, key string, ins *models.Insight) {
	if err := s.cache.Set(ctx, key, ins, s.opts.CacheTTL); err != nil {
		metrics.PersistenceFailures.WithLabelValues("cache", "set").Inc()
		s.logger.Warn("cache write failed", map[string]interface{}{
			"canonicalKey": key,
			"error":        err.Error(),
		})
	}
}
