// internal/insight/fanout.go
package insight

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"knowyourcompany/internal/common/errors"
	"knowyourcompany/internal/common/logger"
	"knowyourcompany/internal/common/metrics"
	"knowyourcompany/internal/models"
)

// Connector maps a company name to zero or more signals from one
// external source. Implementations are best-effort collaborators: an
// error crosses this boundary only to be absorbed by the runner.
type Connector interface {
	Platform() models.Platform
	Fetch(ctx context.Context, companyName string) ([]models.Signal, error)
}

// Runner invokes every registered connector concurrently against one
// company and returns the union of whatever succeeded. It never fails
// the overall call: a connector that errors, times out or panics
// contributes zero signals.
type Runner struct {
	connectors []Connector
	timeout    time.Duration
	logger     logger.Logger
}

func NewRunner(connectors []Connector, timeout time.Duration, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		connectors: connectors,
		timeout:    timeout,
		logger:     log.WithFields(map[string]interface{}{"component": "fanout"}),
	}
}

type fetchResult struct {
	platform models.Platform
	signals  []models.Signal
	err      error
}

// FetchAll runs the fan-out. Results are concatenated in completion
// order; the order carries no meaning downstream. Cancelling ctx
// propagates to every still-running connector.
func (r *Runner) FetchAll(ctx context.Context, companyName string) []models.Signal {
	if len(r.connectors) == 0 {
		return []models.Signal{}
	}

	results := make(chan fetchResult, len(r.connectors))

	for _, conn := range r.connectors {
		go r.fetchOne(ctx, conn, companyName, results)
	}

	signals := make([]models.Signal, 0)
	for i := 0; i < len(r.connectors); i++ {
		res := <-results
		if res.err != nil {
			metrics.ConnectorFetches.WithLabelValues(string(res.platform), "error").Inc()
			r.logger.Warn("connector failed", map[string]interface{}{
				"platform": res.platform,
				"company":  companyName,
				"error":    res.err.Error(),
			})
			continue
		}
		metrics.ConnectorFetches.WithLabelValues(string(res.platform), "ok").Inc()
		metrics.ConnectorSignals.WithLabelValues(string(res.platform)).Add(float64(len(res.signals)))
		signals = append(signals, res.signals...)
	}

	return signals
}

// fetchOne runs a single connector under its own deadline and failure
// boundary. A panic inside a connector must not take down siblings.
func (r *Runner) fetchOne(ctx context.Context, conn Connector, companyName string, out chan<- fetchResult) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			out <- fetchResult{
				platform: conn.Platform(),
				err:      errors.NewSourceUnavailableError(string(conn.Platform()), fmt.Errorf("connector panic: %v", rec)),
			}
		}
	}()

	signals, err := conn.Fetch(fetchCtx, companyName)
	if err != nil {
		out <- fetchResult{platform: conn.Platform(), err: classifyFetchError(conn.Platform(), err)}
		return
	}

	valid := signals[:0]
	for _, sig := range signals {
		if vErr := sig.Validate(); vErr != nil {
			r.logger.Warn("dropping invalid signal", map[string]interface{}{
				"platform": conn.Platform(),
				"error":    vErr.Error(),
			})
			continue
		}
		valid = append(valid, sig)
	}

	out <- fetchResult{platform: conn.Platform(), signals: valid}
}

// classifyFetchError maps a raw connector failure onto the source error
// taxonomy: deadline overruns become SOURCE_TIMEOUT, everything else
// SOURCE_UNAVAILABLE.
func classifyFetchError(platform models.Platform, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewSourceTimeoutError(string(platform))
	}
	return errors.NewSourceUnavailableError(string(platform), err)
}
