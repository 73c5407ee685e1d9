package engine

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/metric"
	"github.com/c360/sparqlpath/pkg/retry"
)

// requester is the slice of *nats.Conn the engine uses. Narrowed to an
// interface so tests can substitute an in-process responder.
type requester interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// QueryRequest is the wire envelope for a query sent to the responder.
type QueryRequest struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateResponse acknowledges a mutation request.
type UpdateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Engine sends compiled SPARQL text to a NATS responder and decodes results
type Engine struct {
	conn    requester
	config  Config
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *engineMetrics
}

// Deps holds the engine's dependencies
type Deps struct {
	Conn     *nats.Conn
	Config   Config
	Logger   *slog.Logger
	Registry *metric.MetricsRegistry
}

// New creates a query engine. The metrics registry is optional; when nil
// the engine runs without metrics.
func New(deps Deps) (*Engine, error) {
	if deps.Conn == nil {
		return nil, errors.WrapFatal(errors.ErrNoConnection,
			"engine", "New", "NATS connection required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	cfg := deps.Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	metrics, err := newEngineMetrics(deps.Registry)
	if err != nil {
		deps.Logger.Error("Failed to initialize engine metrics", "error", err)
		metrics = nil // Continue without metrics
	}

	return &Engine{
		conn:    deps.Conn,
		config:  cfg,
		limiter: limiter,
		logger:  deps.Logger.With("component", "engine"),
		metrics: metrics,
	}, nil
}

// Execute sends a read query and returns its decoded results.
func (e *Engine) Execute(ctx context.Context, query string) (*Results, error) {
	start := time.Now()

	data, err := e.request(ctx, e.config.QuerySubject, query, "read")
	if err != nil {
		e.metrics.recordQuery("read", time.Since(start).Seconds(), err)
		return nil, err
	}

	results, err := decodeResults(data)
	e.metrics.recordQuery("read", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ExecuteUpdate sends a mutation query and checks the responder's
// acknowledgement. A rejected update is an invalid error, not a transient
// one, so it is never retried.
func (e *Engine) ExecuteUpdate(ctx context.Context, query string) error {
	start := time.Now()

	data, err := e.request(ctx, e.config.UpdateSubject, query, "update")
	if err != nil {
		e.metrics.recordQuery("update", time.Since(start).Seconds(), err)
		return err
	}

	var ack UpdateResponse
	if err := json.Unmarshal(data, &ack); err != nil {
		err = errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrInvalidResults, err),
			"engine", "ExecuteUpdate", "failed to decode update acknowledgement")
		e.metrics.recordQuery("update", time.Since(start).Seconds(), err)
		return err
	}
	if !ack.Success {
		err = errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrQueryRejected, ack.Error),
			"engine", "ExecuteUpdate", "update rejected")
		e.metrics.recordQuery("update", time.Since(start).Seconds(), err)
		return err
	}

	e.metrics.recordQuery("update", time.Since(start).Seconds(), nil)
	return nil
}

// ExecuteAll runs the given read queries concurrently, bounded by
// MaxConcurrent, and returns results in input order. The first failure
// cancels the remaining queries.
func (e *Engine) ExecuteAll(ctx context.Context, queries []string) ([]*Results, error) {
	results := make([]*Results, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.config.MaxConcurrent)

	for i, query := range queries {
		group.Go(func() error {
			res, err := e.Execute(groupCtx, query)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// request performs one rate-limited, retried request/reply exchange and
// returns the raw response payload.
func (e *Engine) request(ctx context.Context, subject, query, kind string) ([]byte, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, errors.WrapTransient(
				fmt.Errorf("%w: %v", errors.ErrRateLimited, err),
				"engine", "request", "rate limiter wait aborted")
		}
	}

	req := QueryRequest{
		ID:        uuid.NewString(),
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.WrapInvalid(err, "engine", "request", "failed to encode request")
	}

	e.logger.Debug("Sending query",
		"request_id", req.ID,
		"subject", subject,
		"kind", kind)

	retryCfg := e.config.Retry.ToRetryConfig()
	data, err := retry.DoWithResult(ctx, retryCfg, func() ([]byte, error) {
		reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()

		msg, err := e.conn.RequestWithContext(reqCtx, subject, payload)
		if err != nil {
			classified := classifyTransport(err)
			if !errors.IsTransient(classified) {
				return nil, retry.NonRetryable(classified)
			}
			e.metrics.recordRetry(kind)
			e.logger.Warn("Query attempt failed, retrying",
				"request_id", req.ID,
				"error", classified)
			return nil, classified
		}
		return msg.Data, nil
	})
	if err != nil {
		if errors.IsInvalid(err) || errors.IsFatal(err) {
			return nil, err
		}
		return nil, errors.WrapTransient(err, "engine", "request",
			fmt.Sprintf("%s query failed on %s", kind, subject))
	}
	return data, nil
}

// classifyTransport maps NATS client errors onto the engine's sentinels.
func classifyTransport(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, nats.ErrTimeout), stderrors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", errors.ErrConnectionTimeout, err)
	case stderrors.Is(err, nats.ErrConnectionClosed), stderrors.Is(err, nats.ErrConnectionDraining):
		return fmt.Errorf("%w: %v", errors.ErrConnectionLost, err)
	case stderrors.Is(err, nats.ErrNoResponders):
		return fmt.Errorf("%w: %v", errors.ErrNoConnection, err)
	case stderrors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", errors.ErrConnectionLost, err)
	}
}
