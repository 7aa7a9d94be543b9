// internal/agent/agent.go
package agent

import (
	"context"
	"time"

	"vendor-analytics-agent/internal/agent/extractor"
	"vendor-analytics-agent/internal/agent/matcher"
	"vendor-analytics-agent/internal/agent/memory"
	"vendor-analytics-agent/internal/agent/validator"
	"vendor-analytics-agent/internal/common/errors"
	"vendor-analytics-agent/internal/common/logger"
	"vendor-analytics-agent/internal/common/metrics"
	"vendor-analytics-agent/internal/common/observability"
	"vendor-analytics-agent/internal/format"
	"vendor-analytics-agent/internal/models"
	"vendor-analytics-agent/internal/tools"

	"github.com/google/uuid"
)

// ==========================
// Agent Configuration
// ==========================

// Config carries the tunables for one agent instance.
type Config struct {
	MinConfidence    float64
	DefaultLimit     int
	DefaultWeeks     int
	DefaultRangeDays int
}

// Option customizes an Agent at construction time.
type Option func(*Agent)

// WithClock injects a deterministic clock.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// WithMemory seeds the agent with a pre-existing session memory, used
// when a session is restored from the snapshot store.
func WithMemory(m *memory.Memory) Option {
	return func(a *Agent) { a.memory = m }
}

// WithObservability attaches the OpenTelemetry meter wrapper.
func WithObservability(obs *observability.Observability) Option {
	return func(a *Agent) { a.obs = obs }
}

// ==========================
// Agent
// ==========================

// Agent runs the query pipeline: match the intent, extract parameters,
// backfill gaps from session memory, validate, execute the bound tool
// and render the result. Memory is updated only after a successful
// execution; a rejected query leaves it untouched.
type Agent struct {
	matcher   *matcher.Matcher
	extractor *extractor.Extractor
	memory    *memory.Memory
	validator *validator.Validator
	registry  *tools.Registry
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

func New(cfg Config, store tools.Store, log logger.Logger, opts ...Option) *Agent {
	a := &Agent{
		matcher:  matcher.New(cfg.MinConfidence, log),
		memory:   memory.New(),
		registry: tools.NewRegistry(store, log),
		logger:   log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.extractor = extractor.New(extractor.Config{
		DefaultLimit: cfg.DefaultLimit,
		DefaultWeeks: cfg.DefaultWeeks,
	}, a.now)
	a.validator = validator.New(validator.Config{
		DefaultRangeDays: cfg.DefaultRangeDays,
	}, a.now)
	return a
}

// ProcessQuery runs one query through the pipeline. The returned
// response always carries a decision trace, even when the query is
// rejected; the error is non-nil exactly when FinalState is Rejected.
func (a *Agent) ProcessQuery(ctx context.Context, query string) (*models.Response, error) {
	start := a.now()
	trace := models.DecisionTrace{
		QueryID:    uuid.New().String(),
		Query:      query,
		ReceivedAt: start,
		FinalState: models.StateReceived,
	}
	resp := &models.Response{QueryID: trace.QueryID}

	match, err := a.matcher.Match(query)
	if err != nil {
		return a.reject(ctx, resp, &trace, start, err)
	}
	trace.Intent = match.Intent
	trace.Confidence = match.Confidence
	trace.MatchedPattern = match.MatchedPattern
	trace.FinalState = models.StateMatched
	resp.Intent = match.Intent
	resp.Tool = a.registry.ToolName(match.Intent)

	params := a.extractor.Extract(query, match.Intent)
	trace.ParamsBeforeMemory = params.ToMap()
	trace.FinalState = models.StateParamsExtracted

	filled, used := a.memory.Backfill(match.Intent, params)
	trace.ParamsAfterMemory = filled.ToMap()
	trace.MemoryFieldsUsed = used
	trace.FinalState = models.StateBackfilled
	for _, field := range used {
		metrics.MemoryBackfills.WithLabelValues(field).Inc()
	}

	normalized, err := a.validator.Validate(match.Intent, filled)
	if err != nil {
		return a.reject(ctx, resp, &trace, start, err)
	}
	trace.FinalState = models.StateValidated
	resp.Params = normalized

	result, err := a.registry.Execute(ctx, match.Intent, normalized)
	if err != nil {
		return a.reject(ctx, resp, &trace, start, err)
	}
	trace.FinalState = models.StateExecuted
	resp.Result = result

	rendered, err := format.Render(result)
	if err != nil {
		return a.reject(ctx, resp, &trace, start, errors.NewExecutionError(resp.Tool, err))
	}
	resp.Rendered = rendered

	a.memory.Update(normalized)
	trace.FinalState = models.StateMemoryUpdated
	trace.DurationMs = a.now().Sub(start).Milliseconds()
	resp.Trace = trace

	metrics.QueriesProcessed.WithLabelValues(string(match.Intent)).Inc()
	metrics.QueryDuration.WithLabelValues(string(match.Intent)).Observe(a.now().Sub(start).Seconds())
	if a.obs != nil {
		a.obs.RecordQueryProcessed(ctx, string(match.Intent), string(models.StateMemoryUpdated))
		a.obs.RecordQueryDuration(ctx, a.now().Sub(start), string(match.Intent))
	}

	a.logger.Info("query processed", map[string]interface{}{
		"query_id":           trace.QueryID,
		"intent":             string(match.Intent),
		"tool":               resp.Tool,
		"confidence":         match.Confidence,
		"memory_fields_used": used,
	})
	return resp, nil
}

func (a *Agent) reject(ctx context.Context, resp *models.Response, trace *models.DecisionTrace, start time.Time, err error) (*models.Response, error) {
	trace.FinalState = models.StateRejected
	trace.DurationMs = a.now().Sub(start).Milliseconds()
	resp.Trace = *trace

	intentLabel := string(trace.Intent)
	if intentLabel == "" {
		intentLabel = "unknown"
	}
	code := errors.CodeOf(err)
	metrics.QueriesRejected.WithLabelValues(intentLabel, string(code)).Inc()
	if a.obs != nil {
		a.obs.RecordQueryProcessed(ctx, intentLabel, string(models.StateRejected))
	}

	fields := map[string]interface{}{
		"query_id": trace.QueryID,
		"intent":   intentLabel,
		"error":    err.Error(),
	}
	// Bad input is expected traffic; infrastructure failures are not.
	if code == errors.ErrCodeUnknownIntent || errors.IsValidationError(code) {
		a.logger.Warn("query rejected", fields)
	} else {
		a.logger.Error("query rejected", fields)
	}
	return resp, err
}

// ResetSession clears the session memory.
func (a *Agent) ResetSession() {
	a.memory.Reset()
}

// MemorySnapshot exposes the current memory state for session
// persistence.
func (a *Agent) MemorySnapshot() memory.Snapshot {
	return a.memory.Snapshot()
}
