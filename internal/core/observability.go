package core

import (
	"context"
	"time"

	"claimcore/pkg/domain"
)

// Logger is the minimal leveled logging surface the service depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Clock supplies the current time for audit timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns the current time from the wrapped function.
func (f ClockFunc) Now() time.Time { return f() }

// AuditStatus classifies the outcome recorded in an audit entry.
type AuditStatus string

const (
	// AuditStatusSuccess marks an operation that committed.
	AuditStatusSuccess AuditStatus = "success"
	// AuditStatusError marks an operation that failed.
	AuditStatusError AuditStatus = "error"
)

// AuditEntry captures one service operation for the audit trail.
type AuditEntry struct {
	Operation string            `json:"operation"`
	Entity    domain.EntityType `json:"entity"`
	Action    domain.Action     `json:"action"`
	EntityID  int64             `json:"entity_id,omitempty"`
	Status    AuditStatus       `json:"status"`
	Error     string            `json:"error,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// AuditRecorder receives audit entries emitted by the service.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

type noopAuditRecorder struct{}

func (noopAuditRecorder) Record(context.Context, AuditEntry) {}

// MetricsRecorder observes operation outcomes and latencies.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

type noopMetricsRecorder struct{}

func (noopMetricsRecorder) Observe(context.Context, string, bool, time.Duration) {}

// TraceSpan represents one in-flight operation span.
type TraceSpan interface {
	End(err error)
}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

type noopTracer struct{}

type noopSpan struct{}

func (noopSpan) End(error) {}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithLogger installs a logger; the default discards everything.
func WithLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuditRecorder installs an audit recorder.
func WithAuditRecorder(recorder AuditRecorder) ServiceOption {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// WithMetricsRecorder installs a metrics recorder.
func WithMetricsRecorder(recorder MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer installs a tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithClock overrides the audit timestamp clock; intended for tests.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// operationMeta maps service operation names to the entity and action they
// touch; unknown operations are not audited.
type operationMeta struct {
	Entity domain.EntityType
	Action domain.Action
}

var operationCatalog = map[string]operationMeta{
	"create_user":               {Entity: domain.EntityUser, Action: domain.ActionCreate},
	"update_user":               {Entity: domain.EntityUser, Action: domain.ActionUpdate},
	"touch_user_last_login":     {Entity: domain.EntityUser, Action: domain.ActionUpdate},
	"create_claimant":           {Entity: domain.EntityClaimant, Action: domain.ActionCreate},
	"update_claimant":           {Entity: domain.EntityClaimant, Action: domain.ActionUpdate},
	"create_claim":              {Entity: domain.EntityClaim, Action: domain.ActionCreate},
	"update_claim":              {Entity: domain.EntityClaim, Action: domain.ActionUpdate},
	"create_room":               {Entity: domain.EntityRoom, Action: domain.ActionCreate},
	"update_room":               {Entity: domain.EntityRoom, Action: domain.ActionUpdate},
	"delete_room":               {Entity: domain.EntityRoom, Action: domain.ActionDelete},
	"create_item":               {Entity: domain.EntityItem, Action: domain.ActionCreate},
	"update_item":               {Entity: domain.EntityItem, Action: domain.ActionUpdate},
	"delete_item":               {Entity: domain.EntityItem, Action: domain.ActionDelete},
	"create_documentation":      {Entity: domain.EntityDocumentation, Action: domain.ActionCreate},
	"update_documentation":      {Entity: domain.EntityDocumentation, Action: domain.ActionUpdate},
	"delete_documentation":      {Entity: domain.EntityDocumentation, Action: domain.ActionDelete},
	"attach_documentation_file": {Entity: domain.EntityDocumentation, Action: domain.ActionCreate},
	"detect_duplicates":         {Entity: domain.EntityPotentialDuplicate, Action: domain.ActionCreate},
	"update_duplicate_status":   {Entity: domain.EntityPotentialDuplicate, Action: domain.ActionUpdate},
	"create_collaborator":       {Entity: domain.EntityCollaborator, Action: domain.ActionCreate},
	"update_collaborator":       {Entity: domain.EntityCollaborator, Action: domain.ActionUpdate},
	"delete_collaborator":       {Entity: domain.EntityCollaborator, Action: domain.ActionDelete},
}
