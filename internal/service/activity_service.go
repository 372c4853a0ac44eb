// Package service wraps the roster registry with tracing, metrics, and
// logging around each enrollment operation.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mergington-high/activities-api/internal/domain"
	"github.com/mergington-high/activities-api/internal/registry"
	"github.com/mergington-high/activities-api/pkg/logger"
	"github.com/mergington-high/activities-api/pkg/telemetry"
)

// ActivityService exposes the three roster operations to the HTTP layer.
type ActivityService interface {
	ListActivities(ctx context.Context) map[string]domain.Activity
	Signup(ctx context.Context, activity, email string) (domain.Confirmation, error)
	Unregister(ctx context.Context, activity, email string) (domain.Confirmation, error)
}

type activityService struct {
	store   *registry.Store
	metrics *serviceMetrics
}

// NewActivityService creates a new ActivityService backed by the given
// registry.
func NewActivityService(store *registry.Store) ActivityService {
	return &activityService{
		store:   store,
		metrics: newServiceMetrics(),
	}
}

// ListActivities returns a consistent snapshot of the whole catalog.
func (s *activityService) ListActivities(ctx context.Context) map[string]domain.Activity {
	_, span := telemetry.StartSpan(ctx, "service.activities.list")
	defer span.End()

	return s.store.Snapshot()
}

// Signup enrolls a student in an activity.
func (s *activityService) Signup(ctx context.Context, activity, email string) (domain.Confirmation, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activities.signup")
	defer span.End()
	telemetry.SetSpanAttributes(ctx,
		telemetry.ActivityAttr(activity),
		telemetry.StudentAttr(email),
	)

	conf, err := s.store.Enroll(activity, email)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		s.metrics.signups.Inc(ctx, telemetry.ResultAttr(resultFor(err)))
		return domain.Confirmation{}, err
	}

	s.metrics.signups.Inc(ctx, telemetry.ResultAttr("ok"))
	s.recordOccupancy(ctx, activity)

	logger.InfoCtx(ctx, "student signed up",
		zap.String("activity", conf.Activity),
		zap.String("student", conf.Student),
	)
	return conf, nil
}

// Unregister removes a student from an activity roster.
func (s *activityService) Unregister(ctx context.Context, activity, email string) (domain.Confirmation, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.activities.unregister")
	defer span.End()
	telemetry.SetSpanAttributes(ctx,
		telemetry.ActivityAttr(activity),
		telemetry.StudentAttr(email),
	)

	conf, err := s.store.Withdraw(activity, email)
	if err != nil {
		telemetry.SetSpanError(ctx, err)
		s.metrics.unregisters.Inc(ctx, telemetry.ResultAttr(resultFor(err)))
		return domain.Confirmation{}, err
	}

	s.metrics.unregisters.Inc(ctx, telemetry.ResultAttr("ok"))
	s.recordOccupancy(ctx, activity)

	logger.InfoCtx(ctx, "student unregistered",
		zap.String("activity", conf.Activity),
		zap.String("student", conf.Student),
	)
	return conf, nil
}

func (s *activityService) recordOccupancy(ctx context.Context, activity string) {
	a, err := s.store.Get(activity)
	if err != nil {
		return
	}
	s.metrics.rosterSize.Record(ctx, int64(len(a.Participants)),
		telemetry.ActivityAttr(activity))
}

// resultFor labels an enrollment failure for the outcome counters.
func resultFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrAlreadyEnrolled):
		return "already_signed_up"
	case errors.Is(err, domain.ErrNotEnrolled):
		return "not_signed_up"
	case errors.Is(err, domain.ErrActivityFull):
		return "full"
	default:
		return "error"
	}
}
