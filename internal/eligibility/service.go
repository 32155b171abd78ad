// Package eligibility decides whether a staff member may be rostered against
// a client. The rule chain itself is pure (rules.go); the service around it
// gathers registry signals, consults the verdict cache, and records metrics.
package eligibility

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"careteam/internal/eligibility/metrics"
	"careteam/internal/preference"
	"careteam/internal/restriction"
)

const gatherTimeout = 5 * time.Second

// PreferenceSource is the slice of the preference registry the evaluator reads.
type PreferenceSource interface {
	FindActivePair(ctx context.Context, clientID, staffID string) ([]preference.Preference, error)
}

// RestrictionSource is the slice of the restriction registry the evaluator reads.
type RestrictionSource interface {
	FindActivePair(ctx context.Context, clientID, staffID string) ([]restriction.Restriction, error)
}

// Service evaluates (client, staff) pairs. It is a pure read path: no
// mutation ever flows through here.
type Service struct {
	preferences  PreferenceSource
	restrictions RestrictionSource
	cache        VerdictCache
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewService(
	preferences PreferenceSource,
	restrictions RestrictionSource,
	cache VerdictCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		preferences:  preferences,
		restrictions: restrictions,
		cache:        cache,
		metrics:      m,
		logger:       logger,
	}
}

// Evaluate returns the verdict for a candidate pair. Cache failures degrade
// to a registry read; they are logged, never surfaced.
func (s *Service) Evaluate(ctx context.Context, clientID, staffID string) (Verdict, error) {
	start := time.Now()

	if s.cache != nil {
		verdict, hit, err := s.cache.Get(ctx, clientID, staffID)
		switch {
		case err != nil:
			s.recordCacheLookup("error")
			s.logger.WarnContext(ctx, "verdict cache read failed",
				"client_id", clientID,
				"staff_id", staffID,
				"error", err.Error(),
			)
		case hit:
			s.recordCacheLookup("hit")
			s.recordVerdict(verdict, start)
			return verdict, nil
		default:
			s.recordCacheLookup("miss")
		}
	}

	restrictions, preferences, err := s.gatherSignals(ctx, clientID, staffID)
	if err != nil {
		return Verdict{}, err
	}

	verdict := Evaluate(restrictions, preferences)

	if s.cache != nil {
		if err := s.cache.Set(ctx, clientID, staffID, verdict); err != nil {
			s.logger.WarnContext(ctx, "verdict cache write failed",
				"client_id", clientID,
				"staff_id", staffID,
				"error", err.Error(),
			)
		}
	}

	s.recordVerdict(verdict, start)
	return verdict, nil
}

// gatherSignals fetches both registries in parallel with shared cancellation.
func (s *Service) gatherSignals(ctx context.Context, clientID, staffID string) ([]restriction.Restriction, []preference.Preference, error) {
	ctx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var (
		restrictions []restriction.Restriction
		preferences  []preference.Preference
	)

	g.Go(func() error {
		start := time.Now()
		list, err := s.restrictions.FindActivePair(ctx, clientID, staffID)
		if s.metrics != nil {
			s.metrics.ObserveSignalLatency("restrictions", time.Since(start))
		}
		if err != nil {
			return err
		}
		restrictions = list
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		list, err := s.preferences.FindActivePair(ctx, clientID, staffID)
		if s.metrics != nil {
			s.metrics.ObserveSignalLatency("preferences", time.Since(start))
		}
		if err != nil {
			return err
		}
		preferences = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return restrictions, preferences, nil
}

// InvalidatePair drops the cached verdict after a pair's state changed.
func (s *Service) InvalidatePair(ctx context.Context, clientID, staffID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, clientID, staffID); err != nil {
		s.logger.WarnContext(ctx, "verdict cache invalidation failed",
			"client_id", clientID,
			"staff_id", staffID,
			"error", err.Error(),
		)
	}
}

func (s *Service) recordVerdict(v Verdict, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordVerdict(string(v.Outcome))
	s.metrics.EvaluateLatency.Observe(time.Since(start).Seconds())
}

func (s *Service) recordCacheLookup(result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(result)
	}
}
