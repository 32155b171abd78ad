package restriction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/requestcontext"
)

type RestrictionRegistrySuite struct {
	suite.Suite
	registry *Registry
	ctx      context.Context
}

func (s *RestrictionRegistrySuite) SetupTest() {
	s.registry = NewRegistry(NewInMemoryStore())
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func TestRestrictionRegistrySuite(t *testing.T) {
	suite.Run(t, new(RestrictionRegistrySuite))
}

func (s *RestrictionRegistrySuite) TestAdd() {
	s.Run("creates active entry", func() {
		r, err := s.registry.Add(s.ctx, "client-1", "staff-1", "prior incident", SeverityHardBlock)
		s.Require().NoError(err)
		s.NotEmpty(r.ID)
		s.True(r.IsActive)
		s.Equal(SeverityHardBlock, r.Severity)
	})

	s.Run("rejects empty reason", func() {
		_, err := s.registry.Add(s.ctx, "client-1", "staff-2", "   ", SeverityWarning)
		s.Require().Error(err)
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("rejects invalid severity", func() {
		_, err := s.registry.Add(s.ctx, "client-1", "staff-2", "reason", Severity("forbidden"))
		s.Require().Error(err)
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("rejects second active entry for same pair", func() {
		_, err := s.registry.Add(s.ctx, "client-2", "staff-1", "first", SeverityWarning)
		s.Require().NoError(err)

		_, err = s.registry.Add(s.ctx, "client-2", "staff-1", "second", SeverityHardBlock)
		s.Require().Error(err)
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})
}

func (s *RestrictionRegistrySuite) TestDeactivate() {
	r, err := s.registry.Add(s.ctx, "client-1", "staff-1", "prior incident", SeveritySoftBlock)
	s.Require().NoError(err)

	s.Require().NoError(s.registry.Deactivate(s.ctx, r.ID))

	kept, err := s.registry.Get(s.ctx, r.ID)
	s.Require().NoError(err)
	s.False(kept.IsActive)

	active, err := s.registry.FindActivePair(s.ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *RestrictionRegistrySuite) TestRemove() {
	r, err := s.registry.Add(s.ctx, "client-1", "staff-1", "prior incident", SeverityWarning)
	s.Require().NoError(err)

	s.Require().NoError(s.registry.Remove(s.ctx, r.ID))

	_, err = s.registry.Get(s.ctx, r.ID)
	s.Require().Error(err)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))

	err = s.registry.Remove(s.ctx, r.ID)
	s.Require().Error(err)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *RestrictionRegistrySuite) TestListActiveOrdersBySeverity() {
	_, err := s.registry.Add(s.ctx, "client-1", "staff-a", "informational", SeverityWarning)
	s.Require().NoError(err)
	_, err = s.registry.Add(s.ctx, "client-1", "staff-b", "absolute", SeverityHardBlock)
	s.Require().NoError(err)
	_, err = s.registry.Add(s.ctx, "client-1", "staff-c", "overridable", SeveritySoftBlock)
	s.Require().NoError(err)

	list, err := s.registry.ListActive(s.ctx, "client-1")
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal(SeverityHardBlock, list[0].Severity)
	s.Equal(SeveritySoftBlock, list[1].Severity)
	s.Equal(SeverityWarning, list[2].Severity)
}
