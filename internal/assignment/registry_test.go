package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "careteam/pkg/domain-errors"
	"careteam/pkg/requestcontext"
)

type AssignmentRegistrySuite struct {
	suite.Suite
	registry *Registry
	ctx      context.Context
	now      time.Time
}

func (s *AssignmentRegistrySuite) SetupTest() {
	s.registry = NewRegistry(NewInMemoryStore())
	s.now = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func TestAssignmentRegistrySuite(t *testing.T) {
	suite.Run(t, new(AssignmentRegistrySuite))
}

func (s *AssignmentRegistrySuite) TestAdd() {
	s.Run("defaults start date to request time", func() {
		a, err := s.registry.Add(s.ctx, "client-1", "staff-1", TypePrimarySupport, time.Time{})
		s.Require().NoError(err)
		s.Equal(s.now, a.StartDate)
		s.Nil(a.EndDate)
	})

	s.Run("honours explicit start date", func() {
		start := s.now.AddDate(0, 0, 7)
		a, err := s.registry.Add(s.ctx, "client-1", "staff-2", TypeCareManager, start)
		s.Require().NoError(err)
		s.Equal(start, a.StartDate)
	})

	s.Run("rejects invalid type", func() {
		_, err := s.registry.Add(s.ctx, "client-1", "staff-3", Type("janitor"), time.Time{})
		s.Require().Error(err)
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})
}

func (s *AssignmentRegistrySuite) TestEnd() {
	a, err := s.registry.Add(s.ctx, "client-1", "staff-1", TypeClinicalNurse, time.Time{})
	s.Require().NoError(err)

	s.Run("rejects end before start", func() {
		_, err := s.registry.End(s.ctx, a.ID, s.now.AddDate(0, 0, -1))
		s.Require().Error(err)
		s.Equal(dErrors.CodeValidation, dErrors.CodeOf(err))
	})

	s.Run("sets end date", func() {
		end := s.now.AddDate(0, 1, 0)
		ended, err := s.registry.End(s.ctx, a.ID, end)
		s.Require().NoError(err)
		s.Require().NotNil(ended.EndDate)
		s.True(ended.EndDate.Equal(end))
	})

	s.Run("unknown id", func() {
		_, err := s.registry.End(s.ctx, "missing", s.now)
		s.Require().Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *AssignmentRegistrySuite) TestRemove() {
	a, err := s.registry.Add(s.ctx, "client-1", "staff-1", TypeSecondarySupport, time.Time{})
	s.Require().NoError(err)

	s.Require().NoError(s.registry.Remove(s.ctx, a.ID))

	_, err = s.registry.Get(s.ctx, a.ID)
	s.Require().Error(err)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *AssignmentRegistrySuite) TestListActive() {
	first, err := s.registry.Add(s.ctx, "client-1", "staff-1", TypePrimarySupport, s.now.AddDate(0, -2, 0))
	s.Require().NoError(err)
	second, err := s.registry.Add(s.ctx, "client-1", "staff-2", TypeCareManager, s.now.AddDate(0, -1, 0))
	s.Require().NoError(err)

	ended, err := s.registry.Add(s.ctx, "client-1", "staff-3", TypeClinicalNurse, s.now.AddDate(0, -3, 0))
	s.Require().NoError(err)
	_, err = s.registry.End(s.ctx, ended.ID, s.now.AddDate(0, 0, -1))
	s.Require().NoError(err)

	s.Run("excludes ended, orders by start date", func() {
		list, err := s.registry.ListActive(s.ctx, "client-1")
		s.Require().NoError(err)
		s.Require().Len(list, 2)
		s.Equal(first.ID, list[0].ID)
		s.Equal(second.ID, list[1].ID)
	})

	s.Run("future end date still counts as active", func() {
		future, err := s.registry.Add(s.ctx, "client-2", "staff-1", TypePrimarySupport, s.now.AddDate(0, -1, 0))
		s.Require().NoError(err)
		_, err = s.registry.End(s.ctx, future.ID, s.now.AddDate(0, 1, 0))
		s.Require().NoError(err)

		list, err := s.registry.ListActive(s.ctx, "client-2")
		s.Require().NoError(err)
		s.Require().Len(list, 1)
		s.Equal(future.ID, list[0].ID)
	})
}
