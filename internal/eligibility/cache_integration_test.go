//go:build integration

package eligibility_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"careteam/internal/eligibility"
	"careteam/internal/preference"
	"careteam/internal/restriction"
	"careteam/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *eligibility.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = eligibility.NewRedisCache(s.redis.Client, 30*time.Second)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisCacheSuite) TestMissOnEmptyCache() {
	_, hit, err := s.cache.Get(context.Background(), "client-1", "staff-1")
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheSuite) TestSetGetRoundTrip() {
	ctx := context.Background()
	want := eligibility.Verdict{
		Outcome:  eligibility.OutcomeBlocked,
		Severity: restriction.SeverityHardBlock,
		Reason:   "prior incident",
	}
	s.Require().NoError(s.cache.Set(ctx, "client-1", "staff-1", want))

	got, hit, err := s.cache.Get(ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.True(hit)
	s.Equal(want, got)
}

func (s *RedisCacheSuite) TestInvalidate() {
	ctx := context.Background()
	v := eligibility.Verdict{Outcome: eligibility.OutcomePreferred, Level: preference.LevelPrimary}
	s.Require().NoError(s.cache.Set(ctx, "client-1", "staff-1", v))

	s.Require().NoError(s.cache.Invalidate(ctx, "client-1", "staff-1"))

	_, hit, err := s.cache.Get(ctx, "client-1", "staff-1")
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheSuite) TestPairsAreIsolated() {
	ctx := context.Background()
	v := eligibility.Verdict{Outcome: eligibility.OutcomeNeutral}
	s.Require().NoError(s.cache.Set(ctx, "client-1", "staff-1", v))

	_, hit, err := s.cache.Get(ctx, "client-1", "staff-2")
	s.Require().NoError(err)
	s.False(hit)
}

func (s *RedisCacheSuite) TestTTLExpiry() {
	ctx := context.Background()
	short := eligibility.NewRedisCache(s.redis.Client, time.Second)
	v := eligibility.Verdict{Outcome: eligibility.OutcomeNeutral}
	s.Require().NoError(short.Set(ctx, "client-1", "staff-1", v))

	s.Require().Eventually(func() bool {
		_, hit, err := short.Get(ctx, "client-1", "staff-1")
		return err == nil && !hit
	}, 5*time.Second, 200*time.Millisecond)
}
