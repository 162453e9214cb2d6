package presence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type TrackerTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	tracker *Tracker
	ctx     context.Context
}

func (s *TrackerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.tracker = NewTracker(s.client, 30*time.Second)
	s.ctx = context.Background()
}

func (s *TrackerTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) TestHeartbeatAndList() {
	err := s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "host")
	s.Require().NoError(err)
	err = s.tracker.Heartbeat(s.ctx, "chan-1", "user-8", "audience")
	s.Require().NoError(err)

	present, err := s.tracker.List(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(map[string]string{
		"user-7": "host",
		"user-8": "audience",
	}, present)
}

func (s *TrackerTestSuite) TestHeartbeatRefreshesRole() {
	err := s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "audience")
	s.Require().NoError(err)
	err = s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "host")
	s.Require().NoError(err)

	present, err := s.tracker.List(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(map[string]string{"user-7": "host"}, present)
}

func (s *TrackerTestSuite) TestEntriesExpire() {
	err := s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "host")
	s.Require().NoError(err)

	s.mr.FastForward(31 * time.Second)

	present, err := s.tracker.List(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Empty(present)
}

func (s *TrackerTestSuite) TestLeave() {
	err := s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "host")
	s.Require().NoError(err)

	err = s.tracker.Leave(s.ctx, "chan-1", "user-7")
	s.Require().NoError(err)

	present, err := s.tracker.List(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Empty(present)
}

func (s *TrackerTestSuite) TestChannelsAreIsolated() {
	err := s.tracker.Heartbeat(s.ctx, "chan-1", "user-7", "host")
	s.Require().NoError(err)
	err = s.tracker.Heartbeat(s.ctx, "chan-2", "user-8", "audience")
	s.Require().NoError(err)

	present, err := s.tracker.List(s.ctx, "chan-1")
	s.Require().NoError(err)
	s.Equal(map[string]string{"user-7": "host"}, present)
}
