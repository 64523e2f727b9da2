package items_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-progression/internal/redis"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/items"
	"github.com/KirkDiggler/rpg-progression/internal/testutils"
)

type RedisItemsTestSuite struct {
	suite.Suite
	ctx    context.Context
	client redis.Client
	mr     *miniredis.Miniredis
	clock  *clock.Fixed
	repo   items.Repository
}

func (s *RedisItemsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.client, s.mr = testutils.CreateTestRedisClient(s.T())
	s.clock = clock.NewFixed(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	repo, err := items.NewRedis(&items.RedisConfig{Client: s.client, Clock: s.clock})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisItemsTestSuite) create(id string, kind equipment.Kind) *equipment.Snapshot {
	snap := testutils.CreateTestSnapshot(s.T(), id, kind, 50_000)
	_, err := s.repo.Create(s.ctx, items.CreateInput{OwnerID: testutils.TestOwnerID, Item: snap})
	s.Require().NoError(err)
	return snap
}

func (s *RedisItemsTestSuite) TestNewRedis() {
	_, err := items.NewRedis(nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "config cannot be nil")

	_, err = items.NewRedis(&items.RedisConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "client cannot be nil")
}

func (s *RedisItemsTestSuite) TestCreateAndGet() {
	snap := s.create("item-1", equipment.KindArtifact)

	s.True(s.mr.Exists(items.GetKey("item-1")))
	members, err := s.mr.SMembers(items.GetOwnerKey(testutils.TestOwnerID))
	s.Require().NoError(err)
	s.Equal([]string{"item-1"}, members)

	out, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(testutils.TestOwnerID, out.Record.OwnerID)
	s.Equal(snap, out.Record.Item)
	s.Equal(s.clock.Now(), out.Record.CreatedAt)

	restored, err := equipment.Restore(out.Record.Item)
	s.Require().NoError(err)
	s.Equal(snap, restored.Snapshot())
}

func (s *RedisItemsTestSuite) TestStoredJSONShape() {
	s.create("item-1", equipment.KindArmor)

	raw, err := s.mr.Get(items.GetKey("item-1"))
	s.Require().NoError(err)

	var doc map[string]any
	s.Require().NoError(json.Unmarshal([]byte(raw), &doc))
	s.Equal(testutils.TestOwnerID, doc["owner_id"])
	item, ok := doc["item"].(map[string]any)
	s.Require().True(ok)
	s.Equal("armor", item["kind"])
	s.Contains(item, "main_stat")
}

func (s *RedisItemsTestSuite) TestCreate_Errors() {
	s.create("item-1", equipment.KindArmor)

	testCases := []struct {
		name  string
		input items.CreateInput
		check func(error) bool
	}{
		{"nil item", items.CreateInput{OwnerID: "o"}, errors.IsInvalidArgument},
		{"empty id", items.CreateInput{OwnerID: "o", Item: &equipment.Snapshot{}}, errors.IsInvalidArgument},
		{"empty owner", items.CreateInput{Item: &equipment.Snapshot{ID: "x"}}, errors.IsInvalidArgument},
		{"duplicate", items.CreateInput{OwnerID: "o", Item: &equipment.Snapshot{ID: "item-1"}}, errors.IsAlreadyExists},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(tc.check(err), err.Error())
		})
	}
}

func (s *RedisItemsTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "missing"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Get(s.ctx, items.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisItemsTestSuite) TestGet_CorruptData() {
	s.mr.Set(items.GetKey("bad"), "{not json")

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "bad"})
	s.Require().Error(err)
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *RedisItemsTestSuite) TestUpdate() {
	s.create("item-1", equipment.KindArtifact)
	s.clock.Advance(time.Hour)

	grown := testutils.CreateTestSnapshot(s.T(), "item-1", equipment.KindArtifact, 500_000)
	out, err := s.repo.Update(s.ctx, items.UpdateInput{Item: grown})
	s.Require().NoError(err)
	s.Equal(testutils.TestOwnerID, out.Record.OwnerID)
	s.Equal(s.clock.Now(), out.Record.UpdatedAt)
	s.Equal(s.clock.Now().Add(-time.Hour), out.Record.CreatedAt)

	got, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(grown, got.Record.Item)

	_, err = s.repo.Update(s.ctx, items.UpdateInput{Item: &equipment.Snapshot{ID: "missing"}})
	s.True(errors.IsNotFound(err))
}

func (s *RedisItemsTestSuite) TestDelete() {
	s.create("item-1", equipment.KindArmor)

	_, err := s.repo.Delete(s.ctx, items.DeleteInput{ID: "item-1"})
	s.Require().NoError(err)

	s.False(s.mr.Exists(items.GetKey("item-1")))
	_, err = s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, items.DeleteInput{ID: "item-1"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisItemsTestSuite) TestListByOwner() {
	s.create("item-b", equipment.KindArmor)
	s.create("item-a", equipment.KindArtifact)
	_, err := s.repo.Create(s.ctx, items.CreateInput{
		OwnerID: "someone-else",
		Item:    testutils.CreateTestSnapshot(s.T(), "item-c", equipment.KindArmor, 0),
	})
	s.Require().NoError(err)

	// a dangling index entry is skipped and removed
	_, err = s.mr.SAdd(items.GetOwnerKey(testutils.TestOwnerID), "ghost")
	s.Require().NoError(err)

	out, err := s.repo.ListByOwner(s.ctx, items.ListByOwnerInput{OwnerID: testutils.TestOwnerID})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 2)
	s.Equal("item-a", out.Records[0].Item.ID)
	s.Equal("item-b", out.Records[1].Item.ID)

	members, err := s.mr.SMembers(items.GetOwnerKey(testutils.TestOwnerID))
	s.Require().NoError(err)
	s.NotContains(members, "ghost")

	_, err = s.repo.ListByOwner(s.ctx, items.ListByOwnerInput{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisItemsTestSuite(t *testing.T) {
	suite.Run(t, new(RedisItemsTestSuite))
}
