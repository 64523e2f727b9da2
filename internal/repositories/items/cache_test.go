package items_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-progression/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-progression/internal/errors"
	"github.com/KirkDiggler/rpg-progression/internal/repositories/items"
	itemsmock "github.com/KirkDiggler/rpg-progression/internal/repositories/items/mock"
	"github.com/KirkDiggler/rpg-progression/internal/testutils"
)

type CachedItemsTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	mockRepo *itemsmock.MockRepository
	repo     items.Repository
	record   *items.Record
}

func (s *CachedItemsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = itemsmock.NewMockRepository(s.ctrl)

	repo, err := items.NewCached(s.mockRepo, 8, time.Minute)
	s.Require().NoError(err)
	s.repo = repo

	s.record = &items.Record{
		OwnerID: testutils.TestOwnerID,
		Item:    testutils.CreateTestSnapshot(s.T(), "item-1", equipment.KindArtifact, 100_000),
	}
}

func (s *CachedItemsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CachedItemsTestSuite) TestNewCached_Validation() {
	_, err := items.NewCached(nil, 0, -time.Second)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *CachedItemsTestSuite) TestGet_HitsBackendOnce() {
	s.mockRepo.EXPECT().
		Get(s.ctx, items.GetInput{ID: "item-1"}).
		Return(&items.GetOutput{Record: s.record}, nil).
		Times(1)

	first, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	second, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)

	s.Equal(first.Record, second.Record)
}

func (s *CachedItemsTestSuite) TestGet_ReturnsDetachedCopies() {
	s.mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&items.GetOutput{Record: s.record}, nil)

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)

	hit, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	hit.Record.Item.Level = 999
	hit.Record.Item.SubStats = nil

	again, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(s.record.Item.Level, again.Record.Item.Level)
	s.Equal(s.record.Item.SubStats, again.Record.Item.SubStats)
}

func (s *CachedItemsTestSuite) TestGet_ErrorsAreNotCached() {
	gomock.InOrder(
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("item not found")),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: s.record}, nil),
	)

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal("item-1", out.Record.Item.ID)
}

func (s *CachedItemsTestSuite) TestUpdate_Evicts() {
	s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: s.record}, nil).Times(2)
	s.mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(&items.UpdateOutput{Record: s.record}, nil)

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	_, err = s.repo.Update(s.ctx, items.UpdateInput{Item: s.record.Item})
	s.Require().NoError(err)
	_, err = s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
}

func (s *CachedItemsTestSuite) leveled(level uint32) *items.Record {
	out := *s.record
	out.Item = s.record.Item.Clone()
	out.Item.Level = level
	return &out
}

func (s *CachedItemsTestSuite) TestUpdate_ReadDuringWriteIsNotCached() {
	stale := s.leveled(1)
	fresh := s.leveled(5)

	gomock.InOrder(
		s.mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, input items.UpdateInput) (*items.UpdateOutput, error) {
				// another caller reads the item while the write is in flight
				out, err := s.repo.Get(ctx, items.GetInput{ID: input.Item.ID})
				s.Require().NoError(err)
				s.Equal(uint32(1), out.Record.Item.Level)
				return &items.UpdateOutput{Record: fresh}, nil
			}),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: stale}, nil),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: fresh}, nil),
	)

	_, err := s.repo.Update(s.ctx, items.UpdateInput{Item: fresh.Item})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(uint32(5), out.Record.Item.Level)
}

func (s *CachedItemsTestSuite) TestGet_WriteDuringReadIsNotCached() {
	stale := s.leveled(1)
	fresh := s.leveled(5)

	gomock.InOrder(
		s.mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, input items.GetInput) (*items.GetOutput, error) {
				// a write lands after the backend read but before the cache fill
				_, err := s.repo.Update(ctx, items.UpdateInput{Item: fresh.Item})
				s.Require().NoError(err)
				return &items.GetOutput{Record: stale}, nil
			}),
		s.mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(&items.UpdateOutput{Record: fresh}, nil),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: fresh}, nil),
	)

	out, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(uint32(1), out.Record.Item.Level)

	out, err = s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	s.Equal(uint32(5), out.Record.Item.Level)
}

func (s *CachedItemsTestSuite) TestUpdate_FailedWriteStillEvicts() {
	gomock.InOrder(
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: s.record}, nil),
		s.mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil, errors.Unavailable("redis down")),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: s.record}, nil),
	)

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	_, err = s.repo.Update(s.ctx, items.UpdateInput{Item: s.record.Item})
	s.Require().Error(err)
	_, err = s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
}

func (s *CachedItemsTestSuite) TestDelete_Evicts() {
	gomock.InOrder(
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(&items.GetOutput{Record: s.record}, nil),
		s.mockRepo.EXPECT().Delete(gomock.Any(), items.DeleteInput{ID: "item-1"}).Return(&items.DeleteOutput{}, nil),
		s.mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.NotFound("item not found")),
	)

	_, err := s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.Require().NoError(err)
	_, err = s.repo.Delete(s.ctx, items.DeleteInput{ID: "item-1"})
	s.Require().NoError(err)
	_, err = s.repo.Get(s.ctx, items.GetInput{ID: "item-1"})
	s.True(errors.IsNotFound(err))
}

func (s *CachedItemsTestSuite) TestPassThrough() {
	s.mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&items.CreateOutput{Record: s.record}, nil)
	s.mockRepo.EXPECT().ListByOwner(gomock.Any(), items.ListByOwnerInput{OwnerID: "o"}).
		Return(&items.ListByOwnerOutput{Records: []*items.Record{s.record}}, nil)

	_, err := s.repo.Create(s.ctx, items.CreateInput{OwnerID: "o", Item: s.record.Item})
	s.Require().NoError(err)
	out, err := s.repo.ListByOwner(s.ctx, items.ListByOwnerInput{OwnerID: "o"})
	s.Require().NoError(err)
	s.Len(out.Records, 1)
}

func TestCachedItemsTestSuite(t *testing.T) {
	suite.Run(t, new(CachedItemsTestSuite))
}
