package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/ptr"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
	"github.com/platz/goapi/domain/landtoken"
	mockLandtoken "github.com/platz/goapi/domain/landtoken/mocks"
	"github.com/platz/goapi/domain/pricehistory"
	mockPricehistory "github.com/platz/goapi/domain/pricehistory/mocks"
)

var (
	mockCtx   = ctx.Background()
	testToken = landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "7"}
)

type testsuite struct {
	suite.Suite

	priceHistoryRepo *mockPricehistory.Repo
	landTokenRepo    *mockLandtoken.Repo
	collectionRepo   *mockLandtoken.CollectionRepo
	bidRepo          *mockBid.Repo
	subject          *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.priceHistoryRepo = &mockPricehistory.Repo{}
	t.landTokenRepo = &mockLandtoken.Repo{}
	t.collectionRepo = &mockLandtoken.CollectionRepo{}
	t.bidRepo = &mockBid.Repo{}
	t.subject = &impl{
		priceHistoryRepo: t.priceHistoryRepo,
		landTokenRepo:    t.landTokenRepo,
		collectionRepo:   t.collectionRepo,
		bidRepo:          t.bidRepo,
	}
}

func (t *testsuite) TestRecordEventFirst() {
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	entry, err := t.subject.RecordEvent(mockCtx, testToken, pricehistory.EventTypeBid, 1.5, pricehistory.Refs{})
	t.NoError(err)
	t.Equal(pricehistory.EventTypeBid, entry.EventType)
	t.Equal(1.5, entry.Price)
	t.Equal(testToken.TokenId, entry.TokenId)
	t.Nil(entry.PreviousPrice)
	t.Nil(entry.PercentChange)
}

func (t *testsuite) TestRecordEventPercentChange() {
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(&pricehistory.Entry{Price: 2}, nil)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	entry, err := t.subject.RecordEvent(mockCtx, testToken, pricehistory.EventTypeSale, 3, pricehistory.Refs{})
	t.NoError(err)
	t.Equal(ptr.Float64(2), entry.PreviousPrice)
	t.Equal(ptr.Float64(50), entry.PercentChange)
}

func (t *testsuite) TestRecordEventCollectionLevelHasNoTokenId() {
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	entry, err := t.subject.RecordEvent(mockCtx, testToken, pricehistory.EventTypeFloorPrice, 4, pricehistory.Refs{})
	t.NoError(err)
	t.Equal(domain.TokenId(""), entry.TokenId)
}

func (t *testsuite) TestRecalcFloorPrice() {
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*landtoken.LandToken{
			{TokenId: "1", IsListed: true, Price: ptr.Float64(5)},
			{TokenId: "2", IsListed: true, Price: ptr.Float64(3)},
			{TokenId: "3", IsListed: true, Price: nil},
		}, nil)
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	floor, err := t.subject.RecalcFloorPrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(float64(3), floor)
}

func (t *testsuite) TestRecalcFloorPriceIdempotent() {
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*landtoken.LandToken{
			{TokenId: "2", IsListed: true, Price: ptr.Float64(3)},
		}, nil)
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(&pricehistory.Entry{Price: 3}, nil)

	floor, err := t.subject.RecalcFloorPrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(float64(3), floor)
	t.priceHistoryRepo.AssertNotCalled(t.T(), "Insert", mockCtx, mock.Anything)
}

func (t *testsuite) TestRecalcFloorPriceCollectionFallback() {
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*landtoken.LandToken{}, nil)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(&landtoken.Collection{IsListed: true, ListingPrice: ptr.Float64(2.5)}, nil)
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	floor, err := t.subject.RecalcFloorPrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(2.5, floor)
}

func (t *testsuite) TestRecalcFloorPriceNothingListed() {
	t.landTokenRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*landtoken.LandToken{}, nil)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(nil, domain.ErrNotFound)

	floor, err := t.subject.RecalcFloorPrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(float64(0), floor)
	t.priceHistoryRepo.AssertNotCalled(t.T(), "Insert", mockCtx, mock.Anything)
}

func (t *testsuite) TestRecalcAveragePrice() {
	// sales then accepted bids
	t.priceHistoryRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*pricehistory.Entry{{Price: 3}, {Price: 5}}, nil).
		Once()
	t.priceHistoryRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*pricehistory.Entry{{Price: 4}}, nil).
		Once()
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(nil, domain.ErrNotFound)
	t.priceHistoryRepo.
		On("Insert", mockCtx, mock.Anything).
		Return(nil)

	average, err := t.subject.RecalcAveragePrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(float64(4), average)
}

func (t *testsuite) TestRecalcAveragePriceNoData() {
	t.priceHistoryRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]*pricehistory.Entry{}, nil)

	average, err := t.subject.RecalcAveragePrice(mockCtx, testToken)
	t.NoError(err)
	t.Equal(float64(0), average)
	t.priceHistoryRepo.AssertNotCalled(t.T(), "Insert", mockCtx, mock.Anything)
}

func (t *testsuite) TestGet24hStats() {
	t.priceHistoryRepo.
		On("FindAll", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return([]*pricehistory.Entry{{Price: 3}, {Price: 5}}, nil)
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything).
		Return(&pricehistory.Entry{Price: 4}, nil)
	t.priceHistoryRepo.
		On("FindLatest", mockCtx, mock.Anything, mock.Anything, mock.Anything).
		Return(&pricehistory.Entry{Price: 2, CreatedAt: time.Now().Add(-48 * time.Hour)}, nil)
	t.bidRepo.
		On("FindActiveBid", mockCtx, testToken).
		Return(&bid.Bid{Status: bid.StatusActive, AmountInNative: 6}, nil)

	stats, err := t.subject.Get24hStats(mockCtx, testToken)
	t.NoError(err)
	t.Equal(2, stats.SaleCount)
	t.Equal(float64(8), stats.Volume)
	t.Equal(float64(4), stats.FloorPrice)
	t.Equal(ptr.Float64(100), stats.FloorChangePct)
	t.Equal(ptr.Float64(6), stats.TopOffer)
}
