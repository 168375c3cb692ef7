package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	bCtx "github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/audit"
	mockAudit "github.com/platz/goapi/domain/audit/mocks"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/bid"
	mockBid "github.com/platz/goapi/domain/bid/mocks"
	"github.com/platz/goapi/domain/landtoken"
	mockLandtoken "github.com/platz/goapi/domain/landtoken/mocks"
	"github.com/platz/goapi/domain/pricehistory"
	mockPricehistory "github.com/platz/goapi/domain/pricehistory/mocks"
	"github.com/platz/goapi/domain/reconcile"
	mockTransaction "github.com/platz/goapi/domain/transaction/mocks"
	"github.com/platz/goapi/service/ledger"
)

var (
	mockCtx   = bCtx.Background()
	ownerZ    = domain.Address("0xaaa0000000000000000000000000000000000001")
	bidderX   = domain.Address("0xbbb0000000000000000000000000000000000002")
	bidderY   = domain.Address("0xccc0000000000000000000000000000000000003")
	staleA    = domain.Address("0xddd0000000000000000000000000000000000004")
	platform  = domain.Address("0xfee0000000000000000000000000000000000009")
	testToken = landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "7"}
)

func eth(n int64) *big.Int {
	// n * 0.1 eth in wei
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil))
}

type erroringOracle struct {
	err error
}

func (o *erroringOracle) OwnerOf(c bCtx.Ctx, token landtoken.Id) (domain.Address, error) {
	return "", o.err
}

type testsuite struct {
	suite.Suite

	machine         *ledger.Machine
	landTokenRepo   *mockLandtoken.Repo
	collectionRepo  *mockLandtoken.CollectionRepo
	bidRepo         *mockBid.Repo
	transactionRepo *mockTransaction.Repo
	auditRepo       *mockAudit.Repo
	priceHistoryUC  *mockPricehistory.UseCase
	subject         Service
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (t *testsuite) SetupTest() {
	t.machine = ledger.NewMachine(&ledger.MachineCfg{FeeBps: 250, FeeRecipient: platform})
	t.machine.Mint(testToken, ownerZ)
	t.machine.SetApproval(testToken, true)

	t.landTokenRepo = &mockLandtoken.Repo{}
	t.collectionRepo = &mockLandtoken.CollectionRepo{}
	t.bidRepo = &mockBid.Repo{}
	t.transactionRepo = &mockTransaction.Repo{}
	t.auditRepo = &mockAudit.Repo{}
	t.priceHistoryUC = &mockPricehistory.UseCase{}
	t.subject = t.newSubject(reconcile.LeniencePolicy{}, t.machine)
}

func (t *testsuite) newSubject(lenience reconcile.LeniencePolicy, oracle reconcile.Oracle) Service {
	return New(&ReconcileUseCaseCfg{
		LandTokenRepo:   t.landTokenRepo,
		CollectionRepo:  t.collectionRepo,
		BidRepo:         t.bidRepo,
		TransactionRepo: t.transactionRepo,
		AuditRepo:       t.auditRepo,
		PriceHistoryUC:  t.priceHistoryUC,
		Marketplace:     t.machine,
		Oracle:          oracle,
		Lenience:        lenience,
	})
}

func (t *testsuite) cachedToken(owner domain.Address, source domain.OwnershipSource) *landtoken.LandToken {
	return &landtoken.LandToken{
		ChainId:         testToken.ChainId,
		ContractAddress: testToken.ContractAddress,
		TokenId:         testToken.TokenId,
		Owner:           owner.ToLower(),
		OwnerSource:     source,
	}
}

func (t *testsuite) activeBid(id string, bidder domain.Address, amount *big.Int) *bid.Bid {
	return &bid.Bid{
		Id:              id,
		ChainId:         testToken.ChainId,
		ContractAddress: testToken.ContractAddress,
		TokenId:         testToken.TokenId,
		Bidder:          bidder.ToLower(),
		Amount:          amount.String(),
		Status:          bid.StatusActive,
		CreatedAt:       time.Now(),
	}
}

func (t *testsuite) expectAnalytics() {
	t.priceHistoryUC.
		On("RecordEvent", mockCtx, testToken, mock.Anything, mock.Anything, mock.Anything).
		Return(&pricehistory.Entry{}, nil)
	t.priceHistoryUC.
		On("RecalcFloorPrice", mockCtx, testToken).
		Return(float64(0), nil)
	t.priceHistoryUC.
		On("RecalcAveragePrice", mockCtx, testToken).
		Return(float64(0), nil)
}

func (t *testsuite) TestPlaceBid() {
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)
	t.bidRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.bidRepo.
		On("SetStatusByToken", mockCtx, testToken, bid.StatusActive, bid.StatusOutbid, mock.Anything).
		Return(nil)
	t.transactionRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.expectAnalytics()

	res, err := t.subject.PlaceBid(mockCtx, testToken, bidderX, eth(8).String())
	t.Require().NoError(err)
	t.NotEmpty(res.TxHash)
	t.Equal(bid.StatusActive, res.Bid.Status)
	t.Equal(bidderX.ToLower(), res.Bid.Bidder)
	t.Equal(domain.OwnershipSourceDatabase, res.OwnerSource)
	t.False(res.Bypassed)

	hb, err := t.machine.HighestBid(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(bidderX.ToLower(), hb.Bidder)
	t.Equal(eth(8), hb.Amount)
}

func (t *testsuite) TestPlaceBidSelfBidRejected() {
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)

	_, err := t.subject.PlaceBid(mockCtx, testToken, ownerZ, eth(8).String())
	t.Equal(domain.ErrSelfBid, err)
	t.bidRepo.AssertNotCalled(t.T(), "Create", mockCtx, mock.Anything)
}

func (t *testsuite) TestPlaceBidTooLow() {
	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderY, eth(12))
	t.Require().NoError(err)

	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)

	_, err = t.subject.PlaceBid(mockCtx, testToken, bidderX, eth(8).String())
	t.Equal(auction.ErrBidTooLow, err)
}

func (t *testsuite) TestPlaceBidLenienceBypass() {
	// ownership cannot be resolved anywhere and the ledger read times out;
	// the policy lets the bid through and writes the audit trail
	subject := t.newSubject(reconcile.LeniencePolicy{Enabled: true}, &erroringOracle{err: domain.ErrLedgerTimeout})

	t.landTokenRepo.On("FindOne", mockCtx, testToken).Return(nil, domain.ErrNotFound)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(nil, domain.ErrNotFound)
	t.bidRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.bidRepo.
		On("SetStatusByToken", mockCtx, testToken, bid.StatusActive, bid.StatusOutbid, mock.Anything).
		Return(nil)
	t.transactionRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.auditRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.expectAnalytics()

	res, err := subject.PlaceBid(mockCtx, testToken, bidderX, eth(8).String())
	t.Require().NoError(err)
	t.True(res.Bypassed)
	t.Equal(string(audit.BypassReasonConnectivity), res.BypassReason)
	t.auditRepo.AssertCalled(t.T(), "Insert", mockCtx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Reason == audit.BypassReasonConnectivity && e.Operation == "place_bid"
	}))
}

func (t *testsuite) TestPlaceBidInvalidAmount() {
	_, err := t.subject.PlaceBid(mockCtx, testToken, bidderX, "not-a-number")
	t.Equal(domain.ErrInvalidAmount, err)

	_, err = t.subject.PlaceBid(mockCtx, testToken, bidderX, "-5")
	t.Equal(domain.ErrInvalidAmount, err)
}

func (t *testsuite) TestAcceptBid() {
	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderY, eth(12))
	t.Require().NoError(err)

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceBlockchain), nil)
	t.bidRepo.On("Patch", mockCtx, "bid-1", mock.Anything).Return(nil)
	t.bidRepo.
		On("SetStatusByToken", mockCtx, testToken, bid.StatusActive, bid.StatusCancelled, "bid-1").
		Return(nil)
	t.transactionRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.landTokenRepo.
		On("SetOwner", mockCtx, testToken, bidderY.ToLower(), domain.OwnershipSourceBlockchain).
		Return(nil)
	t.landTokenRepo.On("Patch", mockCtx, testToken, mock.Anything).Return(nil)
	t.expectAnalytics()

	res, err := t.subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	t.Require().NoError(err)
	t.Equal(bid.StatusAccepted, res.Bid.Status)
	t.Require().NotNil(res.Settlement)
	t.Equal(eth(12), res.Settlement.Price)
	t.Equal(auction.CalcFee(eth(12), 250), res.Settlement.Fee)
	t.Equal(eth(12), new(big.Int).Add(res.Settlement.SellerProceeds, res.Settlement.Fee))
	t.False(res.Bypassed)

	owner, err := t.machine.OwnerOf(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(bidderY.ToLower(), owner)
}

func (t *testsuite) TestAcceptBidAutoHealsStaleCache() {
	// the mirror says someone else owns the token, the ledger says the caller
	// does: validation resolves against the ledger and repairs the mirror
	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderY, eth(12))
	t.Require().NoError(err)

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(staleA, domain.OwnershipSourceDatabase), nil)

	healed := make(chan struct{}, 1)
	t.landTokenRepo.
		On("SetOwner", mock.Anything, testToken, ownerZ.ToLower(), domain.OwnershipSourceBlockchain).
		Run(func(args mock.Arguments) { healed <- struct{}{} }).
		Return(nil)

	t.bidRepo.On("Patch", mockCtx, "bid-1", mock.Anything).Return(nil)
	t.bidRepo.
		On("SetStatusByToken", mockCtx, testToken, bid.StatusActive, bid.StatusCancelled, "bid-1").
		Return(nil)
	t.transactionRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.landTokenRepo.
		On("SetOwner", mockCtx, testToken, bidderY.ToLower(), domain.OwnershipSourceBlockchain).
		Return(nil)
	t.landTokenRepo.On("Patch", mockCtx, testToken, mock.Anything).Return(nil)
	t.expectAnalytics()

	res, err := t.subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	t.Require().NoError(err)
	t.Equal(domain.OwnershipSourceBlockchain, res.OwnerSource)

	select {
	case <-healed:
	case <-time.After(time.Second):
		t.Fail("cache heal was never scheduled")
	}
}

func (t *testsuite) TestAcceptBidNotOwner() {
	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderY, eth(12))
	t.Require().NoError(err)

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)

	_, err = t.subject.AcceptBid(mockCtx, "bid-1", bidderX)
	t.Equal(domain.ErrNotOwner, err)
}

func (t *testsuite) TestAcceptBidSelfTrade() {
	// the caller owns the token and placed the bid themselves
	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(bidderY, domain.OwnershipSourceDatabase), nil)

	_, err := t.subject.AcceptBid(mockCtx, "bid-1", bidderY)
	t.Equal(domain.ErrSelfTrade, err)
}

func (t *testsuite) TestAcceptBidNonOwnerMatchingBidderGetsNotOwner() {
	// a caller who is not the owner is rejected as NotOwner even when their
	// address matches the bid's bidder
	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)

	_, err := t.subject.AcceptBid(mockCtx, "bid-1", bidderY)
	t.Equal(domain.ErrNotOwner, err)
}

func (t *testsuite) TestAcceptBidNotActive() {
	b := t.activeBid("bid-1", bidderY, eth(12))
	b.Status = bid.StatusWithdrawn
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)

	_, err := t.subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	t.Equal(domain.ErrBidNotActive, err)
}

func (t *testsuite) TestAcceptBidDuplicateSaleGuard() {
	settledAt := time.Now().Add(-10 * time.Minute)
	txHash := domain.TxHash("0xprior")
	prior := t.activeBid("bid-0", bidderX, eth(10))
	prior.Status = bid.StatusAccepted
	prior.AcceptedTxHash = &txHash
	prior.AcceptedAt = &settledAt

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(prior, nil)

	_, err := t.subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	dup, ok := err.(*domain.DuplicateSaleError)
	t.Require().True(ok)
	t.Equal(txHash, dup.TxHash)
	t.Equal(settledAt, dup.SettledAt)
}

func (t *testsuite) TestAcceptBidRetrySettledBidReportsPriorSale() {
	// re-submitting the acceptance of a bid that already settled inside the
	// window reports the original settlement, not a bid-state rejection
	settledAt := time.Now().Add(-10 * time.Minute)
	txHash := domain.TxHash("0xsettled")
	b := t.activeBid("bid-1", bidderY, eth(12))
	b.Status = bid.StatusAccepted
	b.AcceptedTxHash = &txHash
	b.AcceptedAt = &settledAt

	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(b, nil)

	_, err := t.subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	dup, ok := err.(*domain.DuplicateSaleError)
	t.Require().True(ok)
	t.Equal(txHash, dup.TxHash)
	t.Equal(settledAt, dup.SettledAt)
}

func (t *testsuite) TestAcceptBidLenienceBypass() {
	// ownership is unknown because the ledger is unreachable and no cache or
	// fallback record exists; the policy lets the settlement through with an
	// audit trail
	subject := t.newSubject(reconcile.LeniencePolicy{Enabled: true}, &erroringOracle{err: domain.ErrLedgerTimeout})

	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderY, eth(12))
	t.Require().NoError(err)

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.On("FindOne", mockCtx, testToken).Return(nil, domain.ErrNotFound)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(nil, domain.ErrNotFound)
	t.auditRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	t.bidRepo.On("Patch", mockCtx, "bid-1", mock.Anything).Return(nil)
	t.bidRepo.
		On("SetStatusByToken", mockCtx, testToken, bid.StatusActive, bid.StatusCancelled, "bid-1").
		Return(nil)
	t.transactionRepo.On("Create", mockCtx, mock.Anything).Return(nil)
	t.landTokenRepo.
		On("SetOwner", mockCtx, testToken, bidderY.ToLower(), domain.OwnershipSourceBlockchain).
		Return(nil)
	t.landTokenRepo.On("Patch", mockCtx, testToken, mock.Anything).Return(nil)
	t.expectAnalytics()

	res, err := subject.AcceptBid(mockCtx, "bid-1", ownerZ)
	t.Require().NoError(err)
	t.True(res.Bypassed)
	t.Equal(string(audit.BypassReasonConnectivity), res.BypassReason)
	t.auditRepo.AssertCalled(t.T(), "Insert", mockCtx, mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Reason == audit.BypassReasonConnectivity && e.Operation == "accept_bid"
	}))
}

func (t *testsuite) TestLenienceNeverBypassesOwnershipMismatch() {
	// the cache has an answer and it is not the caller: a connectivity outage
	// must not turn that into a bypass
	subject := t.newSubject(reconcile.LeniencePolicy{Enabled: true}, &erroringOracle{err: domain.ErrLedgerTimeout})

	b := t.activeBid("bid-1", bidderY, eth(12))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.
		On("FindRecentAccepted", mockCtx, testToken, DefaultDuplicateSaleWindow).
		Return(nil, domain.ErrNotFound)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(ownerZ, domain.OwnershipSourceDatabase), nil)

	_, err := subject.AcceptBid(mockCtx, "bid-1", bidderX)
	t.Equal(domain.ErrNotOwner, err)
	t.auditRepo.AssertNotCalled(t.T(), "Insert", mockCtx, mock.Anything)
}

func (t *testsuite) TestWithdrawBid() {
	_, err := t.machine.PlaceBid(mockCtx, testToken, bidderX, eth(8))
	t.Require().NoError(err)

	b := t.activeBid("bid-1", bidderX, eth(8))
	t.bidRepo.On("FindOne", mockCtx, "bid-1").Return(b, nil)
	t.bidRepo.On("Patch", mockCtx, "bid-1", mock.Anything).Return(nil)

	_, err = t.subject.WithdrawBid(mockCtx, "bid-1", bidderY)
	t.Equal(domain.ErrNotOwner, err)

	txHash, err := t.subject.WithdrawBid(mockCtx, "bid-1", bidderX)
	t.Require().NoError(err)
	t.NotEmpty(txHash)

	_, err = t.machine.HighestBid(mockCtx, testToken)
	t.Equal(auction.ErrNoBid, err)
}

func (t *testsuite) TestResolveOwnerCollectionFallback() {
	t.landTokenRepo.On("FindOne", mockCtx, testToken).Return(nil, domain.ErrNotFound)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(&landtoken.Collection{Creator: bidderX.ToLower()}, nil)

	res, err := t.subject.ResolveOwner(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(bidderX.ToLower(), res.Owner)
	t.Equal(domain.OwnershipSourceFallback, res.Source)
	t.False(res.LedgerChecked)
}

func (t *testsuite) TestResolveOwnerLedgerDirect() {
	t.landTokenRepo.On("FindOne", mockCtx, testToken).Return(nil, domain.ErrNotFound)
	t.collectionRepo.
		On("FindOne", mockCtx, testToken.ChainId, testToken.ContractAddress).
		Return(nil, domain.ErrNotFound)

	res, err := t.subject.ResolveOwner(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(ownerZ.ToLower(), res.Owner)
	t.Equal(domain.OwnershipSourceBlockchain, res.Source)
	t.True(res.LedgerChecked)
}

func (t *testsuite) TestResolveOwnerCrossChecksLedgerSourcedCache() {
	// ledger-sourced cache record diverges from the ledger: the resolver
	// returns the ledger answer and schedules a repair
	healed := make(chan struct{}, 1)
	t.landTokenRepo.
		On("FindOne", mockCtx, testToken).
		Return(t.cachedToken(staleA, domain.OwnershipSourceBlockchain), nil)
	t.landTokenRepo.
		On("SetOwner", mock.Anything, testToken, ownerZ.ToLower(), domain.OwnershipSourceBlockchain).
		Run(func(args mock.Arguments) { healed <- struct{}{} }).
		Return(nil)

	res, err := t.subject.ResolveOwner(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(ownerZ.ToLower(), res.Owner)
	t.True(res.LedgerChecked)

	select {
	case <-healed:
	case <-time.After(time.Second):
		t.Fail("cache heal was never scheduled")
	}
}

func (t *testsuite) TestSyncOwnershipWithBlockchain() {
	t.landTokenRepo.
		On("SetOwner", mockCtx, testToken, ownerZ.ToLower(), domain.OwnershipSourceBlockchain).
		Return(nil)

	owner, err := t.subject.SyncOwnershipWithBlockchain(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(ownerZ.ToLower(), owner)

	// idempotent, a second sync lands on the same owner
	owner, err = t.subject.SyncOwnershipWithBlockchain(mockCtx, testToken)
	t.Require().NoError(err)
	t.Equal(ownerZ.ToLower(), owner)
}
