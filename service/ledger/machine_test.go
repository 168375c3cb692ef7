package ledger

import (
	"math/big"
	"testing"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/stretchr/testify/suite"
)

var (
	ownerZ    = domain.Address("0xaaa0000000000000000000000000000000000001")
	bidderX   = domain.Address("0xbbb0000000000000000000000000000000000002")
	bidderY   = domain.Address("0xccc0000000000000000000000000000000000003")
	platform  = domain.Address("0xfee0000000000000000000000000000000000009")
	testToken = landtoken.Id{ChainId: 1, ContractAddress: "0xland", TokenId: "7"}
)

func eth(n int64) *big.Int {
	wei := new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(17), nil))
	return wei // n * 0.1 eth
}

type machineSuite struct {
	suite.Suite

	ctx ctx.Ctx
	m   *Machine
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(machineSuite))
}

func (s *machineSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.m = NewMachine(&MachineCfg{FeeBps: 250, FeeRecipient: platform})
	s.m.Mint(testToken, ownerZ)
	s.m.SetApproval(testToken, true)
}

func (s *machineSuite) TestMonotonicBidding() {
	// X bids 0.8, Y outbids with 1.2, X is refunded exactly once
	_, err := s.m.PlaceBid(s.ctx, testToken, bidderX, eth(8))
	s.Require().NoError(err)

	hb, err := s.m.HighestBid(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(bidderX, hb.Bidder)
	s.Equal(eth(8), hb.Amount)

	// equal or lower amounts are rejected
	_, err = s.m.PlaceBid(s.ctx, testToken, bidderY, eth(8))
	s.Equal(auction.ErrBidTooLow, err)
	_, err = s.m.PlaceBid(s.ctx, testToken, bidderY, eth(5))
	s.Equal(auction.ErrBidTooLow, err)

	_, err = s.m.PlaceBid(s.ctx, testToken, bidderY, eth(12))
	s.Require().NoError(err)

	hb, err = s.m.HighestBid(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(bidderY, hb.Bidder)
	s.Equal(eth(12), hb.Amount)

	s.Equal(eth(8), s.m.BalanceOf(bidderX))
	s.Equal(1, s.m.RefundCount(bidderX))
	s.Equal(0, s.m.RefundCount(bidderY))
}

func (s *machineSuite) TestSelfBidRejected() {
	_, err := s.m.PlaceBid(s.ctx, testToken, ownerZ, eth(10))
	s.Equal(domain.ErrSelfBid, err)
}

func (s *machineSuite) TestAcceptBidSplitsFunds() {
	_, err := s.m.PlaceBid(s.ctx, testToken, bidderY, eth(12))
	s.Require().NoError(err)

	settlement, err := s.m.AcceptBid(s.ctx, testToken, ownerZ)
	s.Require().NoError(err)

	// fee = floor(1.2 eth * 250 / 10000)
	wantFee := auction.CalcFee(eth(12), 250)
	s.Equal(wantFee, settlement.Fee)
	s.Equal(new(big.Int).Sub(eth(12), wantFee), settlement.SellerProceeds)
	s.Equal(eth(12), new(big.Int).Add(settlement.SellerProceeds, settlement.Fee))

	// buyer is the new owner, funds are credited
	owner, err := s.m.OwnerOf(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(bidderY.ToLower(), owner)
	s.Equal(settlement.SellerProceeds, s.m.BalanceOf(ownerZ))
	s.Equal(wantFee, s.m.BalanceOf(platform))

	// bid is cleared
	_, err = s.m.HighestBid(s.ctx, testToken)
	s.Equal(auction.ErrNoBid, err)
}

func (s *machineSuite) TestAcceptBidOnlyByOwner() {
	_, err := s.m.PlaceBid(s.ctx, testToken, bidderY, eth(12))
	s.Require().NoError(err)

	_, err = s.m.AcceptBid(s.ctx, testToken, bidderX)
	s.Equal(domain.ErrNotOwner, err)
}

func (s *machineSuite) TestAcceptBidRequiresApproval() {
	_, err := s.m.PlaceBid(s.ctx, testToken, bidderY, eth(12))
	s.Require().NoError(err)

	s.m.SetApproval(testToken, false)
	_, err = s.m.AcceptBid(s.ctx, testToken, ownerZ)
	s.Equal(auction.ErrNotApproved, err)
}

func (s *machineSuite) TestWithdrawBid() {
	_, err := s.m.PlaceBid(s.ctx, testToken, bidderX, eth(8))
	s.Require().NoError(err)

	// only the highest bidder may withdraw
	_, err = s.m.WithdrawBid(s.ctx, testToken, bidderY)
	s.Equal(domain.ErrNotOwner, err)

	_, err = s.m.WithdrawBid(s.ctx, testToken, bidderX)
	s.Require().NoError(err)
	s.Equal(eth(8), s.m.BalanceOf(bidderX))
	s.Equal(1, s.m.RefundCount(bidderX))

	_, err = s.m.HighestBid(s.ctx, testToken)
	s.Equal(auction.ErrNoBid, err)
}

func (s *machineSuite) TestCreateListing() {
	_, err := s.m.CreateListing(s.ctx, testToken, bidderX, eth(10))
	s.Equal(domain.ErrNotOwner, err)

	_, err = s.m.CreateListing(s.ctx, testToken, ownerZ, big.NewInt(0))
	s.Equal(auction.ErrInvalidPrice, err)

	s.m.SetApproval(testToken, false)
	_, err = s.m.CreateListing(s.ctx, testToken, ownerZ, eth(10))
	s.Equal(auction.ErrNotApproved, err)

	s.m.SetApproval(testToken, true)
	_, err = s.m.CreateListing(s.ctx, testToken, ownerZ, eth(10))
	s.Require().NoError(err)

	listing, err := s.m.GetListing(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(auction.ListingStateListed, listing.State)
	s.Equal(eth(10), listing.Price)
}

func (s *machineSuite) TestPurchaseRefundsExcess() {
	_, err := s.m.CreateListing(s.ctx, testToken, ownerZ, eth(10))
	s.Require().NoError(err)

	_, err = s.m.Purchase(s.ctx, testToken, bidderX, eth(9))
	s.Equal(auction.ErrInsufficientPayment, err)

	settlement, err := s.m.Purchase(s.ctx, testToken, bidderX, eth(13))
	s.Require().NoError(err)
	s.Equal(eth(10), settlement.Price)

	// excess 0.3 eth refunded to buyer
	s.Equal(eth(3), s.m.BalanceOf(bidderX))

	owner, err := s.m.OwnerOf(s.ctx, testToken)
	s.Require().NoError(err)
	s.Equal(bidderX.ToLower(), owner)

	// listing is settled, a second purchase reports the sale
	_, err = s.m.Purchase(s.ctx, testToken, bidderY, eth(13))
	s.Equal(auction.ErrAlreadySold, err)
}

func (s *machineSuite) TestPurchaseRefundsPendingBid() {
	_, err := s.m.CreateListing(s.ctx, testToken, ownerZ, eth(10))
	s.Require().NoError(err)
	_, err = s.m.PlaceBid(s.ctx, testToken, bidderY, eth(6))
	s.Require().NoError(err)

	_, err = s.m.Purchase(s.ctx, testToken, bidderX, eth(10))
	s.Require().NoError(err)

	s.Equal(eth(6), s.m.BalanceOf(bidderY))
	s.Equal(1, s.m.RefundCount(bidderY))
}
