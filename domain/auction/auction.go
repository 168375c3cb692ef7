package auction

import (
	"errors"
	"math/big"
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
)

// Contract-level failures, mirrored from the on-chain auction contract's
// revert reasons.
var (
	ErrNotApproved         = errors.New("auction contract is not approved to transfer token")
	ErrInvalidPrice        = errors.New("listing price must be positive")
	ErrBidTooLow           = errors.New("bid must exceed current highest bid")
	ErrNoBid               = errors.New("no bid escrowed for token")
	ErrNoListing           = errors.New("token is not listed")
	ErrAlreadySold         = errors.New("listing already settled")
	ErrInsufficientPayment = errors.New("payment below listing price")
)

type ListingState string

const (
	ListingStateNone      ListingState = "no_listing"
	ListingStateListed    ListingState = "listed"
	ListingStateSold      ListingState = "sold"
	ListingStateCancelled ListingState = "cancelled"
)

type BidState string

const (
	BidStateNone      BidState = "no_bid"
	BidStateHasBid    BidState = "has_bid"
	BidStateAccepted  BidState = "accepted"
	BidStateWithdrawn BidState = "withdrawn"
	BidStateOutbid    BidState = "outbid"
)

const (
	// BpsDenominator is the basis-points scale of the marketplace fee
	BpsDenominator = 10000
	// MaxFeeBps caps the configurable marketplace fee at 10%
	MaxFeeBps = 1000
	// DefaultFeeBps is the platform fee applied to settlements, 2.5%
	DefaultFeeBps = 250
)

// CalcFee returns floor(amount * feeBps / 10000), with feeBps capped at
// MaxFeeBps. Integer division floors by construction.
func CalcFee(amount *big.Int, feeBps int64) *big.Int {
	if feeBps > MaxFeeBps {
		feeBps = MaxFeeBps
	}
	if feeBps < 0 {
		feeBps = 0
	}
	fee := new(big.Int).Mul(amount, big.NewInt(feeBps))
	return fee.Div(fee, big.NewInt(BpsDenominator))
}

// SplitProceeds divides a settlement amount into seller proceeds and
// marketplace fee. proceeds + fee == amount always holds.
func SplitProceeds(amount *big.Int, feeBps int64) (proceeds, fee *big.Int) {
	fee = CalcFee(amount, feeBps)
	proceeds = new(big.Int).Sub(amount, fee)
	return proceeds, fee
}

// Listing is the contract's per-token listing state.
type Listing struct {
	Seller domain.Address
	Price  *big.Int
	State  ListingState
}

// EscrowedBid is the contract's current highest bid, funds held in escrow.
type EscrowedBid struct {
	Bidder   domain.Address
	Amount   *big.Int
	PlacedAt time.Time
}

type SettlementKind string

const (
	SettlementKindBidAccepted SettlementKind = "bid_accepted"
	SettlementKindPurchase    SettlementKind = "purchase"
)

// Settlement is the atomic outcome of accepting a bid or a direct purchase:
// token transferred, funds split, bid cleared.
type Settlement struct {
	TxHash         domain.TxHash
	Token          landtoken.Id
	Kind           SettlementKind
	Seller         domain.Address
	Buyer          domain.Address
	Price          *big.Int
	SellerProceeds *big.Int
	Fee            *big.Int
	SettledAt      time.Time
}

// Marketplace abstracts the ledger auction contract. Implementations are the
// chain-backed contract binding and the in-memory state machine model; both
// enforce the same transition rules, the ledger is the only serialization
// point for money movement.
type Marketplace interface {
	CreateListing(c ctx.Ctx, token landtoken.Id, seller domain.Address, price *big.Int) (domain.TxHash, error)
	CancelListing(c ctx.Ctx, token landtoken.Id, seller domain.Address) (domain.TxHash, error)
	PlaceBid(c ctx.Ctx, token landtoken.Id, bidder domain.Address, amount *big.Int) (domain.TxHash, error)
	AcceptBid(c ctx.Ctx, token landtoken.Id, caller domain.Address) (*Settlement, error)
	WithdrawBid(c ctx.Ctx, token landtoken.Id, caller domain.Address) (domain.TxHash, error)
	Purchase(c ctx.Ctx, token landtoken.Id, buyer domain.Address, payment *big.Int) (*Settlement, error)
	GetListing(c ctx.Ctx, token landtoken.Id) (*Listing, error)
	HighestBid(c ctx.Ctx, token landtoken.Id) (*EscrowedBid, error)
}
