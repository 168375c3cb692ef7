package bid

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/auction"
	"github.com/platz/goapi/domain/landtoken"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusOutbid    Status = "OUTBID"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// Bid is the cache record of an escrowed bid. Records are never hard-deleted,
// they stay around for audit and analytics.
type Bid struct {
	Id              string         `json:"id" bson:"_id"`
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
	Bidder          domain.Address `json:"bidder" bson:"bidder"`
	// Amount in wei, exact
	Amount string `json:"amount" bson:"amount"`
	// AmountInNative for analytics aggregation
	AmountInNative float64        `json:"amountInNative" bson:"amountInNative"`
	Status         Status         `json:"status" bson:"status"`
	TxHash         domain.TxHash  `json:"txHash" bson:"txHash"`
	AcceptedTxHash *domain.TxHash `json:"acceptedTxHash,omitempty" bson:"acceptedTxHash"`
	AcceptedAt     *time.Time     `json:"acceptedAt,omitempty" bson:"acceptedAt"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (b *Bid) TokenRef() landtoken.Id {
	return landtoken.Id{
		ChainId:         b.ChainId,
		ContractAddress: b.ContractAddress,
		TokenId:         b.TokenId,
	}
}

type PatchableBid struct {
	Status         *Status        `bson:"status"`
	AcceptedTxHash *domain.TxHash `bson:"acceptedTxHash"`
	AcceptedAt     *time.Time     `bson:"acceptedAt"`
	UpdatedAt      *time.Time     `bson:"updatedAt"`
}

type FindAllOptions struct {
	Token         *landtoken.Id
	Bidder        *domain.Address
	Statuses      []Status
	CreatedAfter  *time.Time
	AcceptedAfter *time.Time
	SortBy        *string
	SortDir       *domain.SortDir
	Offset        *int32
	Limit         *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithToken(token landtoken.Id) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		token.ContractAddress = token.ContractAddress.ToLower()
		options.Token = &token
		return nil
	}
}

func WithBidder(bidder domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Bidder = bidder.ToLowerPtr()
		return nil
	}
}

func WithStatuses(statuses ...Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Statuses = statuses
		return nil
	}
}

func WithCreatedAfter(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CreatedAfter = &t
		return nil
	}
}

func WithAcceptedAfter(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.AcceptedAfter = &t
		return nil
	}
}

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Bid, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Bid, error)
	Create(c ctx.Ctx, b *Bid) error
	Patch(c ctx.Ctx, id string, value PatchableBid) error
	// FindActiveBid returns the highest currently-active bid on a token
	FindActiveBid(c ctx.Ctx, token landtoken.Id) (*Bid, error)
	// FindRecentAccepted returns the most recent bid accepted on the token
	// within the trailing window, the duplicate-settlement guard reads this
	FindRecentAccepted(c ctx.Ctx, token landtoken.Id, window time.Duration) (*Bid, error)
	// SetStatusByToken transitions every bid on the token currently in status
	// `from` to status `to`, excluding the bid with id `excludeId` ("" for none)
	SetStatusByToken(c ctx.Ctx, token landtoken.Id, from, to Status, excludeId string) error
}

// PlaceBidResult is the structured outcome of a bid placement.
type PlaceBidResult struct {
	Bid          *Bid                   `json:"bid"`
	TxHash       domain.TxHash          `json:"txHash"`
	OwnerSource  domain.OwnershipSource `json:"ownerSource"`
	Bypassed     bool                   `json:"bypassed"`
	BypassReason string                 `json:"bypassReason,omitempty"`
}

// AcceptBidResult is the structured outcome of a settlement.
type AcceptBidResult struct {
	Bid          *Bid                   `json:"bid"`
	Settlement   *auction.Settlement    `json:"settlement"`
	OwnerSource  domain.OwnershipSource `json:"ownerSource"`
	Bypassed     bool                   `json:"bypassed"`
	BypassReason string                 `json:"bypassReason,omitempty"`
}

// UseCase is the reconciliation and validation service: it decides whether a
// placement or acceptance is valid right now against the best available
// ownership signal, repairs the cache on divergence, and guards settlement.
type UseCase interface {
	PlaceBid(c ctx.Ctx, token landtoken.Id, bidder domain.Address, amount string) (*PlaceBidResult, error)
	AcceptBid(c ctx.Ctx, bidId string, caller domain.Address) (*AcceptBidResult, error)
	WithdrawBid(c ctx.Ctx, bidId string, caller domain.Address) (domain.TxHash, error)
}
