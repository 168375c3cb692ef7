package transaction

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
)

type Type string

const (
	TypePurchase    Type = "PURCHASE"
	TypeBidAccepted Type = "BID_ACCEPTED"
	TypeBidPlaced   Type = "BID_PLACED"
)

// Transaction is the bookkeeping record of a settled ledger transaction,
// created exactly once per tx hash and immutable thereafter. The unique
// tx hash index is the idempotency key against duplicate settlement writes.
type Transaction struct {
	TxHash          domain.TxHash  `json:"txHash" bson:"_id"`
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
	From            domain.Address `json:"from" bson:"from"`
	To              domain.Address `json:"to" bson:"to"`
	// Price in wei, exact
	Price         string    `json:"price" bson:"price"`
	PriceInNative float64   `json:"priceInNative" bson:"priceInNative"`
	Type          Type      `json:"type" bson:"type"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	Token        *landtoken.Id
	Types        []Type
	CreatedAfter *time.Time
	SortBy       *string
	SortDir      *domain.SortDir
	Limit        *int32
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

func WithTypes(types ...Type) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Types = types
		return nil
	}
}

func WithCreatedAfter(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CreatedAfter = &t
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

func WithLimit(limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	// Create returns domain.ErrConflict when the tx hash was already recorded
	Create(c ctx.Ctx, t *Transaction) error
	FindOne(c ctx.Ctx, txHash domain.TxHash) (*Transaction, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Transaction, error)
}
