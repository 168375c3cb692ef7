package pricehistory

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventType string

const (
	EventTypeListing      EventType = "LISTING"
	EventTypeSale         EventType = "SALE"
	EventTypeBid          EventType = "BID"
	EventTypeBidAccepted  EventType = "BID_ACCEPTED"
	EventTypeFloorPrice   EventType = "FLOOR_PRICE"
	EventTypeAveragePrice EventType = "AVERAGE_PRICE"
)

// SettlementEventTypes are the event types counted into sales volume.
var SettlementEventTypes = []EventType{EventTypeSale, EventTypeBidAccepted}

// Entry is one append-only price event. Collection-level events (floor,
// average) carry an empty TokenId.
type Entry struct {
	ObjectId        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ChainId         domain.ChainId     `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address     `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId     `json:"tokenId" bson:"tokenID"`
	EventType       EventType          `json:"eventType" bson:"eventType"`
	Price           float64            `json:"price" bson:"price"`
	PreviousPrice   *float64           `json:"previousPrice,omitempty" bson:"previousPrice"`
	PercentChange   *float64           `json:"percentChange,omitempty" bson:"percentChange"`
	BidId           *string            `json:"bidId,omitempty" bson:"bidId"`
	TxHash          *domain.TxHash     `json:"txHash,omitempty" bson:"txHash"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// Refs carries optional bid/transaction references for an event.
type Refs struct {
	BidId  *string
	TxHash *domain.TxHash
}

type Stats24h struct {
	SaleCount      int      `json:"saleCount"`
	Volume         float64  `json:"volume"`
	FloorPrice     float64  `json:"floorPrice"`
	FloorChangePct *float64 `json:"floorChangePct,omitempty"`
	TopOffer       *float64 `json:"topOffer,omitempty"`
}

type FindAllOptions struct {
	ChainId         *domain.ChainId
	ContractAddress *domain.Address
	TokenId         *domain.TokenId
	EventTypes      []EventType
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	SortBy          *string
	SortDir         *domain.SortDir
	Limit           *int32
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

func WithCollection(chainId domain.ChainId, address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		options.ContractAddress = address.ToLowerPtr()
		return nil
	}
}

func WithToken(token landtoken.Id) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &token.ChainId
		options.ContractAddress = token.ContractAddress.ToLowerPtr()
		options.TokenId = &token.TokenId
		return nil
	}
}

func WithEventTypes(types ...EventType) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.EventTypes = types
		return nil
	}
}

func WithCreatedAfter(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CreatedAfter = &t
		return nil
	}
}

func WithCreatedBefore(t time.Time) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.CreatedBefore = &t
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
	// Insert appends an entry. Entries are never updated or removed.
	Insert(c ctx.Ctx, e *Entry) error
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Entry, error)
	// FindLatest returns the most recent entry matching the options
	FindLatest(c ctx.Ctx, opts ...FindAllOptionsFunc) (*Entry, error)
}

// UseCase derives market statistics from the append-only event stream. It is
// never authoritative for anything transactional.
type UseCase interface {
	RecordEvent(c ctx.Ctx, token landtoken.Id, eventType EventType, price float64, refs Refs) (*Entry, error)
	RecalcFloorPrice(c ctx.Ctx, token landtoken.Id) (float64, error)
	RecalcAveragePrice(c ctx.Ctx, token landtoken.Id) (float64, error)
	Get24hStats(c ctx.Ctx, token landtoken.Id) (*Stats24h, error)
}
