package landtoken

import (
	"fmt"
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
)

type Id struct {
	ChainId         domain.ChainId `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId `json:"tokenId" bson:"tokenID"`
}

func (i *Id) ToString() string {
	return fmt.Sprintf("%v_%s_%s", i.ChainId, i.ContractAddress, i.TokenId)
}

// LandToken is the off-chain mirror of a land parcel token. The Owner field
// is advisory only, the ledger stays authoritative.
type LandToken struct {
	ChainId         domain.ChainId         `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address         `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId         `json:"tokenId" bson:"tokenID"`
	Owner           domain.Address         `json:"owner" bson:"owner"`
	OwnerSource     domain.OwnershipSource `json:"ownerSource" bson:"ownerSource"`
	OwnerSyncedAt   *time.Time             `json:"ownerSyncedAt,omitempty" bson:"ownerSyncedAt"`
	Price           *float64               `json:"price" bson:"price"`
	IsListed        bool                   `json:"isListed" bson:"isListed"`
	ListedAt        *time.Time             `json:"listedAt,omitempty" bson:"listedAt"`
	SoldAt          *time.Time             `json:"soldAt,omitempty" bson:"soldAt"`
	BlockNumber     domain.BlockNumber     `json:"blockNumber" bson:"blockNumber"`
	CreatedAt       time.Time              `json:"createdAt,omitempty" bson:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt,omitempty" bson:"updatedAt"`
}

func (t *LandToken) ToId() *Id {
	return &Id{
		ChainId:         t.ChainId,
		ContractAddress: t.ContractAddress,
		TokenId:         t.TokenId,
	}
}

type PatchableLandToken struct {
	Owner         *domain.Address         `bson:"owner"`
	OwnerSource   *domain.OwnershipSource `bson:"ownerSource"`
	OwnerSyncedAt *time.Time              `bson:"ownerSyncedAt"`
	Price         *float64                `bson:"price"`
	IsListed      *bool                   `bson:"isListed"`
	ListedAt      *time.Time              `bson:"listedAt"`
	SoldAt        *time.Time              `bson:"soldAt"`
	UpdatedAt     *time.Time              `bson:"updatedAt"`
}

// Collection is the contract-level record of a land listing. Its Creator is
// the collection-level fallback owner used when no per-token record exists.
type Collection struct {
	ChainId      domain.ChainId `json:"chainId" bson:"chainId"`
	Address      domain.Address `json:"address" bson:"address"`
	Creator      domain.Address `json:"creator" bson:"creator"`
	ListingPrice *float64       `json:"listingPrice" bson:"listingPrice"`
	IsListed     bool           `json:"isListed" bson:"isListed"`
	CreatedAt    time.Time      `json:"createdAt,omitempty" bson:"createdAt"`
}

type FindAllOptions struct {
	ChainId         *domain.ChainId
	ContractAddress *domain.Address
	Owner           *domain.Address
	IsListed        *bool
	SortBy          *string
	SortDir         *domain.SortDir
	Offset          *int32
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

func WithChainId(chainId domain.ChainId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ChainId = &chainId
		return nil
	}
}

func WithContractAddress(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ContractAddress = address.ToLowerPtr()
		return nil
	}
}

func WithOwner(address domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Owner = address.ToLowerPtr()
		return nil
	}
}

func WithIsListed(isListed bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.IsListed = &isListed
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
	FindOne(c ctx.Ctx, id Id) (*LandToken, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]*LandToken, error)
	Create(c ctx.Ctx, t *LandToken) error
	Patch(c ctx.Ctx, id Id, value PatchableLandToken) error
	// SetOwner overwrites the advisory owner mirror. Last writer wins, the
	// ledger re-derives the truth on every sync.
	SetOwner(c ctx.Ctx, id Id, owner domain.Address, source domain.OwnershipSource) error
}

type CollectionRepo interface {
	FindOne(c ctx.Ctx, chainId domain.ChainId, address domain.Address) (*Collection, error)
	Upsert(c ctx.Ctx, collection *Collection) error
}
