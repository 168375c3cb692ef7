package audit

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BypassReason string

const (
	BypassReasonConnectivity BypassReason = "blockchain_connectivity_issues"
)

// Entry records a validation bypass for later review. Append-only.
type Entry struct {
	ObjectId        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	BidId           string             `json:"bidId" bson:"bidId"`
	ChainId         domain.ChainId     `json:"chainId" bson:"chainId"`
	ContractAddress domain.Address     `json:"contractAddress" bson:"contractAddress"`
	TokenId         domain.TokenId     `json:"tokenId" bson:"tokenID"`
	Actor           domain.Address     `json:"actor" bson:"actor"`
	Operation       string             `json:"operation" bson:"operation"`
	Reason          BypassReason       `json:"reason" bson:"reason"`
	Detail          string             `json:"detail,omitempty" bson:"detail"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

type Repo interface {
	Insert(c ctx.Ctx, e *Entry) error
	FindByBidId(c ctx.Ctx, bidId string) ([]*Entry, error)
}
