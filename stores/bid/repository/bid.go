package repository

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/bid"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type bidRepoImpl struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) bid.Repo {
	return &bidRepoImpl{q}
}

func tokenQuery(token landtoken.Id) bson.M {
	return bson.M{
		"chainId":         token.ChainId,
		"contractAddress": token.ContractAddress.ToLower(),
		"tokenID":         token.TokenId,
	}
}

func makeQuery(options bid.FindAllOptions) bson.M {
	qry := bson.M{}

	if options.Token != nil {
		for k, v := range tokenQuery(*options.Token) {
			qry[k] = v
		}
	}

	if options.Bidder != nil {
		qry["bidder"] = *options.Bidder
	}

	if len(options.Statuses) > 0 {
		qry["status"] = bson.M{"$in": options.Statuses}
	}

	if options.CreatedAfter != nil {
		qry["createdAt"] = bson.M{"$gt": *options.CreatedAfter}
	}

	if options.AcceptedAfter != nil {
		qry["acceptedAt"] = bson.M{"$gt": *options.AcceptedAfter}
	}

	return qry
}

func (im *bidRepoImpl) FindOne(ctx ctx.Ctx, id string) (*bid.Bid, error) {
	res := bid.Bid{}
	err := im.q.FindOne(ctx, domain.TableBids, bson.M{"_id": id}, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *bidRepoImpl) FindAll(ctx ctx.Ctx, opts ...bid.FindAllOptionsFunc) ([]*bid.Bid, error) {
	options, err := bid.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("bid.GetFindAllOptions failed")
		return nil, err
	}
	qry := makeQuery(options)

	offset := int(0)
	limit := int(0)
	sort := "-createdAt"
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*bid.Bid{}
	if err := im.q.Search(ctx, domain.TableBids, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *bidRepoImpl) Create(ctx ctx.Ctx, b *bid.Bid) error {
	b.ContractAddress = b.ContractAddress.ToLower()
	b.Bidder = b.Bidder.ToLower()
	if err := im.q.Insert(ctx, domain.TableBids, b); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithFields(log.Fields{
			"err": err,
			"bid": *b,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *bidRepoImpl) Patch(ctx ctx.Ctx, id string, value bid.PatchableBid) error {
	updater, err := mongoclient.MakeBsonM(value)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": value,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableBids, bson.M{"_id": id}, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"id":      id,
			"updater": updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

func (im *bidRepoImpl) FindActiveBid(ctx ctx.Ctx, token landtoken.Id) (*bid.Bid, error) {
	qry := tokenQuery(token)
	qry["status"] = bid.StatusActive

	res := []*bid.Bid{}
	// the contract enforces monotonic bids, the newest active bid is the highest
	if err := im.q.Search(ctx, domain.TableBids, 0, 1, "-createdAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *bidRepoImpl) FindRecentAccepted(ctx ctx.Ctx, token landtoken.Id, window time.Duration) (*bid.Bid, error) {
	qry := tokenQuery(token)
	qry["status"] = bid.StatusAccepted
	qry["acceptedAt"] = bson.M{"$gt": time.Now().Add(-window)}

	res := []*bid.Bid{}
	if err := im.q.Search(ctx, domain.TableBids, 0, 1, "-acceptedAt", qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return res[0], nil
}

func (im *bidRepoImpl) SetStatusByToken(ctx ctx.Ctx, token landtoken.Id, from, to bid.Status, excludeId string) error {
	qry := tokenQuery(token)
	qry["status"] = from
	if excludeId != "" {
		qry["_id"] = bson.M{"$ne": excludeId}
	}

	now := time.Now()
	updater := bson.M{"status": to, "updatedAt": now}
	err := im.q.Patch(ctx, domain.TableBids, qry, updater, query.WithPatchMany(true))
	if err == query.ErrNotFound {
		// nothing to transition
		return nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
			"to":    to,
		}).Error("failed to q.Patch")
		return err
	}
	return nil
}
