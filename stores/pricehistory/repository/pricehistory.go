package repository

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/pricehistory"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type priceHistoryRepoImpl struct {
	q query.Mongo
}

func NewPriceHistoryRepo(q query.Mongo) pricehistory.Repo {
	return &priceHistoryRepoImpl{q}
}

func makeQuery(options pricehistory.FindAllOptions) bson.M {
	qry := bson.M{}

	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}

	if options.ContractAddress != nil {
		qry["contractAddress"] = *options.ContractAddress
	}

	if options.TokenId != nil {
		qry["tokenID"] = *options.TokenId
	}

	if len(options.EventTypes) > 0 {
		qry["eventType"] = bson.M{"$in": options.EventTypes}
	}

	createdAtQuery := bson.M{}
	if options.CreatedAfter != nil {
		createdAtQuery["$gt"] = *options.CreatedAfter
	}
	if options.CreatedBefore != nil {
		createdAtQuery["$lt"] = *options.CreatedBefore
	}
	if len(createdAtQuery) > 0 {
		qry["createdAt"] = createdAtQuery
	}

	return qry
}

func (im *priceHistoryRepoImpl) Insert(ctx ctx.Ctx, e *pricehistory.Entry) error {
	e.ContractAddress = e.ContractAddress.ToLower()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if err := im.q.Insert(ctx, domain.TablePriceHistories, e); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"entry": *e,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *priceHistoryRepoImpl) FindAll(ctx ctx.Ctx, opts ...pricehistory.FindAllOptionsFunc) ([]*pricehistory.Entry, error) {
	options, err := pricehistory.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("pricehistory.GetFindAllOptions failed")
		return nil, err
	}
	qry := makeQuery(options)

	limit := int(0)
	sort := "-createdAt"
	if options.Limit != nil {
		limit = int(*options.Limit)
	}
	if options.SortBy != nil {
		sort = *options.SortBy
		if options.SortDir != nil && *options.SortDir == domain.SortDirDesc {
			sort = "-" + sort
		}
	}

	res := []*pricehistory.Entry{}
	if err := im.q.Search(ctx, domain.TablePriceHistories, 0, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}
	return res, nil
}

func (im *priceHistoryRepoImpl) FindLatest(ctx ctx.Ctx, opts ...pricehistory.FindAllOptionsFunc) (*pricehistory.Entry, error) {
	options, err := pricehistory.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("pricehistory.GetFindAllOptions failed")
		return nil, err
	}
	qry := makeQuery(options)

	res := []*pricehistory.Entry{}
	if err := im.q.Search(ctx, domain.TablePriceHistories, 0, 1, "-createdAt", qry, &res); err != nil {
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
