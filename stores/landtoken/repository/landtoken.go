package repository

import (
	"time"

	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/database/mongoclient"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type landTokenRepoImpl struct {
	q query.Mongo
}

func NewLandTokenRepo(q query.Mongo) landtoken.Repo {
	return &landTokenRepoImpl{q}
}

func makeQuery(options landtoken.FindAllOptions) bson.M {
	qry := bson.M{}

	if options.ChainId != nil {
		qry["chainId"] = *options.ChainId
	}

	if options.ContractAddress != nil {
		qry["contractAddress"] = *options.ContractAddress
	}

	if options.Owner != nil {
		qry["owner"] = *options.Owner
	}

	if options.IsListed != nil {
		qry["isListed"] = *options.IsListed
	}

	return qry
}

func (im *landTokenRepoImpl) FindOne(ctx ctx.Ctx, id landtoken.Id) (*landtoken.LandToken, error) {
	id.ContractAddress = id.ContractAddress.ToLower()
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := landtoken.LandToken{}
	err = im.q.FindOne(ctx, domain.TableLandTokens, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *landTokenRepoImpl) FindAll(ctx ctx.Ctx, opts ...landtoken.FindAllOptionsFunc) ([]*landtoken.LandToken, error) {
	options, err := landtoken.GetFindAllOptions(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("landtoken.GetFindAllOptions failed")
		return nil, err
	}
	qry := makeQuery(options)

	offset := int(0)
	limit := int(0)
	sort := "_id"
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

	res := []*landtoken.LandToken{}
	if err := im.q.Search(ctx, domain.TableLandTokens, offset, limit, sort, qry, &res); err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *landTokenRepoImpl) Create(ctx ctx.Ctx, t *landtoken.LandToken) error {
	t.ContractAddress = t.ContractAddress.ToLower()
	t.Owner = t.Owner.ToLower()
	if err := im.q.Insert(ctx, domain.TableLandTokens, t); err != nil {
		if err == query.ErrDuplicateKey {
			return domain.ErrConflict
		}
		ctx.WithFields(log.Fields{
			"err":   err,
			"token": *t,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *landTokenRepoImpl) Patch(ctx ctx.Ctx, id landtoken.Id, value landtoken.PatchableLandToken) error {
	id.ContractAddress = id.ContractAddress.ToLower()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if value.Owner != nil {
		value.Owner = value.Owner.ToLowerPtr()
	}
	updater, err := mongoclient.MakeBsonM(value)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": value,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableLandTokens, selector, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

func (im *landTokenRepoImpl) SetOwner(ctx ctx.Ctx, id landtoken.Id, owner domain.Address, source domain.OwnershipSource) error {
	now := time.Now()
	return im.Patch(ctx, id, landtoken.PatchableLandToken{
		Owner:         owner.ToLowerPtr(),
		OwnerSource:   &source,
		OwnerSyncedAt: &now,
		UpdatedAt:     &now,
	})
}
