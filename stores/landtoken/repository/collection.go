package repository

import (
	"github.com/platz/goapi/base/ctx"
	"github.com/platz/goapi/base/log"
	"github.com/platz/goapi/domain"
	"github.com/platz/goapi/domain/landtoken"
	"github.com/platz/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type collectionRepoImpl struct {
	q query.Mongo
}

func NewCollectionRepo(q query.Mongo) landtoken.CollectionRepo {
	return &collectionRepoImpl{q}
}

func (im *collectionRepoImpl) FindOne(ctx ctx.Ctx, chainId domain.ChainId, address domain.Address) (*landtoken.Collection, error) {
	qry := bson.M{
		"chainId": chainId,
		"address": address.ToLower(),
	}
	res := landtoken.Collection{}
	err := im.q.FindOne(ctx, domain.TableCollections, qry, &res)
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

func (im *collectionRepoImpl) Upsert(ctx ctx.Ctx, collection *landtoken.Collection) error {
	collection.Address = collection.Address.ToLower()
	collection.Creator = collection.Creator.ToLower()
	selector := bson.M{
		"chainId": collection.ChainId,
		"address": collection.Address,
	}
	if err := im.q.Upsert(ctx, domain.TableCollections, selector, collection); err != nil {
		ctx.WithFields(log.Fields{
			"err":        err,
			"selector":   selector,
			"collection": *collection,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}
